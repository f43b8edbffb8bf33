package board

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"chain-todo-tui/todo"
	"chain-todo-tui/wallet"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

func connected(t *testing.T, tasks ...todo.Task) *State {
	t.Helper()
	s := &State{}
	if !s.BeginConnect() {
		t.Fatal("BeginConnect refused on a fresh state")
	}
	s.Connect(alice)
	if !s.BeginRefresh() {
		t.Fatal("BeginRefresh refused")
	}
	s.Loaded(tasks)
	return s
}

func TestConnectWithoutWallet(t *testing.T) {
	s := &State{}
	s.BeginConnect()
	s.Fail(OpConnect, wallet.ErrNoWallet)

	if s.Connected() {
		t.Error("state should stay disconnected")
	}
	if s.Phase != Errored || s.Loading {
		t.Errorf("phase = %v loading = %v", s.Phase, s.Loading)
	}
	if !strings.Contains(s.Err, "install a wallet") {
		t.Errorf("Err = %q", s.Err)
	}

	s.ClearError()
	if s.Phase != Disconnected || s.Err != "" {
		t.Errorf("after ClearError phase = %v err = %q", s.Phase, s.Err)
	}
}

func TestMutationCycle(t *testing.T) {
	s := connected(t)

	if !s.BeginMutation() {
		t.Fatal("BeginMutation refused")
	}
	if s.Phase != Mutating || !s.Loading {
		t.Fatalf("phase = %v loading = %v", s.Phase, s.Loading)
	}

	// A second submission while the first is outstanding is ignored.
	if s.BeginMutation() {
		t.Error("overlapping mutation accepted")
	}
	if s.BeginRefresh() {
		t.Error("refresh accepted during mutation")
	}

	added := []todo.Task{{ID: 0, Title: "Buy milk", Text: "2% milk, 1 gallon"}}
	s.Loaded(added)

	if s.Loading || s.Phase != Ready {
		t.Errorf("phase = %v loading = %v", s.Phase, s.Loading)
	}
	if diff := cmp.Diff(added, s.Tasks); diff != "" {
		t.Errorf("tasks (-want +got):\n%s", diff)
	}
	if s.SyncedAt.IsZero() {
		t.Error("SyncedAt not set")
	}
}

func TestFailureKeepsSnapshot(t *testing.T) {
	before := []todo.Task{{ID: 3, Title: "keep me"}}

	for _, op := range []Op{OpAdd, OpDelete, OpFetch} {
		t.Run(fmt.Sprint(op), func(t *testing.T) {
			s := connected(t, before...)
			if op == OpFetch {
				s.BeginRefresh()
			} else {
				s.BeginMutation()
			}

			s.Fail(op, &todo.TransactionError{Method: "x", Err: errors.New("boom")})

			if diff := cmp.Diff(before, s.Tasks); diff != "" {
				t.Errorf("snapshot changed (-want +got):\n%s", diff)
			}
			if s.Err == "" || s.Loading {
				t.Errorf("err = %q loading = %v", s.Err, s.Loading)
			}

			// The next action clears the banner.
			if !s.BeginRefresh() {
				t.Fatal("BeginRefresh refused after failure")
			}
			if s.Err != "" {
				t.Errorf("error not cleared: %q", s.Err)
			}
		})
	}
}

func TestSwitchAccountDropsStaleTasks(t *testing.T) {
	s := connected(t, todo.Task{ID: 1, Title: "alice's"})

	s.SwitchAccount(bob)
	if len(s.Tasks) != 0 {
		t.Fatalf("stale tasks after switch: %v", s.Tasks)
	}
	if s.Account != bob || !s.Connected() {
		t.Errorf("account = %s connected = %v", s.Account.Hex(), s.Connected())
	}

	s.BeginRefresh()
	s.Loaded([]todo.Task{{ID: 2, Title: "bob's"}})
	if len(s.Tasks) != 1 || s.Tasks[0].Title != "bob's" {
		t.Errorf("tasks = %v", s.Tasks)
	}
}

func TestConnectSameAccountKeepsTasks(t *testing.T) {
	s := connected(t, todo.Task{ID: 1})
	s.BeginConnect()
	s.Connect(alice)
	if len(s.Tasks) != 1 {
		t.Errorf("reconnecting the same account dropped tasks")
	}
	s.BeginConnect()
	s.Connect(bob)
	if len(s.Tasks) != 0 {
		t.Errorf("connecting a different account kept tasks")
	}
}

func TestDisconnectAndReset(t *testing.T) {
	s := connected(t, todo.Task{ID: 1})
	s.Disconnect()
	if s.Connected() || len(s.Tasks) != 0 || s.Phase != Disconnected {
		t.Errorf("after Disconnect: %+v", s)
	}

	s = connected(t, todo.Task{ID: 1})
	s.Reset()
	if s.Connected() || s.Account != (common.Address{}) {
		t.Errorf("after Reset: %+v", s)
	}
}

func TestVisibleHidesDeleted(t *testing.T) {
	s := connected(t,
		todo.Task{ID: 0, Title: "a"},
		todo.Task{ID: 1, Title: "b", Deleted: true},
		todo.Task{ID: 2, Title: "c"},
	)
	got := s.Visible()
	if len(got) != 2 || got[0].ID != 0 || got[1].ID != 2 {
		t.Errorf("Visible() = %v", got)
	}
}

func TestMutationRequiresSession(t *testing.T) {
	s := &State{}
	if s.BeginMutation() {
		t.Error("mutation accepted while disconnected")
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		op   Op
		err  error
		want string
	}{
		{OpAdd, &todo.TransactionError{Method: "addTask", Err: todo.ErrReverted}, "Failed to add task: transaction reverted"},
		{OpDelete, &todo.TransactionError{Method: "deleteTask", Err: fmt.Errorf("%w: nope", wallet.ErrUserRejected)}, "Failed to delete task: request rejected"},
		{OpFetch, &todo.QueryError{Method: "getMyTask", Err: errors.New("connection refused")}, "Failed to fetch tasks: getMyTask: connection refused"},
		{OpConnect, wallet.ErrUserRejected, "Failed to connect wallet: request rejected"},
		{OpAdd, &todo.TransactionError{Method: "addTask", Err: todo.ErrNoSigner}, "Please connect your wallet first"},
		{OpConnect, nil, ""},
	}
	for _, tc := range cases {
		if got := Describe(tc.op, tc.err); got != tc.want {
			t.Errorf("Describe(%v, %v) = %q, want %q", tc.op, tc.err, got, tc.want)
		}
	}
}
