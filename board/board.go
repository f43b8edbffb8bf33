// Package board holds the task view-model: the current session's task
// snapshot, the loading flag, and the error banner text. It has no I/O; the
// TUI drives it around each awaited chain call.
package board

import (
	"fmt"
	"time"

	"chain-todo-tui/todo"

	"github.com/ethereum/go-ethereum/common"
)

// Phase is the view-model's position in the connect/mutate cycle.
type Phase int

const (
	Disconnected Phase = iota
	Connecting
	Ready
	Mutating
	Errored
)

func (p Phase) String() string {
	switch p {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Ready:
		return "ready"
	case Mutating:
		return "mutating"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Op names the user action an error belongs to.
type Op int

const (
	OpConnect Op = iota
	OpAdd
	OpDelete
	OpFetch
)

func (o Op) String() string {
	switch o {
	case OpConnect:
		return "connect"
	case OpAdd:
		return "add"
	case OpDelete:
		return "delete"
	case OpFetch:
		return "fetch"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// State is the task view-model.
type State struct {
	Phase   Phase
	Account common.Address
	// Tasks is the last successful getMyTask snapshot, replaced wholesale.
	Tasks    []todo.Task
	Loading  bool
	Err      string
	SyncedAt time.Time

	// connected survives an Errored phase so recovery lands on the right side.
	connected bool
}

// Connected reports whether a session is active.
func (s *State) Connected() bool { return s.connected }

// BeginConnect enters Connecting. It refuses while another call is in flight.
func (s *State) BeginConnect() bool {
	if s.Loading {
		return false
	}
	s.Phase = Connecting
	s.Loading = true
	s.Err = ""
	return true
}

// Connect records a successful connect. The caller follows up with a fetch.
func (s *State) Connect(account common.Address) {
	if s.connected && s.Account != account {
		s.Tasks = nil
		s.SyncedAt = time.Time{}
	}
	s.Account = account
	s.connected = true
	s.Phase = Ready
	s.Loading = false
}

// BeginMutation enters Mutating for an add or delete. Only one call may be
// outstanding; it returns false when the request must be ignored.
func (s *State) BeginMutation() bool {
	if !s.connected || s.Loading {
		return false
	}
	s.Phase = Mutating
	s.Loading = true
	s.Err = ""
	return true
}

// BeginRefresh starts a list fetch, subject to the same single-flight rule.
func (s *State) BeginRefresh() bool {
	if !s.connected || s.Loading {
		return false
	}
	s.Loading = true
	s.Err = ""
	return true
}

// Loaded replaces the snapshot with a fresh fetch result.
func (s *State) Loaded(tasks []todo.Task) {
	s.Tasks = tasks
	s.SyncedAt = time.Now()
	s.Loading = false
	s.Phase = Ready
}

// Fail records a failed action. The previous snapshot is kept.
func (s *State) Fail(op Op, err error) {
	s.Loading = false
	s.Err = Describe(op, err)
	s.Phase = Errored
	if op == OpConnect && !s.connected {
		s.Account = common.Address{}
	}
}

// SwitchAccount completes a connect to a different account. The old
// account's snapshot is dropped before the new one loads, so no stale
// entries are ever shown under the new address.
func (s *State) SwitchAccount(account common.Address) {
	s.Loading = false
	if s.Account == account && s.connected {
		s.Phase = Ready
		return
	}
	s.Account = account
	s.Tasks = nil
	s.SyncedAt = time.Time{}
	s.connected = true
	s.Phase = Ready
	s.Err = ""
}

// Disconnect ends the session and forgets its tasks.
func (s *State) Disconnect() {
	*s = State{}
}

// Reset discards everything, as after a network change.
func (s *State) Reset() {
	*s = State{}
}

// ClearError dismisses the banner and leaves the Errored phase.
func (s *State) ClearError() {
	s.Err = ""
	if s.Phase != Errored {
		return
	}
	if s.connected {
		s.Phase = Ready
	} else {
		s.Phase = Disconnected
	}
}

// Visible returns the tasks to display, hiding soft-deleted entries.
func (s *State) Visible() []todo.Task {
	out := make([]todo.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if !t.Deleted {
			out = append(out, t)
		}
	}
	return out
}
