package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseAcceptsComments(t *testing.T) {
	data := []byte(`{
  // local anvil node
  "rpc_urls": [
    {"name": "anvil", "url": "http://127.0.0.1:8545", "active": true},
  ],
  "contract": {"address": "0x5FbDB2315678afecb367f032d93F642f64180aa3"},
  "receipt_poll": "250ms",
}`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := cfg.ActiveRPC(); got != "http://127.0.0.1:8545" {
		t.Errorf("ActiveRPC() = %q", got)
	}
	if cfg.Contract.Address != "0x5FbDB2315678afecb367f032d93F642f64180aa3" {
		t.Errorf("contract address = %q", cfg.Contract.Address)
	}
	if got := cfg.ReceiptPollInterval(); got != 250*time.Millisecond {
		t.Errorf("ReceiptPollInterval() = %v", got)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Wallet.PrivateKeyEnv != "TODO_PRIVATE_KEY" {
		t.Errorf("PrivateKeyEnv = %q, want default", cfg.Wallet.PrivateKeyEnv)
	}
}

func TestParseEndpointsComeFromFile(t *testing.T) {
	cfg, err := Parse([]byte(`{"rpc_urls": [{"name": "anvil", "url": "http://127.0.0.1:8545"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []RPCUrl{{Name: "anvil", URL: "http://127.0.0.1:8545"}}
	if diff := cmp.Diff(want, cfg.RPCURLs); diff != "" {
		t.Errorf("endpoints mismatch (-want +got):\n%s", diff)
	}

	cfg, err = Parse([]byte(`{"logger": true}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig().RPCURLs, cfg.RPCURLs); diff != "" {
		t.Errorf("missing rpc_urls should keep the defaults (-want +got):\n%s", diff)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte(`{"rpc": "x"}`)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	want := DefaultConfig()
	want.Logger = true
	want.RPCURLs = append(want.RPCURLs, RPCUrl{Name: "anvil", URL: "http://127.0.0.1:8545"})
	want.ReceiptPoll = Duration(3 * time.Second)

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.Contract.Address != DefaultContractAddress {
		t.Errorf("contract = %q", cfg.Contract.Address)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestLoadOrCreateKeepsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadOrCreate(path); err == nil {
		t.Fatal("expected parse error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{not json" {
		t.Error("broken config was overwritten")
	}
}

func TestApplyPrecedence(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "http://env:8545")

	t.Run("env seeds empty rpc list", func(t *testing.T) {
		cfg := Config{}.Apply(Overrides{})
		if got := cfg.ActiveRPC(); got != "http://env:8545" {
			t.Errorf("ActiveRPC() = %q", got)
		}
	})

	t.Run("env ignored when file has endpoints", func(t *testing.T) {
		cfg := DefaultConfig().Apply(Overrides{})
		if got := cfg.ActiveRPC(); got == "http://env:8545" {
			t.Error("env should not replace configured endpoints")
		}
	})

	t.Run("flags win", func(t *testing.T) {
		on := true
		cfg := DefaultConfig().Apply(Overrides{
			RPCURL:      "http://flag:8545",
			Contract:    "0x0000000000000000000000000000000000000001",
			KeystoreDir: "/tmp/keys",
			Logger:      &on,
		})
		if got := cfg.ActiveRPC(); got != "http://flag:8545" {
			t.Errorf("ActiveRPC() = %q", got)
		}
		if cfg.Contract.Address != "0x0000000000000000000000000000000000000001" {
			t.Errorf("contract = %q", cfg.Contract.Address)
		}
		if cfg.Wallet.KeystoreDir != "/tmp/keys" || !cfg.Logger {
			t.Errorf("overrides not applied: %+v", cfg)
		}
		active := 0
		for _, r := range cfg.RPCURLs {
			if r.Active {
				active++
			}
		}
		if active != 1 {
			t.Errorf("%d active endpoints, want 1", active)
		}
	})
}

func TestWithActiveURL(t *testing.T) {
	cfg := Config{RPCURLs: []RPCUrl{
		{Name: "a", URL: "http://a", Active: true},
		{Name: "b", URL: "http://b"},
	}}

	got := cfg.WithActiveURL("http://b")
	want := []RPCUrl{
		{Name: "a", URL: "http://a"},
		{Name: "b", URL: "http://b", Active: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WithActiveURL mismatch (-want +got):\n%s", diff)
	}
	if !cfg.RPCURLs[0].Active {
		t.Error("WithActiveURL modified the receiver")
	}

	got = cfg.WithActiveURL("http://c")
	if len(got) != 3 || !got[2].Active || got[0].Active {
		t.Errorf("new url not appended as the only active endpoint: %+v", got)
	}
}

func TestActiveRPCFallsBackToFirst(t *testing.T) {
	cfg := Config{RPCURLs: []RPCUrl{{Name: "a", URL: "http://a"}, {Name: "b", URL: "http://b"}}}
	if got := cfg.ActiveRPC(); got != "http://a" {
		t.Errorf("ActiveRPC() = %q, want first endpoint", got)
	}
	if got := (Config{}).ActiveRPC(); got != "" {
		t.Errorf("empty config ActiveRPC() = %q", got)
	}
}
