package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// FileName is the config file created in the user's home directory.
const FileName = ".chain-todo-config.json"

// DefaultContractAddress is the task contract the app talks to unless overridden.
const DefaultContractAddress = "0xC43A3A899BAd036a8d6D30B31A6046a1fA48a036"

// Config represents the application configuration
type Config struct {
	RPCURLs     []RPCUrl       `json:"rpc_urls"`
	Contract    ContractConfig `json:"contract"`
	Wallet      WalletConfig   `json:"wallet"`
	Logger      bool           `json:"logger"`
	ReceiptPoll Duration       `json:"receipt_poll,omitempty"`
}

// RPCUrl represents an RPC endpoint
type RPCUrl struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// ContractConfig locates the deployed task contract.
type ContractConfig struct {
	Address string `json:"address"`
}

// WalletConfig tells the wallet connector where to find signing keys.
type WalletConfig struct {
	KeystoreDir   string `json:"keystore_dir,omitempty"`
	PrivateKeyEnv string `json:"private_key_env,omitempty"`
}

// Duration is a time.Duration that reads and writes as a string ("1s", "500ms").
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Overrides holds values supplied on the command line or by the environment.
// Empty fields leave the file value untouched.
type Overrides struct {
	RPCURL      string
	Contract    string
	KeystoreDir string
	Logger      *bool
}

// DefaultPath returns ~/.chain-todo-config.json, or the bare file name if the
// home directory is unknown.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(homeDir, FileName)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	keystoreDir := ""
	if homeDir, err := os.UserHomeDir(); err == nil {
		keystoreDir = filepath.Join(homeDir, ".ethereum", "keystore")
	}
	return Config{
		RPCURLs: []RPCUrl{
			{
				Name:   "Sepolia",
				URL:    "https://ethereum-sepolia-rpc.publicnode.com",
				Active: true,
			},
		},
		Contract: ContractConfig{Address: DefaultContractAddress},
		Wallet: WalletConfig{
			KeystoreDir:   keystoreDir,
			PrivateKeyEnv: "TODO_PRIVATE_KEY",
		},
		Logger:      false,
		ReceiptPoll: Duration(time.Second),
	}
}

// Parse decodes a config document. Comments and trailing commas are accepted.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	// Endpoints come from the file alone; decoding over the default slice
	// would leak its fields into entries that omit them.
	cfg := DefaultConfig()
	cfg.RPCURLs = nil
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.RPCURLs == nil {
		cfg.RPCURLs = DefaultConfig().RPCURLs
	}
	return cfg, nil
}

// Load reads the config from the specified path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(append(data, '\n'))); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) (Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !os.IsNotExist(err) {
		return Config{}, err
	}

	cfg = DefaultConfig()
	if err := Save(path, cfg); err != nil {
		// Still usable in memory.
		return cfg, err
	}
	return cfg, nil
}

// Apply layers the environment and then the overrides on top of cfg.
func (cfg Config) Apply(o Overrides) Config {
	// rpc URL from environment
	if rpcFromEnv := strings.TrimSpace(os.Getenv("ETH_RPC_URL")); rpcFromEnv != "" && len(cfg.RPCURLs) == 0 {
		cfg.RPCURLs = []RPCUrl{{Name: "Default", URL: rpcFromEnv, Active: true}}
	}

	if o.RPCURL != "" {
		cfg.RPCURLs = cfg.WithActiveURL(o.RPCURL)
	}
	if o.Contract != "" {
		cfg.Contract.Address = o.Contract
	}
	if o.KeystoreDir != "" {
		cfg.Wallet.KeystoreDir = o.KeystoreDir
	}
	if o.Logger != nil {
		cfg.Logger = *o.Logger
	}
	return cfg
}

// WithActiveURL returns a copy of the RPC list in which url is the single
// active endpoint, appending it when it is not listed yet.
func (cfg Config) WithActiveURL(url string) []RPCUrl {
	out := make([]RPCUrl, 0, len(cfg.RPCURLs)+1)
	found := false
	for _, r := range cfg.RPCURLs {
		r.Active = r.URL == url && !found
		if r.Active {
			found = true
		}
		out = append(out, r)
	}
	if !found {
		out = append(out, RPCUrl{Name: "Command line", URL: url, Active: true})
	}
	return out
}

// ActiveRPC returns the active endpoint URL, falling back to the first one.
func (cfg Config) ActiveRPC() string {
	for _, r := range cfg.RPCURLs {
		if r.Active {
			return r.URL
		}
	}
	if len(cfg.RPCURLs) > 0 {
		return cfg.RPCURLs[0].URL
	}
	return ""
}

// ReceiptPollInterval returns how often pending transactions are checked.
func (cfg Config) ReceiptPollInterval() time.Duration {
	if cfg.ReceiptPoll <= 0 {
		return time.Second
	}
	return time.Duration(cfg.ReceiptPoll)
}
