package main

import (
	"fmt"
	"os"

	"chain-todo-tui/config"
	"chain-todo-tui/helpers"
	"chain-todo-tui/wallet"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

// -------------------- MAIN --------------------

func main() {
	var (
		configPath  = pflag.String("config", config.DefaultPath(), "config file")
		rpcURL      = pflag.String("rpc", "", "JSON-RPC endpoint to use (added to the config if new)")
		contract    = pflag.String("contract", "", "task contract address")
		keystoreDir = pflag.String("keystore", "", "keystore directory holding the wallet's keys")
		showLog     = pflag.Bool("log", false, "open the debug log panel")
	)
	pflag.Parse()

	cfg, err := config.LoadOrCreate(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	overrides := config.Overrides{
		RPCURL:      *rpcURL,
		Contract:    *contract,
		KeystoreDir: *keystoreDir,
	}
	if pflag.CommandLine.Changed("log") {
		overrides.Logger = showLog
	}
	cfg = cfg.Apply(overrides)

	if !helpers.IsValidEthAddress(cfg.Contract.Address) {
		fmt.Fprintf(os.Stderr, "error: invalid contract address %q\n", cfg.Contract.Address)
		os.Exit(2)
	}

	provider, err := wallet.Open(cfg.Wallet)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	m := newModel(cfg, *configPath, provider)
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	m.shutdown()
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
