package rpc

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/mdp/qrterminal/v3"
)

// Client wraps an Ethereum RPC client
type Client struct {
	*ethclient.Client
	URL     string
	ChainID *big.Int
}

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client *Client
	Error  error
}

// Connect attempts to connect to an Ethereum RPC endpoint
func Connect(url string) ConnectResult {
	return ConnectWithTimeout(url, 8*time.Second)
}

// ConnectWithTimeout attempts to connect with a custom timeout. The chain id
// is fetched as part of connecting so a dead endpoint fails here and not on
// the first contract call.
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Client: nil, Error: err}
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return ConnectResult{Client: nil, Error: fmt.Errorf("eth_chainId: %w", err)}
	}

	return ConnectResult{
		Client: &Client{
			Client:  client,
			URL:     url,
			ChainID: chainID,
		},
		Error: nil,
	}
}

// LoadBalance fetches the ETH balance that pays for task transactions.
func LoadBalance(client *Client, addr common.Address) (*big.Int, error) {
	if client == nil || client.Client == nil {
		return nil, fmt.Errorf("no RPC client (set ETH_RPC_URL)")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()
	return client.BalanceAt(ctx, addr, nil)
}

// FundingURI builds an EIP-681 payment link for addr on the given chain.
func FundingURI(addr common.Address, chainID *big.Int) string {
	if chainID == nil || chainID.Sign() == 0 {
		return "ethereum:" + addr.Hex()
	}
	return fmt.Sprintf("ethereum:%s@%s", addr.Hex(), chainID.String())
}

// GenerateQRCode renders data as a half-block terminal QR code.
func GenerateQRCode(data string) string {
	var sb strings.Builder
	qrterminal.GenerateWithConfig(data, qrterminal.Config{
		Level:          qrterminal.L,
		Writer:         &sb,
		HalfBlocks:     true,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
		QuietZone:      1,
	})
	return sb.String()
}
