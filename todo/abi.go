package todo

import (
	_ "embed"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed abi.json
var contractABI string

// Contract method and event names as they appear in the ABI.
const (
	methodAddTask    = "addTask"
	methodDeleteTask = "deleteTask"
	methodGetMyTask  = "getMyTask"
	eventAddTask     = "AddTask"
	eventDeleteTask  = "DeleteTask"
)

// ParsedABI returns the task contract interface.
var ParsedABI = sync.OnceValues(func() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parsing task contract ABI: %w", err)
	}
	return parsed, nil
})

// contractTask mirrors the on-chain Task struct. Field names must match the
// ABI component names after camel-casing.
type contractTask struct {
	Id        *big.Int
	TaskTitle string
	TaskText  string
	IsDeleted bool
}
