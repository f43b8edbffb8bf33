package todo

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Task is a read-only copy of a contract task.
type Task struct {
	ID      uint64
	Title   string
	Text    string
	Deleted bool
}

func (t Task) String() string {
	return fmt.Sprintf("#%d %s", t.ID, t.Title)
}

// Receipt summarizes a confirmed transaction.
type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	// TaskID comes from the AddTask or DeleteTask event; HasTaskID is false
	// when the receipt carried no such event.
	TaskID    uint64
	HasTaskID bool
}

func fromContract(raw []contractTask) ([]Task, error) {
	tasks := make([]Task, 0, len(raw))
	for _, r := range raw {
		if r.Id == nil || !r.Id.IsUint64() {
			return nil, fmt.Errorf("task id %v out of range", r.Id)
		}
		tasks = append(tasks, Task{
			ID:      r.Id.Uint64(),
			Title:   r.TaskTitle,
			Text:    r.TaskText,
			Deleted: r.IsDeleted,
		})
	}
	return tasks, nil
}
