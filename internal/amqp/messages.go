package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds carried on the ledger events queue.
const (
	KindExpenseRecorded = "expense.recorded"
	KindExpenseEdited   = "expense.edited"
)

// LedgerEvent is a lightweight notification about a ledger mutation.
// It carries only the expense id; consumers fetch the full record from the
// store, so a stale message can never overwrite fresher data downstream.
type LedgerEvent struct {
	Kind      string    `json:"kind"`
	ID        int64     `json:"id"`
	Fields    []string  `json:"fields,omitempty"` // edited columns, for expense.edited
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseRecorded(id int64) *LedgerEvent {
	return &LedgerEvent{
		Kind:      KindExpenseRecorded,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func NewExpenseEdited(id int64, fields []string) *LedgerEvent {
	return &LedgerEvent{
		Kind:      KindExpenseEdited,
		ID:        id,
		Fields:    fields,
		Timestamp: time.Now(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
