package core

import (
	"strings"
	"time"
)

// DateLayout is the storage format for expense dates. Lexical ordering of
// dates in this layout equals chronological ordering, which lets range
// queries compare dates as plain strings.
const DateLayout = "2006-01-02"

type (
	// Expense is a single recorded monetary transaction.
	Expense struct {
		ID          int64   `json:"id"`
		Date        string  `json:"date"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Subcategory string  `json:"subcategory"`
		Note        string  `json:"note"`
	}

	// NewExpense carries the caller-supplied fields for a create.
	// Subcategory and Note default to the empty string.
	NewExpense struct {
		Date        string
		Amount      float64
		Category    string
		Subcategory string
		Note        string
	}

	// ExpenseUpdate is a sparse field set for an edit: a nil pointer means
	// "leave unchanged", a non-nil pointer (including one to an empty
	// string) means "overwrite".
	ExpenseUpdate struct {
		Date        *string
		Amount      *float64
		Category    *string
		Subcategory *string
		Note        *string
	}

	// Field is one (column, value) pair of a sparse update.
	Field struct {
		Name  string
		Value any
	}

	// CategoryTotal is one row of a grouped aggregate.
	CategoryTotal struct {
		Category string  `json:"category"`
		Total    float64 `json:"total_amount"`
	}
)

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func (n NewExpense) Validate() error {
	if strings.TrimSpace(n.Date) == "" {
		return &ValidationError{Field: "date", Reason: "required"}
	}
	if !ValidDate(n.Date) {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(n.Category) == "" {
		return &ValidationError{Field: "category", Reason: "required"}
	}
	return nil
}

// Validate checks the supplied fields only. An empty update is legal here;
// rejecting it is the store's concern so the caller can distinguish
// ErrNoFields from a validation failure.
func (u ExpenseUpdate) Validate() error {
	if u.Date != nil && !ValidDate(*u.Date) {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return nil
}

// Fields returns the supplied (column, value) pairs in declaration order.
// The fixed order keeps the generated UPDATE statement deterministic.
func (u ExpenseUpdate) Fields() []Field {
	var fields []Field
	if u.Date != nil {
		fields = append(fields, Field{Name: "date", Value: *u.Date})
	}
	if u.Amount != nil {
		fields = append(fields, Field{Name: "amount", Value: *u.Amount})
	}
	if u.Category != nil {
		fields = append(fields, Field{Name: "category", Value: *u.Category})
	}
	if u.Subcategory != nil {
		fields = append(fields, Field{Name: "subcategory", Value: *u.Subcategory})
	}
	if u.Note != nil {
		fields = append(fields, Field{Name: "note", Value: *u.Note})
	}
	return fields
}

// IsEmpty reports whether the update supplies no fields at all.
func (u ExpenseUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}
