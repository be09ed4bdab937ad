package domain

import "time"

// History action labels recorded by the complaint lifecycle.
const (
	HistoryActionCreated       = "Created"
	HistoryActionStatusChanged = "Status Changed"
	HistoryActionAssigned      = "Assigned"
)

// ComplaintHistory is an immutable audit trail entry. Rows are append-only and
// never updated or deleted.
type ComplaintHistory struct {
	ID          int64
	ComplaintID int64
	UserID      int64
	Action      string
	OldValue    *string
	NewValue    *string
	Notes       *string
	CreatedAt   time.Time
}
