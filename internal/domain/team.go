package domain

import "time"

// Team groups ops members under an optional manager and team lead.
type Team struct {
	ID          int64
	Name        string
	Description string
	ManagerID   *int64
	TeamLeadID  *int64
	IsActive    bool
	CreatedAt   time.Time
}
