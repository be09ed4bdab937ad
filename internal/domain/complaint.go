package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusOpen      ComplaintStatus = "open"
	ComplaintStatusInProcess ComplaintStatus = "inprocess"
	ComplaintStatusPending   ComplaintStatus = "pending"
	ComplaintStatusClosed    ComplaintStatus = "closed"
)

// Valid reports whether the status is a known value.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusOpen, ComplaintStatusInProcess, ComplaintStatusPending, ComplaintStatusClosed:
		return true
	}
	return false
}

// ComplaintSeverity enumerates urgency tiers.
type ComplaintSeverity string

const (
	SeverityLow      ComplaintSeverity = "low"
	SeverityMedium   ComplaintSeverity = "medium"
	SeverityHigh     ComplaintSeverity = "high"
	SeverityCritical ComplaintSeverity = "critical"
)

// Valid reports whether the severity is a known value.
func (s ComplaintSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Complaint is the aggregate for customer complaints.
type Complaint struct {
	ID              int64
	ComplaintNumber string
	Product         string
	Subproduct      *string
	Issue           string
	Subissue        *string
	Description     string
	Severity        ComplaintSeverity
	Status          ComplaintStatus
	CustomerID      int64
	AssignedTeamID  *int64
	AssignedToID    *int64
	SLAHours        int
	SLABreach       bool
	ResolutionTime  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
