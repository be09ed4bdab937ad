package domain

import "time"

// SLARule maps a product/issue/severity combination to a resolution deadline
// in hours. Only active rules participate in matching; subproduct and subissue
// are carried for reporting but are not match keys.
type SLARule struct {
	ID         int64
	Product    string
	Subproduct *string
	Issue      string
	Subissue   *string
	Severity   ComplaintSeverity
	SLAHours   int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
