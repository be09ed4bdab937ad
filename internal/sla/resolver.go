// Package sla resolves the resolution deadline for a complaint from the
// active rule set, falling back to a fixed per-severity default table.
package sla

import "github.com/spec-kit/complaint-service/internal/domain"

// DefaultHours is the fallback deadline table keyed by severity. It is fixed
// configuration, not mutable state.
var DefaultHours = map[domain.ComplaintSeverity]int{
	domain.SeverityCritical: 4,
	domain.SeverityHigh:     12,
	domain.SeverityMedium:   24,
	domain.SeverityLow:      48,
}

// fallbackHours covers severities missing from DefaultHours.
const fallbackHours = 24

// Resolve returns the SLA hours for a complaint with the given product, issue
// and severity. Matching is an exact comparison on (product, issue, severity)
// over active rules; when several active rules match, the one with the lowest
// id wins. Resolve never fails: with no matching rule the severity default
// applies. The result is stamped on the complaint at creation time and never
// recomputed.
func Resolve(product, issue string, severity domain.ComplaintSeverity, rules []domain.SLARule) int {
	var match *domain.SLARule
	for i := range rules {
		rule := &rules[i]
		if !rule.IsActive {
			continue
		}
		if rule.Product != product || rule.Issue != issue || rule.Severity != severity {
			continue
		}
		if match == nil || rule.ID < match.ID {
			match = rule
		}
	}
	if match != nil {
		return match.SLAHours
	}
	if hours, ok := DefaultHours[severity]; ok {
		return hours
	}
	return fallbackHours
}
