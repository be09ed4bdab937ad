package sla

import (
	"testing"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func rule(id int64, product, issue string, severity domain.ComplaintSeverity, hours int, active bool) domain.SLARule {
	return domain.SLARule{
		ID:       id,
		Product:  product,
		Issue:    issue,
		Severity: severity,
		SLAHours: hours,
		IsActive: active,
	}
}

func TestResolveDefaults(t *testing.T) {
	want := map[domain.ComplaintSeverity]int{
		domain.SeverityCritical: 4,
		domain.SeverityHigh:     12,
		domain.SeverityMedium:   24,
		domain.SeverityLow:      48,
	}
	for severity, hours := range want {
		if got := Resolve("Online Banking", "Login Problem", severity, nil); got != hours {
			t.Fatalf("Resolve(%s) = %d, want %d", severity, got, hours)
		}
	}
}

func TestResolveUnknownSeverityFallsBack(t *testing.T) {
	if got := Resolve("Cards", "Fraud", domain.ComplaintSeverity("weird"), nil); got != 24 {
		t.Fatalf("Resolve(unknown severity) = %d, want 24", got)
	}
}

func TestResolveMatchingRuleWins(t *testing.T) {
	rules := []domain.SLARule{
		rule(1, "Online Banking", "Login Problem", domain.SeverityCritical, 1, true),
		rule(2, "Cards", "Fraud", domain.SeverityCritical, 2, true),
	}
	if got := Resolve("Online Banking", "Login Problem", domain.SeverityCritical, rules); got != 1 {
		t.Fatalf("Resolve = %d, want 1", got)
	}
	// Non-matching triple falls through to the default table.
	if got := Resolve("Online Banking", "Transfer Failed", domain.SeverityCritical, rules); got != 4 {
		t.Fatalf("Resolve = %d, want default 4", got)
	}
}

func TestResolveIgnoresInactiveRules(t *testing.T) {
	rules := []domain.SLARule{
		rule(1, "Online Banking", "Login Problem", domain.SeverityHigh, 2, false),
	}
	if got := Resolve("Online Banking", "Login Problem", domain.SeverityHigh, rules); got != 12 {
		t.Fatalf("Resolve = %d, want default 12", got)
	}
}

func TestResolveTieBreakLowestID(t *testing.T) {
	rules := []domain.SLARule{
		rule(7, "Loans", "Delay", domain.SeverityMedium, 20, true),
		rule(3, "Loans", "Delay", domain.SeverityMedium, 10, true),
		rule(9, "Loans", "Delay", domain.SeverityMedium, 30, true),
	}
	if got := Resolve("Loans", "Delay", domain.SeverityMedium, rules); got != 10 {
		t.Fatalf("Resolve = %d, want 10 from lowest id rule", got)
	}
}
