package rules

import (
	"testing"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

func TestDepositCap(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		annual float64
		want   float64
	}{
		{name: "standard five weeks", annual: 12000, want: 1153.85},
		{name: "exactly at threshold six weeks", annual: 50000, want: 5769.23},
		{name: "high rent six weeks", annual: 60000, want: 6923.08},
		{name: "low rent", annual: 5200, want: 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DepositCap(tt.annual); got != tt.want {
				t.Errorf("DepositCap(%v) = %v, want %v", tt.annual, got, tt.want)
			}
		})
	}
}

func TestCheckDeposit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		facts        domain.Facts
		jurisdiction domain.Jurisdiction
		wantIssue    bool
	}{
		{
			name: "over cap blocks",
			facts: domain.Facts{
				"deposit_taken":  true,
				"deposit_amount": 1500.0,
				"rent_amount":    1000.0,
				"rent_period":    "monthly",
			},
			jurisdiction: domain.JurisdictionEngland,
			wantIssue:    true,
		},
		{
			name: "at cap passes",
			facts: domain.Facts{
				"deposit_taken":  true,
				"deposit_amount": 1153.85,
				"rent_amount":    1000.0,
				"rent_period":    "monthly",
			},
			jurisdiction: domain.JurisdictionEngland,
			wantIssue:    false,
		},
		{
			name: "high rent gets six weeks",
			facts: domain.Facts{
				"deposit_taken":  true,
				"deposit_amount": 6000.0,
				"rent_amount":    4500.0,
				"rent_period":    "monthly",
			},
			jurisdiction: domain.JurisdictionEngland,
			wantIssue:    false,
		},
		{
			name: "weekly rent converts",
			facts: domain.Facts{
				"deposit_taken":  true,
				"deposit_amount": 1300.0,
				"rent_amount":    250.0,
				"rent_period":    "weekly",
			},
			jurisdiction: domain.JurisdictionEngland,
			wantIssue:    true, // cap is 5 * 250 = 1250
		},
		{
			name:         "no deposit taken",
			facts:        domain.Facts{"deposit_taken": false, "rent_amount": 1000.0},
			jurisdiction: domain.JurisdictionEngland,
			wantIssue:    false,
		},
		{
			name: "scotland not capped here",
			facts: domain.Facts{
				"deposit_taken":  true,
				"deposit_amount": 5000.0,
				"rent_amount":    800.0,
			},
			jurisdiction: domain.JurisdictionScotland,
			wantIssue:    false,
		},
		{
			name:         "incomplete facts stay silent",
			facts:        domain.Facts{"deposit_taken": true},
			jurisdiction: domain.JurisdictionEngland,
			wantIssue:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			issue := CheckDeposit(tt.facts, tt.jurisdiction)
			if (issue != nil) != tt.wantIssue {
				t.Fatalf("CheckDeposit() issue = %v, wantIssue %v", issue, tt.wantIssue)
			}
			if issue != nil {
				if issue.Code != "DEPOSIT_OVER_CAP" {
					t.Errorf("expected DEPOSIT_OVER_CAP, got %q", issue.Code)
				}
				if issue.Severity != domain.SeverityBlocking {
					t.Errorf("deposit cap must be blocking, got %q", issue.Severity)
				}
				if err := domain.ValidateIssue(*issue); err != nil {
					t.Errorf("issue fails validation: %v", err)
				}
			}
		})
	}
}

func TestCheckDepositProtection(t *testing.T) {
	t.Parallel()
	unprotected := domain.Facts{"deposit_taken": true, "deposit_protected": false}
	issues := CheckDepositProtection(unprotected)
	if len(issues) != 1 || issues[0].Code != "DEPOSIT_UNPROTECTED" {
		t.Fatalf("expected single DEPOSIT_UNPROTECTED, got %+v", issues)
	}

	noInfo := domain.Facts{"deposit_taken": true, "deposit_protected": true, "prescribed_info_given": false}
	issues = CheckDepositProtection(noInfo)
	if len(issues) != 1 || issues[0].Code != "PRESCRIBED_INFO_MISSING" {
		t.Fatalf("expected single PRESCRIBED_INFO_MISSING, got %+v", issues)
	}

	clean := domain.Facts{"deposit_taken": true, "deposit_protected": true, "prescribed_info_given": true}
	if issues = CheckDepositProtection(clean); len(issues) != 0 {
		t.Errorf("expected no issues, got %+v", issues)
	}

	noDeposit := domain.Facts{"deposit_taken": false}
	if issues = CheckDepositProtection(noDeposit); len(issues) != 0 {
		t.Errorf("expected no issues without a deposit, got %+v", issues)
	}
}
