package rules

import (
	"fmt"
	"time"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

const dateLayout = "2006-01-02"

// noticePeriod returns the statutory minimum notice for the route as a day
// count or a calendar-month count, plus a human-readable statutory basis.
// Month-based periods stay in months so expiry lands on the same day of a
// later month, not a fixed number of days out. For Section 8 the period is
// the longest notice among the selected grounds.
func noticePeriod(route domain.Route, grounds []string, jurisdiction domain.Jurisdiction, facts domain.Facts) (days, months int, basis string, err error) {
	switch route {
	case domain.RouteSection21:
		return 0, 2, "Housing Act 1988 s.21: at least two months' notice", nil

	case domain.RouteSection8:
		if len(grounds) == 0 {
			return 0, 0, "", fmt.Errorf("section 8 notice requires at least one ground")
		}
		basisGround := ""
		for _, code := range grounds {
			g, lookupErr := GroundByCode(jurisdiction, code)
			if lookupErr != nil {
				return 0, 0, "", lookupErr
			}
			// A month-based ground outranks any day-based one; among
			// day-based grounds the longest wins.
			switch {
			case g.NoticePeriodMonths > months:
				months = g.NoticePeriodMonths
				basisGround = g.Code
			case months == 0 && g.NoticePeriodDays >= days:
				days = g.NoticePeriodDays
				basisGround = g.Code
			}
		}
		if months > 0 {
			days = 0
		}
		return days, months, fmt.Sprintf("Housing Act 1988 s.8: longest notice among pleaded grounds (ground %s)", basisGround), nil

	case domain.RouteNoticeToLeave:
		start := dateFact(facts, "tenancy_start_date")
		if !start.IsZero() && time.Since(start) < 6*30*24*time.Hour {
			return 28, 0, "Private Housing (Tenancies) (Scotland) Act 2016: 28 days for tenancies under six months", nil
		}
		if conductOnly(grounds) {
			return 28, 0, "Private Housing (Tenancies) (Scotland) Act 2016: 28 days for conduct grounds", nil
		}
		return 84, 0, "Private Housing (Tenancies) (Scotland) Act 2016: 84 days", nil

	case domain.RouteWalesSection173:
		return 0, 6, "Renting Homes (Wales) Act 2016 s.173: at least six months' notice", nil

	case domain.RouteNoticeToQuit:
		start := dateFact(facts, "tenancy_start_date")
		tenure := time.Since(start)
		switch {
		case start.IsZero() || tenure < 365*24*time.Hour:
			return 28, 0, "Private Tenancies Act (NI) 2022: 4 weeks for tenancies under one year", nil
		case tenure < 10*365*24*time.Hour:
			return 56, 0, "Private Tenancies Act (NI) 2022: 8 weeks for tenancies of one to ten years", nil
		default:
			return 84, 0, "Private Tenancies Act (NI) 2022: 12 weeks for tenancies over ten years", nil
		}
	}
	return 0, 0, "", fmt.Errorf("unknown route: %q", route)
}

// conductOnly reports whether every selected Scottish ground is conduct-based
// (arrears, antisocial behaviour, breach), which keeps notice at 28 days.
func conductOnly(grounds []string) bool {
	if len(grounds) == 0 {
		return false
	}
	conduct := map[string]bool{"scot_11": true, "scot_12": true, "scot_14": true}
	for _, g := range grounds {
		if !conduct[g] {
			return false
		}
	}
	return true
}

// CalculateNoticeDate computes the earliest valid notice expiry for the case.
// serviceDate defaults to today (UTC) when the fact is absent.
func CalculateNoticeDate(facts domain.Facts, route domain.Route, grounds []string, jurisdiction domain.Jurisdiction) (domain.NoticeDate, error) {
	service := dateFact(facts, "notice_service_date")
	if service.IsZero() {
		service = time.Now().UTC().Truncate(24 * time.Hour)
	}

	days, months, basis, err := noticePeriod(route, grounds, jurisdiction, facts)
	if err != nil {
		return domain.NoticeDate{}, fmt.Errorf("notice period: %w", err)
	}

	// Calendar arithmetic: two months from 1 July is 1 September, never
	// 60 days out. PeriodDays reports the elapsed span for display.
	expiry := service.AddDate(0, months, days)
	periodDays := int(expiry.Sub(service).Hours() / 24)

	// A Section 21 notice cannot expire before any fixed term ends.
	if route == domain.RouteSection21 {
		if end := dateFact(facts, "fixed_term_end_date"); !end.IsZero() && end.After(expiry) {
			expiry = end
			basis += "; pushed to fixed-term end date"
		}
	}

	return domain.NoticeDate{
		ServiceDate: service.Format(dateLayout),
		ExpiryDate:  expiry.Format(dateLayout),
		PeriodDays:  periodDays,
		Basis:       basis,
	}, nil
}
