// Package docgen renders the deliverable documents for a completed case:
// possession notices, cover letters, service instructions, tenancy
// agreements and money-claim particulars.
package docgen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

func render(name, tmpl string, data any) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("docgen: parse %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("docgen: render %s: %w", name, err)
	}
	return buf.String(), nil
}

// noticeData is the merged view the notice templates render.
type noticeData struct {
	PropertyAddress  string
	LandlordName     string
	TenantName       string
	TenancyStartDate string
	ServiceDate      string
	ExpiryDate       string
	PeriodDays       int
	Grounds          []domain.GroundRecommendation
	Particulars      string
	Today            string
}

func factString(facts domain.Facts, key, fallback string) string {
	if v, ok := facts[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func factFloat(facts domain.Facts, key string) float64 {
	switch v := facts[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func factBool(facts domain.Facts, key string) bool {
	switch v := facts[key].(type) {
	case bool:
		return v
	case string:
		return v == "yes" || v == "true"
	}
	return false
}

func buildNoticeData(c domain.Case, analysis domain.CaseAnalysis) noticeData {
	facts := c.CollectedFacts
	d := noticeData{
		PropertyAddress:  factString(facts, "property_address", "the let property"),
		LandlordName:     factString(facts, "landlord_name", "The Landlord"),
		TenantName:       factString(facts, "tenant_name", "The Tenant"),
		TenancyStartDate: factString(facts, "tenancy_start_date", ""),
		Today:            time.Now().UTC().Format("2006-01-02"),
	}
	if analysis.NoticeDate != nil {
		d.ServiceDate = analysis.NoticeDate.ServiceDate
		d.ExpiryDate = analysis.NoticeDate.ExpiryDate
		d.PeriodDays = analysis.NoticeDate.PeriodDays
	}
	for _, g := range analysis.Grounds {
		if g.Recommended {
			d.Grounds = append(d.Grounds, g)
		}
	}
	d.Particulars = particulars(facts)
	return d
}

func particulars(facts domain.Facts) string {
	var parts []string
	if months := factFloat(facts, "arrears_months"); months > 0 {
		line := fmt.Sprintf("The tenant owes %.0f months' rent", months)
		if amount := factFloat(facts, "arrears_amount"); amount > 0 {
			line += fmt.Sprintf(", a total of £%.2f", amount)
		}
		parts = append(parts, line+".")
	}
	if desc := factString(facts, "breach_description", ""); desc != "" {
		parts = append(parts, desc)
	}
	if factBool(facts, "asb_conviction") {
		parts = append(parts, "The tenant has been convicted of an offence connected to the conduct complained of.")
	}
	if len(parts) == 0 {
		return "See attached schedule."
	}
	return strings.Join(parts, " ")
}

// noticeTemplate picks the form for the recommended route.
func noticeTemplate(route domain.Route) (title, tmpl string, err error) {
	switch route {
	case domain.RouteSection8:
		return "Section 8 Notice (Form 3)", section8NoticeTmpl, nil
	case domain.RouteSection21:
		return "Section 21 Notice (Form 6A)", section21NoticeTmpl, nil
	case domain.RouteNoticeToLeave:
		return "Notice to Leave", noticeToLeaveTmpl, nil
	case domain.RouteWalesSection173:
		return "Section 173 Notice", walesNoticeTmpl, nil
	case domain.RouteNoticeToQuit:
		return "Notice to Quit", noticeToQuitTmpl, nil
	}
	return "", "", fmt.Errorf("docgen: no notice form for route %q", route)
}

// Render produces the document set for the case's product.
func Render(c domain.Case, analysis domain.CaseAnalysis) ([]domain.Document, error) {
	switch c.CaseType {
	case domain.CaseEviction:
		return renderEviction(c, analysis)
	case domain.CaseMoneyClaim:
		return renderMoneyClaim(c)
	case domain.CaseTenancyAgreement:
		return renderAgreement(c)
	}
	return nil, fmt.Errorf("docgen: unknown case type %q", c.CaseType)
}

func renderEviction(c domain.Case, analysis domain.CaseAnalysis) ([]domain.Document, error) {
	if analysis.Route == nil {
		return nil, fmt.Errorf("docgen: eviction case %s has no route recommendation", c.CaseID)
	}
	data := buildNoticeData(c, analysis)

	title, tmpl, err := noticeTemplate(analysis.Route.RecommendedRoute)
	if err != nil {
		return nil, err
	}
	body, err := render("notice", tmpl, data)
	if err != nil {
		return nil, err
	}
	notice := domain.NewDocument(c.CaseID, title, "notice")
	notice.Body = body
	docs := []domain.Document{notice}

	// notice_only buyers get the bare form; the complete pack adds the
	// cover letter and service walkthrough.
	if c.Product == domain.ProductCompletePack {
		cover, err := render("cover_letter", coverLetterTmpl, data)
		if err != nil {
			return nil, err
		}
		coverDoc := domain.NewDocument(c.CaseID, "Cover Letter", "cover_letter")
		coverDoc.Body = cover

		instructions, err := render("service_instructions", serviceInstructionsTmpl, data)
		if err != nil {
			return nil, err
		}
		instrDoc := domain.NewDocument(c.CaseID, "Service Instructions", "service_instructions")
		instrDoc.Body = instructions

		docs = append(docs, coverDoc, instrDoc)
	}
	return docs, nil
}

type agreementData struct {
	LandlordName     string
	TenantName       string
	PropertyAddress  string
	TenancyStartDate string
	TermMonths       float64
	RentAmount       float64
	RentPeriod       string
	DepositAmount    float64
	PetsAllowed      bool
	BreakClause      bool
	Today            string
}

func renderAgreement(c domain.Case) ([]domain.Document, error) {
	facts := c.CollectedFacts
	data := agreementData{
		LandlordName:     factString(facts, "landlord_name", "The Landlord"),
		TenantName:       factString(facts, "tenant_name", "The Tenant"),
		PropertyAddress:  factString(facts, "property_address", ""),
		TenancyStartDate: factString(facts, "tenancy_start_date", ""),
		TermMonths:       factFloat(facts, "term_months"),
		RentAmount:       factFloat(facts, "rent_amount"),
		RentPeriod:       factString(facts, "rent_period", "monthly"),
		DepositAmount:    factFloat(facts, "deposit_amount"),
		PetsAllowed:      factBool(facts, "pets_allowed"),
		BreakClause:      factBool(facts, "break_clause"),
		Today:            time.Now().UTC().Format("2006-01-02"),
	}
	body, err := render("ast_agreement", astAgreementTmpl, data)
	if err != nil {
		return nil, err
	}
	doc := domain.NewDocument(c.CaseID, "Assured Shorthold Tenancy Agreement", "agreement")
	doc.Body = body
	return []domain.Document{doc}, nil
}

type moneyClaimData struct {
	LandlordName    string
	TenantName      string
	PropertyAddress string
	RentAmount      float64
	RentPeriod      string
	ArrearsFromDate string
	ClaimAmount     float64
	ClaimInterest   bool
	Today           string
}

func renderMoneyClaim(c domain.Case) ([]domain.Document, error) {
	facts := c.CollectedFacts
	data := moneyClaimData{
		LandlordName:    factString(facts, "landlord_name", "The Claimant"),
		TenantName:      factString(facts, "tenant_name", "The Defendant"),
		PropertyAddress: factString(facts, "property_address", "the let property"),
		RentAmount:      factFloat(facts, "rent_amount"),
		RentPeriod:      factString(facts, "rent_period", "monthly"),
		ArrearsFromDate: factString(facts, "arrears_from_date", ""),
		ClaimAmount:     factFloat(facts, "claim_amount"),
		ClaimInterest:   factBool(facts, "claim_interest"),
		Today:           time.Now().UTC().Format("2006-01-02"),
	}
	body, err := render("money_claim", moneyClaimTmpl, data)
	if err != nil {
		return nil, err
	}
	doc := domain.NewDocument(c.CaseID, "Particulars of Claim", "claim_form")
	doc.Body = body
	return []domain.Document{doc}, nil
}
