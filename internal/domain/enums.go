package domain

import "fmt"

// CaseType classifies what the landlord is trying to produce.
type CaseType string

const (
	CaseEviction         CaseType = "eviction"
	CaseMoneyClaim       CaseType = "money_claim"
	CaseTenancyAgreement CaseType = "tenancy_agreement"
)

func (c CaseType) Valid() bool {
	switch c {
	case CaseEviction, CaseMoneyClaim, CaseTenancyAgreement:
		return true
	}
	return false
}

// Jurisdiction identifies which UK legal regime applies.
type Jurisdiction string

const (
	JurisdictionEngland         Jurisdiction = "england"
	JurisdictionWales           Jurisdiction = "wales"
	JurisdictionScotland        Jurisdiction = "scotland"
	JurisdictionNorthernIreland Jurisdiction = "northern-ireland"
)

func (j Jurisdiction) Valid() bool {
	switch j {
	case JurisdictionEngland, JurisdictionWales, JurisdictionScotland, JurisdictionNorthernIreland:
		return true
	}
	return false
}

// Product is the purchasable document tier.
type Product string

const (
	ProductNoticeOnly   Product = "notice_only"
	ProductCompletePack Product = "complete_pack"
	ProductMoneyClaim   Product = "money_claim"
	ProductASTStandard  Product = "ast_standard"
	ProductASTPremium   Product = "ast_premium"
)

func (p Product) Valid() bool {
	switch p {
	case ProductNoticeOnly, ProductCompletePack, ProductMoneyClaim, ProductASTStandard, ProductASTPremium:
		return true
	}
	return false
}

// ProductCaseType maps each product to the case type it produces.
// Never infer this from string prefixes — use this map.
var ProductCaseType = map[Product]CaseType{
	ProductNoticeOnly:   CaseEviction,
	ProductCompletePack: CaseEviction,
	ProductMoneyClaim:   CaseMoneyClaim,
	ProductASTStandard:  CaseTenancyAgreement,
	ProductASTPremium:   CaseTenancyAgreement,
}

// CaseTypeFor returns the case type for a product, or an error for unknown products.
func CaseTypeFor(p Product) (CaseType, error) {
	ct, ok := ProductCaseType[p]
	if !ok {
		return "", fmt.Errorf("unknown product: %q", p)
	}
	return ct, nil
}

// CaseStatus tracks a case through intake and generation.
type CaseStatus string

const (
	StatusDraft      CaseStatus = "draft"
	StatusComplete   CaseStatus = "complete"
	StatusGenerating CaseStatus = "generating"
	StatusReview     CaseStatus = "review"
	StatusDelivered  CaseStatus = "delivered"
	StatusFailed     CaseStatus = "failed"
)

func (s CaseStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusComplete, StatusGenerating, StatusReview, StatusDelivered, StatusFailed:
		return true
	}
	return false
}

// InputType identifies the widget a question renders as.
type InputType string

const (
	InputSelect      InputType = "select"
	InputYesNo       InputType = "yes_no"
	InputMultiSelect InputType = "multi_select"
	InputCurrency    InputType = "currency"
	InputDate        InputType = "date"
	InputGroup       InputType = "group"
	InputUpload      InputType = "upload"
	InputInfo        InputType = "info"
	InputTextarea    InputType = "textarea"
	InputRadio       InputType = "radio"
)

func (i InputType) Valid() bool {
	switch i {
	case InputSelect, InputYesNo, InputMultiSelect, InputCurrency, InputDate,
		InputGroup, InputUpload, InputInfo, InputTextarea, InputRadio:
		return true
	}
	return false
}

// IssueSeverity classifies a compliance issue. Blocking issues gate document
// generation; advisory issues never gate anything.
type IssueSeverity string

const (
	SeverityBlocking IssueSeverity = "blocking"
	SeverityAdvisory IssueSeverity = "advisory"
)

func (s IssueSeverity) Valid() bool {
	switch s {
	case SeverityBlocking, SeverityAdvisory:
		return true
	}
	return false
}

// Route is the recommended legal route for an eviction case.
type Route string

const (
	RouteSection21       Route = "section_21"
	RouteSection8        Route = "section_8"
	RouteNoticeToLeave   Route = "notice_to_leave" // Scotland PRT
	RouteWalesSection173 Route = "rhw_section_173"
	RouteNoticeToQuit    Route = "notice_to_quit" // Northern Ireland
)

func (r Route) Valid() bool {
	switch r {
	case RouteSection21, RouteSection8, RouteNoticeToLeave, RouteWalesSection173, RouteNoticeToQuit:
		return true
	}
	return false
}

// ReviewStatus tracks the human review gate for premium products.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
	ReviewSkipped  ReviewStatus = "skipped"
	ReviewTimedOut ReviewStatus = "timed_out"
)

func (r ReviewStatus) Valid() bool {
	switch r {
	case ReviewPending, ReviewApproved, ReviewRejected, ReviewSkipped, ReviewTimedOut:
		return true
	}
	return false
}
