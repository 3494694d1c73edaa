package flow

import (
	"fmt"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

func yesNo(id, prompt string, required bool) domain.Question {
	return domain.Question{
		ID:         id,
		Prompt:     prompt,
		InputType:  domain.InputYesNo,
		Validation: domain.Validation{Required: required},
	}
}

func dependsOn(q domain.Question, questionID string, values ...string) domain.Question {
	q.DependsOn = &domain.Dependency{QuestionID: questionID, Values: values}
	return q
}

func floatPtr(v float64) *float64 { return &v }

var rentGroup = domain.Question{
	ID:        "rent_details",
	Prompt:    "What rent is payable?",
	InputType: domain.InputGroup,
	Fields: []domain.Question{
		{
			ID:         "rent_amount",
			Prompt:     "Rent amount",
			InputType:  domain.InputCurrency,
			Validation: domain.Validation{Required: true, Min: floatPtr(1), Max: floatPtr(100000)},
		},
		{
			ID:        "rent_period",
			Prompt:    "How often is rent due?",
			InputType: domain.InputSelect,
			Options: []domain.Option{
				{Value: "weekly", Label: "Weekly"},
				{Value: "fortnightly", Label: "Every two weeks"},
				{Value: "monthly", Label: "Monthly"},
				{Value: "quarterly", Label: "Quarterly"},
				{Value: "yearly", Label: "Yearly"},
			},
			Validation: domain.Validation{Required: true},
		},
	},
}

var depositQuestions = []domain.Question{
	yesNo("deposit_taken", "Did you take a tenancy deposit?", true),
	dependsOn(domain.Question{
		ID:         "deposit_amount",
		Prompt:     "How much was the deposit?",
		Help:       "Deposits above five weeks' rent breach the Tenant Fees Act 2019.",
		InputType:  domain.InputCurrency,
		Validation: domain.Validation{Required: true, Min: floatPtr(0)},
	}, "deposit_taken", "yes"),
	dependsOn(yesNo("deposit_protected", "Is the deposit protected in a government-approved scheme?", true),
		"deposit_taken", "yes"),
	dependsOn(yesNo("prescribed_info_given", "Did you serve the scheme's prescribed information within 30 days?", true),
		"deposit_protected", "yes"),
}

// evictionEnglandWales is the eviction question sequence for England and
// Wales, where the Section 21 service prerequisites matter.
func evictionEnglandWales() []domain.Question {
	qs := []domain.Question{
		{
			ID:        "eviction_intro",
			Prompt:    "We'll ask about the tenancy, the deposit and why you need possession, then prepare the right notice.",
			InputType: domain.InputInfo,
		},
		{
			ID:        "tenancy_type",
			Prompt:    "What kind of tenancy is it?",
			InputType: domain.InputSelect,
			Options: []domain.Option{
				{Value: "ast", Label: "Assured shorthold tenancy (AST)"},
				{Value: "assured", Label: "Assured (non-shorthold) tenancy"},
				{Value: "other", Label: "Something else / not sure"},
			},
			Validation: domain.Validation{Required: true},
		},
		{
			ID:         "tenancy_start_date",
			Prompt:     "When did the tenancy start?",
			InputType:  domain.InputDate,
			Validation: domain.Validation{Required: true},
		},
		yesNo("fixed_term", "Is the tenancy still within a fixed term?", true),
		dependsOn(domain.Question{
			ID:         "fixed_term_end_date",
			Prompt:     "When does the fixed term end?",
			InputType:  domain.InputDate,
			Validation: domain.Validation{Required: true},
		}, "fixed_term", "yes"),
		rentGroup,
	}
	qs = append(qs, depositQuestions...)
	qs = append(qs,
		domain.Question{
			ID:        "eviction_reason",
			Prompt:    "Why do you need the property back?",
			Help:      "Pick everything that applies; it decides the route and grounds.",
			InputType: domain.InputMultiSelect,
			Options: []domain.Option{
				{Value: "arrears", Label: "Rent arrears"},
				{Value: "antisocial", Label: "Antisocial behaviour"},
				{Value: "breach", Label: "Breach of the tenancy agreement"},
				{Value: "no_fault", Label: "I just need the property back"},
			},
			Validation: domain.Validation{Required: true},
		},
		dependsOn(domain.Question{
			ID:         "arrears_months",
			Prompt:     "How many months of rent are unpaid?",
			InputType:  domain.InputCurrency,
			Validation: domain.Validation{Required: true, Min: floatPtr(0), Max: floatPtr(120)},
		}, "eviction_reason", "arrears"),
		dependsOn(domain.Question{
			ID:         "arrears_amount",
			Prompt:     "What is the total arrears balance?",
			InputType:  domain.InputCurrency,
			Validation: domain.Validation{Required: true, Min: floatPtr(0)},
		}, "eviction_reason", "arrears"),
		dependsOn(yesNo("asb_conviction", "Has the tenant been convicted of an offence related to the behaviour?", true),
			"eviction_reason", "antisocial"),
		dependsOn(domain.Question{
			ID:         "breach_description",
			Prompt:     "Describe the breach of the agreement",
			InputType:  domain.InputTextarea,
			Validation: domain.Validation{Required: true},
		}, "eviction_reason", "breach"),
		yesNo("epc_given", "Did the tenant receive an Energy Performance Certificate?", true),
		dependsOn(yesNo("epc_exempt", "Is the property exempt from needing an EPC?", true), "epc_given", "no"),
		dependsOn(domain.Question{
			ID:        "epc_rating",
			Prompt:    "What is the EPC rating?",
			InputType: domain.InputSelect,
			Options: []domain.Option{
				{Value: "A", Label: "A"}, {Value: "B", Label: "B"}, {Value: "C", Label: "C"},
				{Value: "D", Label: "D"}, {Value: "E", Label: "E"}, {Value: "F", Label: "F"},
				{Value: "G", Label: "G"},
			},
			Validation: domain.Validation{Required: true},
		}, "epc_given", "yes"),
		yesNo("has_gas_appliances", "Does the property have gas appliances?", true),
		dependsOn(yesNo("gas_safety_given", "Did the tenant receive a current gas safety certificate?", true),
			"has_gas_appliances", "yes"),
		yesNo("how_to_rent_given", "Did the tenant receive the 'How to Rent' guide?", true),
		yesNo("licence_required", "Does the property need an HMO or selective licence?", true),
		dependsOn(yesNo("property_licensed", "Is the licence in place?", true), "licence_required", "yes"),
		domain.Question{
			ID:         "notice_service_date",
			Prompt:     "When will you serve the notice?",
			Help:       "We calculate the earliest date the notice can expire.",
			InputType:  domain.InputDate,
			Validation: domain.Validation{Required: true},
		},
		domain.Question{
			ID:        "evidence_upload",
			Prompt:    "Upload supporting evidence (rent ledger, correspondence, certificates)",
			InputType: domain.InputUpload,
		},
	)
	return qs
}

// evictionScotland is the PRT Notice to Leave sequence.
func evictionScotland() []domain.Question {
	qs := []domain.Question{
		{
			ID:        "eviction_intro",
			Prompt:    "Scottish PRTs end by Notice to Leave. We'll collect the facts the tribunal expects.",
			InputType: domain.InputInfo,
		},
		{
			ID:         "tenancy_start_date",
			Prompt:     "When did the tenancy start?",
			InputType:  domain.InputDate,
			Validation: domain.Validation{Required: true},
		},
		rentGroup,
	}
	qs = append(qs, depositQuestions[0], depositQuestions[1])
	qs = append(qs,
		domain.Question{
			ID:        "eviction_reason",
			Prompt:    "Why do you need the property back?",
			InputType: domain.InputMultiSelect,
			Options: []domain.Option{
				{Value: "arrears", Label: "Rent arrears"},
				{Value: "antisocial", Label: "Antisocial behaviour"},
				{Value: "breach", Label: "Breach of the tenancy agreement"},
				{Value: "selling", Label: "I intend to sell the property"},
				{Value: "moving_in", Label: "I intend to live there"},
			},
			Validation: domain.Validation{Required: true},
		},
		dependsOn(domain.Question{
			ID:         "arrears_months",
			Prompt:     "How many consecutive months has the tenant been in arrears?",
			InputType:  domain.InputCurrency,
			Validation: domain.Validation{Required: true, Min: floatPtr(0), Max: floatPtr(120)},
		}, "eviction_reason", "arrears"),
		dependsOn(yesNo("landlord_selling", "Will the property be marketed within three months of the tenant leaving?", true),
			"eviction_reason", "selling"),
		domain.Question{
			ID:         "notice_service_date",
			Prompt:     "When will you serve the Notice to Leave?",
			InputType:  domain.InputDate,
			Validation: domain.Validation{Required: true},
		},
		domain.Question{
			ID:        "evidence_upload",
			Prompt:    "Upload supporting evidence",
			InputType: domain.InputUpload,
		},
	)
	return qs
}

// moneyClaim collects what an N1-style rent arrears claim needs.
func moneyClaim() []domain.Question {
	return []domain.Question{
		{
			ID:        "claim_intro",
			Prompt:    "We'll prepare a county court money claim for unpaid rent.",
			InputType: domain.InputInfo,
		},
		{
			ID:        "parties",
			Prompt:    "Who are the parties?",
			InputType: domain.InputGroup,
			Fields: []domain.Question{
				{ID: "landlord_name", Prompt: "Your full name", InputType: domain.InputTextarea,
					Validation: domain.Validation{Required: true}},
				{ID: "tenant_name", Prompt: "Tenant's full name", InputType: domain.InputTextarea,
					Validation: domain.Validation{Required: true}},
			},
		},
		rentGroup,
		{
			ID:         "arrears_from_date",
			Prompt:     "When did the arrears begin?",
			InputType:  domain.InputDate,
			Validation: domain.Validation{Required: true},
		},
		{
			ID:         "claim_amount",
			Prompt:     "Total amount claimed",
			Help:       "Claims up to £10,000 stay on the small claims track.",
			InputType:  domain.InputCurrency,
			Validation: domain.Validation{Required: true, Min: floatPtr(1), Max: floatPtr(100000)},
		},
		yesNo("claim_interest", "Claim statutory 8% interest?", true),
		{
			ID:        "evidence_upload",
			Prompt:    "Upload the rent ledger and any demand letters",
			InputType: domain.InputUpload,
		},
	}
}

// tenancyAgreement collects what an AST (or PRT) agreement needs.
func tenancyAgreement(jurisdiction domain.Jurisdiction) []domain.Question {
	agreementName := "assured shorthold tenancy agreement"
	if jurisdiction == domain.JurisdictionScotland {
		agreementName = "private residential tenancy agreement"
	}
	return []domain.Question{
		{
			ID:        "agreement_intro",
			Prompt:    fmt.Sprintf("We'll draft a %s from your answers.", agreementName),
			InputType: domain.InputInfo,
		},
		{
			ID:         "property_address",
			Prompt:     "Property address",
			InputType:  domain.InputTextarea,
			Validation: domain.Validation{Required: true},
		},
		{
			ID:        "parties",
			Prompt:    "Who are the parties?",
			InputType: domain.InputGroup,
			Fields: []domain.Question{
				{ID: "landlord_name", Prompt: "Landlord's full name", InputType: domain.InputTextarea,
					Validation: domain.Validation{Required: true}},
				{ID: "tenant_name", Prompt: "Tenant's full name", InputType: domain.InputTextarea,
					Validation: domain.Validation{Required: true}},
			},
		},
		{
			ID:         "tenancy_start_date",
			Prompt:     "When does the tenancy start?",
			InputType:  domain.InputDate,
			Validation: domain.Validation{Required: true},
		},
		yesNo("fixed_term", "Is there a fixed term?", true),
		dependsOn(domain.Question{
			ID:         "term_months",
			Prompt:     "Fixed term length in months",
			InputType:  domain.InputCurrency,
			Validation: domain.Validation{Required: true, Min: floatPtr(1), Max: floatPtr(60)},
		}, "fixed_term", "yes"),
		rentGroup,
		depositQuestions[0],
		depositQuestions[1],
		yesNo("pets_allowed", "Are pets allowed?", true),
		yesNo("break_clause", "Include a six-month break clause?", true),
	}
}

// ForCase returns the master question set for a case. The sequence is fixed
// per (case type, jurisdiction); visibility still depends on collected facts.
func ForCase(caseType domain.CaseType, jurisdiction domain.Jurisdiction) (*Set, error) {
	if !jurisdiction.Valid() {
		return nil, fmt.Errorf("flow: unknown jurisdiction %q", jurisdiction)
	}
	switch caseType {
	case domain.CaseEviction:
		switch jurisdiction {
		case domain.JurisdictionScotland:
			return NewSet(evictionScotland())
		default:
			// Northern Ireland reuses the England sequence minus the
			// Section 21 service questions, which its rules demote anyway.
			return NewSet(evictionEnglandWales())
		}
	case domain.CaseMoneyClaim:
		return NewSet(moneyClaim())
	case domain.CaseTenancyAgreement:
		return NewSet(tenancyAgreement(jurisdiction))
	}
	return nil, fmt.Errorf("flow: unknown case type %q", caseType)
}
