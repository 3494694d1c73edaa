package rules

import (
	"fmt"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

// englandGrounds are the Schedule 2 Housing Act 1988 grounds the product
// supports. Notice periods are the statutory minimums.
var englandGrounds = []domain.GroundInfo{
	{Code: "1", Title: "Landlord requires the property as their home", Mandatory: true, NoticePeriodMonths: 2,
		Description: "The landlord previously lived in the property or now requires it as their or their spouse's principal home."},
	{Code: "7", Title: "Death of the tenant", Mandatory: true, NoticePeriodMonths: 2,
		Description: "The tenancy passed on the former tenant's death and proceedings begin within 12 months."},
	{Code: "7A", Title: "Serious antisocial behaviour (absolute)", Mandatory: true, NoticePeriodDays: 28,
		Description: "The tenant has been convicted of a serious offence or breached an IPNA/criminal behaviour order at the property."},
	{Code: "8", Title: "Serious rent arrears", Mandatory: true, NoticePeriodDays: 14,
		Description: "At least two months' (or eight weeks') rent is unpaid both when notice is served and at the hearing."},
	{Code: "10", Title: "Some rent arrears", Mandatory: false, NoticePeriodDays: 14,
		Description: "Some rent is lawfully due when notice is served and when proceedings begin."},
	{Code: "11", Title: "Persistent delay in paying rent", Mandatory: false, NoticePeriodDays: 14,
		Description: "The tenant has persistently delayed paying rent, whether or not arrears exist now."},
	{Code: "12", Title: "Breach of tenancy obligation", Mandatory: false, NoticePeriodDays: 14,
		Description: "Any obligation of the tenancy other than rent payment has been broken."},
	{Code: "13", Title: "Deterioration of the property", Mandatory: false, NoticePeriodDays: 14,
		Description: "The condition of the property has deteriorated because of the tenant's neglect or default."},
	{Code: "14", Title: "Nuisance or annoyance", Mandatory: false, NoticePeriodDays: 0,
		Description: "The tenant or a visitor is guilty of conduct causing or likely to cause a nuisance; proceedings may begin immediately."},
	{Code: "17", Title: "Tenancy obtained by false statement", Mandatory: false, NoticePeriodDays: 14,
		Description: "The landlord was induced to grant the tenancy by a false statement made knowingly or recklessly."},
}

// scotlandGrounds are the Private Housing (Tenancies) (Scotland) Act 2016
// eviction grounds the product supports; all are discretionary since the
// Coronavirus (Recovery and Reform) Act 2022.
var scotlandGrounds = []domain.GroundInfo{
	{Code: "scot_1", Title: "Landlord intends to sell", Mandatory: false, NoticePeriodDays: 84,
		Description: "The landlord intends to sell the let property within three months of the tenant leaving."},
	{Code: "scot_4", Title: "Landlord intends to live in the property", Mandatory: false, NoticePeriodDays: 84,
		Description: "The landlord intends the property to be their only or principal home."},
	{Code: "scot_11", Title: "Breach of tenancy agreement", Mandatory: false, NoticePeriodDays: 28,
		Description: "The tenant has failed to comply with a term of the tenancy."},
	{Code: "scot_12", Title: "Rent arrears over three months", Mandatory: false, NoticePeriodDays: 28,
		Description: "The tenant has been in arrears for three or more consecutive months."},
	{Code: "scot_14", Title: "Antisocial behaviour", Mandatory: false, NoticePeriodDays: 28,
		Description: "The tenant has engaged in relevant antisocial behaviour."},
}

// northernIrelandGrounds: the NI private tenancy regime works on notice to
// quit lengths rather than enumerated grounds; exposed for parity.
var northernIrelandGrounds = []domain.GroundInfo{
	{Code: "ni_ntq", Title: "Notice to quit", Mandatory: false, NoticePeriodDays: 28,
		Description: "Notice length depends on the length of the tenancy: 4 weeks under 1 year, 8 weeks from 1 to 10 years, 12 weeks over 10 years."},
}

// GroundsFor returns the ground metadata for a jurisdiction.
// Wales shares the Housing Act 1988 grounds for pre-2022 tenancies.
func GroundsFor(jurisdiction domain.Jurisdiction) ([]domain.GroundInfo, error) {
	switch jurisdiction {
	case domain.JurisdictionEngland, domain.JurisdictionWales:
		return englandGrounds, nil
	case domain.JurisdictionScotland:
		return scotlandGrounds, nil
	case domain.JurisdictionNorthernIreland:
		return northernIrelandGrounds, nil
	}
	return nil, fmt.Errorf("unknown jurisdiction: %q", jurisdiction)
}

// GroundByCode looks up one ground within a jurisdiction.
func GroundByCode(jurisdiction domain.Jurisdiction, code string) (domain.GroundInfo, error) {
	grounds, err := GroundsFor(jurisdiction)
	if err != nil {
		return domain.GroundInfo{}, err
	}
	for _, g := range grounds {
		if g.Code == code {
			return g, nil
		}
	}
	return domain.GroundInfo{}, fmt.Errorf("unknown ground %q for %s", code, jurisdiction)
}

// RecommendGrounds scores the possession grounds supported by the collected
// facts. The client renders the output verbatim; nothing here blocks the flow.
func RecommendGrounds(facts domain.Facts, jurisdiction domain.Jurisdiction) []domain.GroundRecommendation {
	arrearsMonths := floatFact(facts, "arrears_months", 0)
	reasons := stringsFact(facts, "eviction_reason")
	hasReason := func(r string) bool {
		for _, v := range reasons {
			if v == r {
				return true
			}
		}
		return false
	}

	if jurisdiction == domain.JurisdictionScotland {
		return recommendScottishGrounds(facts, arrearsMonths, hasReason)
	}

	var recs []domain.GroundRecommendation
	add := func(code string, recommended bool, reasoning string, probability float64) {
		g, err := GroundByCode(jurisdiction, code)
		if err != nil {
			return
		}
		recs = append(recs, domain.GroundRecommendation{
			Ground:             g,
			Recommended:        recommended,
			Reasoning:          reasoning,
			SuccessProbability: probability,
		})
	}

	if arrearsMonths >= 2 {
		add("8", true,
			fmt.Sprintf("%.0f months of arrears meets the Ground 8 threshold; the court must order possession if arrears persist at the hearing", arrearsMonths),
			0.9)
		add("10", true, "Pleaded alongside Ground 8 so possession survives a part-payment before the hearing", 0.6)
		add("11", true, "Persistent delay supports the arrears picture even if the balance is cleared", 0.55)
	} else if arrearsMonths > 0 || hasReason("arrears") {
		add("10", true, "Arrears are below the Ground 8 threshold; Grounds 10 and 11 are discretionary", 0.5)
		add("11", true, "Persistent late payment can be evidenced from the rent ledger", 0.45)
	}

	if hasReason("antisocial") {
		add("14", true, "Nuisance conduct allows proceedings to begin immediately after service", 0.5)
		if boolFact(facts, "asb_conviction", false) {
			add("7A", true, "A qualifying conviction makes Ground 7A absolute", 0.85)
		}
	}
	if hasReason("breach") {
		add("12", true, "Breach of a non-rent obligation; discretionary, so evidence quality decides it", 0.45)
	}
	return recs
}

func recommendScottishGrounds(facts domain.Facts, arrearsMonths float64, hasReason func(string) bool) []domain.GroundRecommendation {
	var recs []domain.GroundRecommendation
	add := func(code string, reasoning string, probability float64) {
		g, err := GroundByCode(domain.JurisdictionScotland, code)
		if err != nil {
			return
		}
		recs = append(recs, domain.GroundRecommendation{
			Ground:             g,
			Recommended:        true,
			Reasoning:          reasoning,
			SuccessProbability: probability,
		})
	}

	if arrearsMonths >= 3 {
		add("scot_12", "Three consecutive months of arrears engages the arrears ground; the tribunal considers reasonableness", 0.75)
	}
	if hasReason("antisocial") {
		add("scot_14", "Relevant antisocial behaviour within the last 12 months", 0.5)
	}
	if hasReason("breach") {
		add("scot_11", "Breach of a tenancy term other than rent", 0.45)
	}
	if boolFact(facts, "landlord_selling", false) {
		add("scot_1", "Intention to sell within three months of recovering possession", 0.7)
	}
	return recs
}
