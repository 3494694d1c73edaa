package docgen

// Document templates. Plain text bodies; the delivery layer wraps them in
// the product's PDF shell. Field names follow the prescribed forms.

const section8NoticeTmpl = `NOTICE SEEKING POSSESSION OF A PROPERTY LET ON AN ASSURED TENANCY
Housing Act 1988, section 8 (Form 3)

To the tenant(s) of: {{.PropertyAddress}}

1. The landlord intends to apply to the court for an order requiring you
   to give up possession of the property.

2. Possession will be sought on the following ground(s) of Schedule 2 to
   the Housing Act 1988:
{{range .Grounds}}   Ground {{.Ground.Code}} — {{.Ground.Title}}
     {{.Ground.Description}}
{{end}}
3. Particulars of each ground:
   {{.Particulars}}

4. Court proceedings cannot begin earlier than: {{.ExpiryDate}}
   This notice was served on: {{.ServiceDate}}

Signed (landlord): {{.LandlordName}}
Date: {{.ServiceDate}}
`

const section21NoticeTmpl = `NOTICE REQUIRING POSSESSION OF A PROPERTY LET
ON AN ASSURED SHORTHOLD TENANCY
Housing Act 1988, section 21 (Form 6A)

To the tenant(s) of: {{.PropertyAddress}}

You are required to leave the property after: {{.ExpiryDate}}

If you do not leave, your landlord may apply to the court for an order
requiring you to give up possession. This notice is valid for six months
from the date it was given.

This notice was served on: {{.ServiceDate}}

Signed (landlord): {{.LandlordName}}
Date: {{.ServiceDate}}
`

const noticeToLeaveTmpl = `NOTICE TO LEAVE
Private Housing (Tenancies) (Scotland) Act 2016

To the tenant(s) of: {{.PropertyAddress}}

The landlord seeks possession under the following eviction ground(s):
{{range .Grounds}}   {{.Ground.Title}} — {{.Ground.Description}}
{{end}}
An application to the First-tier Tribunal will not be made before:
{{.ExpiryDate}}

This notice was served on: {{.ServiceDate}}

Signed (landlord): {{.LandlordName}}
`

const walesNoticeTmpl = `NOTICE UNDER SECTION 173
Renting Homes (Wales) Act 2016

To the contract-holder(s) of: {{.PropertyAddress}}

The landlord requires possession of the dwelling. You are required to
give up possession after: {{.ExpiryDate}}

This notice was served on: {{.ServiceDate}}
The notice period is {{.PeriodDays}} days.

Signed (landlord): {{.LandlordName}}
`

const noticeToQuitTmpl = `NOTICE TO QUIT
Private Tenancies (Northern Ireland) Order 2006 (as amended)

To the tenant(s) of: {{.PropertyAddress}}

You are required to quit and deliver up possession of the property
on or after: {{.ExpiryDate}}

The notice period of {{.PeriodDays}} days reflects the length of the
tenancy, which began on {{.TenancyStartDate}}.

This notice was served on: {{.ServiceDate}}

Signed (landlord): {{.LandlordName}}
`

const coverLetterTmpl = `{{.LandlordName}}

Dear {{.TenantName}},

Please find enclosed a formal notice relating to your tenancy at
{{.PropertyAddress}}.

The notice takes effect per the dates shown on its face. If you wish to
discuss the matter, contact me as soon as possible.

Yours sincerely,

{{.LandlordName}}
`

const serviceInstructionsTmpl = `HOW TO SERVE THIS NOTICE

1. Serve one copy on every tenant named on the tenancy agreement.
2. Preferred methods, in order of evidential strength:
   - Personal delivery, witnessed, with a signed receipt.
   - First-class post to the property, with a certificate of posting.
   - Delivery through the letterbox, witnessed and photographed.
3. Keep the certificate of posting or witness statement with your copy
   of the notice. Court proceedings will need proof of service.
4. Earliest date court or tribunal proceedings can begin: {{.ExpiryDate}}.
5. Do not change the notice after service. If any detail is wrong,
   serve a fresh notice.
`

const astAgreementTmpl = `ASSURED SHORTHOLD TENANCY AGREEMENT
Housing Act 1988

1. PARTIES
   Landlord: {{.LandlordName}}
   Tenant:   {{.TenantName}}

2. PROPERTY
   {{.PropertyAddress}}

3. TERM
   The tenancy begins on {{.TenancyStartDate}}{{if .TermMonths}} for a
   fixed term of {{.TermMonths}} months{{else}} as a contractual
   periodic tenancy{{end}}.

4. RENT
   £{{printf "%.2f" .RentAmount}} payable {{.RentPeriod}}, in advance.

5. DEPOSIT
   {{if .DepositAmount}}A deposit of £{{printf "%.2f" .DepositAmount}}
   will be protected in a government-approved scheme within 30 days, and
   the prescribed information served on the tenant.{{else}}No deposit is
   taken under this agreement.{{end}}

6. TENANT OBLIGATIONS
   The tenant agrees to pay the rent on time, keep the interior in good
   condition, use the property as a private residence only, and not to
   cause nuisance to neighbours.{{if not .PetsAllowed}} Pets are not
   permitted without the landlord's written consent.{{end}}

7. LANDLORD OBLIGATIONS
   The landlord agrees to keep the structure, exterior and installations
   for the supply of water, gas, electricity and heating in repair, per
   section 11 Landlord and Tenant Act 1985.
{{if .BreakClause}}
8. BREAK CLAUSE
   Either party may end the tenancy on or after the sixth month of the
   term by giving two months' written notice.
{{end}}
Signed (landlord): {{.LandlordName}}
Signed (tenant):   {{.TenantName}}
Date: {{.Today}}
`

const moneyClaimTmpl = `PARTICULARS OF CLAIM
In the County Court — claim for rent arrears

Claimant:  {{.LandlordName}}
Defendant: {{.TenantName}}

1. By a tenancy agreement the Claimant let the property at
   {{.PropertyAddress}} to the Defendant at a rent of
   £{{printf "%.2f" .RentAmount}} payable {{.RentPeriod}}.

2. The Defendant has failed to pay rent due under the agreement.
   Arrears began on {{.ArrearsFromDate}} and total
   £{{printf "%.2f" .ClaimAmount}} at the date of this claim.

3. The Claimant claims:
   (a) arrears of rent of £{{printf "%.2f" .ClaimAmount}};
{{if .ClaimInterest}}   (b) interest under section 69 of the County
       Courts Act 1984 at 8% per year from {{.ArrearsFromDate}} until
       judgment or sooner payment;
{{end}}   and costs.

Statement of truth: the facts stated in these particulars are true.

Signed: {{.LandlordName}}
Date: {{.Today}}
`
