// Package domain contains core business entities and rules for premium
// quoting. It has no knowledge of HTTP, storage, or identity providers.
package domain

// BenefitOption is one of the four selectable coverage tiers.
type BenefitOption string

// The four benefit tiers offered by the fund.
const (
	BenefitOption1 BenefitOption = "option_1"
	BenefitOption2 BenefitOption = "option_2"
	BenefitOption3 BenefitOption = "option_3"
	BenefitOption4 BenefitOption = "option_4"
)

// BenefitOptions lists the valid tiers in display order.
var BenefitOptions = []BenefitOption{
	BenefitOption1,
	BenefitOption2,
	BenefitOption3,
	BenefitOption4,
}

// benefitLabels maps tiers to their human-readable display names.
var benefitLabels = map[BenefitOption]string{
	BenefitOption1: "Option I",
	BenefitOption2: "Option II",
	BenefitOption3: "Option III",
	BenefitOption4: "Option IV",
}

// Valid reports whether the option is one of the four enumerated tiers.
func (o BenefitOption) Valid() bool {
	_, ok := benefitLabels[o]
	return ok
}

// Label returns the display name for the tier (e.g. "Option II").
// Returns the raw value for unknown tiers.
func (o BenefitOption) Label() string {
	if label, ok := benefitLabels[o]; ok {
		return label
	}

	return string(o)
}

// FamilySize is the household composition category.
type FamilySize string

const (
	// FamilySizeM covers the principal member only.
	FamilySizeM FamilySize = "M"

	// FamilySizeMPlusOne covers the principal member plus spouse.
	FamilySizeMPlusOne FamilySize = "M+1"
)

// FamilySizes lists the valid family size categories.
var FamilySizes = []FamilySize{FamilySizeM, FamilySizeMPlusOne}

// Valid reports whether the family size is a known category.
func (f FamilySize) Valid() bool {
	return f == FamilySizeM || f == FamilySizeMPlusOne
}

// PaymentType is the payment cadence for a premium.
type PaymentType string

const (
	// PaymentTypeAnnual is a recurring yearly premium (active members).
	PaymentTypeAnnual PaymentType = "ANNUAL"

	// PaymentTypeLumpsum is a one-time premium (retirees).
	PaymentTypeLumpsum PaymentType = "LUMPSUM"
)

// Age and cadence boundaries for quoting.
const (
	// MinAge is the youngest quotable age, inclusive.
	MinAge = 18

	// MaxAge is the oldest quotable age, inclusive.
	MaxAge = 90

	// LumpsumMinAge is the first age quoted at the LUMPSUM cadence.
	// Ages below this are quoted ANNUAL.
	LumpsumMinAge = 61
)

// Currency is the fixed currency code for all premium amounts.
const Currency = "KES"

// HistoryLimit is the hard cap on records returned by a history listing.
// This is a cap, not a page size; there is no pagination cursor.
const HistoryLimit = 50

// disclaimers maps payment cadence to the member-facing disclaimer text.
var disclaimers = map[PaymentType]string{
	PaymentTypeLumpsum: "This is a LUMPSUM (one-time) premium payment applicable for retirees aged 61-90.",
	PaymentTypeAnnual:  "This is an ANNUAL premium payment applicable for active members aged 18-60.",
}

// Classify derives the payment cadence from age alone.
// Boundary: 60 is ANNUAL, 61 is LUMPSUM.
func Classify(age int) PaymentType {
	if age >= LumpsumMinAge {
		return PaymentTypeLumpsum
	}

	return PaymentTypeAnnual
}

// Disclaimer returns the member-facing disclaimer for a cadence.
func Disclaimer(pt PaymentType) string {
	return disclaimers[pt]
}

// RateRecord is one row of the externally managed rate table, keyed by
// exact (age, family size). It carries one premium amount per benefit tier.
type RateRecord struct {
	Age        int
	FamilySize FamilySize

	Option1 float64
	Option2 float64
	Option3 float64
	Option4 float64
}

// Amount returns the premium amount for the requested benefit tier.
func (r *RateRecord) Amount(option BenefitOption) float64 {
	switch option {
	case BenefitOption1:
		return r.Option1
	case BenefitOption2:
		return r.Option2
	case BenefitOption3:
		return r.Option3
	case BenefitOption4:
		return r.Option4
	default:
		return 0
	}
}
