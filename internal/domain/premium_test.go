package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		age  int
		want PaymentType
	}{
		{18, PaymentTypeAnnual},
		{35, PaymentTypeAnnual},
		{60, PaymentTypeAnnual},
		{61, PaymentTypeLumpsum},
		{75, PaymentTypeLumpsum},
		{90, PaymentTypeLumpsum},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.age), "age %d", tt.age)
	}
}

func TestClassify_AllQuotableAges(t *testing.T) {
	for age := MinAge; age <= 60; age++ {
		assert.Equal(t, PaymentTypeAnnual, Classify(age), "age %d", age)
	}

	for age := LumpsumMinAge; age <= MaxAge; age++ {
		assert.Equal(t, PaymentTypeLumpsum, Classify(age), "age %d", age)
	}
}

func TestBenefitOption_Label(t *testing.T) {
	tests := []struct {
		option BenefitOption
		want   string
	}{
		{BenefitOption1, "Option I"},
		{BenefitOption2, "Option II"},
		{BenefitOption3, "Option III"},
		{BenefitOption4, "Option IV"},
		{BenefitOption("option_9"), "option_9"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.option.Label())
	}
}

func TestBenefitOption_Valid(t *testing.T) {
	for _, option := range BenefitOptions {
		assert.True(t, option.Valid(), "option %s", option)
	}

	assert.False(t, BenefitOption("option_5").Valid())
	assert.False(t, BenefitOption("").Valid())
}

func TestFamilySize_Valid(t *testing.T) {
	assert.True(t, FamilySizeM.Valid())
	assert.True(t, FamilySizeMPlusOne.Valid())
	assert.False(t, FamilySize("M+2").Valid())
	assert.False(t, FamilySize("").Valid())
}

func TestDisclaimer_MatchesCadence(t *testing.T) {
	assert.Contains(t, Disclaimer(PaymentTypeAnnual), "ANNUAL")
	assert.Contains(t, Disclaimer(PaymentTypeLumpsum), "LUMPSUM")
}

func TestRateRecord_Amount(t *testing.T) {
	rate := &RateRecord{
		Age:        35,
		FamilySize: FamilySizeM,
		Option1:    100000,
		Option2:    150000,
		Option3:    200000,
		Option4:    250000,
	}

	assert.InDelta(t, 100000, rate.Amount(BenefitOption1), 0)
	assert.InDelta(t, 150000, rate.Amount(BenefitOption2), 0)
	assert.InDelta(t, 200000, rate.Amount(BenefitOption3), 0)
	assert.InDelta(t, 250000, rate.Amount(BenefitOption4), 0)
	assert.InDelta(t, 0, rate.Amount(BenefitOption("option_5")), 0)
}
