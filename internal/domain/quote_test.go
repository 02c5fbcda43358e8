package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodePayload mimics the HTTP adapter: JSON decoded with UseNumber.
func decodePayload(t *testing.T, body string) any {
	t.Helper()

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var payload any
	require.NoError(t, dec.Decode(&payload))

	return payload
}

func TestParseQuoteRequest_Valid(t *testing.T) {
	payload := decodePayload(t, `{"age": 35, "benefit_option": "option_2", "family_size": "M"}`)

	req, err := ParseQuoteRequest(payload)
	require.NoError(t, err)

	assert.Equal(t, 35, req.Age)
	assert.Equal(t, BenefitOption2, req.BenefitOption)
	assert.Equal(t, FamilySizeM, req.FamilySize)
}

func TestParseQuoteRequest_NotAnObject(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"array", `[1, 2, 3]`},
		{"string", `"hello"`},
		{"number", `42`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuoteRequest(decodePayload(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestParseQuoteRequest_AgeValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"missing", `{"benefit_option": "option_1", "family_size": "M"}`, ErrMissingField},
		{"null", `{"age": null, "benefit_option": "option_1", "family_size": "M"}`, ErrMissingField},
		{"string", `{"age": "35", "benefit_option": "option_1", "family_size": "M"}`, ErrInvalidAge},
		{"bool", `{"age": true, "benefit_option": "option_1", "family_size": "M"}`, ErrInvalidAge},
		{"fractional", `{"age": 35.5, "benefit_option": "option_1", "family_size": "M"}`, ErrInvalidAge},
		{"fractional in range", `{"age": 60.5, "benefit_option": "option_1", "family_size": "M"}`, ErrInvalidAge},
		{"below minimum", `{"age": 17, "benefit_option": "option_1", "family_size": "M"}`, ErrInvalidAge},
		{"above maximum", `{"age": 91, "benefit_option": "option_1", "family_size": "M"}`, ErrInvalidAge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuoteRequest(decodePayload(t, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseQuoteRequest_BoundaryAges(t *testing.T) {
	for _, age := range []string{"18", "90"} {
		req, err := ParseQuoteRequest(decodePayload(t,
			`{"age": `+age+`, "benefit_option": "option_1", "family_size": "M"}`))
		require.NoError(t, err, "age %s", age)
		require.NotNil(t, req)
	}
}

// An integral float age counts as an integer, matching the rate table's
// integer keys without penalizing clients that serialize 35 as 35.0.
func TestParseQuoteRequest_IntegralFloatAge(t *testing.T) {
	req, err := ParseQuoteRequest(decodePayload(t,
		`{"age": 35.0, "benefit_option": "option_1", "family_size": "M"}`))
	require.NoError(t, err)
	assert.Equal(t, 35, req.Age)
}

func TestParseQuoteRequest_BenefitOptionValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"missing", `{"age": 35, "family_size": "M"}`, ErrMissingField},
		{"empty", `{"age": 35, "benefit_option": "", "family_size": "M"}`, ErrMissingField},
		{"unknown", `{"age": 35, "benefit_option": "option_5", "family_size": "M"}`, ErrInvalidBenefitOption},
		{"number", `{"age": 35, "benefit_option": 5, "family_size": "M"}`, ErrInvalidBenefitOption},
		{"bool", `{"age": 35, "benefit_option": true, "family_size": "M"}`, ErrInvalidBenefitOption},
		{"array", `{"age": 35, "benefit_option": ["option_1"], "family_size": "M"}`, ErrInvalidBenefitOption},
		{"null", `{"age": 35, "benefit_option": null, "family_size": "M"}`, ErrMissingField},
		{"zero", `{"age": 35, "benefit_option": 0, "family_size": "M"}`, ErrMissingField},
		{"false", `{"age": 35, "benefit_option": false, "family_size": "M"}`, ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuoteRequest(decodePayload(t, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseQuoteRequest_FamilySizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"missing", `{"age": 35, "benefit_option": "option_1"}`, ErrMissingField},
		{"empty", `{"age": 35, "benefit_option": "option_1", "family_size": ""}`, ErrMissingField},
		{"unknown", `{"age": 35, "benefit_option": "option_1", "family_size": "M+2"}`, ErrInvalidFamilySize},
		{"number", `{"age": 35, "benefit_option": "option_1", "family_size": 5}`, ErrInvalidFamilySize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuoteRequest(decodePayload(t, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// Validation is ordered: an age fault is reported before benefit_option and
// family_size faults, and benefit_option before family_size.
func TestParseQuoteRequest_ValidationOrder(t *testing.T) {
	payload := decodePayload(t, `{}`)
	_, err := ParseQuoteRequest(payload)
	require.Error(t, err)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "age", missing.Field)

	payload = decodePayload(t, `{"age": 35}`)
	_, err = ParseQuoteRequest(payload)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "benefit_option", missing.Field)

	payload = decodePayload(t, `{"age": 35, "benefit_option": "option_1"}`)
	_, err = ParseQuoteRequest(payload)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "family_size", missing.Field)
}

func TestNewQuote(t *testing.T) {
	rate := &RateRecord{
		Age:        65,
		FamilySize: FamilySizeM,
		Option1:    80000,
		Option2:    120000,
	}

	req := &QuoteRequest{Age: 65, BenefitOption: BenefitOption1, FamilySize: FamilySizeM}
	quote := NewQuote(req, rate)

	assert.Equal(t, 65, quote.Age)
	assert.Equal(t, "Option I", quote.BenefitLabel)
	assert.InDelta(t, 80000, quote.PremiumAmount, 0)
	assert.Equal(t, PaymentTypeLumpsum, quote.PaymentType)
	assert.Equal(t, "KES", quote.Currency)
	assert.Contains(t, quote.Disclaimer, "LUMPSUM")
}

func TestNewHistoryRecord(t *testing.T) {
	quote := &Quote{
		Age:           42,
		FamilySize:    FamilySizeMPlusOne,
		BenefitOption: BenefitOption3,
		BenefitLabel:  "Option III",
		PremiumAmount: 210000,
		PaymentType:   PaymentTypeAnnual,
	}

	t.Run("owned", func(t *testing.T) {
		record := NewHistoryRecord(quote, "user-123")
		require.NotNil(t, record.OwnerID)
		assert.Equal(t, "user-123", *record.OwnerID)
		assert.Equal(t, quote.Age, record.Age)
		assert.Equal(t, quote.BenefitOption, record.BenefitOption)
		assert.InDelta(t, quote.PremiumAmount, record.PremiumAmount, 0)
	})

	t.Run("anonymous", func(t *testing.T) {
		record := NewHistoryRecord(quote, "")
		assert.Nil(t, record.OwnerID)
	})
}

func TestDomainErrors_Taxonomy(t *testing.T) {
	assert.True(t, IsValidation(NewMissingFieldError("age", "Age")))
	assert.True(t, IsValidation(NewInvalidAgeError("Age must be an integer")))
	assert.True(t, IsValidation(NewInvalidBenefitOptionError()))
	assert.True(t, IsValidation(NewInvalidFamilySizeError()))
	assert.True(t, IsValidation(ErrInvalidRequest))

	assert.True(t, IsRateNotFound(NewRateNotFoundError(40, FamilySizeMPlusOne)))
	assert.False(t, IsStore(NewRateNotFoundError(40, FamilySizeMPlusOne)))

	cause := assert.AnError
	storeErr := NewStoreError("rate lookup", cause)
	assert.True(t, IsStore(storeErr))
	assert.ErrorIs(t, storeErr, cause)

	assert.True(t, IsUnauthorized(NewUnauthorizedError("token expired")))
}
