package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// QuoteRequest is a validated premium calculation request.
type QuoteRequest struct {
	Age           int
	BenefitOption BenefitOption
	FamilySize    FamilySize
}

// ParseQuoteRequest validates an untyped request payload in a fixed order,
// so each failure surfaces its own specific error. The order is significant
// because later checks assume earlier ones passed:
//
//  1. payload must be a structured object
//  2. age present, then integer, then within [MinAge, MaxAge]
//  3. benefit_option present, then one of the four tiers
//  4. family_size present, then one of M, M+1
//
// The payload is expected to come from a JSON decoder with UseNumber set,
// so numeric values arrive as json.Number.
func ParseQuoteRequest(payload any) (*QuoteRequest, error) {
	fields, ok := payload.(map[string]any)
	if !ok || fields == nil {
		return nil, ErrInvalidRequest
	}

	age, err := parseAge(fields["age"])
	if err != nil {
		return nil, err
	}

	option, err := parseBenefitOption(fields["benefit_option"])
	if err != nil {
		return nil, err
	}

	familySize, err := parseFamilySize(fields["family_size"])
	if err != nil {
		return nil, err
	}

	return &QuoteRequest{
		Age:           age,
		BenefitOption: option,
		FamilySize:    familySize,
	}, nil
}

func parseAge(value any) (int, error) {
	if value == nil {
		return 0, NewMissingFieldError("age", "Age")
	}

	num, ok := value.(json.Number)
	if !ok {
		return 0, NewInvalidAgeError("Age must be an integer")
	}

	age64, err := num.Int64()
	if err != nil {
		// Integral floats like 35.0 count as integers; 35.5 does not.
		f, ferr := num.Float64()
		if ferr != nil || f != math.Trunc(f) {
			return 0, NewInvalidAgeError("Age must be an integer")
		}

		age64 = int64(f)
	}

	age := int(age64)
	if age < MinAge || age > MaxAge {
		return 0, NewInvalidAgeError(fmt.Sprintf("Age must be between %d and %d", MinAge, MaxAge))
	}

	return age, nil
}

func parseBenefitOption(value any) (BenefitOption, error) {
	s, present := enumValue(value)
	if !present {
		return "", NewMissingFieldError("benefit_option", "Benefit option")
	}

	option := BenefitOption(s)
	if !option.Valid() {
		return "", NewInvalidBenefitOptionError()
	}

	return option, nil
}

func parseFamilySize(value any) (FamilySize, error) {
	s, present := enumValue(value)
	if !present {
		return "", NewMissingFieldError("family_size", "Family size")
	}

	familySize := FamilySize(s)
	if !familySize.Valid() {
		return "", NewInvalidFamilySizeError()
	}

	return familySize, nil
}

// enumValue normalizes a present enum field to string form. present is
// false only for absent or JSON-falsy values (null, empty string, false,
// zero), which are reported as missing; any other value, string or not,
// reaches the membership check and is reported as invalid.
func enumValue(value any) (s string, present bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case bool:
		if !v {
			return "", false
		}

		return "true", true
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			return "", false
		}

		return v.String(), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// Quote is the result of a premium calculation. It is embedded in the
// response and denormalized into a HistoryRecord; it is never stored as
// its own entity.
type Quote struct {
	Age           int
	FamilySize    FamilySize
	BenefitOption BenefitOption
	BenefitLabel  string
	PremiumAmount float64
	PaymentType   PaymentType
	Currency      string
	Disclaimer    string
}

// NewQuote composes a quote from a validated request and its rate row.
func NewQuote(req *QuoteRequest, rate *RateRecord) *Quote {
	paymentType := Classify(req.Age)

	return &Quote{
		Age:           req.Age,
		FamilySize:    req.FamilySize,
		BenefitOption: req.BenefitOption,
		BenefitLabel:  req.BenefitOption.Label(),
		PremiumAmount: rate.Amount(req.BenefitOption),
		PaymentType:   paymentType,
		Currency:      Currency,
		Disclaimer:    Disclaimer(paymentType),
	}
}

// HistoryRecord is an append-only log entry for a past quote. OwnerID is
// nil for anonymous quotes. Records are created exactly once at quote time
// and never mutated or deleted by this system.
type HistoryRecord struct {
	ID            string
	OwnerID       *string
	Age           int
	BenefitOption BenefitOption
	FamilySize    FamilySize
	PremiumAmount float64
	PaymentType   PaymentType
	BenefitLabel  string
	CreatedAt     time.Time
}

// NewHistoryRecord denormalizes a quote into a history entry. ownerID may
// be empty, in which case the record is anonymous.
func NewHistoryRecord(quote *Quote, ownerID string) *HistoryRecord {
	record := &HistoryRecord{
		Age:           quote.Age,
		BenefitOption: quote.BenefitOption,
		FamilySize:    quote.FamilySize,
		PremiumAmount: quote.PremiumAmount,
		PaymentType:   quote.PaymentType,
		BenefitLabel:  quote.BenefitLabel,
	}

	if ownerID != "" {
		record.OwnerID = &ownerID
	}

	return record
}

// Identity is a resolved principal from the identity provider.
type Identity struct {
	ID    string
	Email string
}
