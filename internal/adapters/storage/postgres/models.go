package postgres

import (
	"time"

	"github.com/prmf/premium-api/internal/domain"
)

// premiumRate is the persistence model for one row of the rate table,
// keyed by (age, family_size).
type premiumRate struct {
	Age         int     `gorm:"primaryKey;not null"`
	FamilySize  string  `gorm:"primaryKey;size:8;not null"`
	PaymentType string  `gorm:"size:16;not null"`
	Option1     float64 `gorm:"not null"`
	Option2     float64 `gorm:"not null"`
	Option3     float64 `gorm:"not null"`
	Option4     float64 `gorm:"not null"`
}

func (premiumRate) TableName() string { return "premium_rates" }

func (r *premiumRate) toDomain() *domain.RateRecord {
	return &domain.RateRecord{
		Age:        r.Age,
		FamilySize: domain.FamilySize(r.FamilySize),
		Option1:    r.Option1,
		Option2:    r.Option2,
		Option3:    r.Option3,
		Option4:    r.Option4,
	}
}

func fromDomainRate(r domain.RateRecord) premiumRate {
	return premiumRate{
		Age:         r.Age,
		FamilySize:  string(r.FamilySize),
		PaymentType: string(domain.Classify(r.Age)),
		Option1:     r.Option1,
		Option2:     r.Option2,
		Option3:     r.Option3,
		Option4:     r.Option4,
	}
}

// quoteHistory is the persistence model for a saved quote. Quote fields
// are denormalized so history survives rate table reloads.
type quoteHistory struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	UserID        *string   `gorm:"type:uuid;index:idx_quote_history_user_id"`
	Age           int       `gorm:"not null"`
	BenefitOption string    `gorm:"size:16;not null"`
	FamilySize    string    `gorm:"size:8;not null"`
	PremiumAmount float64   `gorm:"not null"`
	PaymentType   string    `gorm:"size:16;not null"`
	BenefitName   string    `gorm:"size:32;not null"`
	CreatedAt     time.Time `gorm:"not null;index:idx_quote_history_created_at"`
}

func (quoteHistory) TableName() string { return "quote_history" }

func (q *quoteHistory) toDomain() domain.HistoryRecord {
	return domain.HistoryRecord{
		ID:            q.ID,
		OwnerID:       q.UserID,
		Age:           q.Age,
		BenefitOption: domain.BenefitOption(q.BenefitOption),
		FamilySize:    domain.FamilySize(q.FamilySize),
		PremiumAmount: q.PremiumAmount,
		PaymentType:   domain.PaymentType(q.PaymentType),
		BenefitLabel:  q.BenefitName,
		CreatedAt:     q.CreatedAt,
	}
}

func fromDomainHistory(r *domain.HistoryRecord) quoteHistory {
	return quoteHistory{
		ID:            r.ID,
		UserID:        r.OwnerID,
		Age:           r.Age,
		BenefitOption: string(r.BenefitOption),
		FamilySize:    string(r.FamilySize),
		PremiumAmount: r.PremiumAmount,
		PaymentType:   string(r.PaymentType),
		BenefitName:   r.BenefitLabel,
		CreatedAt:     r.CreatedAt,
	}
}
