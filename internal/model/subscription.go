package model

import (
	"fmt"
	"time"
)

// Subscription tracks the billing state of an organization owner's plan.
type Subscription struct {
	ID                     string     `db:"id"`
	UserID                 string     `db:"user_id"`
	PlanID                 string     `db:"plan_id"`
	Status                 string     `db:"status"`
	Provider               string     `db:"provider"`
	ProviderCustomerID     *string    `db:"provider_customer_id"`
	ProviderSubscriptionID *string    `db:"provider_subscription_id"`
	CurrentPeriodEnd       *time.Time `db:"current_period_end"`
	Amount                 *int       `db:"amount"`
	Currency               string     `db:"currency"`
	Interval               *string    `db:"interval"`
	CreatedAt              time.Time  `db:"created_at"`
	UpdatedAt              time.Time  `db:"updated_at"`
}

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

const (
	ProviderStripe = "stripe"
)

const (
	SubscriptionPlanFree       = "free"
	SubscriptionPlanPro        = "pro"
	SubscriptionPlanEnterprise = "enterprise"
)

const (
	SubscriptionIntervalMonthly = "monthly"
	SubscriptionIntervalYearly  = "yearly"
)

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}

func (s *Subscription) IsPaid() bool {
	return s.PlanID != SubscriptionPlanFree && s.IsActive()
}

func (s *Subscription) FormatPrice() string {
	if s.Amount == nil || *s.Amount == 0 {
		return ""
	}

	currencySymbols := map[string]string{
		"usd": "$",
		"eur": "€",
		"gbp": "£",
	}

	amount := float64(*s.Amount) / 100.0
	symbol := currencySymbols[s.Currency]
	if symbol == "" {
		symbol = "$"
	}

	interval := "month"
	if s.Interval != nil && *s.Interval == SubscriptionIntervalYearly {
		interval = "year"
	}

	return fmt.Sprintf("%s%.0f/%s", symbol, amount, interval)
}

// FreeTierStorageBytes is the vault quota for the free plan and for owners
// with no subscription record.
const FreeTierStorageBytes = 1 << 30

// StorageLimitBytes returns the vault storage quota for the plan.
// Returns -1 for unlimited.
func (s *Subscription) StorageLimitBytes() int64 {
	if !s.IsActive() {
		return FreeTierStorageBytes
	}

	switch s.PlanID {
	case SubscriptionPlanFree:
		return FreeTierStorageBytes
	case SubscriptionPlanPro:
		return 100 << 30
	case SubscriptionPlanEnterprise:
		return -1
	default:
		return FreeTierStorageBytes
	}
}
