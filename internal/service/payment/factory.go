package payment

import (
	"fmt"
	"log/slog"

	"github.com/ownitpro/omgsystems/internal/config"
	"github.com/ownitpro/omgsystems/internal/service"
)

// NewProvider creates the configured payment provider. Stripe is the only
// supported backend.
func NewProvider(cfg *config.Config, subscriptionService *service.SubscriptionService) (Provider, error) {
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required for billing")
	}
	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required for billing")
	}

	slog.Info("initializing payment provider", "provider", "stripe")
	return NewStripeProvider(cfg, subscriptionService), nil
}
