package ctxkeys

import (
	"context"

	"github.com/ownitpro/omgsystems/internal/config"
	"github.com/ownitpro/omgsystems/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	PortalSessionKey contextKey = "portal_session"
	ConfigKey        contextKey = "config"
)

func PortalSession(ctx context.Context) *model.PortalSession {
	session, _ := ctx.Value(PortalSessionKey).(*model.PortalSession)
	return session
}

func WithPortalSession(ctx context.Context, session *model.PortalSession) context.Context {
	return context.WithValue(ctx, PortalSessionKey, session)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}
