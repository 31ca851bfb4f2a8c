package session

import (
	"context"
	"net/http"

	"bundle-manager/core/graphql"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Finder looks up stored sessions.
type Finder interface {
	FindByShop(ctx context.Context, shop string) (*Session, error)
}

// ClientProvider builds a GraphQL client for a shop from its stored session.
// Clients are created per call and never shared across shops.
type ClientProvider struct {
	sessions   Finder
	cfg        graphql.Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClientProvider creates a new ClientProvider. sessions may be nil when only
// the static token from cfg is used. Every client it hands out shares one
// connection pool.
func NewClientProvider(sessions Finder, cfg graphql.Config, logger *zap.Logger) *ClientProvider {
	return &ClientProvider{
		sessions:   sessions,
		cfg:        cfg,
		httpClient: graphql.NewHTTPClient(cfg),
		logger:     logger,
	}
}

// DefaultShop returns the configured shop domain.
func (p *ClientProvider) DefaultShop() string {
	return p.cfg.Domain
}

// ForShop returns a client authenticated for shop.
// An empty shop falls back to the configured domain. A stored session wins over
// the configured static token.
func (p *ClientProvider) ForShop(ctx context.Context, shop string) (graphql.Client, error) {
	if shop == "" {
		shop = p.cfg.Domain
	}
	if shop == "" {
		return nil, errors.New("shop is required")
	}

	if p.sessions != nil {
		s, err := p.sessions.FindByShop(ctx, shop)
		switch {
		case err == nil:
			p.logger.Debug("Using stored session", zap.String("shop", s.Shop), zap.Uint("session_id", s.ID))
			return graphql.NewClient(p.httpClient, p.cfg, s.Shop, s.AccessToken)
		case !errors.Is(err, ErrNoSession):
			return nil, err
		}
	}

	if p.cfg.AccessToken != "" && shop == p.cfg.Domain {
		return graphql.NewClient(p.httpClient, p.cfg, shop, p.cfg.AccessToken)
	}
	return nil, ErrNoSession
}
