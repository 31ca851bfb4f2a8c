package bundle

import (
	"context"
	"time"

	"bundle-manager/core/discount"
	"bundle-manager/core/graphql"
	"bundle-manager/core/logger"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const saveFailedMessage = "Failed to save configuration"

// ClientFactory resolves an Admin API client for a shop.
type ClientFactory interface {
	ForShop(ctx context.Context, shop string) (graphql.Client, error)
}

// Service orchestrates configuration storage and discount reconciliation.
type Service struct {
	clients ClientFactory
	archive *Archive
	logger  *zap.Logger
	opts    []discount.Option
	now     func() time.Time
}

// NewService creates a new bundle service. archive may be nil.
func NewService(clients ClientFactory, archive *Archive, logger *zap.Logger, opts ...discount.Option) *Service {
	return &Service{
		clients: clients,
		archive: archive,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
	}
}

// shopContext is the per-call wiring for one shop.
type shopContext struct {
	shop       string
	store      *Store
	reconciler *discount.Reconciler
	logger     *zap.Logger
}

func (s *Service) open(ctx context.Context, shop string, surface Surface) (*shopContext, error) {
	shop = s.resolveShop(shop)
	client, err := s.clients.ForShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	l := logger.WithShop(s.logger, shop, surface.Name)
	return &shopContext{
		shop:       shop,
		store:      NewStore(client),
		reconciler: discount.New(client, l, s.opts...),
		logger:     l,
	}, nil
}

// Load returns the surface configuration with refreshed product details,
// or the defaults when nothing is stored.
func (s *Service) Load(ctx context.Context, shop string, surface Surface) (*Config, error) {
	sess, err := s.open(ctx, shop, surface)
	if err != nil {
		return nil, err
	}

	cfg, err := sess.store.Get(ctx, surface.MetafieldKey)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return DefaultConfig(), nil
	}
	if err := sess.store.RefreshProducts(ctx, cfg); err != nil {
		sess.logger.Warn("Product refresh failed, serving stored details", zap.Error(err))
	}
	return cfg, nil
}

// Save stores the configuration and converges the surface's discounts onto it.
// Discounts are only touched after the configuration write succeeded.
func (s *Service) Save(ctx context.Context, shop string, surface Surface, desired *Config) discount.Result {
	if err := desired.Validate(); err != nil {
		return discount.Failed(err.Error())
	}
	desired.normalize()

	sess, err := s.open(ctx, shop, surface)
	if err != nil {
		return discount.Failed(err.Error())
	}

	previous, err := sess.store.Get(ctx, surface.MetafieldKey)
	if err != nil {
		sess.logger.Error("Failed to read previous configuration", zap.Error(err))
		return discount.Failed(err.Error())
	}
	var previousTiers []discount.Tier
	if previous != nil {
		previousTiers = previous.Discounts
	}

	if err := sess.store.Set(ctx, surface.MetafieldKey, desired); err != nil {
		sess.logger.Error("Failed to save configuration", zap.Error(err))
		return discount.Failed(saveFailedMessage)
	}

	plan := sess.reconciler.Plan(previousTiers, desired.Discounts, surface.Prefix)
	out := s.apply(ctx, sess, surface, plan)
	return out.Result()
}

// Preview computes the plan a save would execute without writing anything.
func (s *Service) Preview(ctx context.Context, shop string, surface Surface, desired *Config) (*discount.Plan, error) {
	if err := desired.Validate(); err != nil {
		return nil, err
	}

	sess, err := s.open(ctx, shop, surface)
	if err != nil {
		return nil, err
	}
	previous, err := sess.store.Get(ctx, surface.MetafieldKey)
	if err != nil {
		return nil, err
	}
	var previousTiers []discount.Tier
	if previous != nil {
		previousTiers = previous.Discounts
	}

	plan := sess.reconciler.Plan(previousTiers, desired.Discounts, surface.Prefix)
	return &plan, nil
}

// PlanStored plans a re-application of the stored configuration onto itself.
// Such a plan never deletes and rewrites every stored tier, repairing remote drift.
func (s *Service) PlanStored(ctx context.Context, shop string, surface Surface) (*discount.Plan, error) {
	sess, err := s.open(ctx, shop, surface)
	if err != nil {
		return nil, err
	}
	stored, err := sess.store.Get(ctx, surface.MetafieldKey)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = EmptyConfig()
	}

	plan := sess.reconciler.Plan(stored.Discounts, stored.Discounts, surface.Prefix)
	return &plan, nil
}

// ApplyPlan executes a previously computed plan.
func (s *Service) ApplyPlan(ctx context.Context, shop string, surface Surface, plan discount.Plan) (*discount.Outcome, error) {
	if plan.Prefix != surface.Prefix {
		return nil, errors.Newf("plan prefix %q does not belong to surface %s", plan.Prefix, surface.Name)
	}
	sess, err := s.open(ctx, shop, surface)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, sess, surface, plan), nil
}

// Storefront returns the stored configuration for public consumption.
// Nothing stored yields an empty configuration rather than the defaults.
func (s *Service) Storefront(ctx context.Context, shop string, surface Surface) (*Config, error) {
	if shop == "" {
		return EmptyConfig(), nil
	}
	sess, err := s.open(ctx, shop, surface)
	if err != nil {
		return nil, err
	}
	cfg, err := sess.store.Get(ctx, surface.MetafieldKey)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return EmptyConfig(), nil
	}
	return cfg, nil
}

// Reports lists the archived reports of a surface.
func (s *Service) Reports(ctx context.Context, shop string, surface Surface) ([]ReportInfo, error) {
	if s.archive == nil {
		return []ReportInfo{}, nil
	}
	return s.archive.List(ctx, s.resolveShop(shop), surface.Name)
}

// Report loads one archived report.
func (s *Service) Report(ctx context.Context, shop string, surface Surface, ts int64) (*Report, error) {
	if s.archive == nil {
		return nil, ErrReportNotFound
	}
	return s.archive.Get(ctx, s.resolveShop(shop), surface.Name, ts)
}

// resolveShop falls back to the factory's default shop when it has one.
func (s *Service) resolveShop(shop string) string {
	if shop != "" {
		return shop
	}
	type defaulter interface {
		DefaultShop() string
	}
	if d, ok := s.clients.(defaulter); ok {
		return d.DefaultShop()
	}
	return shop
}

func (s *Service) apply(ctx context.Context, sess *shopContext, surface Surface, plan discount.Plan) *discount.Outcome {
	sess.logger.Info("Applying discount plan",
		zap.Strings("to_delete", plan.ToDelete),
		zap.Int("to_upsert", len(plan.ToUpsert)),
		zap.Int("changed", len(plan.Changed)))

	out := sess.reconciler.Apply(ctx, plan)
	if out.Success {
		sess.logger.Info("Discounts reconciled",
			zap.Int("created", out.Summary.Created),
			zap.Int("updated", out.Summary.Updated),
			zap.Int("deleted", out.Summary.Deleted))
	} else {
		sess.logger.Warn("Discounts reconciled with errors", zap.String("error", out.Error))
	}

	if s.archive != nil {
		if _, err := s.archive.Put(ctx, Report{
			Shop:      sess.shop,
			Surface:   surface.Name,
			CreatedAt: s.now().UTC(),
			Plan:      plan,
			Outcome:   out,
		}); err != nil {
			sess.logger.Warn("Failed to archive reconcile report", zap.Error(err))
		}
	}
	return out
}
