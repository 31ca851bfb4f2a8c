package integrity

import (
	"context"

	"bundle-manager/core/discount"
	"bundle-manager/feature/bundle"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Status is the health of one discount code.
type Status string

const (
	StatusOK           Status = "ok"
	StatusMissing      Status = "missing"
	StatusIncompatible Status = "incompatible"
	StatusError        Status = "error"
)

// CodeCheck is the result for one code a stored tier owns.
type CodeCheck struct {
	Code   string        `json:"code"`
	Tier   discount.Tier `json:"tier"`
	Status Status        `json:"status"`
	ID     string        `json:"id,omitempty"`
	Kind   discount.Kind `json:"kind,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// SurfaceReport is the integrity report of one surface.
type SurfaceReport struct {
	Surface      string      `json:"surface"`
	Prefix       string      `json:"prefix"`
	Stored       bool        `json:"stored"`
	Checks       []CodeCheck `json:"checks"`
	Missing      int         `json:"missing"`
	Incompatible int         `json:"incompatible"`
	Errors       int         `json:"errors"`
}

// Healthy reports whether every stored tier has its Basic discount.
func (r *SurfaceReport) Healthy() bool {
	return r.Missing == 0 && r.Incompatible == 0 && r.Errors == 0
}

// Service checks stored configurations against the shop's discounts.
type Service struct {
	clients bundle.ClientFactory
	logger  *zap.Logger
}

// NewService creates a new integrity service.
func NewService(clients bundle.ClientFactory, logger *zap.Logger) *Service {
	return &Service{
		clients: clients,
		logger:  logger,
	}
}

// CheckSurface verifies that every stored tier of a surface has a Basic discount.
// It never mutates anything.
func (s *Service) CheckSurface(ctx context.Context, shop string, surface bundle.Surface) (*SurfaceReport, error) {
	client, err := s.clients.ForShop(ctx, s.resolveShop(shop))
	if err != nil {
		return nil, err
	}

	report := &SurfaceReport{Surface: surface.Name, Prefix: surface.Prefix, Checks: []CodeCheck{}}
	cfg, err := bundle.NewStore(client).Get(ctx, surface.MetafieldKey)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return report, nil
	}
	report.Stored = true

	lookup := discount.NewLookup(client, s.logger)
	tiers := lo.UniqBy(cfg.Discounts, func(t discount.Tier) string { return discount.CodeFor(t, surface.Prefix) })
	for _, tier := range tiers {
		check := CodeCheck{Code: discount.CodeFor(tier, surface.Prefix), Tier: tier, Status: StatusOK}

		rec, err := lookup.FindByCode(ctx, check.Code)
		switch {
		case errors.Is(err, discount.ErrNotFound):
			check.Status = StatusMissing
			report.Missing++
		case err != nil:
			check.Status = StatusError
			check.Error = err.Error()
			report.Errors++
		case rec.Kind != discount.KindBasic:
			check.Status = StatusIncompatible
			check.ID, check.Kind = rec.ID, rec.Kind
			report.Incompatible++
		default:
			check.ID, check.Kind = rec.ID, rec.Kind
		}
		report.Checks = append(report.Checks, check)
	}

	if !report.Healthy() {
		s.logger.Warn("Discount drift detected",
			zap.String("surface", surface.Name),
			zap.Int("missing", report.Missing),
			zap.Int("incompatible", report.Incompatible),
			zap.Int("errors", report.Errors))
	}
	return report, nil
}

// CheckAll runs CheckSurface for every surface.
func (s *Service) CheckAll(ctx context.Context, shop string) ([]*SurfaceReport, error) {
	reports := make([]*SurfaceReport, 0, len(bundle.Surfaces()))
	for _, surface := range bundle.Surfaces() {
		report, err := s.CheckSurface(ctx, shop, surface)
		if err != nil {
			return nil, errors.Wrapf(err, "surface %s", surface.Name)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

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
