package discount

import (
	"context"
	"strings"
	"time"

	"bundle-manager/core/graphql"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Finder resolves a code to a Basic record the reconciler may mutate.
// It returns ErrNotFound when absent and *IncompatibleKindError for other kinds.
type Finder interface {
	FindForUpdate(ctx context.Context, code string) (*Record, error)
}

// Mutator performs remote writes for Basic code discounts.
type Mutator interface {
	Create(ctx context.Context, terms Terms) (string, error)
	Update(ctx context.Context, id string, terms Terms) error
	Delete(ctx context.Context, id string) error
}

// Reconciler converges the remote discounts of one prefix onto a desired tier list.
type Reconciler struct {
	finder   Finder
	mutator  Mutator
	logger   *zap.Logger
	identity Identity
	now      func() time.Time
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithIdentity sets the tier identity used for change detection.
func WithIdentity(identity Identity) Option {
	return func(r *Reconciler) {
		r.identity = identity
	}
}

// WithClock overrides the clock used for startsAt.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		r.now = now
	}
}

// NewReconciler creates a Reconciler from explicit collaborators.
func NewReconciler(finder Finder, mutator Mutator, logger *zap.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		finder:   finder,
		mutator:  mutator,
		logger:   logger,
		identity: IdentityPercentage,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// New wires a Reconciler to a platform client.
func New(client graphql.Client, logger *zap.Logger, opts ...Option) *Reconciler {
	return NewReconciler(NewLookup(client, logger), NewExecutor(client, logger), logger, opts...)
}

// Plan computes the difference between previous and desired under prefix.
// It performs no I/O.
func (r *Reconciler) Plan(previous, desired []Tier, prefix string) Plan {
	desiredCodes := lo.SliceToMap(desired, func(t Tier) (string, struct{}) {
		return CodeFor(t, prefix), struct{}{}
	})
	toDelete := lo.Uniq(lo.FilterMap(previous, func(t Tier, _ int) (string, bool) {
		code := CodeFor(t, prefix)
		_, kept := desiredCodes[code]
		return code, !kept
	}))

	previousKeys := lo.SliceToMap(previous, func(t Tier) (string, struct{}) {
		return r.identity.Key(t), struct{}{}
	})
	changed := lo.Filter(desired, func(t Tier, _ int) bool {
		_, seen := previousKeys[r.identity.Key(t)]
		return !seen
	})

	return Plan{
		Prefix:   prefix,
		ToDelete: toDelete,
		ToUpsert: append([]Tier{}, desired...),
		Changed:  changed,
	}
}

// Apply executes a plan: every deletion first, then every upsert in order.
// Work is sequential and a failing step never stops the remaining ones.
func (r *Reconciler) Apply(ctx context.Context, plan Plan) *Outcome {
	out := &Outcome{
		Deletes: make([]Step, 0, len(plan.ToDelete)),
		Upserts: make([]Step, 0, len(plan.ToUpsert)),
	}

	for _, code := range plan.ToDelete {
		step := r.deleteCode(ctx, code)
		out.Deletes = append(out.Deletes, step)
		switch {
		case step.Error != "":
			out.Summary.DeleteFailures++
		case step.Action == ActionDelete:
			out.Summary.Deleted++
		default:
			out.Summary.AlreadyAbsent++
		}
	}

	var failures []string
	for _, tier := range plan.ToUpsert {
		step := r.upsertTier(ctx, tier, plan.Prefix)
		out.Upserts = append(out.Upserts, step)
		switch {
		case step.Error != "":
			out.Summary.Failures++
			failures = append(failures, step.Error)
		case step.Action == ActionCreate:
			out.Summary.Created++
		case step.Action == ActionUpdate:
			out.Summary.Updated++
		}
	}

	out.Success = len(failures) == 0
	out.Error = strings.Join(failures, ", ")
	return out
}

// Reconcile plans and applies in one call.
func (r *Reconciler) Reconcile(ctx context.Context, previous, desired []Tier, prefix string) *Outcome {
	plan := r.Plan(previous, desired, prefix)
	r.logger.Info("Reconciling discounts",
		zap.String("prefix", prefix),
		zap.Int("previous", len(previous)),
		zap.Int("desired", len(desired)),
		zap.Strings("to_delete", plan.ToDelete))

	out := r.Apply(ctx, plan)
	r.logger.Info("Reconcile finished",
		zap.String("prefix", prefix),
		zap.Bool("success", out.Success),
		zap.Int("deleted", out.Summary.Deleted),
		zap.Int("created", out.Summary.Created),
		zap.Int("updated", out.Summary.Updated),
		zap.Int("failures", out.Summary.Failures),
		zap.Int("delete_failures", out.Summary.DeleteFailures))
	return out
}

func (r *Reconciler) deleteCode(ctx context.Context, code string) Step {
	rec, err := r.finder.FindForUpdate(ctx, code)
	var kindErr *IncompatibleKindError
	switch {
	case errors.Is(err, ErrNotFound):
		r.logger.Debug("Nothing to delete", zap.String("code", code))
		return Step{Action: ActionNone, Code: code}
	case errors.As(err, &kindErr):
		r.logger.Warn("Leaving foreign discount in place", zap.String("code", code), zap.String("kind", string(kindErr.Kind)))
		return Step{Action: ActionNone, Code: code, ID: kindErr.ID, Error: kindErr.Error()}
	case err != nil:
		r.logger.Warn("Discount lookup failed", zap.String("code", code), zap.Error(err))
		return Step{Action: ActionNone, Code: code, Error: err.Error()}
	}

	if err := r.mutator.Delete(ctx, rec.ID); err != nil {
		r.logger.Warn("Discount delete failed", zap.String("code", code), zap.String("id", rec.ID), zap.Error(err))
		return Step{Action: ActionDelete, Code: code, ID: rec.ID, Error: err.Error()}
	}
	return Step{Action: ActionDelete, Code: code, ID: rec.ID}
}

func (r *Reconciler) upsertTier(ctx context.Context, tier Tier, prefix string) Step {
	terms := NewTerms(tier, prefix, r.now())
	code := terms.Code

	rec, err := r.finder.FindForUpdate(ctx, code)
	var kindErr *IncompatibleKindError
	switch {
	case errors.Is(err, ErrNotFound):
		id, err := r.mutator.Create(ctx, terms)
		if err != nil {
			r.logger.Warn("Discount create failed", zap.String("code", code), zap.Error(err))
			return Step{Action: ActionCreate, Code: code, Error: err.Error()}
		}
		return Step{Action: ActionCreate, Code: code, ID: id}
	case errors.As(err, &kindErr):
		r.logger.Warn("Refusing to update foreign discount", zap.String("code", code), zap.String("kind", string(kindErr.Kind)))
		return Step{Action: ActionNone, Code: code, ID: kindErr.ID, Error: kindErr.Error()}
	case err != nil:
		r.logger.Warn("Discount lookup failed", zap.String("code", code), zap.Error(err))
		return Step{Action: ActionNone, Code: code, Error: err.Error()}
	}

	if err := r.mutator.Update(ctx, rec.ID, terms); err != nil {
		r.logger.Warn("Discount update failed", zap.String("code", code), zap.String("id", rec.ID), zap.Error(err))
		return Step{Action: ActionUpdate, Code: code, ID: rec.ID, Error: err.Error()}
	}
	return Step{Action: ActionUpdate, Code: code, ID: rec.ID}
}
