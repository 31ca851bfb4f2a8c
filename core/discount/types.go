package discount

import (
	"bytes"
	"encoding/json"

	"bundle-manager/core/utils"

	"github.com/cockroachdb/errors"
)

// Tier is one progressive pricing rule: buy Count or more items, get Percentage off.
type Tier struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// UnmarshalJSON accepts numbers or numeric strings for both fields, since stored
// configuration blobs are not guaranteed to carry typed numbers.
func (t *Tier) UnmarshalJSON(b []byte) error {
	var raw struct {
		Count      any `json:"count"`
		Percentage any `json:"percentage"`
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	t.Count = utils.ToInt(raw.Count)
	t.Percentage = utils.ToFloat(raw.Percentage)
	return nil
}

// Validate checks count >= 1 and 0 < percentage <= 100.
func (t Tier) Validate() error {
	if t.Count < 1 {
		return errors.Newf("tier count must be at least 1, got %d", t.Count)
	}
	if t.Percentage <= 0 || t.Percentage > 100 {
		return errors.Newf("tier percentage must be in (0, 100], got %s", FormatPercentage(t.Percentage))
	}
	return nil
}

// Kind is the normalized discount variant reported by the platform.
type Kind string

const (
	KindBasic        Kind = "Basic"
	KindBuyXGetY     Kind = "BuyXGetY"
	KindFreeShipping Kind = "FreeShipping"
	KindUnknown      Kind = "Unknown"
)

// Record is the normalized view of one remote code discount.
type Record struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title,omitempty"`
	Kind  Kind   `json:"kind"`
}

// Identity selects which tier fields make two tiers "the same" for change detection.
type Identity string

const (
	// IdentityPercentage compares tiers by percentage only. A count change alone is
	// not reported as a change.
	IdentityPercentage Identity = "percentage"
	// IdentityPercentageCount compares tiers by percentage and count.
	IdentityPercentageCount Identity = "percentage_count"
)

// ParseIdentity validates a configured identity name. Empty means IdentityPercentage.
func ParseIdentity(s string) (Identity, error) {
	switch Identity(s) {
	case "", IdentityPercentage:
		return IdentityPercentage, nil
	case IdentityPercentageCount:
		return IdentityPercentageCount, nil
	default:
		return "", errors.Newf("unknown tier identity %q", s)
	}
}

// Key returns the comparison key of a tier under this identity.
func (i Identity) Key(t Tier) string {
	if i == IdentityPercentageCount {
		return FormatPercentage(t.Percentage) + "/" + utils.ToString(t.Count)
	}
	return FormatPercentage(t.Percentage)
}

// Plan is the computed difference between two tier lists for one prefix.
// Deletions and upserts always target disjoint codes.
type Plan struct {
	Prefix   string   `json:"prefix"`
	ToDelete []string `json:"to_delete"`
	ToUpsert []Tier   `json:"to_upsert"`
	// Changed lists desired tiers whose identity key was absent from the previous list.
	Changed []Tier `json:"changed"`
}

// IsEmpty reports whether applying the plan would issue no mutation.
func (p Plan) IsEmpty() bool {
	return len(p.ToDelete) == 0 && len(p.ToUpsert) == 0
}

// ActionType names the remote operation a step resolved to.
type ActionType string

const (
	ActionCreate ActionType = "create"
	ActionUpdate ActionType = "update"
	ActionDelete ActionType = "delete"
	// ActionNone means no mutation was issued (already absent, failed lookup, foreign kind).
	ActionNone ActionType = "none"
)

// Step is the result of processing one code.
type Step struct {
	Action ActionType `json:"action"`
	Code   string     `json:"code"`
	ID     string     `json:"id,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// Summary provides aggregate counts for an outcome.
type Summary struct {
	Deleted        int `json:"deleted"`
	AlreadyAbsent  int `json:"already_absent"`
	DeleteFailures int `json:"delete_failures"`
	Created        int `json:"created"`
	Updated        int `json:"updated"`
	Failures       int `json:"failures"`
}

// Outcome aggregates one reconciliation run.
// Success ignores deletion failures; they are reported in Deletes only.
type Outcome struct {
	Success bool    `json:"success"`
	Error   string  `json:"error,omitempty"`
	Deletes []Step  `json:"deletes"`
	Upserts []Step  `json:"upserts"`
	Summary Summary `json:"summary"`
}

// Result is the caller-facing shape: {success, error|null}.
type Result struct {
	Success bool    `json:"success"`
	Error   *string `json:"error"`
}

// Failed builds a failed Result with a message.
func Failed(message string) Result {
	return Result{Success: false, Error: &message}
}

// Result converts the outcome into the caller-facing shape.
func (o *Outcome) Result() Result {
	if o.Success {
		return Result{Success: true}
	}
	return Failed(o.Error)
}
