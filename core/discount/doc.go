// Package discount reconciles tiered "buy N, get P% off" rules against the code
// discounts stored on a shop.
//
// Each tier owns exactly one code, "<prefix>-<percentage>", so the set of codes
// a prefix owns is derived entirely from its tier list. Reconciliation is split
// in two phases following a plan/apply pattern:
//
//   - Plan compares the previous and desired tier lists and yields the codes to
//     delete and the tiers to upsert. It performs no I/O.
//   - Apply runs every deletion, then looks up each desired code and creates or
//     updates it. Failures are collected per step and never abort the run.
//
// Only Basic code discounts are ever mutated. A code found under another variant
// is reported as an IncompatibleKindError and left untouched.
//
// # Usage
//
//	r := discount.New(client, logger, discount.WithIdentity(discount.IdentityPercentage))
//	out := r.Reconcile(ctx, previous, desired, "fubndl")
//	if !out.Success {
//	    log.Println(out.Error)
//	}
package discount
