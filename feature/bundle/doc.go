// Package bundle implements the bundle configuration feature.
//
// A shop configures progressive bundle pricing per surface (the cart and the
// product page). The configuration is stored as a JSON metafield in the
// "bundle_builder" namespace, and every tier is mirrored as a Basic code
// discount named "<prefix>-<percentage>" by the core/discount reconciler.
//
// # Components
//
//   - Store: reads and writes the metafield and refreshes product details.
//   - Service: save orchestration (write config, then reconcile discounts), plan
//     previews, stored-config repair and the storefront read.
//   - Archive: optional reconcile reports in object storage.
//   - Handler: admin and storefront HTTP endpoints.
//   - Loader: registers the admin and storefront features.
//
// # HTTP Endpoints
//
//   - GET  /bundles/:surface : Load a surface configuration (shop from X-Shop-Domain).
//   - POST /bundles/:surface : Save {"config": {...}} and reconcile discounts.
//   - POST /bundles/:surface/plan : Preview the discount changes of a save.
//   - GET  /bundles/:surface/reports : List archived reconcile reports.
//   - GET  /bundles/:surface/reports/:timestamp : Fetch one report.
//   - GET  /storefront/bundle-config?shop=&surface= : Public read, always 200.
package bundle
