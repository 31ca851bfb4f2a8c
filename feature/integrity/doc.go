// Package integrity detects drift between stored bundle configurations and the
// shop's discount codes.
//
// Every stored tier owns one code. A code is "missing" when no discount carries
// it, and "incompatible" when a non-Basic discount does. The checks are read
// only; `reconcile <surface>` repairs what they find.
//
// # HTTP Endpoints
//
//   - GET /integrity : Checks every surface.
//   - GET /integrity/:surface : Checks one surface.
package integrity
