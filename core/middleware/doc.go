// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the admin bundle endpoints.
//   - rayid: a unique Request ID (RayID) for every incoming request, stored in the
//     context locals and echoed in the response headers for tracing.
package middleware
