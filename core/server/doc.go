// Package server holds the HTTP server configuration.
//
// The main application entry point (cmd/start) handles the server startup; this package
// only defines the port, the admin API key and the storefront CORS origin.
package server
