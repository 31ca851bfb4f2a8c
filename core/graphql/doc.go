// Package graphql is the remote query/mutate client for the commerce platform Admin API.
//
// The rest of the application treats it as opaque RPC: Do takes a query document and
// variables and returns the data/errors envelope. Transport failures (network errors,
// non-2xx statuses) are returned as Go errors; GraphQL-level errors are left in the
// envelope for the caller to classify.
//
// A client is bound to one shop session. Handles are constructed per request from the
// session store and passed down, never shared through a package-level singleton. The
// underlying *http.Client from NewHTTPClient is built once and shared by all handles
// so connections are pooled.
//
// # Usage
//
//	httpClient := graphql.NewHTTPClient(cfg.Shop)
//	client, err := graphql.NewClient(httpClient, cfg.Shop, "demo.myshopify.com", token)
//	resp, err := client.Do(ctx, `query { shop { id } }`, nil)
package graphql
