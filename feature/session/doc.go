// Package session stores per-shop Admin API credentials and turns them into
// GraphQL clients.
//
// Sessions live in a single gorm table ("sessions") on sqlite or MySQL. A shop
// is resolved by substring match on the stored domain and the newest row wins,
// so a reinstall that writes a fresh row supersedes the old token.
package session
