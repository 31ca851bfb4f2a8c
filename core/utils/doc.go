// Package utils provides common utility functions for the bundle-manager application.
// It includes helper functions for loose type conversion of decoded JSON values
// and other shared logic that doesn't fit into domain-specific packages.
package utils
