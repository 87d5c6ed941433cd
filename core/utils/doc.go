// Package utils provides common utility functions for the ingress-identity service.
// It includes helpers for coercing spreadsheet cell values into numbers and booleans,
// and other shared logic that doesn't fit into domain-specific packages.
package utils
