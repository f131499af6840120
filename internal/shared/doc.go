// Package shared provides common utilities and test helpers used across
// the yardcli codebase. It serves as a central location for shared
// functionality that doesn't belong to any specific domain or
// architectural layer.
//
// The testutil subpackage provides a buffered slog handler so tests can
// assert on structured log output without touching the filesystem.
//
// This package should only contain test utilities used by multiple
// packages and generic helpers with no domain-specific logic; business
// logic belongs in the domain packages.
package shared
