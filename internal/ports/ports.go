// Package ports defines the contracts between the application core and its adapters.
// Adapters implement these interfaces; the core depends only on this package.
package ports
