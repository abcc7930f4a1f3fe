// Package flags holds helpers for enumerated command-line flags.
package flags
