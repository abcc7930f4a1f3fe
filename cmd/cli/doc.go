// Package cli constructs the repostat command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. Running the root command without a subcommand performs the
// status sweep with the configured defaults.
package cli
