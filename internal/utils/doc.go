// Package utils exposes reusable helpers consumed by the CLI wiring.
//
// It houses ConfigurationLoader, LoggerFactory, and FlushingWriter, which
// integrate Viper, environment variables, and zap logging for repostat.
package utils
