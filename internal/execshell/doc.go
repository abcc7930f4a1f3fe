// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging and timeouts via ShellExecutor, exposes
// OSCommandRunner for default process execution, and defines the abstractions
// repostat uses to run the search utility and git in a testable manner.
package execshell
