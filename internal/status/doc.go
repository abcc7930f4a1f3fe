// Package status sweeps a projects directory for repositories and reports the
// short working tree status of each one.
//
// It exposes CommandBuilder for wiring the status Cobra command, Service for
// driving the sweep programmatically, and the collaborator interfaces used to
// search for repositories, resolve their paths, and run git.
package status
