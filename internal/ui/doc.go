// Package ui renders command lifecycle events as human-readable console logs.
package ui
