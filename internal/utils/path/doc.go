// Package pathutils expands home directory shortcuts and maps search results onto repository paths.
package pathutils
