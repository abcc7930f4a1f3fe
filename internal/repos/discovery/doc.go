// Package discovery locates repository metadata directories beneath a search root.
//
// SearchUtilityDiscoverer delegates to an external search utility such as fd,
// while FilesystemRepositoryDiscoverer walks the tree in-process. Both return
// entries in the search utility's format: paths relative to the root that end
// with the metadata directory and a trailing separator, e.g. "repoA/.git/".
package discovery
