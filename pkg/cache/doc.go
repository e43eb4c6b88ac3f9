// Package cache provides a small generic LRU used to bound in-process
// caches, primarily the plan resolver's per-user tier cache.
package cache
