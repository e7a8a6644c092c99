// Package snapshot stores the last good hub data per configuration entry.
//
// The strategy engine itself holds no cross-call cache; caching is a
// transport concern, and this package is where it lives. When the hub is
// unreachable the dashboard service replays the most recent snapshot
// instead of rendering an error view, and a refresh request simply clears
// the store so the next render must hit the hub.
//
// Snapshots are whole-entry: the registry rows, the entry metadata and the
// lock list are stored together, fetched together, and replaced together.
// A render pass never mixes cached data from one fetch with fresh data
// from another.
package snapshot
