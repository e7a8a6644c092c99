package hub

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/slotboard/internal/strategy"
)

// foldResourceFile is the filename of the optional fold enhancement
// resource. Its presence anywhere in the hub's resource list enables the
// collapsible group rendering.
const foldResourceFile = "fold-entity-row.js"

// Ready reports whether the hub has finished starting up.
func (c *Client) Ready(ctx context.Context) (bool, error) {
	var state coreState
	if err := c.call(ctx, cmdCoreState, "", &state); err != nil {
		return false, err
	}
	return state.State == "running", nil
}

// ConfigEntries lists the access-control configuration entries visible on
// the hub.
func (c *Client) ConfigEntries(ctx context.Context) ([]ConfigEntry, error) {
	var entries []ConfigEntry
	if err := c.call(ctx, cmdConfigEntries, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Registry fetches the entity registry rows owned by one config entry.
func (c *Client) Registry(ctx context.Context, entryID string) ([]strategy.RawEntity, error) {
	var rows []strategy.RawEntity
	if err := c.call(ctx, cmdRegistryList, entryID, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// EntryMetadata fetches the slot and lock metadata for one config entry.
func (c *Client) EntryMetadata(ctx context.Context, entryID string) (strategy.EntryMetadata, error) {
	var meta strategy.EntryMetadata
	if err := c.call(ctx, cmdEntryMetadata, entryID, &meta); err != nil {
		return strategy.EntryMetadata{}, err
	}
	return meta, nil
}

// Locks fetches the lock list for one config entry, for the aggregate
// overview view.
func (c *Client) Locks(ctx context.Context, entryID string) ([]strategy.LockRef, error) {
	var locks []strategy.LockRef
	if err := c.call(ctx, cmdLockList, entryID, &locks); err != nil {
		return nil, err
	}
	return locks, nil
}

// FoldCapability probes the hub's dashboard resource list for the fold
// enhancement. Detection is a substring match on the known filename.
func (c *Client) FoldCapability(ctx context.Context) (bool, error) {
	var resources []resource
	if err := c.call(ctx, cmdResourceList, "", &resources); err != nil {
		return false, err
	}
	for _, r := range resources {
		if strings.Contains(r.URL, foldResourceFile) {
			return true, nil
		}
	}
	return false, nil
}

// EntryFetch is the combined hub data for one config entry.
type EntryFetch struct {
	Registry []strategy.RawEntity
	Metadata strategy.EntryMetadata
	Locks    []strategy.LockRef
}

// FetchEntry fetches the registry, metadata and (optionally) lock list
// for one entry concurrently and awaits all of them. Any failure fails
// the whole fetch: the caller never sees a partially populated result.
func (c *Client) FetchEntry(ctx context.Context, entryID string, includeLocks bool) (EntryFetch, error) {
	var fetch EntryFetch
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := c.Registry(ctx, entryID)
		if err != nil {
			return err
		}
		fetch.Registry = rows
		return nil
	})
	g.Go(func() error {
		meta, err := c.EntryMetadata(ctx, entryID)
		if err != nil {
			return err
		}
		fetch.Metadata = meta
		return nil
	})
	if includeLocks {
		g.Go(func() error {
			locks, err := c.Locks(ctx, entryID)
			if err != nil {
				return err
			}
			fetch.Locks = locks
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return EntryFetch{}, err
	}
	return fetch, nil
}

// FetchEntries fans out one FetchEntry per config entry and merges the
// results in the order the entries were given, so output is deterministic
// regardless of completion order.
func (c *Client) FetchEntries(ctx context.Context, entryIDs []string, includeLocks bool) ([]EntryFetch, error) {
	fetches := make([]EntryFetch, len(entryIDs))
	g, ctx := errgroup.WithContext(ctx)

	for i, entryID := range entryIDs {
		i, entryID := i, entryID
		g.Go(func() error {
			fetch, err := c.FetchEntry(ctx, entryID, includeLocks)
			if err != nil {
				return err
			}
			fetches[i] = fetch
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fetches, nil
}
