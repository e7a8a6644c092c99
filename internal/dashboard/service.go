package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nerrad567/slotboard/internal/hub"
	"github.com/nerrad567/slotboard/internal/infrastructure/logging"
	"github.com/nerrad567/slotboard/internal/snapshot"
	"github.com/nerrad567/slotboard/internal/strategy"
)

// HubClient is the subset of the hub client the service depends on.
// Defined here so tests can substitute a fake without a websocket.
type HubClient interface {
	Ready(ctx context.Context) (bool, error)
	ConfigEntries(ctx context.Context) ([]hub.ConfigEntry, error)
	FetchEntries(ctx context.Context, entryIDs []string, includeLocks bool) ([]hub.EntryFetch, error)
	FoldCapability(ctx context.Context) (bool, error)
}

// Telemetry receives render statistics. The influx-backed implementation
// lives in infrastructure/telemetry; a nil Telemetry disables recording.
type Telemetry interface {
	RecordRender(duration time.Duration, entries, slots, entities int, source string)
}

// Render sources reported to telemetry.
const (
	sourceHub      = "hub"
	sourceSnapshot = "snapshot"
)

// Service renders dashboard trees on demand.
//
// Each render is a full pass: fetch everything from the hub, classify,
// assemble. The hub is the source of truth; the snapshot store is a
// fallback used only when the hub cannot be reached, and never mixed with
// fresh data. Complete hub-sourced renders under the configured default
// options are cached in memory until Invalidate is called (the MQTT
// consumer calls it when the hub announces registry changes); placeholder
// and fallback trees are never cached, so a starting or unreachable hub
// is re-probed on every render.
type Service struct {
	hub       HubClient
	snapshots snapshot.Repository
	telemetry Telemetry
	logger    *logging.Logger
	defaults  strategy.RawOptions

	mu     sync.Mutex
	cached *strategy.Tree
}

// New creates a dashboard service. Telemetry may be nil.
func New(hubClient HubClient, snapshots snapshot.Repository, telemetry Telemetry,
	logger *logging.Logger, defaults strategy.RawOptions) *Service {
	return &Service{
		hub:       hubClient,
		snapshots: snapshots,
		telemetry: telemetry,
		logger:    logger.With("component", "dashboard"),
		defaults:  defaults,
	}
}

// Render produces the dashboard tree under the service's configured
// default options, serving from the in-memory cache when it is still
// valid.
func (s *Service) Render(ctx context.Context) strategy.Tree {
	s.mu.Lock()
	if s.cached != nil {
		tree := *s.cached
		s.mu.Unlock()
		return tree
	}
	s.mu.Unlock()

	tree, cacheable := s.render(ctx, s.defaults)
	if !cacheable {
		return tree
	}

	s.mu.Lock()
	s.cached = &tree
	s.mu.Unlock()
	return tree
}

// Invalidate drops the in-memory cache so the next Render refetches from
// the hub.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
	s.logger.Debug("cache invalidated")
}

// InvalidateEntry drops the in-memory cache and the stored snapshot for
// one entry, for targeted change events. The stale snapshot must go too:
// a later outage would otherwise replay pre-change data for that entry.
func (s *Service) InvalidateEntry(ctx context.Context, entryID string) {
	s.Invalidate()
	if err := s.snapshots.Delete(ctx, entryID); err != nil {
		s.logger.Error("deleting snapshot failed", "entry_id", entryID, "error", err)
	}
}

// Refresh drops both the in-memory cache and the snapshot store, forcing
// the next render to hit the hub with no fallback.
func (s *Service) Refresh(ctx context.Context) error {
	s.Invalidate()
	if err := s.snapshots.Clear(ctx); err != nil {
		return fmt.Errorf("clearing snapshot store: %w", err)
	}
	return nil
}

// RenderWith produces the dashboard tree under caller-supplied options,
// bypassing the cache. It never returns an error: every failure mode maps
// to a well-formed terminal view.
func (s *Service) RenderWith(ctx context.Context, raw strategy.RawOptions) strategy.Tree {
	tree, _ := s.render(ctx, raw)
	return tree
}

// render runs one full pass. The second return reports whether the tree
// came from a complete hub fetch and may be cached; placeholder, error and
// snapshot-sourced trees are transient states the hub can leave without a
// change event arriving, so caching them would pin them past recovery.
func (s *Service) render(ctx context.Context, raw strategy.RawOptions) (strategy.Tree, bool) {
	started := time.Now()

	for _, sel := range raw.Entries {
		if err := sel.Validate(); err != nil {
			s.logger.Warn("invalid entry selector", "selector", sel.String(), "error", err)
			return strategy.ConfigErrorTree(err.Error()), false
		}
	}
	opts := strategy.Resolve(raw)

	ready, err := s.hub.Ready(ctx)
	if err != nil {
		s.logger.Warn("hub unreachable, trying snapshot fallback", "error", err)
		return s.renderFromSnapshots(ctx, started, opts), false
	}
	if !ready {
		return strategy.StartingTree(), false
	}

	available, err := s.hub.ConfigEntries(ctx)
	if err != nil {
		s.logger.Warn("listing config entries failed, trying snapshot fallback", "error", err)
		return s.renderFromSnapshots(ctx, started, opts), false
	}

	selected, missing := selectEntries(available, opts.Entries)
	if missing != "" {
		return strategy.NotFoundTree(missing), false
	}
	if len(selected) == 0 {
		return strategy.EmptyTree(), false
	}

	entryIDs := make([]string, len(selected))
	for i, entry := range selected {
		entryIDs[i] = entry.EntryID
	}

	fetches, err := s.hub.FetchEntries(ctx, entryIDs, opts.LockOverview)
	if err != nil {
		if errors.Is(err, hub.ErrEntryNotFound) {
			// The entry disappeared between listing and fetching.
			return strategy.NotFoundTree(describeEntries(selected)), false
		}
		s.logger.Warn("entry fetch failed, trying snapshot fallback", "error", err)
		return s.renderFromSnapshots(ctx, started, opts), false
	}

	fold := false
	if detected, probeErr := s.hub.FoldCapability(ctx); probeErr != nil {
		// The probe is an enhancement check, not core data; render flat
		// rather than failing the whole pass.
		s.logger.Warn("fold capability probe failed, rendering flat", "error", probeErr)
	} else {
		fold = detected
	}

	input := buildInput(selected, fetches, fold)
	s.storeSnapshots(ctx, selected, fetches)

	return s.assemble(started, input, opts, sourceHub), true
}

// renderFromSnapshots replays the most recent stored snapshots. With no
// usable snapshots the result is the terminal unavailable view; a partial
// store (snapshots for some but not all requested entries) is treated the
// same, never a partial tree.
func (s *Service) renderFromSnapshots(ctx context.Context, started time.Time, opts strategy.Options) strategy.Tree {
	snaps, err := s.loadSnapshots(ctx, opts.Entries)
	if err != nil {
		s.logger.Error("snapshot fallback failed", "error", err)
		return strategy.UnavailableTree()
	}
	if len(snaps) == 0 {
		return strategy.UnavailableTree()
	}

	input := strategy.Input{}
	for _, snap := range snaps {
		input.Entries = append(input.Entries, strategy.EntryInput{
			Meta:     snap.Metadata,
			Entities: snap.Registry,
		})
		input.Locks = append(input.Locks, snap.Locks...)
	}
	// The fold capability cannot be probed offline; render flat.
	s.logger.Info("rendering from snapshot store", "entries", len(snaps))

	return s.assemble(started, input, opts, sourceSnapshot)
}

// loadSnapshots resolves the selectors against the store. An empty
// selector list means every stored snapshot.
func (s *Service) loadSnapshots(ctx context.Context, selectors []strategy.EntrySelector) ([]snapshot.EntrySnapshot, error) {
	if len(selectors) == 0 {
		return s.snapshots.List(ctx)
	}

	snaps := make([]snapshot.EntrySnapshot, 0, len(selectors))
	for _, sel := range selectors {
		var snap *snapshot.EntrySnapshot
		var err error
		if sel.ID != "" {
			snap, err = s.snapshots.Get(ctx, sel.ID)
		} else {
			snap, err = s.snapshots.GetByTitle(ctx, sel.Title)
		}
		if err != nil {
			return nil, fmt.Errorf("loading snapshot for %q: %w", sel.String(), err)
		}
		snaps = append(snaps, *snap)
	}
	return snaps, nil
}

// assemble runs the strategy pipeline, logs malformed records and records
// telemetry.
func (s *Service) assemble(started time.Time, input strategy.Input, opts strategy.Options, source string) strategy.Tree {
	tree, malformed := strategy.Build(input, opts)

	for _, e := range malformed {
		// Soft failure: the record is dropped from the tree, but losing
		// an entity silently would make misconfigurations invisible.
		s.logger.Warn("unparseable compound key",
			"entity_id", e.EntityID, "entry_id", e.EntryID)
	}

	if s.telemetry != nil {
		entities := 0
		slots := 0
		for _, entry := range input.Entries {
			entities += len(entry.Entities)
			slots += len(entry.Meta.Slots)
		}
		s.telemetry.RecordRender(time.Since(started), len(input.Entries), slots, entities, source)
	}

	return tree
}

// storeSnapshots persists the fetched data, best effort. A store failure
// only costs the fallback, so it is logged and not propagated.
func (s *Service) storeSnapshots(ctx context.Context, entries []hub.ConfigEntry, fetches []hub.EntryFetch) {
	now := time.Now()
	for i, entry := range entries {
		snap := &snapshot.EntrySnapshot{
			EntryID:   entry.EntryID,
			Title:     entry.Title,
			Registry:  fetches[i].Registry,
			Metadata:  fetches[i].Metadata,
			Locks:     fetches[i].Locks,
			FetchedAt: now,
		}
		if err := s.snapshots.Put(ctx, snap); err != nil {
			s.logger.Error("storing snapshot failed", "entry_id", entry.EntryID, "error", err)
		}
	}
}

// selectEntries resolves selectors against the hub's entry list. The
// second return names the first selector that matched nothing, or "".
// With no selectors every available entry is selected.
func selectEntries(available []hub.ConfigEntry, selectors []strategy.EntrySelector) ([]hub.ConfigEntry, string) {
	if len(selectors) == 0 {
		return available, ""
	}

	selected := make([]hub.ConfigEntry, 0, len(selectors))
	for _, sel := range selectors {
		found := false
		for _, entry := range available {
			if (sel.ID != "" && entry.EntryID == sel.ID) ||
				(sel.Title != "" && entry.Title == sel.Title) {
				selected = append(selected, entry)
				found = true
				break
			}
		}
		if !found {
			return nil, sel.String()
		}
	}
	return selected, ""
}

// describeEntries names a set of entries for a not-found view. The hub
// does not say which entry vanished mid-fetch, so all candidates are
// listed.
func describeEntries(entries []hub.ConfigEntry) string {
	titles := make([]string, len(entries))
	for i, entry := range entries {
		titles[i] = entry.Title
	}
	return strings.Join(titles, ", ")
}

// buildInput pairs the entry list with its fetches into assembler input.
func buildInput(entries []hub.ConfigEntry, fetches []hub.EntryFetch, fold bool) strategy.Input {
	input := strategy.Input{Fold: fold}
	for i, entry := range entries {
		meta := fetches[i].Metadata
		if meta.Title == "" {
			meta.Title = entry.Title
		}
		input.Entries = append(input.Entries, strategy.EntryInput{
			Meta:     meta,
			Entities: fetches[i].Registry,
		})
		input.Locks = append(input.Locks, fetches[i].Locks...)
	}
	return input
}
