package hub

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nerrad567/slotboard/internal/infrastructure/config"
	"github.com/nerrad567/slotboard/internal/infrastructure/logging"
)

// fakeHub is an in-process hub speaking the command protocol over a real
// websocket, with canned responses per command type.
type fakeHub struct {
	t         *testing.T
	server    *httptest.Server
	token     string
	mu        sync.Mutex
	responses map[string]func(f frame) frame
}

func newFakeHub(t *testing.T) *fakeHub {
	t.Helper()
	h := &fakeHub{
		t:         t,
		token:     "test-token",
		responses: make(map[string]func(f frame) frame),
	}

	upgrader := websocket.Upgrader{}
	h.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close() //nolint:errcheck
		h.serve(conn)
	}))
	t.Cleanup(h.server.Close)
	return h
}

func (h *fakeHub) url() string {
	return "ws" + strings.TrimPrefix(h.server.URL, "http")
}

func (h *fakeHub) serve(conn *websocket.Conn) {
	if err := conn.WriteJSON(frame{Type: msgAuthRequired}); err != nil {
		return
	}
	var auth frame
	if err := conn.ReadJSON(&auth); err != nil {
		return
	}
	if auth.AccessToken != h.token {
		conn.WriteJSON(frame{Type: msgAuthInvalid, Message: "Invalid access token"}) //nolint:errcheck
		return
	}
	if err := conn.WriteJSON(frame{Type: msgAuthOK}); err != nil {
		return
	}

	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}
		h.mu.Lock()
		handler := h.responses[f.Type]
		h.mu.Unlock()

		reply := failure(f.ID, "unknown_command", f.Type)
		if handler != nil {
			reply = handler(f)
		}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}

// respond registers a canned successful result for a command type.
func (h *fakeHub) respond(msgType string, result any) {
	h.responses[msgType] = func(f frame) frame {
		data, err := json.Marshal(result)
		if err != nil {
			h.t.Fatalf("marshalling canned result: %v", err)
		}
		ok := true
		return frame{ID: f.ID, Type: msgResult, Success: &ok, Result: data}
	}
}

func (h *fakeHub) fail(msgType, code, message string) {
	h.responses[msgType] = func(f frame) frame {
		return failure(f.ID, code, message)
	}
}

func failure(id int, code, message string) frame {
	ok := false
	return frame{ID: id, Type: msgResult, Success: &ok,
		Error: &frameError{Code: code, Message: message}}
}

func testConfig(url string) config.HubConfig {
	return config.HubConfig{
		URL:            url,
		AccessToken:    "test-token",
		ConnectTimeout: 5,
		RequestTimeout: 5,
	}
}

func connect(t *testing.T, h *fakeHub) *Client {
	t.Helper()
	client, err := Connect(context.Background(), testConfig(h.url()), logging.Default())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { client.Close() }) //nolint:errcheck
	return client
}

func TestConnectAuthFailure(t *testing.T) {
	h := newFakeHub(t)
	cfg := testConfig(h.url())
	cfg.AccessToken = "wrong-token"

	_, err := Connect(context.Background(), cfg, logging.Default())
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("Connect() = %v, want ErrAuthFailed", err)
	}
	// The hub's rejection reason is carried through, not flattened.
	if !strings.Contains(err.Error(), "Invalid access token") {
		t.Errorf("Connect() error = %q, want hub's auth_invalid message", err)
	}
}

func TestConfigEntries(t *testing.T) {
	h := newFakeHub(t)
	h.respond(cmdConfigEntries, []ConfigEntry{
		{EntryID: "A", Title: "Front Door"},
		{EntryID: "B", Title: "Garage"},
	})

	client := connect(t, h)
	entries, err := client.ConfigEntries(context.Background())
	if err != nil {
		t.Fatalf("ConfigEntries() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Title != "Front Door" {
		t.Errorf("ConfigEntries() = %+v", entries)
	}
}

func TestEntryNotFoundMapping(t *testing.T) {
	h := newFakeHub(t)
	h.fail(cmdEntryMetadata, errorCodeNotFound, "no such entry")

	client := connect(t, h)
	_, err := client.EntryMetadata(context.Background(), "missing")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("EntryMetadata() = %v, want ErrEntryNotFound", err)
	}
}

func TestCommandFailureMapping(t *testing.T) {
	h := newFakeHub(t)
	h.fail(cmdRegistryList, "internal", "boom")

	client := connect(t, h)
	_, err := client.Registry(context.Background(), "A")
	if !errors.Is(err, ErrCommandFailed) {
		t.Errorf("Registry() = %v, want ErrCommandFailed", err)
	}
}

func TestReady(t *testing.T) {
	h := newFakeHub(t)
	h.respond(cmdCoreState, coreState{State: "starting"})

	client := connect(t, h)
	ready, err := client.Ready(context.Background())
	if err != nil {
		t.Fatalf("Ready() error = %v", err)
	}
	if ready {
		t.Error("Ready() = true while hub reports starting")
	}
}

func TestFoldCapability(t *testing.T) {
	tests := []struct {
		name      string
		resources []resource
		want      bool
	}{
		{
			name: "fold resource present",
			resources: []resource{
				{URL: "/local/cards/some-card.js"},
				{URL: "/hacsfiles/fold-entity-row/fold-entity-row.js"},
			},
			want: true,
		},
		{
			name: "fold resource absent",
			resources: []resource{
				{URL: "/local/cards/some-card.js"},
			},
			want: false,
		},
		{
			name: "no resources at all",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFakeHub(t)
			h.respond(cmdResourceList, tt.resources)

			client := connect(t, h)
			got, err := client.FoldCapability(context.Background())
			if err != nil {
				t.Fatalf("FoldCapability() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FoldCapability() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetchEntriesMergesInInputOrder(t *testing.T) {
	h := newFakeHub(t)
	h.responses[cmdRegistryList] = func(f frame) frame {
		data, _ := json.Marshal([]map[string]string{
			{"entity_id": "sensor." + f.EntryID, "unique_id": f.EntryID + "|1|name"},
		})
		ok := true
		return frame{ID: f.ID, Type: msgResult, Success: &ok, Result: data}
	}
	h.responses[cmdEntryMetadata] = func(f frame) frame {
		data, _ := json.Marshal(map[string]any{
			"entry_id": f.EntryID,
			"title":    "Entry " + f.EntryID,
			"slots":    map[string]string{"1": ""},
		})
		ok := true
		return frame{ID: f.ID, Type: msgResult, Success: &ok, Result: data}
	}
	h.responses[cmdLockList] = func(f frame) frame {
		data, _ := json.Marshal([]map[string]string{
			{"entity_id": "lock." + f.EntryID, "name": "Lock " + f.EntryID},
		})
		ok := true
		return frame{ID: f.ID, Type: msgResult, Success: &ok, Result: data}
	}

	client := connect(t, h)
	fetches, err := client.FetchEntries(context.Background(), []string{"B", "A"}, true)
	if err != nil {
		t.Fatalf("FetchEntries() error = %v", err)
	}
	if len(fetches) != 2 {
		t.Fatalf("FetchEntries() = %d results, want 2", len(fetches))
	}
	// Results follow input order, not completion order.
	if fetches[0].Metadata.EntryID != "B" || fetches[1].Metadata.EntryID != "A" {
		t.Errorf("fetch order = %q, %q; want B, A",
			fetches[0].Metadata.EntryID, fetches[1].Metadata.EntryID)
	}
	if len(fetches[0].Registry) != 1 || fetches[0].Registry[0].EntityID != "sensor.B" {
		t.Errorf("fetch B registry = %+v", fetches[0].Registry)
	}
	if len(fetches[0].Locks) != 1 || fetches[0].Locks[0].EntityID != "lock.B" {
		t.Errorf("fetch B locks = %+v", fetches[0].Locks)
	}
}

func TestFetchEntryFailureIsWhole(t *testing.T) {
	h := newFakeHub(t)
	h.respond(cmdRegistryList, []frame{})
	h.fail(cmdEntryMetadata, "internal", "boom")

	client := connect(t, h)
	_, err := client.FetchEntry(context.Background(), "A", false)
	if err == nil {
		t.Fatal("FetchEntry() = nil error, want failure when one leg fails")
	}
}

// recordedFetch is one round-trip measurement captured by fakeRecorder.
type recordedFetch struct {
	command string
	ok      bool
}

type fakeRecorder struct {
	mu      sync.Mutex
	fetches []recordedFetch
}

func (r *fakeRecorder) RecordHubFetch(command string, _ time.Duration, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches = append(r.fetches, recordedFetch{command, ok})
}

func TestCallRecordsRoundTrips(t *testing.T) {
	h := newFakeHub(t)
	h.respond(cmdConfigEntries, []ConfigEntry{{EntryID: "A", Title: "Front Door"}})
	h.fail(cmdLockList, "internal", "boom")

	client := connect(t, h)
	recorder := &fakeRecorder{}
	client.SetTelemetry(recorder)

	if _, err := client.ConfigEntries(context.Background()); err != nil {
		t.Fatalf("ConfigEntries() error = %v", err)
	}
	if _, err := client.Locks(context.Background(), "A"); err == nil {
		t.Fatal("Locks() = nil error, want command failure")
	}

	want := []recordedFetch{
		{command: cmdConfigEntries, ok: true},
		{command: cmdLockList, ok: false},
	}
	if len(recorder.fetches) != len(want) {
		t.Fatalf("recorded fetches = %+v, want %+v", recorder.fetches, want)
	}
	for i, rec := range recorder.fetches {
		if rec != want[i] {
			t.Errorf("fetch %d = %+v, want %+v", i, rec, want[i])
		}
	}
}

func TestCallAfterClose(t *testing.T) {
	h := newFakeHub(t)
	client := connect(t, h)
	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	_, err := client.ConfigEntries(context.Background())
	if !errors.Is(err, ErrClosed) {
		t.Errorf("call after close = %v, want ErrClosed", err)
	}
}
