package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nerrad567/slotboard/internal/infrastructure/config"
	"github.com/nerrad567/slotboard/internal/infrastructure/logging"
)

// Client is a websocket client for the hub's command API.
//
// Commands are correlated with responses by numeric ID, so any number of
// goroutines may issue calls concurrently over the one connection; the
// read loop dispatches each result frame to its waiting caller.
//
// The client performs no retry or reconnection. A broken connection fails
// every pending and future call, and the owner decides what to do next;
// for the dashboard service that is falling back to the snapshot store.
type Client struct {
	conn   *websocket.Conn
	cfg    config.HubConfig
	logger *logging.Logger

	writeMu sync.Mutex // gorilla allows one concurrent writer

	mu       sync.Mutex
	nextID   int
	pending  map[int]chan frame
	closed   bool
	readErr  error
	recorder FetchRecorder
}

// FetchRecorder receives one measurement per hub round trip. The
// influx-backed implementation lives in infrastructure/telemetry; a nil
// recorder disables recording.
type FetchRecorder interface {
	RecordHubFetch(command string, duration time.Duration, ok bool)
}

// Connect dials the hub, completes the auth handshake and starts the read
// loop. The context bounds the dial and handshake only.
func Connect(ctx context.Context, cfg config.HubConfig, logger *logging.Logger) (*Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, cfg.GetConnectTimeout())
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dialling hub: %w", err)
	}

	c := &Client{
		conn:    conn,
		cfg:     cfg,
		logger:  logger.With("component", "hub"),
		pending: make(map[int]chan frame),
	}

	if err := c.authenticate(); err != nil {
		conn.Close() //nolint:errcheck
		return nil, err
	}

	go c.readLoop()
	c.logger.Info("connected", "url", cfg.URL)
	return c, nil
}

// authenticate runs the auth_required/auth/auth_ok exchange. It runs
// before the read loop starts, so it reads the connection directly.
func (c *Client) authenticate() error {
	var hello frame
	if err := c.conn.ReadJSON(&hello); err != nil {
		return fmt.Errorf("reading auth challenge: %w", err)
	}
	if hello.Type != msgAuthRequired {
		return fmt.Errorf("%w: unexpected frame %q", ErrAuthFailed, hello.Type)
	}

	if err := c.conn.WriteJSON(frame{Type: msgAuth, AccessToken: c.cfg.AccessToken}); err != nil {
		return fmt.Errorf("sending auth: %w", err)
	}

	var reply frame
	if err := c.conn.ReadJSON(&reply); err != nil {
		return fmt.Errorf("reading auth reply: %w", err)
	}
	switch reply.Type {
	case msgAuthOK:
		return nil
	case msgAuthInvalid:
		if reply.Message != "" {
			return fmt.Errorf("%w: %s", ErrAuthFailed, reply.Message)
		}
		return fmt.Errorf("%w: access token rejected", ErrAuthFailed)
	default:
		return fmt.Errorf("%w: unexpected frame %q", ErrAuthFailed, reply.Type)
	}
}

// readLoop dispatches result frames to their pending callers until the
// connection breaks or the client closes.
func (c *Client) readLoop() {
	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			c.failAll(err)
			return
		}
		if f.Type != msgResult {
			// Event frames and pings are not part of the command API.
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[f.ID]
		if ok {
			delete(c.pending, f.ID)
		}
		c.mu.Unlock()

		if !ok {
			c.logger.Warn("result frame with no pending call", "id", f.ID)
			continue
		}
		ch <- f
	}
}

// failAll closes every pending call with the read error.
func (c *Client) failAll(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.readErr = err
	}
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}

// Close shuts the connection down. Pending calls fail with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	return c.conn.Close()
}

// HealthCheck reports whether the websocket session is still usable.
func (c *Client) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("hub health check: %w", ctx.Err())
	default:
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return fmt.Errorf("hub connection lost: %w", c.readErr)
	}
	if c.closed {
		return ErrClosed
	}
	return nil
}

// SetTelemetry attaches a round-trip recorder to subsequent calls.
func (c *Client) SetTelemetry(r FetchRecorder) {
	c.mu.Lock()
	c.recorder = r
	c.mu.Unlock()
}

// call issues one command, decodes its result into out (which may be nil
// for commands whose result is discarded) and records the round trip.
func (c *Client) call(ctx context.Context, msgType, entryID string, out any) error {
	started := time.Now()
	err := c.doCall(ctx, msgType, entryID, out)

	c.mu.Lock()
	recorder := c.recorder
	c.mu.Unlock()
	if recorder != nil {
		recorder.RecordHubFetch(msgType, time.Since(started), err == nil)
	}
	return err
}

func (c *Client) doCall(ctx context.Context, msgType, entryID string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.GetRequestTimeout())
	defer cancel()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.nextID++
	id := c.nextID
	ch := make(chan frame, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	c.writeMu.Lock()
	err := c.conn.WriteJSON(frame{ID: id, Type: msgType, EntryID: entryID})
	c.writeMu.Unlock()
	if err != nil {
		c.dropPending(id)
		return fmt.Errorf("sending %s: %w", msgType, err)
	}

	select {
	case <-ctx.Done():
		c.dropPending(id)
		return fmt.Errorf("awaiting %s: %w", msgType, ctx.Err())
	case f, ok := <-ch:
		if !ok {
			c.mu.Lock()
			readErr := c.readErr
			closed := c.closed
			c.mu.Unlock()
			if closed {
				return ErrClosed
			}
			return fmt.Errorf("connection lost during %s: %w", msgType, readErr)
		}
		return decodeResult(msgType, f, out)
	}
}

func (c *Client) dropPending(id int) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// decodeResult maps a result frame onto the caller's output value.
func decodeResult(msgType string, f frame, out any) error {
	if f.Success == nil || !*f.Success {
		if f.Error != nil {
			if f.Error.Code == errorCodeNotFound {
				return fmt.Errorf("%w: %s", ErrEntryNotFound, f.Error.Message)
			}
			return fmt.Errorf("%w: %s: %s", ErrCommandFailed, f.Error.Code, f.Error.Message)
		}
		return fmt.Errorf("%w: %s", ErrCommandFailed, msgType)
	}
	if out == nil || f.Result == nil {
		return nil
	}
	if err := json.Unmarshal(f.Result, out); err != nil {
		return fmt.Errorf("decoding %s result: %w", msgType, err)
	}
	return nil
}
