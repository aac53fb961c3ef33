// Package cloudsync mirrors the snapshot to a single remote endpoint,
// best effort in both directions. There is deliberately no retry, no
// versioning and no merge: every push carries the full document and every
// pull may fully replace it. Last writer wins; this is a known consistency
// limitation of the design, not a bug.
package cloudsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ci-research/learninghub-service/internal/metrics"
	"github.com/ci-research/learninghub-service/internal/models"
)

// Sticky advisory messages surfaced to operators. A successful push
// clears them; nothing else does.
const (
	msgPushFailed = "Sync Error: Cloud update failed."
	msgPullFailed = "Offline: Using local cache."
)

// SnapshotApplier is how pulled documents reach the store.
type SnapshotApplier interface {
	ApplyRemote(ctx context.Context, payload models.SyncPayload) bool
}

// Status is the operator-visible sync state.
type Status struct {
	Enabled bool   `json:"enabled"`
	Syncing bool   `json:"syncing"`
	Error   string `json:"error,omitempty"`
}

// Syncer talks to the configured remote endpoint.
type Syncer struct {
	url     string
	minBusy time.Duration
	client  *http.Client
	logger  *slog.Logger

	mu      sync.Mutex
	busy    int
	lastErr string
}

// NewSyncer builds the sync adapter. minBusy is the minimum time the busy
// indicator stays up after a push, so it doesn't flicker on fast networks.
func NewSyncer(url string, minBusy time.Duration, logger *slog.Logger) *Syncer {
	return &Syncer{
		url:     url,
		minBusy: minBusy,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Enabled reports whether a remote endpoint is configured. The check is a
// plain prefix test, mirroring the original configuration contract.
func (s *Syncer) Enabled() bool {
	return strings.HasPrefix(s.url, "http")
}

// Push sends the payload to the remote endpoint, fire and forget: the
// response body and status are ignored, only a transport failure counts.
// The outcome lands in the sticky status flag, never in an error return.
func (s *Syncer) Push(ctx context.Context, payload models.SyncPayload) {
	if !s.Enabled() {
		return
	}

	s.beginBusy()
	defer s.endBusyAfter(s.minBusy)

	body, err := json.Marshal(payload)
	if err != nil {
		s.setError(msgPushFailed)
		s.logger.Error("cloud push failed", "error", err)
		metrics.SyncPushes.WithLabelValues("failure").Inc()
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		s.setError(msgPushFailed)
		s.logger.Error("cloud push failed", "error", err)
		metrics.SyncPushes.WithLabelValues("failure").Inc()
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.setError(msgPushFailed)
		s.logger.Error("cloud push failed", "error", err)
		metrics.SyncPushes.WithLabelValues("failure").Inc()
		return
	}
	// Opaque write: drain and ignore whatever the endpoint answered.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	s.clearError()
	metrics.SyncPushes.WithLabelValues("success").Inc()
}

// Pull fetches the remote document and applies it through the store's
// merge rules. Any failure leaves local state untouched and flags the
// offline fallback.
func (s *Syncer) Pull(ctx context.Context, applier SnapshotApplier) error {
	if !s.Enabled() {
		return nil
	}

	s.beginBusy()
	defer s.endBusyAfter(0)

	payload, err := s.fetch(ctx)
	if err != nil {
		s.setError(msgPullFailed)
		s.logger.Warn("cloud pull failed, keeping local cache", "error", err)
		metrics.SyncPulls.WithLabelValues("failure").Inc()
		return err
	}

	applied := applier.ApplyRemote(ctx, *payload)
	s.clearError()
	metrics.SyncPulls.WithLabelValues("success").Inc()
	s.logger.Info("cloud pull completed", "applied", applied,
		"courses", len(payload.Courses), "users", len(payload.Users))
	return nil
}

func (s *Syncer) fetch(ctx context.Context) (*models.SyncPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("remote returned http %d", resp.StatusCode)
	}

	var payload models.SyncPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode remote document: %w", err)
	}

	return &payload, nil
}

// Status returns the current busy flag and sticky error.
func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Enabled: s.Enabled(),
		Syncing: s.busy > 0,
		Error:   s.lastErr,
	}
}

func (s *Syncer) beginBusy() {
	s.mu.Lock()
	s.busy++
	s.mu.Unlock()
}

func (s *Syncer) endBusyAfter(d time.Duration) {
	release := func() {
		s.mu.Lock()
		s.busy--
		s.mu.Unlock()
	}
	if d <= 0 {
		release()
		return
	}
	time.AfterFunc(d, release)
}

func (s *Syncer) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

func (s *Syncer) clearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}
