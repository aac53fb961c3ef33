package cloudsync

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ci-research/learninghub-service/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeApplier records what Pull handed over.
type fakeApplier struct {
	payloads []models.SyncPayload
	applied  bool
}

func (f *fakeApplier) ApplyRemote(ctx context.Context, payload models.SyncPayload) bool {
	f.payloads = append(f.payloads, payload)
	return f.applied
}

func TestEnabledRequiresHTTPPrefix(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"empty", "", false},
		{"placeholder", "YOUR_CLOUD_URL", false},
		{"http", "http://sync.internal/slot", true},
		{"https", "https://sync.internal/slot", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSyncer(tt.url, 0, testLogger())
			if got := s.Enabled(); got != tt.want {
				t.Fatalf("Enabled(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestDisabledSyncerDoesNothing(t *testing.T) {
	s := NewSyncer("", 0, testLogger())
	applier := &fakeApplier{}

	s.Push(context.Background(), models.SyncPayload{})
	if err := s.Pull(context.Background(), applier); err != nil {
		t.Fatalf("disabled pull must be a silent no-op, got %v", err)
	}

	if len(applier.payloads) != 0 {
		t.Fatal("disabled pull reached the applier")
	}
	status := s.Status()
	if status.Enabled || status.Syncing || status.Error != "" {
		t.Fatalf("disabled syncer should be idle, got %+v", status)
	}
}

func TestPushSendsFullPayload(t *testing.T) {
	var received models.SyncPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode pushed body: %v", err)
		}
	}))
	defer srv.Close()

	s := NewSyncer(srv.URL, 0, testLogger())
	s.Push(context.Background(), models.SyncPayload{
		Users:   []models.User{{ID: "u1"}},
		Courses: []models.Course{{ID: "c1"}},
	})

	if len(received.Users) != 1 || len(received.Courses) != 1 {
		t.Fatalf("push body incomplete: %+v", received)
	}
	if status := s.Status(); status.Error != "" {
		t.Fatalf("successful push left an error: %q", status.Error)
	}
}

func TestPushIgnoresRemoteStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSyncer(srv.URL, 0, testLogger())
	s.Push(context.Background(), models.SyncPayload{})

	// A push is an opaque write: only transport failures count.
	if status := s.Status(); status.Error != "" {
		t.Fatalf("push should ignore the response status, got error %q", status.Error)
	}
}

func TestPushTransportFailureSetsStickyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	s := NewSyncer(srv.URL, 0, testLogger())
	s.Push(context.Background(), models.SyncPayload{})

	if status := s.Status(); status.Error != "Sync Error: Cloud update failed." {
		t.Fatalf("unexpected error message %q", status.Error)
	}
}

func TestPushErrorClearedByNextSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	s := NewSyncer(srv.URL, 0, testLogger())
	s.setError(msgPushFailed)

	s.Push(context.Background(), models.SyncPayload{})
	if status := s.Status(); status.Error != "" {
		t.Fatalf("success must clear the sticky error, got %q", status.Error)
	}
}

func TestPushHoldsBusyForMinimumDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	s := NewSyncer(srv.URL, 150*time.Millisecond, testLogger())
	s.Push(context.Background(), models.SyncPayload{})

	if !s.Status().Syncing {
		t.Fatal("busy flag should still be up right after a fast push")
	}

	deadline := time.After(2 * time.Second)
	for s.Status().Syncing {
		select {
		case <-deadline:
			t.Fatal("busy flag never released")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestPullAppliesRemoteDocument(t *testing.T) {
	remote := models.SyncPayload{
		Users:   []models.User{{ID: "r1", Name: "Remote"}},
		Courses: []models.Course{{ID: "rc1", Title: "Remote Course"}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(remote)
	}))
	defer srv.Close()

	s := NewSyncer(srv.URL, 0, testLogger())
	applier := &fakeApplier{applied: true}

	if err := s.Pull(context.Background(), applier); err != nil {
		t.Fatalf("pull: %v", err)
	}
	if len(applier.payloads) != 1 {
		t.Fatalf("expected one applied payload, got %d", len(applier.payloads))
	}
	if applier.payloads[0].Courses[0].ID != "rc1" {
		t.Fatalf("payload mangled: %+v", applier.payloads[0])
	}
	if status := s.Status(); status.Error != "" {
		t.Fatalf("successful pull left an error: %q", status.Error)
	}
}

func TestPullFailureKeepsLocalAndFlagsOffline(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "corrupt document",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			s := NewSyncer(srv.URL, 0, testLogger())
			applier := &fakeApplier{}

			if err := s.Pull(context.Background(), applier); err == nil {
				t.Fatal("expected pull error")
			}
			if len(applier.payloads) != 0 {
				t.Fatal("failed pull must not reach the applier")
			}
			if status := s.Status(); status.Error != "Offline: Using local cache." {
				t.Fatalf("unexpected error message %q", status.Error)
			}
		})
	}
}

func TestPullErrorIsStickyUntilSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	s := NewSyncer(srv.URL, 0, testLogger())
	s.setError(msgPullFailed)

	// Unrelated reads of the status must not clear it.
	for i := 0; i < 3; i++ {
		if s.Status().Error != msgPullFailed {
			t.Fatal("sticky error vanished without a successful sync")
		}
	}

	s.Push(context.Background(), models.SyncPayload{})
	if s.Status().Error != "" {
		t.Fatal("successful push must clear the offline flag")
	}
}
