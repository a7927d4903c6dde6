package analytics

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/domain"
)

func TestClientTrackEncodesPayload(t *testing.T) {
	var decoded map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/track" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		data, err := base64.StdEncoding.DecodeString(r.FormValue("data"))
		if err != nil {
			t.Errorf("data is not base64: %v", err)
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Errorf("data is not JSON: %v", err)
		}
		fmt.Fprint(w, "1")
	}))
	defer srv.Close()

	client := NewClient("token", zap.NewNop()).WithBaseURL(srv.URL)

	err := client.Track(context.Background(), "123", "Requested translations", map[string]any{"query": "машина"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decoded["event"] != "Requested translations" {
		t.Errorf("unexpected event: %v", decoded["event"])
	}
	props, _ := decoded["properties"].(map[string]any)
	if props["token"] != "token" || props["distinct_id"] != "123" || props["query"] != "машина" {
		t.Errorf("unexpected properties: %+v", props)
	}
}

func TestClientRejectedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "0")
	}))
	defer srv.Close()

	client := NewClient("token", zap.NewNop()).WithBaseURL(srv.URL)

	if err := client.Engage(context.Background(), "123", map[string]any{"$first_name": "Аян"}); err == nil {
		t.Fatal("a rejected payload must surface as an error")
	}
}

type failingRecorder struct {
	trackCalls  int
	engageCalls int
}

func (f *failingRecorder) Track(context.Context, string, string, map[string]any) error {
	f.trackCalls++
	return fmt.Errorf("ingestion down")
}

func (f *failingRecorder) Engage(context.Context, string, map[string]any) error {
	f.engageCalls++
	return fmt.Errorf("ingestion down")
}

func TestTrackerSwallowsFailures(t *testing.T) {
	recorder := &failingRecorder{}
	tracker := NewTracker(recorder, zap.NewNop())

	// Neither call may panic or propagate anything.
	tracker.TrackUser(context.Background(), &domain.Profile{ID: "123", FirstName: "Аян"})
	tracker.TrackEvent(context.Background(), "123", "Requested translations", nil)

	if recorder.engageCalls != 1 || recorder.trackCalls != 1 {
		t.Fatalf("expected one engage and one track call, got %d/%d", recorder.engageCalls, recorder.trackCalls)
	}
}

func TestTrackerIgnoresNilProfile(t *testing.T) {
	recorder := &failingRecorder{}
	tracker := NewTracker(recorder, zap.NewNop())

	tracker.TrackUser(context.Background(), nil)

	if recorder.engageCalls != 0 {
		t.Fatal("a nil profile must not reach the recorder")
	}
}
