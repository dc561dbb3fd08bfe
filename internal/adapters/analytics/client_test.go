package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestClient_Capture(t *testing.T) {
	var mu sync.Mutex
	var got []capturePayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/capture/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var p capturePayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("decode: %v", err)
		}
		mu.Lock()
		got = append(got, p)
		mu.Unlock()
	}))
	defer server.Close()

	sink := New(server.URL+"/", "phc_test", "install-1")
	client, ok := sink.(*Client)
	if !ok {
		t.Fatalf("New() returned %T, want *Client", sink)
	}

	client.Capture("download_all_images", map[string]any{"imageCount": 3})
	client.Flush(2 * time.Second)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("captured %d events, want 1", len(got))
	}
	p := got[0]
	if p.APIKey != "phc_test" || p.Event != "download_all_images" || p.DistinctID != "install-1" {
		t.Errorf("payload = %+v", p)
	}
	if count, _ := p.Properties["imageCount"].(float64); count != 3 {
		t.Errorf("imageCount = %v, want 3", p.Properties["imageCount"])
	}
}

func TestClient_CaptureFailureDoesNotPanic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "k", "").(*Client)
	if client.distinctID == "" {
		t.Error("distinct id not generated")
	}
	client.Capture("save_to_google_drive", map[string]any{"imageCount": 1})
	client.Flush(2 * time.Second)
}

func TestNew_WithoutURLLogsOnly(t *testing.T) {
	sink := New("", "k", "")
	if _, ok := sink.(LogSink); !ok {
		t.Fatalf("New(\"\") returned %T, want LogSink", sink)
	}
	sink.Capture("download_all_images", map[string]any{"imageCount": 1})
}
