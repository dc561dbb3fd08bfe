package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	f := NewFetcher(newTestClient(server))

	data, err := f.Fetch(context.Background(), server.URL+"/r1")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("Fetch() = %q", data)
	}

	if _, err := f.Fetch(context.Background(), server.URL+"/missing"); err == nil {
		t.Error("Fetch() expected error for 404")
	}
}

func TestFetcher_Download(t *testing.T) {
	payload := make([]byte, 100*1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "nested", "cat.jpg")
	var last int64
	err := NewFetcher(newTestClient(server)).Download(context.Background(), server.URL+"/cat.jpg", dest, func(downloaded, total int64) {
		last = downloaded
	})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != int64(len(payload)) || last != int64(len(payload)) {
		t.Errorf("size = %d, last progress = %d, want %d", info.Size(), last, len(payload))
	}
}

func TestFetcher_DownloadCleansUpOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("partial"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dest := filepath.Join(t.TempDir(), "a.jpg")
	if err := NewFetcher(newTestClient(server)).Download(ctx, server.URL, dest, nil); err == nil {
		t.Fatal("Download() expected error for cancelled context")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("partial download left on disk")
	}
}
