package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalResource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rays.bin")
	if err := os.WriteFile(path, []byte("0123456789"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewResource(path)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if res.IsRemote() {
		t.Fatal("expected local resource not to be remote")
	}
	if res.Size() != 10 {
		t.Fatalf("expected size to be 10; got %d", res.Size())
	}

	// Consume part of the stream, then reopen and read everything
	buf := make([]byte, 4)
	if _, err = io.ReadFull(res, buf); err != nil {
		t.Fatal(err)
	}
	if err = res.Reopen(); err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(res)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "0123456789" {
		t.Fatalf("expected reopened resource to start from the beginning; got %q", data)
	}
}

func TestDirectoryResource(t *testing.T) {
	dir := t.TempDir()
	expError := fmt.Sprintf("resource: '%s' is a directory", filepath.Clean(dir))
	_, err := NewResource(dir)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestHttpResource(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/tree.lbvh" {
			w.Write([]byte("LBVH 1\nNULL\n"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	res, err := NewResource(server.URL + "/tree.lbvh")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if !res.IsRemote() {
		t.Fatal("expected http resource to be remote")
	}

	if err = res.Reopen(); err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(res)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "LBVH 1\nNULL\n" {
		t.Fatalf("unexpected payload %q", data)
	}
	if hits != 2 {
		t.Fatalf("expected reopen to fetch the resource again; got %d requests", hits)
	}

	fetchUrl := server.URL + "/file-not-found.foo"
	expError := fmt.Sprintf("resource: could not fetch '%s': status %d", fetchUrl, 404)
	_, err = NewResource(fetchUrl)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestUnsupportedResourceScheme(t *testing.T) {
	expError := "resource: unsupported scheme 'gopher'"
	_, err := NewResource("gopher://digging.go")
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestResourceConnectionRefusedError(t *testing.T) {
	_, err := NewResource("http://localhost:12345/foo.go")
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("expected to get 'connection refused error'; got %v", err)
	}
}

func TestStreamResources(t *testing.T) {
	res := NewResourceFromBytes("embedded", []byte("payload"))
	io.ReadAll(res)
	if err := res.Reopen(); err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(res)
	if string(data) != "payload" {
		t.Fatalf("expected rewound stream to yield the full payload; got %q", data)
	}

	pr, pw := io.Pipe()
	defer pw.Close()
	res = NewResourceFromStream("pipe", pr, -1)
	if res.Size() != -1 {
		t.Fatalf("expected unknown size; got %d", res.Size())
	}
	if err := res.Reopen(); err != ErrNotReopenable {
		t.Fatalf("expected to get %v; got %v", ErrNotReopenable, err)
	}
}
