package asset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotReopenable is returned by Reopen for streams that can neither be
// reopened nor rewound.
var ErrNotReopenable = errors.New("resource: stream cannot be reopened")

type opener func() (io.ReadCloser, int64, error)

// The Resource class wraps a streamable file or remote Resource. Resources
// can be reopened so that multi-pass decoders may read the same dump twice.
type Resource struct {
	io.ReadCloser
	url  *url.URL
	size int64
	open opener
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Size returns the resource length in bytes or -1 if it is not known in
// advance (e.g. chunked http responses or plain streams).
func (r *Resource) Size() int64 {
	return r.size
}

// Reopen closes the current stream and positions a fresh one at the
// beginning of the resource. Local files are reopened, remote resources
// are fetched again and seekable streams are rewound.
func (r *Resource) Reopen() error {
	if r.open == nil {
		return ErrNotReopenable
	}

	if r.ReadCloser != nil {
		r.ReadCloser.Close()
	}

	reader, size, err := r.open()
	if err != nil {
		return err
	}
	r.ReadCloser = reader
	r.size = size
	return nil
}

// Create a new Resource data stream for a local path or an http/https URL.
//
// The caller must make sure to close the returned Resource to prevent mem leaks.
func NewResource(pathToResource string) (*Resource, error) {
	// Replace forward slashes with backslaces and try parsing as a URL
	url, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	var open opener
	switch url.Scheme {
	case "":
		path := filepath.Clean(url.Path)
		open = func() (io.ReadCloser, int64, error) {
			return openFile(path)
		}
	case "http", "https":
		target := url.String()
		open = func() (io.ReadCloser, int64, error) {
			return fetch(target)
		}
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", url.Scheme)
	}

	reader, size, err := open()
	if err != nil {
		return nil, err
	}

	return &Resource{
		ReadCloser: reader,
		url:        url,
		size:       size,
		open:       open,
	}, nil
}

// Create a resource from a reader. If source implements io.Seeker the
// resource can be rewound via Reopen; size may be -1 if unknown.
func NewResourceFromStream(name string, source io.Reader, size int64) *Resource {
	url, _ := url.Parse(name)
	res := &Resource{
		ReadCloser: io.NopCloser(source),
		url:        url,
		size:       size,
	}

	if seeker, ok := source.(io.Seeker); ok {
		res.open = func() (io.ReadCloser, int64, error) {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return nil, -1, fmt.Errorf("resource: could not rewind '%s': %s", name, err)
			}
			return io.NopCloser(source), size, nil
		}
	}

	return res
}

// Create a rewindable resource backed by an in-memory buffer.
func NewResourceFromBytes(name string, data []byte) *Resource {
	return NewResourceFromStream(name, bytes.NewReader(data), int64(len(data)))
}

func openFile(path string) (io.ReadCloser, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, -1, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, -1, err
	}
	if info.IsDir() {
		f.Close()
		return nil, -1, fmt.Errorf("resource: '%s' is a directory", path)
	}

	return f, info.Size(), nil
}

func fetch(target string) (io.ReadCloser, int64, error) {
	resp, err := http.Get(target)
	if err != nil {
		return nil, -1, fmt.Errorf("resource: could not fetch '%s': %s", target, err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, -1, fmt.Errorf("resource: could not fetch '%s': status %d", target, resp.StatusCode)
	}
	return resp.Body, resp.ContentLength, nil
}
