// Package http reads a Parquet file served over HTTP using Range requests.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hexbee-net/errors"
)

// Source is a Source backed by a URL that serves byte ranges.
type Source struct {
	client *http.Client
	url    string

	size int64
}

// NewSource HEADs url to learn its size, then serves Slice with byte-range
// GET requests.
func NewSource(ctx context.Context, client *http.Client, url string) (*Source, error) {
	if client == nil {
		client = http.DefaultClient
	}

	s := &Source{client: client, url: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build HEAD request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to HEAD source url")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.WithFields(
			errors.New("unexpected HEAD response"),
			errors.Fields{"status": resp.StatusCode})
	}

	s.size = resp.ContentLength

	return s, nil
}

func (s *Source) Slice(ctx context.Context, start, end int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build range request")
	}

	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", start, end-1))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch byte range")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusPartialContent && resp.StatusCode != http.StatusOK {
		return nil, errors.WithFields(
			errors.New("unexpected range response"),
			errors.Fields{"status": resp.StatusCode})
	}

	buf := make([]byte, end-start)
	if _, err := io.ReadFull(resp.Body, buf); err != nil {
		return nil, errors.Wrap(err, "failed to read range response body")
	}

	return buf, nil
}

func (s *Source) Size(context.Context) (int64, error) {
	if s.size > 0 {
		return s.size, nil
	}

	return 0, errors.New("source size is unknown, no Content-Length on HEAD response")
}
