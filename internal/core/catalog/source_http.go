// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/taibuivan/fisheye/internal/platform/apperr"
)

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 512

// HTTPSource downloads the document over HTTP(S).
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource returns an [HTTPSource] using the given client.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	return &HTTPSource{url: url, client: client}
}

// Name implements [Source].
func (s *HTTPSource) Name() string { return s.url }

// Fetch implements [Source].
func (s *HTTPSource) Fetch(ctx context.Context) (*Document, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, apperr.FetchFailed(s.Name(), err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := s.client.Do(request)
	if err != nil {
		return nil, apperr.FetchFailed(s.Name(), err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return nil, apperr.FetchFailed(s.Name(), fmt.Errorf("unexpected status %d: %s", response.StatusCode, body))
	}

	return Decode(s.Name(), response.Body)
}
