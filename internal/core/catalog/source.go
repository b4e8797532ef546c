// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/fisheye/internal/platform/constants"
)

// Source fetches the source document.
//
// Every failure is returned as an [apperr.AppError] with code FETCH_FAILED.
type Source interface {
	Fetch(ctx context.Context) (*Document, error)
	Name() string
}

// SourceFunc adapts a plain function to [Source].
type SourceFunc func(ctx context.Context) (*Document, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) (*Document, error) { return f(ctx) }

// Name implements [Source].
func (f SourceFunc) Name() string { return "func" }

// Options tunes the transports created by [Open].
type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
	S3Region   string
	S3Endpoint string

	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Open builds a [Source] from a URL.
//
// Supported forms:
//
//	data/photographers.json          // bare filesystem path
//	file:///srv/data/photographers.json
//	https://cdn.example.com/photographers.json
//	s3://bucket/path/photographers.json
func Open(ctx context.Context, rawURL string, opts Options) (Source, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = constants.DefaultSourceTimeout
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" {
		return NewFileSource(rawURL), nil
	}

	switch strings.ToLower(parsed.Scheme) {
	case "file":
		return NewFileSource(parsed.Path), nil
	case "http", "https":
		client := opts.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: opts.Timeout}
		}
		return NewHTTPSource(rawURL, client), nil
	case "s3":
		return NewS3Source(ctx, parsed.Host, strings.TrimPrefix(parsed.Path, "/"), opts)
	default:
		return nil, fmt.Errorf("catalog: unsupported source scheme %q", parsed.Scheme)
	}
}
