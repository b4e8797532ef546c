// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"os"

	"github.com/taibuivan/fisheye/internal/platform/apperr"
)

// FileSource reads the document from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource returns a [FileSource] reading path on every fetch.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements [Source].
func (s *FileSource) Name() string { return "file:" + s.path }

// Fetch implements [Source].
func (s *FileSource) Fetch(_ context.Context) (*Document, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, apperr.FetchFailed(s.Name(), err)
	}
	defer file.Close()

	return Decode(s.Name(), file)
}
