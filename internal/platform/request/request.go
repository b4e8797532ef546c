// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction so handlers
share one policy for malformed identifiers.
*/
package requestutil

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/fisheye/internal/platform/apperr"
)

/*
IntParam parses a named URL parameter as an integer identifier.

Returns:
  - int: The parsed identifier
  - error: apperr.NotFound(resource) when the value is missing or not numeric
*/
func IntParam(request *http.Request, name, resource string) (int, error) {
	return parseID(chi.URLParam(request, name), resource)
}

/*
QueryID parses an integer identifier from the query string (e.g. "?id=243").

A missing, empty or non-numeric value means no record can match, so it is
reported as apperr.NotFound(resource) rather than a validation failure.
*/
func QueryID(request *http.Request, name, resource string) (int, error) {
	return parseID(request.URL.Query().Get(name), resource)
}

// Query returns a trimmed query string value.
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

func parseID(raw, resource string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}
