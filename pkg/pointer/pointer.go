// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides utilities for working with pointers in Go.

Key Functions:
  - To: Creates a pointer from a value literal.
*/
package pointer

// To returns a pointer to the provided value.
// It is useful when you need to pass a primitive value to a struct field
// that expects a pointer (e.g. an optional neighbour id).
func To[T any](v T) *T {
	return &v
}
