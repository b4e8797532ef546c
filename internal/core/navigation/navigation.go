// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package navigation resolves positions and neighbours inside an ordered
sequence of records.

All functions are pure: they never reorder or copy the input. Sequences are
walked linearly, which is adequate for per-photographer galleries.

# Absent Ids And Edges

PreviousID and NextID report false both when the id is not in the sequence
and when it sits at the matching edge. Callers that must tell the two apart
call [IndexOf] first.
*/
package navigation

import "github.com/taibuivan/fisheye/pkg/pointer"

// Identifiable is implemented by any record with an integer identity.
type Identifiable interface {
	Identity() int
}

// Neighbors holds the ids on either side of a record. A nil field means there
// is no record on that side.
type Neighbors struct {
	Previous *int `json:"previous"`
	Next     *int `json:"next"`
}

// IndexOf returns the position of the first record with the given id.
func IndexOf[T Identifiable](id int, sequence []T) (int, bool) {
	for i, record := range sequence {
		if record.Identity() == id {
			return i, true
		}
	}
	return -1, false
}

// PreviousID returns the id of the record just before id.
func PreviousID[T Identifiable](id int, sequence []T) (int, bool) {
	index, ok := IndexOf(id, sequence)
	if !ok || index == 0 {
		return 0, false
	}
	return sequence[index-1].Identity(), true
}

// NextID returns the id of the record just after id.
func NextID[T Identifiable](id int, sequence []T) (int, bool) {
	index, ok := IndexOf(id, sequence)
	if !ok || index == len(sequence)-1 {
		return 0, false
	}
	return sequence[index+1].Identity(), true
}

// Resolve returns both neighbours of id in one pass.
func Resolve[T Identifiable](id int, sequence []T) Neighbors {
	var neighbors Neighbors

	index, ok := IndexOf(id, sequence)
	if !ok {
		return neighbors
	}

	if index > 0 {
		neighbors.Previous = pointer.To(sequence[index-1].Identity())
	}
	if index < len(sequence)-1 {
		neighbors.Next = pointer.To(sequence[index+1].Identity())
	}

	return neighbors
}
