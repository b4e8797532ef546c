// Copyright (c) 2026 FishEye. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/fisheye/internal/platform/apperr"
	"github.com/taibuivan/fisheye/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, dberr.Wrap(nil, "increment"))
	})

	t.Run("no_rows", func(t *testing.T) {
		err := dberr.Wrap(pgx.ErrNoRows, "select likes")
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("check_violation", func(t *testing.T) {
		err := dberr.Wrap(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "media_likes_likes_check"}, "increment")
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})

	t.Run("unknown", func(t *testing.T) {
		cause := errors.New("conn reset")
		err := dberr.Wrap(cause, "increment")

		assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, apperr.As(err).Cause.Error(), "increment")
	})
}
