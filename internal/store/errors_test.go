package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStoreError("card", "update", "exec failed", cause)

	assert.Equal(t, "update operation on card failed: exec failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestStoreErrorWithoutCause(t *testing.T) {
	err := NewStoreError("user", "get", "query failed", nil)

	assert.Equal(t, "get operation on user failed: query failed", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestErrorClassificationHelpers(t *testing.T) {
	testCases := []struct {
		name          string
		err           error
		wantNotFound  bool
		wantDuplicate bool
	}{
		{"generic not found", ErrNotFound, true, false},
		{"user not found", ErrUserNotFound, true, false},
		{"card not found", ErrCardNotFound, true, false},
		{"generic duplicate", ErrDuplicate, false, true},
		{"email exists", ErrEmailExists, false, true},
		{"username exists", ErrUsernameExists, false, true},
		{"store error wrapping not found", NewStoreError("card", "get", "lookup", ErrCardNotFound), true, false},
		{"store error wrapping duplicate", NewStoreError("user", "create", "insert", ErrEmailExists), false, true},
		{"unrelated error", errors.New("boom"), false, false},
		{"transaction failure", ErrTransactionFailed, false, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantNotFound, IsNotFoundError(tc.err))
			assert.Equal(t, tc.wantDuplicate, IsDuplicateError(tc.err))
		})
	}
}
