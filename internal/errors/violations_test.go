package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolations_Empty(t *testing.T) {
	var v Violations

	assert.True(t, v.Empty())
	assert.Nil(t, v.Err())
}

func TestViolations_SingleErrorPassesThrough(t *testing.T) {
	var v Violations
	v.Add(NotFound("User not found"))

	err := v.Err()

	require.NotNil(t, err)
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, "User not found", err.Message)
}

func TestViolations_MultipleErrorsFoldIntoOne(t *testing.T) {
	var v Violations
	v.Add(NotFound("User not found"))
	v.Check(false, "Stars must be between 1 and 5")
	v.Check(true, "never recorded")

	err := v.Err()

	require.NotNil(t, err)
	assert.Equal(t, CodeValidation, err.Code)
	assert.Contains(t, err.Message, "User not found")
	assert.Contains(t, err.Message, "Stars must be between 1 and 5")
	assert.NotContains(t, err.Message, "never recorded")

	details, ok := err.Details.([]*Error)
	require.True(t, ok)
	assert.Len(t, details, 2)
}

func TestViolations_NilAddIgnored(t *testing.T) {
	var v Violations
	v.Add(nil)

	assert.True(t, v.Empty())
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := Conflict("Duplicate bookmark")

	assert.True(t, Is(err, ErrConflict))
	assert.False(t, Is(err, ErrNotFound))
}

func TestCode_HTTPStatus(t *testing.T) {
	assert.Equal(t, 404, CodeNotFound.HTTPStatus())
	assert.Equal(t, 409, CodeConflict.HTTPStatus())
	assert.Equal(t, 400, CodeValidation.HTTPStatus())
	assert.Equal(t, 400, CodeInvalid.HTTPStatus())
	assert.Equal(t, 500, CodeInternal.HTTPStatus())
}
