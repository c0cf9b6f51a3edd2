package errdef_test

import (
	"errors"
	"testing"

	"github.com/confdeck/deck-manager/internal/errdef"

	"github.com/stretchr/testify/assert"
)

func TestIsForbidden(t *testing.T) {
	assert.False(t, errdef.IsForbidden(errors.New("some error")))
	assert.True(t, errdef.IsForbidden(errdef.NewForbidden("some error")))
}

func TestIsBadRequest(t *testing.T) {
	assert.False(t, errdef.IsBadRequest(errors.New("some error")))
	assert.True(t, errdef.IsBadRequest(errdef.NewBadRequest("some error")))
}

func TestIsDuplicate(t *testing.T) {
	assert.False(t, errdef.IsDuplicated(errors.New("some error")))
	assert.True(t, errdef.IsDuplicated(errdef.NewDuplicated("some error")))
}

func TestIsUnauthorized(t *testing.T) {
	assert.False(t, errdef.IsUnauthorized(errors.New("some error")))
	assert.True(t, errdef.IsUnauthorized(errdef.NewUnauthorized("some error")))
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, errdef.IsNotFound(errors.New("some error")))
	assert.True(t, errdef.IsNotFound(errdef.NewNotFound("some error")))
}

func TestIsSubmissionClosed(t *testing.T) {
	assert.False(t, errdef.IsSubmissionClosed(errors.New("some error")))
	assert.True(t, errdef.IsSubmissionClosed(errdef.NewSubmissionClosed("some error")))
}

func TestIsVotingDisabled(t *testing.T) {
	assert.False(t, errdef.IsVotingDisabled(errors.New("some error")))
	assert.True(t, errdef.IsVotingDisabled(errdef.NewVotingDisabled("some error")))
}

func TestTypesAreDistinct(t *testing.T) {
	assert.False(t, errdef.IsForbidden(errdef.NewVotingDisabled("some error")))
	assert.False(t, errdef.IsVotingDisabled(errdef.NewSubmissionClosed("some error")))
	assert.False(t, errdef.IsBadRequest(errdef.NewSubmissionClosed("some error")))
}
