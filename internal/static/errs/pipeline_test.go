package errs

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_MatchesKindAndCause(t *testing.T) {
	err := IOError("write artifact", fs.ErrPermission)

	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NotErrorIs(t, err, ErrSpawn)
	assert.Equal(t, "write artifact: artifact io failed: permission denied", err.Error())
}

func TestError_NilCause(t *testing.T) {
	err := ValidationError("synthesize", nil)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "synthesize: generated script failed validation", err.Error())

	var typed *Error
	assert.True(t, errors.As(err, &typed))
	assert.Equal(t, "synthesize", typed.Op)
}

func TestAttempted(t *testing.T) {
	assert.True(t, Attempted(RenderError("render", errors.New("dns"))))
	assert.True(t, Attempted(GenerationError("complete", errors.New("quota"))))
	assert.True(t, Attempted(ValidationError("synthesize", nil)))
	assert.False(t, Attempted(SpawnError("run", errors.New("no npx"))))
	assert.False(t, Attempted(IOError("write", errors.New("disk full"))))
}
