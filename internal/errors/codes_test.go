package errors

import (
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineError(t *testing.T) {
	cause := goerrors.New("disk full")
	err := Persistence("failed to write calendar document", cause)

	assert.Contains(t, err.Error(), "PERSISTENCE")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, cause, goerrors.Unwrap(err))
}

func TestIsCode(t *testing.T) {
	err := InvalidInput("bad content type")
	assert.True(t, IsCode(err, ErrCodeInvalidInput))
	assert.False(t, IsCode(err, ErrCodeScheduleFormat))
	assert.False(t, IsCode(goerrors.New("plain"), ErrCodeInvalidInput))
}

func TestGetCodeFromError(t *testing.T) {
	assert.Equal(t, ErrCodeScheduleFormat, GetCodeFromError(ScheduleFormat("bad", nil), ErrCodeExtractionFailed))
	assert.Equal(t, ErrCodeExtractionFailed, GetCodeFromError(goerrors.New("plain"), ErrCodeExtractionFailed))
}
