package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewParsingError("bad timestamp", fmt.Errorf("cannot parse %q", "nope")),
			want: `[PARSING] bad timestamp: cannot parse "nope"`,
		},
		{
			name: "without cause",
			err:  NewAppValidationError("missing column"),
			want: "[VALIDATION] missing column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewStorageError("write failed", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError("trailer activity", "CHECKIN DATE TIME", "required column is missing")

	assert.Equal(t, ErrTypeSchema, err.Type)
	assert.Contains(t, err.Error(), "trailer activity")
	assert.Contains(t, err.Error(), "CHECKIN DATE TIME")
	assert.Equal(t, "trailer activity", err.Context["file"])
	assert.Equal(t, "CHECKIN DATE TIME", err.Context["column"])
}

func TestAppError_WithContext(t *testing.T) {
	err := NewConfigError("bad config", nil).
		WithContext("path", "config.yaml").
		WithContext("row", 3)

	assert.Equal(t, "config.yaml", err.Context["path"])
	assert.Equal(t, 3, err.Context["row"])
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("compliance table")
	assert.Equal(t, ErrTypeNotFound, err.Type)
	assert.Equal(t, "[NOT_FOUND] compliance table not found", err.Error())
}
