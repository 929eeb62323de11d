package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad"), KindValidation},
		{"wrapped conflict", fmt.Errorf("ctx: %w", Conflict("taken")), KindConflict},
		{"plain error", errors.New("boom"), KindInternal},
		{"internal", Internal("failed", errors.New("io")), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Doctor not found", MessageOf(NotFound("Doctor not found"), "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("pq: connection refused"), "fallback"))
	assert.Equal(t, "fallback", MessageOf(Internal("secret detail", errors.New("x")), "fallback"))
}

func TestSentinelIdentity(t *testing.T) {
	sentinel := NotFound("Appointment not found")
	wrapped := fmt.Errorf("load: %w", sentinel)

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
}
