package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  Environment
	}{
		{"production", Production},
		{"prod", Production},
		{"PRODUCTION", Production},
		{"development", Development},
		{"", Development},
		{"garbage", Development},
	}

	for _, tt := range tests {
		t.Setenv("OMZ_ENV", tt.value)
		assert.Equal(t, tt.want, FromEnv(), tt.value)
	}
}
