package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		enabled             bool
		readOnlyWithoutAuth bool
		method              string
		want                bool
	}{
		{
			name:    "auth disabled never requires auth",
			enabled: false,
			method:  http.MethodPost,
			want:    false,
		},
		{
			name:                "auth disabled with read-only flag set",
			enabled:             false,
			readOnlyWithoutAuth: true,
			method:              http.MethodDelete,
			want:                false,
		},
		{
			name:                "GET exempt when read-only flag set",
			enabled:             true,
			readOnlyWithoutAuth: true,
			method:              http.MethodGet,
			want:                false,
		},
		{
			name:                "POST gated when read-only flag set",
			enabled:             true,
			readOnlyWithoutAuth: true,
			method:              http.MethodPost,
			want:                true,
		},
		{
			name:                "PUT gated when read-only flag set",
			enabled:             true,
			readOnlyWithoutAuth: true,
			method:              http.MethodPut,
			want:                true,
		},
		{
			name:                "DELETE gated when read-only flag set",
			enabled:             true,
			readOnlyWithoutAuth: true,
			method:              http.MethodDelete,
			want:                true,
		},
		{
			name:                "GET gated when read-only flag unset",
			enabled:             true,
			readOnlyWithoutAuth: false,
			method:              http.MethodGet,
			want:                true,
		},
		{
			name:                "POST gated when read-only flag unset",
			enabled:             true,
			readOnlyWithoutAuth: false,
			method:              http.MethodPost,
			want:                true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Required(tt.enabled, tt.readOnlyWithoutAuth, tt.method)
			assert.Equal(t, tt.want, got)
		})
	}
}
