package auth

import (
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
)

func TestProfileFromToken(t *testing.T) {
	tests := []struct {
		name     string
		token    *fbauth.Token
		expected Profile
	}{
		{
			name: "full claims",
			token: &fbauth.Token{
				UID: "u1",
				Claims: map[string]any{
					"email": "a@x.com",
					"name":  "Alice",
				},
			},
			expected: Profile{UID: "u1", Email: "a@x.com", DisplayName: "Alice"},
		},
		{
			name: "uid falls back to user_id claim",
			token: &fbauth.Token{
				Claims: map[string]any{
					"user_id": "local1",
					"email":   "a@x.com",
				},
			},
			expected: Profile{UID: "local1", Email: "a@x.com", DisplayName: "a@x.com"},
		},
		{
			name: "display name falls back to email",
			token: &fbauth.Token{
				UID: "u1",
				Claims: map[string]any{
					"email": "a@x.com",
				},
			},
			expected: Profile{UID: "u1", Email: "a@x.com", DisplayName: "a@x.com"},
		},
		{
			name: "no email and no name",
			token: &fbauth.Token{
				UID:    "u1",
				Claims: map[string]any{},
			},
			expected: Profile{UID: "u1", DisplayName: "User"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, *profileFromToken(tt.token))
		})
	}
}
