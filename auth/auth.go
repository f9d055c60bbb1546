// Package auth verifies Firebase ID tokens and extracts the caller's
// profile. It consumes the identity provider; admission is decided
// elsewhere.
package auth

import (
	"context"
	"fmt"
	"net/http"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

const fallbackDisplayName = "User"

// Profile is the credential/profile bundle of a verified identity.
type Profile struct {
	UID         string
	Email       string
	DisplayName string
}

// Verifier checks ID tokens against the Firebase project.
type Verifier struct {
	client *fbauth.Client
}

// NewVerifier initializes the Firebase app. credentialsJSON may be empty,
// in which case application default credentials are used.
func NewVerifier(ctx context.Context, credentialsJSON string) (*Verifier, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init auth client: %w", err)
	}
	return &Verifier{client: client}, nil
}

// Authenticate verifies the bearer ID token carried by the request and
// returns the profile it asserts.
func (v *Verifier) Authenticate(r *http.Request) (*Profile, error) {
	jwtToken, err := BearerTokenFromRequest(r)
	if err != nil {
		return nil, err
	}
	token, err := v.client.VerifyIDToken(r.Context(), jwtToken)
	if err != nil {
		return nil, fmt.Errorf("verify ID token: %w", err)
	}
	return profileFromToken(token), nil
}

// profileFromToken maps a verified token to a Profile. The uid falls
// back to the user_id claim (the Identity Toolkit localId, identical for
// this provider); the display name falls back to the email, then to a
// generic placeholder.
func profileFromToken(t *fbauth.Token) *Profile {
	p := &Profile{UID: t.UID}
	if p.UID == "" {
		if v, ok := t.Claims["user_id"].(string); ok {
			p.UID = v
		}
	}
	if v, ok := t.Claims["email"].(string); ok {
		p.Email = v
	}
	if v, ok := t.Claims["name"].(string); ok {
		p.DisplayName = v
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Email
	}
	if p.DisplayName == "" {
		p.DisplayName = fallbackDisplayName
	}
	return p
}
