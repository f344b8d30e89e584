package services

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (GoogleIdentity, error)
}

type googleIDTokenVerifier struct {
	audience string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// NewGoogleVerifier checks Google ID tokens against the OAuth client id the
// front-end signs in with.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleIDTokenVerifier{
		audience: clientID,
		validate: idtoken.Validate,
	}
}

func (v *googleIDTokenVerifier) Verify(ctx context.Context, rawIDToken string) (GoogleIdentity, error) {
	if v.audience == "" {
		return GoogleIdentity{}, fmt.Errorf("google sign-in is not configured")
	}
	payload, err := v.validate(ctx, rawIDToken, v.audience)
	if err != nil {
		return GoogleIdentity{}, fmt.Errorf("validate id token: %w", err)
	}

	id := GoogleIdentity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		id.Email = email
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		id.EmailVerified = verified
	}
	if name, ok := payload.Claims["name"].(string); ok {
		id.Name = name
	}
	return id, nil
}
