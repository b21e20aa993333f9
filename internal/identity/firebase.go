// Package identity verifies bearer ID tokens issued by Firebase
// Authentication and yields the caller's email as the request principal.
package identity

import (
	"context"
	"errors"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	// ErrInvalidToken is returned when the token fails verification.
	ErrInvalidToken = errors.New("invalid id token")
	// ErrNoEmail is returned for a valid token without an email claim.
	ErrNoEmail = errors.New("id token carries no email")
)

// tokenVerifier is the subset of *auth.Client used here.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier checks ID tokens against a Firebase project.
type FirebaseVerifier struct {
	client tokenVerifier
}

// NewFirebaseVerifier initializes a Firebase app from a service-account JSON
// file and returns a verifier bound to its Auth client.
func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{client: client}, nil
}

// VerifyToken validates raw and returns the email claim.
func (v *FirebaseVerifier) VerifyToken(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidToken
	}
	tok, err := v.client.VerifyIDToken(ctx, raw)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	email, _ := tok.Claims["email"].(string)
	if email == "" {
		return "", ErrNoEmail
	}
	return email, nil
}
