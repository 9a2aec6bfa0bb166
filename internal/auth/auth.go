// Package auth loads credentials for the recognition engine.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"strings"

	"voxpi/internal/assistant"
)

// ErrNoCredentials is wrapped by AuthError when no token could be found.
var ErrNoCredentials = errors.New("no credentials")

// AuthError reports why credentials are unavailable.
type AuthError struct {
	Source string
	Err    error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s: %v", e.Source, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Provider looks up the engine token in the environment first, then in a
// JSON credentials file of the form {"token": "..."}.
type Provider struct {
	Env  string
	File string
}

var _ assistant.CredentialProvider = (*Provider)(nil)

func (p *Provider) Credentials(_ context.Context) (assistant.Credentials, error) {
	if p.Env != "" {
		if token := strings.TrimSpace(os.Getenv(p.Env)); token != "" {
			log.Debug("Loaded credentials", "env", p.Env)
			return assistant.Credentials{Token: token}, nil
		}
	}

	if p.File == "" {
		return assistant.Credentials{}, &AuthError{Source: "env " + p.Env, Err: ErrNoCredentials}
	}

	data, err := os.ReadFile(p.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %s does not exist", ErrNoCredentials, p.File)
		}
		return assistant.Credentials{}, &AuthError{Source: p.File, Err: err}
	}

	var creds assistant.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return assistant.Credentials{}, &AuthError{Source: p.File, Err: fmt.Errorf("decode: %w", err)}
	}
	if creds.Token == "" {
		return assistant.Credentials{}, &AuthError{Source: p.File, Err: ErrNoCredentials}
	}

	log.Debug("Loaded credentials", "file", p.File)
	return creds, nil
}
