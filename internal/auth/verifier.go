// Package auth verifies bearer tokens against Supabase and broadcasts
// sign-in and sign-out events to interested services.
package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/trilhasbrasil/backend/internal/domain"
)

// Verifier turns an access token into the user it belongs to
type Verifier interface {
	Verify(ctx context.Context, token string) (domain.User, error)
}

// SupabaseVerifier asks the Supabase auth server who owns a token
type SupabaseVerifier struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewSupabaseVerifier creates a verifier for the project at baseURL
func NewSupabaseVerifier(baseURL, anonKey string) *SupabaseVerifier {
	return &SupabaseVerifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Verify calls GET /auth/v1/user with the token
func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, fmt.Errorf("auth: empty token: %w", domain.ErrUnauthorized)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth: failed to create request: %w", err)
	}
	req.Header.Set("apikey", v.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.User{}, fmt.Errorf("auth: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.User{}, fmt.Errorf("auth: token rejected: %w", domain.ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		return domain.User{}, fmt.Errorf("auth: user endpoint returned status %d", resp.StatusCode)
	}

	res := gjson.ParseBytes(body)
	id := res.Get("id").String()
	if id == "" {
		return domain.User{}, fmt.Errorf("auth: response without user id: %w", domain.ErrUnauthorized)
	}

	user := domain.User{
		ID:       id,
		Email:    res.Get("email").String(),
		Metadata: make(map[string]string),
	}
	res.Get("user_metadata").ForEach(func(key, value gjson.Result) bool {
		user.Metadata[key.String()] = value.String()
		return true
	})
	return user, nil
}

// DevTokenPrefix marks tokens accepted by DevVerifier
const DevTokenPrefix = "dev-"

// DevVerifier accepts tokens of the form dev-<userID>. It exists for local
// development without a Supabase project and must not run in production.
type DevVerifier struct{}

// Verify extracts the user id from a dev token
func (DevVerifier) Verify(ctx context.Context, token string) (domain.User, error) {
	id := strings.TrimPrefix(token, DevTokenPrefix)
	if id == token || id == "" {
		return domain.User{}, fmt.Errorf("auth: not a dev token: %w", domain.ErrUnauthorized)
	}
	return domain.User{
		ID:       id,
		Email:    id + "@dev.local",
		Metadata: map[string]string{"full_name": id},
	}, nil
}

var (
	_ Verifier = (*SupabaseVerifier)(nil)
	_ Verifier = DevVerifier{}
)
