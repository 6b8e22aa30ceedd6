package ebay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrAuth indicates the credential exchange was rejected or unreachable.
var ErrAuth = errors.New("ebay: authentication failed")

// oauthScope is the read-only scope the Browse API requires.
const oauthScope = "https://api.ebay.com/oauth/api_scope"

const (
	// defaultTokenTTL is assumed when the token endpoint omits expires_in.
	defaultTokenTTL = 2 * time.Hour

	// tokenExpiryBuffer is how much validity a returned token must still
	// have. Tokens closer to expiry than this trigger a re-authentication.
	tokenExpiryBuffer = 60 * time.Second
)

// TokenManager obtains and caches an application token via the OAuth2
// client-credentials grant. The token lives in memory only and is replaced
// wholesale on refresh, never persisted.
type TokenManager struct {
	conf  *clientcredentials.Config
	httpc *http.Client
	token *oauth2.Token

	// now is swappable for tests.
	now func() time.Time
}

// NewTokenManager creates a token manager for the given application
// credentials and token endpoint.
func NewTokenManager(appID, certID, tokenURL string) *TokenManager {
	return &TokenManager{
		conf: &clientcredentials.Config{
			ClientID:     appID,
			ClientSecret: certID,
			TokenURL:     tokenURL,
			Scopes:       []string{oauthScope},
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpc: &http.Client{Timeout: 30 * time.Second},
		now:   time.Now,
	}
}

// Token returns a bearer token valid for at least another 60 seconds,
// reusing the cached token when possible. Re-authentication happens at most
// once per expiry window, not once per API call.
func (tm *TokenManager) Token(ctx context.Context) (string, error) {
	if tm.token != nil && tm.token.Expiry.Sub(tm.now()) > tokenExpiryBuffer {
		slog.Debug("Using cached OAuth token")
		return tm.token.AccessToken, nil
	}

	slog.Info("Requesting new OAuth token")

	ctx = context.WithValue(ctx, oauth2.HTTPClient, tm.httpc)
	token, err := tm.conf.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}

	if token.Expiry.IsZero() {
		token.Expiry = tm.now().Add(defaultTokenTTL)
	}
	tm.token = token

	slog.Info("OAuth token obtained", "expires_at", token.Expiry)
	return token.AccessToken, nil
}
