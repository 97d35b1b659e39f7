package spotify

import (
	"context"
	"log"
	"time"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"streamtoshelf/blueprint"
)

// tokenSafetyMargin keeps us from presenting a token that expires mid-flight.
const tokenSafetyMargin = time.Minute

const tokenExchangeTimeout = 10 * time.Second

// TokenStore is a single-slot cache for the metadata provider's
// client-credentials bearer token. It is shared across requests and carries
// no lock: two requests racing an expired slot both refresh, which is
// harmless because the exchange is idempotent.
type TokenStore struct {
	ClientID     string
	ClientSecret string
	TokenURL     string

	token     string
	expiresAt time.Time
}

// NewTokenStore returns a token store pointed at the provider's real token
// endpoint. TokenURL is exported so tests can point it elsewhere.
func NewTokenStore(clientID, clientSecret string) *TokenStore {
	return &TokenStore{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
}

// Token returns the cached bearer token, exchanging client credentials for a
// fresh one when the slot is empty or past its safety margin. A failed
// exchange leaves the slot untouched and reports EAUTHFAILED.
func (t *TokenStore) Token(ctx context.Context) (string, error) {
	if t.token != "" && time.Now().Before(t.expiresAt) {
		return t.token, nil
	}

	tctx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancel()

	config := &clientcredentials.Config{
		ClientID:     t.ClientID,
		ClientSecret: t.ClientSecret,
		TokenURL:     t.TokenURL,
	}

	token, err := config.Token(tctx)
	if err != nil {
		log.Printf("[services][spotify][Token] error - could not exchange client credentials: %v", err)
		if ctx.Err() != nil {
			return "", blueprint.ECANCELLED
		}
		return "", blueprint.EAUTHFAILED
	}

	expiry := token.Expiry
	if expiry.IsZero() {
		expiry = time.Now().Add(time.Hour)
	}

	t.token = token.AccessToken
	t.expiresAt = expiry.Add(-tokenSafetyMargin)
	return t.token, nil
}

// Reset empties the slot. Test helper.
func (t *TokenStore) Reset() {
	t.token = ""
	t.expiresAt = time.Time{}
}
