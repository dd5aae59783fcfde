package session

import (
	"fmt"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

// Authenticator drives the session store from the GoTrue auth API:
// password sign-in, refresh-token refresh, sign-out and the initial
// session check all dispatch the corresponding event into the store.
type Authenticator struct {
	client gotrue.Client
	store  *Store
}

// NewAuthenticator builds an Authenticator over a custom GoTrue URL
// (the project's /auth/v1 endpoint).
func NewAuthenticator(authURL, apiKey string, store *Store) *Authenticator {
	client := gotrue.New("", apiKey).WithCustomGoTrueURL(authURL)
	return &Authenticator{client: client, store: store}
}

// Store exposes the underlying session store for subscriptions.
func (a *Authenticator) Store() *Store {
	return a.store
}

// SignIn performs a password grant and resolves the session to
// authenticated on success.
func (a *Authenticator) SignIn(email, password string) (Snapshot, error) {
	resp, err := a.client.Token(types.TokenRequest{
		GrantType: "password",
		Email:     email,
		Password:  password,
	})
	if err != nil {
		return a.store.Snapshot(), fmt.Errorf("sign-in failed: %w", err)
	}

	return a.store.Dispatch(Event{
		Type:        EventSignedIn,
		UserID:      resp.User.ID.String(),
		AccessToken: resp.AccessToken,
	}), nil
}

// Refresh exchanges a refresh token for a new access token and keeps the
// session authenticated.
func (a *Authenticator) Refresh(refreshToken string) (Snapshot, error) {
	resp, err := a.client.Token(types.TokenRequest{
		GrantType:    "refresh_token",
		RefreshToken: refreshToken,
	})
	if err != nil {
		return a.store.Snapshot(), fmt.Errorf("token refresh failed: %w", err)
	}

	return a.store.Dispatch(Event{
		Type:        EventTokenRefreshed,
		UserID:      resp.User.ID.String(),
		AccessToken: resp.AccessToken,
	}), nil
}

// SignOut revokes the session with the provider and resolves the store to
// anonymous. The store transition happens even when the provider call
// fails: the local session is gone either way.
func (a *Authenticator) SignOut(accessToken string) (Snapshot, error) {
	err := a.client.WithToken(accessToken).Logout()
	snapshot := a.store.Dispatch(Event{Type: EventSignedOut})
	if err != nil {
		return snapshot, fmt.Errorf("sign-out failed: %w", err)
	}
	return snapshot, nil
}

// CheckInitialSession resolves the loading state at startup: a valid token
// resolves to authenticated, anything else to anonymous.
func (a *Authenticator) CheckInitialSession(accessToken string) Snapshot {
	if accessToken == "" {
		return a.store.Dispatch(Event{Type: EventInitialSession})
	}

	user, err := a.client.WithToken(accessToken).GetUser()
	if err != nil {
		return a.store.Dispatch(Event{Type: EventInitialSession})
	}

	return a.store.Dispatch(Event{
		Type:        EventInitialSession,
		UserID:      user.ID.String(),
		AccessToken: accessToken,
	})
}
