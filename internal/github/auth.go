// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Authenticator applies credentials to an outgoing API request. The
// client calls Apply on every request, including retries and rate-limit
// re-issues, so implementations must be safe for repeated use.
type Authenticator interface {
	Apply(req *http.Request) error
}

// BasicAuthenticator authenticates requests with a username and password
// pair using HTTP basic auth.
type BasicAuthenticator struct {
	Username string
	Password string
}

// Apply sets the Authorization header using basic auth.
func (a *BasicAuthenticator) Apply(req *http.Request) error {
	req.SetBasicAuth(a.Username, a.Password)
	return nil
}

// TokenAuthenticator authenticates requests with a personal access token.
// Tokens are resolved through an oauth2.TokenSource so callers can supply
// refreshing sources as well as static tokens.
type TokenAuthenticator struct {
	source oauth2.TokenSource
}

// NewTokenAuthenticator returns a TokenAuthenticator backed by a static
// token.
func NewTokenAuthenticator(token string) *TokenAuthenticator {
	return &TokenAuthenticator{
		source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
	}
}

// NewTokenSourceAuthenticator returns a TokenAuthenticator backed by an
// arbitrary token source.
func NewTokenSourceAuthenticator(source oauth2.TokenSource) *TokenAuthenticator {
	return &TokenAuthenticator{source: source}
}

// Apply sets the Authorization header from the current token.
func (a *TokenAuthenticator) Apply(req *http.Request) error {
	tok, err := a.source.Token()
	if err != nil {
		return fmt.Errorf("resolving access token: %w", err)
	}
	tok.SetAuthHeader(req)
	return nil
}
