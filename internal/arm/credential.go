package arm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"golang.org/x/oauth2"
)

// ManagementScope is the token scope for ARM requests.
const ManagementScope = "https://management.azure.com/.default"

// staticTokenLifetime is the expiry reported to azcore for tokens that carry none.
const staticTokenLifetime = time.Hour

// ErrNoCredential is returned by a token source that has neither a token nor a credential.
var ErrNoCredential = errors.New("no access token or credential configured")

// NewDefaultTokenSource returns a static source when accessToken is set,
// otherwise one backed by azidentity's DefaultAzureCredential chain
// (environment service principal, workload identity, managed identity, Azure
// CLI, Azure Developer CLI, Azure PowerShell). A nil transport uses the SDK
// default.
func NewDefaultTokenSource(ctx context.Context, accessToken string, transport policy.Transporter) (oauth2.TokenSource, error) {
	if strings.TrimSpace(accessToken) != "" {
		return NewTokenSource(ctx, accessToken, nil), nil
	}
	opts := &azidentity.DefaultAzureCredentialOptions{}
	if transport != nil {
		opts.ClientOptions.Transport = transport
	}
	cred, err := azidentity.NewDefaultAzureCredential(opts)
	if err != nil {
		return nil, fmt.Errorf("create azure credential: %w", err)
	}
	return NewTokenSource(ctx, "", cred), nil
}

// NewTokenSource returns a static source when accessToken is set, otherwise a
// cached source that asks cred for ARM tokens.
func NewTokenSource(ctx context.Context, accessToken string, cred azcore.TokenCredential) oauth2.TokenSource {
	if t := strings.TrimSpace(accessToken); t != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: t, TokenType: "Bearer"})
	}
	if cred == nil {
		return errTokenSource{}
	}
	return oauth2.ReuseTokenSource(nil, &credentialTokenSource{ctx: ctx, cred: cred})
}

type errTokenSource struct{}

func (errTokenSource) Token() (*oauth2.Token, error) { return nil, ErrNoCredential }

// credentialTokenSource requests a fresh ARM token from an azcore credential on each call.
type credentialTokenSource struct {
	ctx  context.Context
	cred azcore.TokenCredential
}

// Token implements oauth2.TokenSource.
func (s *credentialTokenSource) Token() (*oauth2.Token, error) {
	at, err := s.cred.GetToken(s.ctx, policy.TokenRequestOptions{Scopes: []string{ManagementScope}})
	if err != nil {
		return nil, fmt.Errorf("get arm token: %w", err)
	}
	return &oauth2.Token{
		AccessToken: at.Token,
		TokenType:   "Bearer",
		Expiry:      at.ExpiresOn,
	}, nil
}

// Credential adapts an oauth2 token source to the azcore credential interface
// so SDK clients share the source's cached token.
func Credential(ts oauth2.TokenSource) azcore.TokenCredential {
	return tokenSourceCredential{ts: ts}
}

type tokenSourceCredential struct {
	ts oauth2.TokenSource
}

// GetToken implements azcore.TokenCredential. The requested scopes are
// ignored; the source always yields ARM tokens.
func (c tokenSourceCredential) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	tok, err := c.ts.Token()
	if err != nil {
		return azcore.AccessToken{}, err
	}
	expires := tok.Expiry
	if expires.IsZero() {
		expires = time.Now().Add(staticTokenLifetime)
	}
	return azcore.AccessToken{Token: tok.AccessToken, ExpiresOn: expires}, nil
}
