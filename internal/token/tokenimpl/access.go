package tokenimpl

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"golang.org/x/oauth2"
)

type account struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	AccessToken              string `json:"access_token"`
	InstagramBusinessAccount *struct {
		ID string `json:"id"`
	} `json:"instagram_business_account"`
}

type accountsPage struct {
	Data   []account `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

const maxAccountPages = 10

func (p *ProviderImpl) GetAccessToken(ctx context.Context, scope domain.Scope) (domain.Token, error) {
	switch scope {
	case domain.ScopeStorage:
		return p.storageToken(ctx)
	case domain.ScopeInstagram, domain.ScopeFacebook:
		return p.metaToken(ctx, scope)
	default:
		return domain.Token{}, fmt.Errorf("%w: unknown token scope %q", errors.ErrAuth, scope)
	}
}

func (p *ProviderImpl) storageToken(ctx context.Context) (domain.Token, error) {
	if p.refreshToken == "" {
		return domain.Token{}, fmt.Errorf("%w: storage refresh token is not configured", errors.ErrAuth)
	}

	tok, err := p.storage.TokenSource(ctx, &oauth2.Token{RefreshToken: p.refreshToken}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			status := 0
			if retrieveErr.Response != nil {
				status = retrieveErr.Response.StatusCode
			}
			return domain.Token{}, fmt.Errorf("%w: storage token exchange failed with status %d: %s",
				errors.ErrAuth, status, string(retrieveErr.Body))
		}
		return domain.Token{}, fmt.Errorf("%w: storage token exchange failed: %v", errors.ErrAuth, err)
	}

	result := domain.Token{Value: tok.AccessToken, Scope: domain.ScopeStorage}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		result.ExpiresAt = &expiry
	}
	p.logger.Debug("Storage token refreshed", "expires_at", tok.Expiry)
	return result, nil
}

func (p *ProviderImpl) metaToken(ctx context.Context, scope domain.Scope) (domain.Token, error) {
	if p.userToken == "" {
		return domain.Token{}, fmt.Errorf("%w: meta token is not configured", errors.ErrAuth)
	}
	if !p.resolvePageToken {
		return domain.Token{Value: p.userToken, Scope: scope}, nil
	}

	value, err := p.pageToken(ctx)
	if err != nil {
		return domain.Token{}, err
	}
	p.logger.Debug("Page token resolved", "scope", scope)
	return domain.Token{Value: value, Scope: scope}, nil
}

// pageToken finds the page-scoped token for the configured page, or for the page
// linked to the configured Instagram account.
func (p *ProviderImpl) pageToken(ctx context.Context) (string, error) {
	path := "me/accounts"
	query := url.Values{
		"fields":       {"id,name,access_token,instagram_business_account"},
		"access_token": {p.userToken},
	}

	for page := 0; page < maxAccountPages && path != ""; page++ {
		var res accountsPage
		if err := p.graph.Get(ctx, "accounts", path, query, &res); err != nil {
			return "", fmt.Errorf("%w: page token exchange failed: %v", errors.ErrAuth, err)
		}
		for _, acc := range res.Data {
			if p.matches(acc) && acc.AccessToken != "" {
				return acc.AccessToken, nil
			}
		}
		// paging.next already carries the query.
		path, query = res.Paging.Next, nil
	}

	if p.pageID == "" {
		return "", fmt.Errorf("%w: no page found for instagram account %s", errors.ErrAuth, p.instagramID)
	}
	return p.pageTokenByID(ctx)
}

func (p *ProviderImpl) matches(acc account) bool {
	if p.pageID != "" && acc.ID == p.pageID {
		return true
	}
	return p.instagramID != "" && acc.InstagramBusinessAccount != nil && acc.InstagramBusinessAccount.ID == p.instagramID
}

func (p *ProviderImpl) pageTokenByID(ctx context.Context) (string, error) {
	query := url.Values{
		"fields":       {"access_token"},
		"access_token": {p.userToken},
	}
	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := p.graph.Get(ctx, "page token", p.pageID, query, &res); err != nil {
		return "", fmt.Errorf("%w: page token exchange failed for %s: %v", errors.ErrAuth, p.pageID, err)
	}
	if res.AccessToken == "" {
		return "", fmt.Errorf("%w: page %s not found among accounts of the configured token", errors.ErrAuth, p.pageID)
	}
	return res.AccessToken, nil
}

type debugTokenResponse struct {
	Data struct {
		IsValid   bool     `json:"is_valid"`
		ExpiresAt int64    `json:"expires_at"`
		Scopes    []string `json:"scopes"`
		Error     *struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"data"`
}

func (p *ProviderImpl) CheckExpiry(ctx context.Context, tok domain.Token) (domain.TokenInfo, error) {
	inspector := p.appToken
	if inspector == "" {
		inspector = tok.Value
	}
	query := url.Values{
		"input_token":  {tok.Value},
		"access_token": {inspector},
	}

	var res debugTokenResponse
	if err := p.graph.Get(ctx, "debug token", "debug_token", query, &res); err != nil {
		return domain.TokenInfo{}, fmt.Errorf("%w: token introspection failed: %v", errors.ErrAuth, err)
	}

	info := domain.TokenInfo{Valid: res.Data.IsValid, Scopes: res.Data.Scopes}
	if res.Data.ExpiresAt > 0 {
		expiry := time.Unix(res.Data.ExpiresAt, 0)
		info.ExpiresAt = &expiry
	}
	if res.Data.Error != nil {
		p.logger.Warn("Token reported invalid", "reason", res.Data.Error.Message)
	}
	return info, nil
}
