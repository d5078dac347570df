package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/action-register/backend/config"
	"github.com/action-register/backend/pkg/api"
	"github.com/mitchellh/mapstructure"
	"github.com/puzpuzpuz/xsync"
)

const notionVersion = "2022-06-28"

const (
	oauthTokenResource    = "oauth_token"
	blockChildrenResource = "block_children"
)

type Endpoint struct {
	apiURL       string
	clientID     string
	clientSecret string
	redirectURI  string

	apiGenerator      api.Generator
	rateLimitResource *xsync.MapOf[string, *xsync.MapOf[string, time.Time]]
}

func New(cfg config.NotionConfigs) *Endpoint {
	return &Endpoint{
		apiURL:            cfg.APIURL,
		clientID:          cfg.ClientID,
		clientSecret:      cfg.ClientSecret,
		redirectURI:       cfg.RedirectURI,
		apiGenerator:      api.NewGenerator(),
		rateLimitResource: xsync.NewMapOf[*xsync.MapOf[string, time.Time]](),
	}
}

// ExchangeCode trades an authorization code for an access token and
// workspace descriptor. Notion expects Basic auth built from the
// integration's client id and secret.
func (e *Endpoint) ExchangeCode(ctx context.Context, code string) (OAuthToken, error) {
	if err := e.checkLimitingResource(oauthTokenResource, e.clientID); err != nil {
		return OAuthToken{}, err
	}

	resp, err := e.apiGenerator.New(e.apiURL, "/v1/oauth/token").
		Body(api.JSON{
			"grant_type":   "authorization_code",
			"code":         code,
			"redirect_uri": e.redirectURI,
		}).
		POST(ctx, api.Basic(e.clientID, e.clientSecret))
	if err != nil {
		return OAuthToken{}, err
	}

	if err := e.checkTooManyRequest(resp, oauthTokenResource, e.clientID); err != nil {
		return OAuthToken{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return OAuthToken{}, errors.New("invalid response")
	}

	if resp.Code != http.StatusOK {
		if name, err := body.GetString("error"); err == nil && name != "" {
			return OAuthToken{}, fmt.Errorf("token exchange failed: %s", name)
		}
		return OAuthToken{}, fmt.Errorf("token exchange failed with status %d", resp.Code)
	}

	var token OAuthToken
	if err := mapstructure.Decode(map[string]any(body), &token); err != nil {
		return OAuthToken{}, fmt.Errorf("cannot decode token exchange response: %w", err)
	}

	if token.AccessToken == "" {
		return OAuthToken{}, errors.New("token exchange response has no access token")
	}

	return token, nil
}

// DiscoverPages resolves the three database page ids inside a duplicated
// template by taking the first grandchild of each of the root's first
// three children, in the template's fixed order task, category, action.
// The traversal is positional by contract with the published template.
func (e *Endpoint) DiscoverPages(ctx context.Context, accessToken, rootPageID string) (Pages, error) {
	children, err := e.listBlockChildren(ctx, accessToken, rootPageID)
	if err != nil {
		return Pages{}, err
	}

	if len(children) < 3 {
		return Pages{}, fmt.Errorf("template page %s has %d children, need 3", rootPageID, len(children))
	}

	var pages Pages
	for i, target := range []*string{&pages.TaskPageID, &pages.CategoryPageID, &pages.ActionPageID} {
		grandchildren, err := e.listBlockChildren(ctx, accessToken, children[i])
		if err != nil {
			return Pages{}, err
		}

		if len(grandchildren) == 0 {
			return Pages{}, fmt.Errorf("template block %s has no children", children[i])
		}

		*target = grandchildren[0]
	}

	return pages, nil
}

func (e *Endpoint) listBlockChildren(ctx context.Context, accessToken, blockID string) ([]string, error) {
	if err := e.checkLimitingResource(blockChildrenResource, blockID); err != nil {
		return nil, err
	}

	resp, err := e.apiGenerator.New(e.apiURL, "/v1/blocks/%s/children", blockID).
		Header("Notion-Version", notionVersion).
		GET(ctx, api.OAuth2("Bearer", accessToken))
	if err != nil {
		return nil, err
	}

	if err := e.checkTooManyRequest(resp, blockChildrenResource, blockID); err != nil {
		return nil, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, errors.New("invalid response")
	}

	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("listing children of %s failed with status %d", blockID, resp.Code)
	}

	results, err := body.GetArray("results")
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(results))
	for _, obj := range results {
		id, err := obj.GetString("id")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (e *Endpoint) checkLimitingResource(resource, identifier string) error {
	if limit, ok := e.rateLimitResource.Load(resource); ok {
		if resetAt, ok := limit.Load(identifier); ok {
			if resetAt.After(time.Now()) {
				return wrapRateLimit(resetAt.Unix())
			}

			// If the rate limit is reset, delete the limit for this resource.
			limit.Delete(identifier)
		}
	}

	return nil
}

func (e *Endpoint) checkTooManyRequest(resp *api.Response, resource, identifier string) error {
	if resp.Code == http.StatusTooManyRequests {
		// Notion reports the backoff in seconds via Retry-After.
		retryAfter, err := strconv.Atoi(resp.Header.Get("Retry-After"))
		if err != nil {
			return err
		}

		resetAt := time.Now().Add(time.Duration(retryAfter) * time.Second)
		resourceLimiter, _ := e.rateLimitResource.LoadOrStore(resource, xsync.NewMapOf[time.Time]())
		resourceLimiter.Store(identifier, resetAt)
		return wrapRateLimit(resetAt.Unix())
	}

	return nil
}
