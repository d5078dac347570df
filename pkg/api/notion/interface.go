package notion

import "context"

type IEndpoint interface {
	ExchangeCode(ctx context.Context, code string) (OAuthToken, error)
	DiscoverPages(ctx context.Context, accessToken, rootPageID string) (Pages, error)
}
