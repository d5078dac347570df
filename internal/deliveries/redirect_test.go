package deliveries_test

import (
	"context"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/action-register/backend/internal/deliveries"
	"github.com/action-register/backend/internal/domain"
	"github.com/action-register/backend/internal/repository"
	"github.com/action-register/backend/internal/testutil"
	"github.com/action-register/backend/pkg/api/notion"
	"github.com/action-register/backend/pkg/crypto"
	"github.com/stretchr/testify/require"
)

type stubNotionEndpoint struct {
	token notion.OAuthToken
	pages notion.Pages
}

func (s *stubNotionEndpoint) ExchangeCode(context.Context, string) (notion.OAuthToken, error) {
	return s.token, nil
}

func (s *stubNotionEndpoint) DiscoverPages(context.Context, string, string) (notion.Pages, error) {
	return s.pages, nil
}

func newRedirectHandler(t *testing.T) (*deliveries.RedirectHandler, *crypto.StateTokenCodec) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	codec, err := crypto.NewStateTokenCodec(key)
	require.NoError(t, err)

	token := notion.OAuthToken{
		AccessToken:          "access-token",
		WorkspaceName:        "My Workspace",
		DuplicatedTemplateID: "template-id",
	}
	registerDomain := domain.NewRegisterDomain(
		repository.NewCredentialRepository(),
		&stubNotionEndpoint{token: token},
		codec,
	)
	return deliveries.NewRedirectHandler(registerDomain), codec
}

func Test_RedirectHandler_Success(t *testing.T) {
	handler, codec := newRedirectHandler(t)

	state, err := codec.Encode("user-1")
	require.NoError(t, err)

	target := "/api/notion-registration-redirect?code=auth-code&state=" + url.QueryEscape(state)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(testutil.MockContext(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "My Workspace")
}

func Test_RedirectHandler_Denied(t *testing.T) {
	handler, _ := newRedirectHandler(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/notion-registration-redirect?error=access_denied", nil)
	req = req.WithContext(testutil.MockContext(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "access_denied")
}

func Test_RedirectHandler_InvalidState(t *testing.T) {
	handler, _ := newRedirectHandler(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/notion-registration-redirect?code=auth-code&state=garbage", nil)
	req = req.WithContext(testutil.MockContext(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_RedirectHandler_NoParameters(t *testing.T) {
	handler, _ := newRedirectHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notion-registration-redirect", nil)
	req = req.WithContext(testutil.MockContext(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
