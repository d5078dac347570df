package deliveries

import (
	"net/http"

	"github.com/action-register/backend/internal/domain"
	"github.com/action-register/backend/internal/model"
	"github.com/action-register/backend/pkg/xcontext"
)

// RedirectHandler is the OAuth redirect endpoint Notion sends the browser
// back to.
type RedirectHandler struct {
	registerDomain domain.RegisterDomain
}

func NewRedirectHandler(registerDomain domain.RegisterDomain) *RedirectHandler {
	return &RedirectHandler{registerDomain: registerDomain}
}

func (h *RedirectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	resp := h.registerDomain.Callback(ctx, &model.NotionCallbackRequest{
		Code:  query.Get("code"),
		State: query.Get("state"),
		Error: query.Get("error"),
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(resp.Status)
	if _, err := w.Write([]byte(resp.Message)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
