package deliveries

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"io"
	"net/http"

	"github.com/action-register/backend/internal/domain"
	"github.com/action-register/backend/pkg/discord"
	"github.com/action-register/backend/pkg/xcontext"
)

// maxInteractionBody bounds the request body read. Discord interaction
// payloads are small; anything larger is hostile.
const maxInteractionBody = 1 << 20

// InteractionHandler is the Discord interactions endpoint. It owns the
// transport concerns (signature check, body limits, wire encoding) and
// leaves everything after classification to the domain.
type InteractionHandler struct {
	interactionDomain domain.InteractionDomain
	verifyKey         ed25519.PublicKey
}

func NewInteractionHandler(
	interactionDomain domain.InteractionDomain, verifyKey ed25519.PublicKey,
) *InteractionHandler {
	return &InteractionHandler{
		interactionDomain: interactionDomain,
		verifyKey:         verifyKey,
	}
}

func (h *InteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxInteractionBody))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read the request body: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Verification happens before any parsing. An unsigned body is never
	// inspected.
	err = discord.Verify(
		r.Header.Get("X-Signature-Ed25519"),
		r.Header.Get("X-Signature-Timestamp"),
		body, h.verifyKey,
	)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Rejected an unsigned interaction: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	itx, err := discord.ParseInteraction(body)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot parse a verified interaction: %v", err)
		writeJSON(ctx, w, http.StatusBadRequest, map[string]string{"message": "invalid interaction"})
		return
	}

	resp := h.interactionDomain.Handle(ctx, itx)
	writeJSON(ctx, w, http.StatusOK, discord.Render(resp))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
