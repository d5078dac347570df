package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/action-register/backend/internal/entity"
	"github.com/action-register/backend/internal/model"
	"github.com/action-register/backend/internal/repository"
	"github.com/action-register/backend/pkg/api/notion"
	"github.com/action-register/backend/pkg/crypto"
	"github.com/action-register/backend/pkg/errorx"
	"github.com/action-register/backend/pkg/xcontext"
)

// RegisterDomain completes the Notion OAuth flow started by the
// notion-register command. The browser is the only reply channel here, so
// every outcome is a status plus a human-readable page.
type RegisterDomain interface {
	Callback(ctx context.Context, req *model.NotionCallbackRequest) *model.NotionCallbackResponse
}

type registerDomain struct {
	credentialRepo repository.CredentialRepository
	notionEndpoint notion.IEndpoint
	stateCodec     *crypto.StateTokenCodec
}

func NewRegisterDomain(
	credentialRepo repository.CredentialRepository,
	notionEndpoint notion.IEndpoint,
	stateCodec *crypto.StateTokenCodec,
) RegisterDomain {
	return &registerDomain{
		credentialRepo: credentialRepo,
		notionEndpoint: notionEndpoint,
		stateCodec:     stateCodec,
	}
}

func (d *registerDomain) Callback(
	ctx context.Context, req *model.NotionCallbackRequest,
) *model.NotionCallbackResponse {
	message, err := d.link(ctx, req)
	if err != nil {
		var errx errorx.Error
		if !errors.As(err, &errx) {
			errx = errorx.Unknown
		}

		return &model.NotionCallbackResponse{
			Status:  statusOf(errx.Code),
			Message: errx.Message,
		}
	}

	return &model.NotionCallbackResponse{Status: http.StatusOK, Message: message}
}

func (d *registerDomain) link(ctx context.Context, req *model.NotionCallbackRequest) (string, error) {
	if req.Error != "" {
		xcontext.Logger(ctx).Infof("Notion authorization was denied: %s", req.Error)
		return "", errorx.New(errorx.BadRequest,
			"Authorization was not completed: %s", req.Error)
	}

	// Anything other than an explicit denial or a full code+state pair is a
	// plain visit, not a callback.
	if req.Code == "" || req.State == "" {
		return "Notion registration endpoint.", nil
	}

	userID, err := d.stateCodec.Decode(req.State)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Received an invalid state token: %v", err)
		return "", errorx.New(errorx.InvalidStateToken,
			"Invalid registration link. Please run the register command again.")
	}

	token, err := d.notionEndpoint.ExchangeCode(ctx, req.Code)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot exchange the authorization code: %v", err)
		return "", errorx.New(errorx.Unavailable,
			"Failed to connect to Notion. Please try again later.")
	}

	credential := &entity.Credential{
		PartitionKey:         entity.DiscordPartition,
		UserID:               userID,
		NotionAccessToken:    token.AccessToken,
		NotionUserID:         token.Owner.User.ID,
		WorkspaceID:          token.WorkspaceID,
		WorkspaceName:        token.WorkspaceName,
		WorkspaceIcon:        token.WorkspaceIcon,
		BotID:                token.BotID,
		DuplicatedTemplateID: token.DuplicatedTemplateID,
	}

	// A missing duplicated template means the workspace is connected but
	// unusable for page writes. The workspace grant is stored either way so
	// the user does not have to re-authorize after duplicating.
	templateDuplicated := token.DuplicatedTemplateID != ""
	if templateDuplicated {
		pages, err := d.notionEndpoint.DiscoverPages(ctx, token.AccessToken, token.DuplicatedTemplateID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot discover pages of template %s: %v",
				token.DuplicatedTemplateID, err)
		} else {
			credential.ActionPageID = pages.ActionPageID
			credential.CategoryPageID = pages.CategoryPageID
			credential.TaskPageID = pages.TaskPageID
		}
	}

	if err := d.credentialRepo.Upsert(ctx, credential); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store the credential of user %s: %v", userID, err)
		return "", errorx.New(errorx.Internal,
			"Failed to save your registration. Please try again later.")
	}

	if !templateDuplicated {
		return "", errorx.New(errorx.TemplateNotDuplicate,
			"Your workspace is connected, but the template was not duplicated.\n"+
				"Please re-authorize and choose \"Use a template provided by the developer\".")
	}

	return fmt.Sprintf("Connected to workspace %q. You can close this page.", token.WorkspaceName), nil
}

// statusOf translates a linking error code into the page status. The
// missing-template case stays a success page: the grant was stored and the
// user only has remediation left to do.
func statusOf(code errorx.Code) int {
	switch code {
	case errorx.BadRequest, errorx.InvalidStateToken:
		return http.StatusBadRequest
	case errorx.Unavailable, errorx.BadResponse:
		return http.StatusBadGateway
	case errorx.TemplateNotDuplicate:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
