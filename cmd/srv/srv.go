package main

import (
	"context"
	"crypto/ed25519"
	"log"
	"net/http"
	"os"

	"github.com/action-register/backend/config"
	"github.com/action-register/backend/internal/deliveries"
	"github.com/action-register/backend/internal/domain"
	"github.com/action-register/backend/internal/repository"
	"github.com/action-register/backend/pkg/api/notion"
	"github.com/action-register/backend/pkg/crypto"
	"github.com/action-register/backend/pkg/logger"
	"github.com/action-register/backend/pkg/xcontext"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs   *config.Configs
	logger    logger.Logger
	db        *gorm.DB
	verifyKey ed25519.PublicKey

	stateCodec     *crypto.StateTokenCodec
	notionEndpoint notion.IEndpoint

	credentialRepo repository.CredentialRepository

	interactionDomain domain.InteractionDomain
	registerDomain    domain.RegisterDomain

	interactionHandler *deliveries.InteractionHandler
	redirectHandler    *deliveries.RedirectHandler

	mux    *http.ServeMux
	server *http.Server
}

func (s *srv) loadConfig() {
	var err error
	s.configs, err = config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	s.verifyKey, err = s.configs.Discord.VerifyKey()
	if err != nil {
		log.Fatal(err)
	}
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" || s.configs.Env == "dev" {
		level = logger.DEBUG
	}
	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	if err := repository.Migrate(s.appContext(context.Background())); err != nil {
		log.Fatal(err)
	}
}

func (s *srv) loadEndpoints() {
	secret, err := s.configs.StateToken.SecretBytes()
	if err != nil {
		log.Fatal(err)
	}

	s.stateCodec, err = crypto.NewStateTokenCodec(secret)
	if err != nil {
		log.Fatal(err)
	}

	s.notionEndpoint = notion.New(s.configs.Notion)
}

func (s *srv) loadRepos() {
	s.credentialRepo = repository.NewCredentialRepository()
}

func (s *srv) loadDomains() {
	s.interactionDomain = domain.NewInteractionDomain(s.credentialRepo, s.stateCodec)
	s.registerDomain = domain.NewRegisterDomain(s.credentialRepo, s.notionEndpoint, s.stateCodec)
}

func (s *srv) loadRouter() {
	s.interactionHandler = deliveries.NewInteractionHandler(s.interactionDomain, s.verifyKey)
	s.redirectHandler = deliveries.NewRedirectHandler(s.registerDomain)

	s.mux = http.NewServeMux()
	s.mux.Handle("/api/discord-notion-register", s.withAppContext(s.interactionHandler))
	s.mux.Handle("/api/notion-registration-redirect", s.withAppContext(s.redirectHandler))
}

// appContext installs the request-scoped values every layer below reads
// through xcontext.
func (s *srv) appContext(ctx context.Context) context.Context {
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)
	return ctx
}

func (s *srv) withAppContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := s.appContext(r.Context())
		ctx = xcontext.WithRequestID(ctx, uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
