// @title                       CRM Inmobiliario API
// @version                     1.0
// @description                 API multi-cuenta para agencias inmobiliarias.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/crm-inmobiliario/internal/application/analytics"
	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/leads"
	"github.com/jhoicas/crm-inmobiliario/internal/application/notaencargo"
	"github.com/jhoicas/crm-inmobiliario/internal/application/ports"
	"github.com/jhoicas/crm-inmobiliario/internal/application/usecase"
	"github.com/jhoicas/crm-inmobiliario/internal/application/website"
	infraai "github.com/jhoicas/crm-inmobiliario/internal/infrastructure/ai"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/catastro"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/geocoding"
	infrapdf "github.com/jhoicas/crm-inmobiliario/internal/infrastructure/pdf"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/portal"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/crm-inmobiliario/internal/interfaces/http"
	"github.com/jhoicas/crm-inmobiliario/pkg/config"
	"github.com/jhoicas/crm-inmobiliario/pkg/logger"

	_ "github.com/jhoicas/crm-inmobiliario/docs"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.App.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.App.SentryDSN,
			Environment:      cfg.App.Env,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.Error().Err(err).Msg("inicializar Sentry")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()
	store, err := postgres.Open(ctx, cfg.DB, log.Component("gorm"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer store.Close()

	if err := postgres.Migrate(ctx, store.DB()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	repos := postgres.NewRepos(store.DB())
	txRunner := postgres.NewTxRunner(store.DB())
	sessions := auth.NewResolver(nil, log.Component("session"))

	// Adaptadores externos; los opcionales quedan a nil si no hay credenciales.
	timeout := cfg.Integrations.HTTPTimeout
	cadastral := catastro.NewClient(cfg.Integrations.CatastroURL, timeout, log.Component("catastro"))
	geocoder := geocoding.NewNominatim(cfg.Integrations.NominatimURL, cfg.Integrations.NominatimUserAgent, timeout, log.Component("nominatim"))

	var publisher ports.PortalPublisher
	if cfg.Integrations.FotocasaAPIKey != "" {
		publisher = portal.NewFotocasa(cfg.Integrations.FotocasaURL, cfg.Integrations.FotocasaAPIKey, timeout, log.Component("fotocasa"))
	}
	var llm ports.LLMService
	if cfg.Integrations.AnthropicAPIKey != "" {
		llm = infraai.NewAnthropicService(cfg.Integrations.AnthropicAPIKey, cfg.Integrations.AnthropicModel)
	}
	var blobs ports.BlobStore
	if cfg.Storage.Bucket != "" {
		s3, err := storage.NewS3Store(ctx, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.PublicBaseURL, log.Component("s3"))
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		blobs = s3
	} else {
		log.Warn().Msg("S3_BUCKET vacío: subida de documentos e imágenes desactivada")
	}

	sync := leads.NewSynchronizer(repos.Leads, txRunner, sessions, log.Component("leads"))
	authUC := auth.NewAuthUseCase(repos, txRunner, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	deps := httpRouter.RouterDeps{
		AuthUC:        authUC,
		ContactUC:     usecase.NewContactUseCase(repos.Contacts, repos.UserComments, sessions),
		PropertyUC:    usecase.NewPropertyUseCase(repos, blobs, sessions),
		ListingUC:     usecase.NewListingUseCase(repos.Listings, publisher, llm, sessions, log.Component("listings")),
		ProspectUC:    usecase.NewProspectUseCase(repos.Prospects, sessions),
		LeadUC:        usecase.NewLeadUseCase(repos.Leads, sync, sessions),
		AppointmentUC: usecase.NewAppointmentUseCase(repos.Appointments, sync, sessions, log.Component("appointments")),
		TaskUC:        usecase.NewTaskUseCase(repos.Tasks, sessions),
		DocumentUC:    usecase.NewDocumentUseCase(repos.Documents, blobs, sessions),
		DealUC:        usecase.NewDealUseCase(repos.Deals, sessions),
		CommentUC:     usecase.NewCommentUseCase(repos.Comments, sessions),
		CartelUC:      usecase.NewCartelUseCase(repos.Carteles, txRunner, sessions),
		UserUC:        usecase.NewUserUseCase(repos, txRunner, sessions),
		LookupUC:      usecase.NewLookupUseCase(cadastral, geocoder, repos.Locations, sessions, log.Component("lookup")),
		Website:       website.NewStore(repos.Website, sessions, log.Component("website")),
		DashboardUC:   appanalytics.NewDashboardUseCase(repos, sessions),
		NotaEncargoUC: notaencargo.NewUseCase(infrapdf.NewNotaEncargoGenerator(), cfg.PDF.Timeout, log.Component("nota-encargo")),
		JWTSecret:     cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.PDF.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	if cfg.App.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	}
	app.Use(recover.New())
	app.Use(log.FiberMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "CRM Inmobiliario API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := store.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
