package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/punchlist-api/internal/application/auth"
	"github.com/jhoicas/punchlist-api/internal/application/ports"
	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/application/usecase"
	infraai "github.com/jhoicas/punchlist-api/internal/infrastructure/ai"
	"github.com/jhoicas/punchlist-api/internal/infrastructure/localstore"
	inframail "github.com/jhoicas/punchlist-api/internal/infrastructure/mail"
	"github.com/jhoicas/punchlist-api/internal/infrastructure/mq"
	infrapdf "github.com/jhoicas/punchlist-api/internal/infrastructure/pdf"
	"github.com/jhoicas/punchlist-api/internal/infrastructure/postgres"
	"github.com/jhoicas/punchlist-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/punchlist-api/internal/interfaces/http"
	"github.com/jhoicas/punchlist-api/pkg/config"
	"github.com/jhoicas/punchlist-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(applied) > 0 {
		log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
	}

	// Cache local: snapshots para lectura degradada + sesiones revocadas.
	cache, err := localstore.Open(cfg.Cache.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Cache.Path).Msg("abrir cache local")
	}
	defer cache.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	teamRepo := postgres.NewTeamMemberRepository(pool)
	itemRepo := postgres.NewPunchItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var photos punch.PhotoStorage
	uploadsDir := ""
	switch cfg.Storage.Driver {
	case config.StorageSupabase:
		photos = storage.NewSupabaseStorage(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey, cfg.Storage.Bucket)
	default:
		local, err := storage.NewLocalStorage(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento local de fotos")
		}
		photos = local
		uploadsDir = local.Dir()
	}

	// Adaptadores opcionales: interfaz nil = deshabilitado.
	var mailer punch.MailSender
	if cfg.Mail.Enabled() {
		mailer = inframail.NewGomailSender(cfg.Mail)
		log.Info().Str("smtp_host", cfg.Mail.SMTPHost).Msg("envío SMTP de asignaciones habilitado")
	}

	var publisher punch.EventPublisher
	if cfg.MQ.URL != "" {
		pub, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			// Los eventos son accesorios: el servicio arranca sin ellos.
			log.Warn().Err(err).Msg("RabbitMQ no disponible; eventos deshabilitados")
		} else {
			publisher = pub
			defer pub.Close()
		}
	}

	var llm ports.LLMService
	if cfg.AI.AnthropicAPIKey != "" {
		llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	}

	authUC := auth.NewAuthUseCase(profileRepo, companyRepo, txRunner, cache, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	bulk := punch.NewBulkCoordinator(itemRepo, mailer, publisher, log)
	itemUC := punch.NewItemUseCase(itemRepo, projectRepo, photos, cache, bulk, publisher, log)
	reportUC := punch.NewReportUseCase(itemRepo, projectRepo, infrapdf.NewMarotoReportGenerator(), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    12 * 1024 * 1024, // fotos de hasta 10 MB + campos
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Punch List API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProjectUC:     usecase.NewProjectUseCase(projectRepo),
		TeamUC:        usecase.NewTeamUseCase(teamRepo, projectRepo),
		CompanyUC:     usecase.NewCompanyUseCase(companyRepo, profileRepo),
		ItemUC:        itemUC,
		ReportUC:      reportUC,
		AIUC:          usecase.NewAIUseCase(llm),
		UploadsDir:    uploadsDir,
		AuthRateLimit: cfg.HTTP.AuthRateLimit,
	})

	// Limpieza periódica de sesiones revocadas ya expiradas.
	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go purgeRevoked(purgeCtx, cache, log)

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

func purgeRevoked(ctx context.Context, cache *localstore.Store, log *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := cache.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purga de sesiones revocadas")
				continue
			}
			if n > 0 {
				log.Debug().Int64("purged", n).Msg("sesiones revocadas expiradas eliminadas")
			}
		}
	}
}
