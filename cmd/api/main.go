package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/smartuniit/taskflow-api/internal/application/quoting"
	"github.com/smartuniit/taskflow-api/internal/domain/layout"
	infrapdf "github.com/smartuniit/taskflow-api/internal/infrastructure/pdf"
	"github.com/smartuniit/taskflow-api/internal/infrastructure/postgres"
	httpRouter "github.com/smartuniit/taskflow-api/internal/interfaces/http"
	"github.com/smartuniit/taskflow-api/pkg/config"
	"github.com/smartuniit/taskflow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
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

	customerRepo := postgres.NewCustomerRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	proposalRepo := postgres.NewProposalRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Geometría de página compartida por el ensamblador y el rasterizador.
	pageCfg := layout.Config{
		PageHeight:   cfg.Document.PageHeight,
		TopMargin:    cfg.Document.TopMargin,
		BottomMargin: cfg.Document.BottomMargin,
		HeaderHeight: cfg.Document.HeaderHeight,
		FooterHeight: cfg.Document.FooterHeight,
	}
	builderCfg := quoting.BuilderConfig{
		CharsPerLine: cfg.Document.CharsPerLine,
		LineHeight:   cfg.Document.LineHeight,
	}

	customerUC := quoting.NewCustomerUseCase(customerRepo)
	quotationUC := quoting.NewQuotationUseCase(quotationRepo, customerRepo, txRunner)
	proposalUC := quoting.NewProposalUseCase(proposalRepo, customerRepo, txRunner)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(pageCfg)
	exportUC := quoting.NewExportUseCase(
		quotationRepo, proposalRepo, customerRepo,
		pdfGenerator, pageCfg, builderCfg, cfg.App.CompanyName,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // la exportación PDF puede tardar más que un GET normal
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TaskFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:  customerUC,
		QuotationUC: quotationUC,
		ProposalUC:  proposalUC,
		ExportUC:    exportUC,
	})

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
