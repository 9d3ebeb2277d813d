package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"plume/internal/config"
	"plume/internal/delivery/http/handler"
	"plume/internal/domain/entity"
)

type Router struct {
	app               *fiber.App
	config            *config.Config
	healthHandler     *handler.HealthHandler
	catalogHandler    *handler.CatalogHandler
	contractHandler   *handler.ContractHandler
	templateHandler   *handler.TemplateHandler
	draftHandler      *handler.DraftHandler
	signingHandler    *handler.SigningHandler
	preferenceHandler *handler.PreferenceHandler
	activityHandler   *handler.ActivityHandler
}

func NewRouter(
	cfg *config.Config,
	healthHandler *handler.HealthHandler,
	catalogHandler *handler.CatalogHandler,
	contractHandler *handler.ContractHandler,
	templateHandler *handler.TemplateHandler,
	draftHandler *handler.DraftHandler,
	signingHandler *handler.SigningHandler,
	preferenceHandler *handler.PreferenceHandler,
	activityHandler *handler.ActivityHandler,
) *Router {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: customErrorHandler,
		// params and headers end up as keys in the in-memory stores
		Immutable:    true,
	})

	return &Router{
		app:               app,
		config:            cfg,
		healthHandler:     healthHandler,
		catalogHandler:    catalogHandler,
		contractHandler:   contractHandler,
		templateHandler:   templateHandler,
		draftHandler:      draftHandler,
		signingHandler:    signingHandler,
		preferenceHandler: preferenceHandler,
		activityHandler:   activityHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization," + handler.ClientIDHeader,
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// API v1 routes
	api := r.app.Group("/api/v1")
	{
		api.Get("/catalog", r.catalogHandler.Get)
		api.Get("/dashboard", r.contractHandler.Dashboard)
		api.Get("/activity", r.activityHandler.List)

		contracts := api.Group("/contracts")
		{
			contracts.Get("", r.contractHandler.List)
			contracts.Get("/stats", r.contractHandler.Stats)
			contracts.Get("/:id", r.contractHandler.Get)
			contracts.Get("/:id/overview", r.contractHandler.Overview)
			contracts.Get("/:id/timeline", r.contractHandler.Timeline)
			contracts.Get("/:id/evidence", r.contractHandler.Evidence)
			contracts.Post("/:id/send", r.contractHandler.Send)
			contracts.Post("/:id/void", r.contractHandler.Void)
			contracts.Post("/:id/signers/:signerId/resend", r.contractHandler.Resend)
		}

		templates := api.Group("/templates")
		{
			templates.Get("", r.templateHandler.List)
			templates.Get("/:id", r.templateHandler.Get)
		}

		drafts := api.Group("/drafts")
		{
			drafts.Post("", r.draftHandler.Create)
			drafts.Get("/:id", r.draftHandler.Get)
			drafts.Put("/:id/variables", r.draftHandler.UpdateVariables)
			drafts.Post("/:id/signers", r.draftHandler.AddSigner)
			drafts.Delete("/:id/signers/:signerId", r.draftHandler.RemoveSigner)
			drafts.Put("/:id/sequential", r.draftHandler.SetSequential)
			drafts.Post("/:id/review", r.draftHandler.Review)
			drafts.Post("/:id/send", r.draftHandler.Send)
		}

		// Signer flow, addressed by the emailed token
		sign := api.Group("/sign/:token")
		{
			sign.Get("", r.signingHandler.Get)
			sign.Get("/consent", r.signingHandler.Consent)
			sign.Post("/consent", r.signingHandler.GiveConsent)
			sign.Post("/otp/resend", r.signingHandler.ResendCode)
			sign.Post("/otp/verify", r.signingHandler.VerifyCode)
			sign.Post("/review", r.signingHandler.Review)
			sign.Post("/sign", r.signingHandler.Sign)
		}

		preferences := api.Group("/preferences")
		{
			preferences.Get("", r.preferenceHandler.Get)
			preferences.Put("", r.preferenceHandler.Update)
		}
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(entity.NewErrorResponse(errorCode(code), message))
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	default:
		return "INTERNAL_ERROR"
	}
}
