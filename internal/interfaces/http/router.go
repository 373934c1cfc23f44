package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/punchlist-api/internal/application/auth"
	"github.com/jhoicas/punchlist-api/internal/application/dto"
	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/application/usecase"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProjectUC *usecase.ProjectUseCase
	TeamUC    *usecase.TeamUseCase
	CompanyUC *usecase.CompanyUseCase
	ItemUC    *punch.ItemUseCase
	ReportUC  *punch.ReportUseCase
	AIUC      *usecase.AIUseCase
	// UploadsDir se sirve en /uploads cuando las fotos se guardan en disco local.
	UploadsDir string
	// AuthRateLimit máximo de intentos de signin/signup por IP y minuto (0 = sin límite).
	AuthRateLimit int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.UploadsDir != "" {
		app.Static("/uploads", deps.UploadsDir)
	}

	api := app.Group("/api")

	// Auth (público, con límite de intentos)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	limit := func(c *fiber.Ctx) error { return c.Next() }
	if deps.AuthRateLimit > 0 {
		limit = authRateLimiter(deps.AuthRateLimit)
	}
	authGroup.Post("/signup", limit, authHandler.SignUp)
	authGroup.Post("/signin", limit, authHandler.SignIn)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	gc := RequireRole(string(entity.RoleGC))
	sub := RequireRole(string(entity.RoleSub))

	protected.Post("/auth/signout", authHandler.SignOut)
	protected.Get("/auth/session", authHandler.Session)

	projectHandler := NewProjectHandler(deps.ProjectUC)
	itemHandler := NewItemHandler(deps.ItemUC, deps.ReportUC)
	teamHandler := NewTeamHandler(deps.TeamUC)

	projects := protected.Group("/projects", gc)
	projects.Get("/", projectHandler.List)
	projects.Post("/", projectHandler.Create)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Get("/:id/items", itemHandler.ListProject)
	projects.Post("/:id/items", itemHandler.Create)
	projects.Post("/:id/items/bulk/status", itemHandler.BulkStatus)
	projects.Post("/:id/items/bulk/assign", itemHandler.BulkAssign)
	projects.Get("/:id/report", itemHandler.Report)
	projects.Get("/:id/team", teamHandler.List)
	projects.Post("/:id/team", teamHandler.Add)
	projects.Delete("/:id/team/:memberId", teamHandler.Remove)

	aiHandler := NewAIHandler(deps.AIUC)
	protected.Post("/items/suggest-trade", gc, aiHandler.SuggestTrade)
	protected.Get("/items/:id", itemHandler.Detail)
	protected.Post("/items/:id/advance", itemHandler.Advance)
	protected.Patch("/items/:id", gc, itemHandler.Update)
	protected.Post("/items/:id/assign", gc, itemHandler.Assign)

	protected.Get("/my/items", sub, itemHandler.ListMine)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", gc, companyHandler.Settings)
}

func authRateLimiter(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "demasiados intentos; espera un minuto",
			})
		},
	})
}
