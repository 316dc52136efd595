package routes

import (
	"net/http"

	"github.com/ownitpro/omgsystems/internal/app"
	"github.com/ownitpro/omgsystems/internal/handler"
	"github.com/ownitpro/omgsystems/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.Cfg.AppName)
	portalAuth := handler.NewPortalAuthHandler(app.PortalAuthService)
	submit := handler.NewSubmitHandler(app.SubmitService, app.Submissions)
	upload := handler.NewUploadHandler(app.Storage, app.Cfg.MaxUploadBytes)
	assistant := handler.NewAssistantHandler(app.KnowledgeService)
	billing := handler.NewBillingHandler(app.PaymentService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /api/assistant/search", assistant.Search)

	// Portal authentication (rate limited against access code guessing)
	rateLimiter := middleware.RateLimitPortalAuth()
	mux.HandleFunc("POST /portal/{portalId}/auth", rateLimiter(portalAuth.Authenticate))

	// ============================================================================
	// PORTAL ROUTES (session token required)
	// ============================================================================

	requirePortal := middleware.RequirePortal(app.PortalAuthService)
	mux.HandleFunc("POST /portal/{portalId}/submit", requirePortal(submit.Submit))
	mux.HandleFunc("GET /portal/{portalId}/submissions", requirePortal(submit.ListSubmissions))
	mux.HandleFunc("POST /api/uploads/presign", requirePortal(upload.Presign))

	// ============================================================================
	// BACK-OFFICE ROUTES (behind the dashboard auth proxy)
	// ============================================================================

	mux.HandleFunc("POST /app/billing/checkout", billing.CreateCheckout)
	mux.HandleFunc("GET /app/billing/portal", billing.CustomerPortal)

	// ============================================================================
	// WEBHOOKS
	// ============================================================================

	mux.HandleFunc("POST /webhooks/payment", billing.Webhook)

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.CORS(app.Cfg.AllowedOrigins),
	)

	return h
}
