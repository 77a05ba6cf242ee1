package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/jwtx"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"

	_ "github.com/aussiebroadwan/lexdesk/api/lexdesk" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	// MaxJSONBody caps every non-multipart request body.
	MaxJSONBody = 200 << 10
	// maxMultipartBody leaves room for the multipart envelope around an image.
	maxMultipartBody = service.MaxImageBytes + 64<<10
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	verifier     jwtx.Verifier
	cookies      httpx.CookiePolicy
	csrf         *httpx.CSRFGuard
	limits       httpx.RateLimits
	clientIP     httpx.KeyExtractor
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	IntakeService    *service.IntakeService
	AdminService     *service.AdminService
	ReviewService    *service.ReviewService
	AnalyticsService *service.AnalyticsService
	UploadService    *service.UploadService
	CatalogService   *service.CatalogService
	CartService      *service.CartService
	OrderService     *service.OrderService
}

// NewRouter builds the router and its global middleware chain. CSRF is
// always on, so a CORS allow-list containing "*" is refused.
func NewRouter(
	verifier jwtx.Verifier,
	cookies httpx.CookiePolicy,
	cors httpx.CORSConfig,
	limits httpx.RateLimits,
	trustProxy bool,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) (*Router, error) {
	if err := cors.Validate(); err != nil {
		return nil, err
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		cookies:      cookies,
		csrf:         httpx.NewCSRFGuard(cookies),
		limits:       limits,
		clientIP:     httpx.ClientIP(trustProxy),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Order matters: a request rejected by CSRF or the gates still gets a
	// csrf cookie.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SecurityHeaders,
		httpx.CORS(cors),
		r.byIP(r.limits.Global),
		bodyLimit,
		r.csrf.EnsureToken,
		httpx.SessionMiddleware(r.verifier, r.cookies.SessionName),
	}
	// Built once; routes registered on Mux later are still reached.
	r.handler = httpx.Chain(r.Mux, r.middlewares...)

	return r, nil
}

func (r *Router) ApplyRoutes() {
	r.registerSystem()
	r.registerSession()
	r.registerIntake()
	r.registerReviews()
	r.registerAnalytics()
	r.registerAdmin()
	r.registerUploads()
	r.registerCatalog()
	r.registerCart()
	r.registerOrders()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Lexdesk API
//	@version		0.1.0
//	@description	Backend for the firm's public site and staff back office.
//	@description
//	@description	Sessions travel in an HttpOnly cookie. Every state-changing request must echo the csrf cookie in the X-CSRF-Token header.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/lexdesk
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						auth
//	@description				Session token issued by /api/auth/login.
//
//	@securityDefinitions.apikey	CSRFToken
//	@in							header
//	@name						X-CSRF-Token
//	@description				Value of the csrf cookie.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// write guards state-changing routes with the CSRF check.
func (r *Router) write(h http.Handler, mws ...httpx.Middleware) http.Handler {
	return httpx.Chain(h, append([]httpx.Middleware{r.csrf.Verify}, mws...)...)
}

// staff guards the admin route group. CSRF runs first, then the role gate.
func (r *Router) staff(h http.Handler, mws ...httpx.Middleware) http.Handler {
	gates := []httpx.Middleware{
		r.csrf.Verify,
		httpx.RequireRole(domain.StaffRoles()...),
		httpx.RateLimitByUser(r.limits.Staff, r.clientIP),
	}
	return httpx.Chain(h, append(gates, mws...)...)
}

// account guards signed-in shopping routes: any role will do.
func (r *Router) account(h http.Handler, mws ...httpx.Middleware) http.Handler {
	gates := []httpx.Middleware{
		httpx.RequireAuth,
		httpx.RateLimitByUser(r.limits.Account, r.clientIP),
	}
	return httpx.Chain(h, append(gates, mws...)...)
}

func (r *Router) registerSystem() {
	// Probes share the public profile; monitors poll often.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			r.byIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			r.byIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /api/health", HealthHandler())
}

func (r *Router) registerSession() {
	h := &SessionHandler{AuthService: r.AuthService, Cookies: r.cookies, ClientIP: r.clientIP}

	r.Mux.Handle("GET /api/auth/me", http.HandlerFunc(h.HandleMe))

	r.Mux.Handle("POST /api/auth/login",
		r.write(http.HandlerFunc(h.HandleLogin), r.byIP(r.limits.Login)),
	)
	r.Mux.Handle("POST /api/auth/logout", r.write(http.HandlerFunc(h.HandleLogout)))
}

func (r *Router) registerIntake() {
	h := &IntakeHandler{IntakeService: r.IntakeService}

	r.Mux.Handle("POST /api/contact",
		r.write(http.HandlerFunc(h.HandleContact), r.byIP(r.limits.Intake)),
	)
	r.Mux.Handle("POST /api/reports",
		r.write(http.HandlerFunc(h.HandleReport), r.byIP(r.limits.Intake)),
	)
	r.Mux.Handle("GET /api/services",
		httpx.Chain(http.HandlerFunc(h.HandleServices), r.byIP(r.limits.Public)),
	)
}

func (r *Router) registerReviews() {
	h := &ReviewsHandler{ReviewService: r.ReviewService}

	r.Mux.Handle("GET /api/reviews",
		httpx.Chain(http.HandlerFunc(h.HandleList), r.byIP(r.limits.Public)),
	)
	r.Mux.Handle("POST /api/reviews",
		r.write(http.HandlerFunc(h.HandleCreate), r.byIP(r.limits.Intake)),
	)
}

func (r *Router) registerAnalytics() {
	h := &AnalyticsHandler{AnalyticsService: r.AnalyticsService}

	r.Mux.Handle("POST /api/analytics/pageview",
		r.write(http.HandlerFunc(h.HandlePageView), r.byIP(r.limits.Public)),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		AdminService:     r.AdminService,
		ReviewService:    r.ReviewService,
		AnalyticsService: r.AnalyticsService,
		UploadService:    r.UploadService,
	}

	r.Mux.Handle("GET /api/admin/contacts", r.staff(http.HandlerFunc(h.HandleContacts)))
	r.Mux.Handle("GET /api/admin/reports", r.staff(http.HandlerFunc(h.HandleReports)))

	r.Mux.Handle("GET /api/admin/reviews", r.staff(http.HandlerFunc(h.HandleListReviews)))
	r.Mux.Handle("POST /api/admin/reviews/{id}/approve", r.staff(http.HandlerFunc(h.HandleApproveReview)))
	r.Mux.Handle("POST /api/admin/reviews/{id}/reject", r.staff(http.HandlerFunc(h.HandleRejectReview)))
	r.Mux.Handle("DELETE /api/admin/reviews/{id}", r.staff(http.HandlerFunc(h.HandleDeleteReview)))

	r.Mux.Handle("GET /api/admin/analytics/overview", r.staff(http.HandlerFunc(h.HandleAnalyticsOverview)))
	r.Mux.Handle("GET /api/admin/analytics/recent", r.staff(http.HandlerFunc(h.HandleAnalyticsRecent)))

	r.Mux.Handle("POST /api/admin/upload", r.staff(http.HandlerFunc(h.HandleUpload)))
}

func (r *Router) registerUploads() {
	h := &UploadsHandler{UploadService: r.UploadService}
	r.Mux.Handle("GET /uploads/{name}",
		httpx.Chain(h, r.byIP(r.limits.Public)),
	)
}

func (r *Router) registerCatalog() {
	h := &CatalogHandler{CatalogService: r.CatalogService}

	r.Mux.Handle("GET /api/catalog/categories",
		httpx.Chain(http.HandlerFunc(h.HandleCategories), r.byIP(r.limits.Public)),
	)
	r.Mux.Handle("GET /api/catalog/products",
		httpx.Chain(http.HandlerFunc(h.HandleList), r.byIP(r.limits.Public)),
	)
	r.Mux.Handle("GET /api/catalog/products/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), r.byIP(r.limits.Public)),
	)

	r.Mux.Handle("POST /api/admin/products", r.staff(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /api/admin/products/{id}", r.staff(http.HandlerFunc(h.HandleUpdate)))
}

func (r *Router) registerCart() {
	h := &CartHandler{CartService: r.CartService}

	r.Mux.Handle("GET /api/cart", r.account(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("DELETE /api/cart", r.write(r.account(http.HandlerFunc(h.HandleClear))))
	r.Mux.Handle("POST /api/cart/items", r.write(r.account(http.HandlerFunc(h.HandleAdd))))
	r.Mux.Handle("PUT /api/cart/items/{id}", r.write(r.account(http.HandlerFunc(h.HandleUpdate))))
	r.Mux.Handle("DELETE /api/cart/items/{id}", r.write(r.account(http.HandlerFunc(h.HandleRemove))))
}

func (r *Router) registerOrders() {
	h := &OrdersHandler{OrderService: r.OrderService}

	r.Mux.Handle("GET /api/orders", r.account(http.HandlerFunc(h.HandleListMine)))
	r.Mux.Handle("POST /api/orders", r.write(r.account(http.HandlerFunc(h.HandlePlace))))
	r.Mux.Handle("GET /api/orders/{id}", r.account(http.HandlerFunc(h.HandleGet)))

	r.Mux.Handle("GET /api/admin/orders", r.staff(http.HandlerFunc(h.HandleAdminList)))
	r.Mux.Handle("PUT /api/admin/orders/{id}/status", r.staff(http.HandlerFunc(h.HandleSetStatus)))
}

func (r *Router) byIP(l httpx.Limit) httpx.Middleware {
	return httpx.RateLimitByIP(l, r.clientIP)
}

// bodyLimit applies the JSON cap to everything except multipart uploads,
// which get room for one image.
func bodyLimit(next http.Handler) http.Handler {
	jsonLimit := httpx.BodyLimit(MaxJSONBody)(next)
	multipartLimit := httpx.BodyLimit(maxMultipartBody)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			multipartLimit.ServeHTTP(w, r)
			return
		}
		jsonLimit.ServeHTTP(w, r)
	})
}
