package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/rapidsphere/fleet-erp/internal/platform/httpx"
	"github.com/rapidsphere/fleet-erp/internal/shared"
	"github.com/rapidsphere/fleet-erp/internal/view"
)

const (
	msgInvalidCredentials = "Invalid username or password"
	msgLoginFailed        = "Login failed. Please try again."
)

// HandlerConfig collects the optional collaborators of Handler.
type HandlerConfig struct {
	Events  EventSink
	Metrics LoginObserver
	// LoginRateLimit caps POST /auth/login per client IP and minute. Zero disables the limit.
	LoginRateLimit int
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	templates      *view.Engine
	sessionManager *shared.SessionManager
	csrfManager    *shared.CSRFManager
	validator      *validator.Validate
	events         EventSink
	metrics        LoginObserver
	loginLimit     int
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, templates *view.Engine, sessions *shared.SessionManager, csrf *shared.CSRFManager, cfg HandlerConfig) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	events := cfg.Events
	if events == nil {
		events = NopEventSink{}
	}
	var metrics LoginObserver = nopObserver{}
	if cfg.Metrics != nil {
		metrics = cfg.Metrics
	}
	return &Handler{
		logger:         logger,
		templates:      templates,
		sessionManager: sessions,
		csrfManager:    csrf,
		validator:      validator.New(),
		events:         events,
		metrics:        metrics,
		loginLimit:     cfg.LoginRateLimit,
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	if h.loginLimit > 0 {
		r.With(httprate.LimitByIP(h.loginLimit, time.Minute)).Post("/login", h.handleLogin)
	} else {
		r.Post("/login", h.handleLogin)
	}
	r.Post("/logout", h.handleLogout)
}

// MountAPIRoutes registers the JSON session endpoint.
func (h *Handler) MountAPIRoutes(r chi.Router) {
	r.Get("/session", h.currentSession)
}

type loginForm struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=72"`
}

type demoCredential struct {
	Username    string
	Role        string
	Description string
}

type loginPageData struct {
	Form   loginForm
	Errors map[string]string
	Demo   []demoCredential
}

var demoCredentials = []demoCredential{
	{Username: "admin", Role: RoleAdmin.String(), Description: "Full system access"},
	{Username: "supervisor", Role: RoleSupervisor.String(), Description: "Manage teams & operations"},
	{Username: "manager", Role: RoleSiteManager.String(), Description: "Site-specific management"},
	{Username: "driver", Role: RoleDriver.String(), Description: "Driver portal access"},
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := CurrentIdentity(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, loginPageData{}, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	errs := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				errs[fieldErr.Field()] = fieldErr.Error()
			}
		} else {
			errs["general"] = msgLoginFailed
		}
	}
	form.Password = ""

	if len(errs) > 0 {
		h.metrics.ObserveLogin(LoginInvalid)
		h.renderLogin(w, r, loginPageData{Form: form, Errors: errs}, http.StatusBadRequest)
		return
	}

	store := StoreFromContext(r.Context())
	if store == nil {
		h.logger.Error("identity store missing during login")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if sess := shared.SessionFromContext(r.Context()); sess != nil && h.sessionManager != nil {
		if err := h.sessionManager.Renew(r.Context(), sess); err != nil {
			h.logger.Error("renew session", slog.Any("error", err))
			h.metrics.ObserveLogin(LoginError)
			h.renderLogin(w, r, loginPageData{Form: form, Errors: map[string]string{"general": msgLoginFailed}}, http.StatusInternalServerError)
			return
		}
	}

	ok, err := store.Authenticate(r.Context(), form.Username, r.PostFormValue("password"))
	switch {
	case err != nil:
		h.logger.Error("authenticate", slog.Any("error", err))
		h.metrics.ObserveLogin(LoginError)
		h.renderLogin(w, r, loginPageData{Form: form, Errors: map[string]string{"general": msgLoginFailed}}, http.StatusInternalServerError)
	case !ok:
		h.metrics.ObserveLogin(LoginFailure)
		h.record(r, Event{Kind: EventLoginFailed, Username: form.Username})
		h.renderLogin(w, r, loginPageData{Form: form, Errors: map[string]string{"general": msgInvalidCredentials}}, http.StatusBadRequest)
	default:
		identity, _ := store.Current()
		h.metrics.ObserveLogin(LoginSuccess)
		h.record(r, Event{Kind: EventLoginSucceeded, Username: identity.Username, IdentityID: identity.ID, Role: identity.Role.String()})
		if sess := shared.SessionFromContext(r.Context()); sess != nil {
			sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Welcome back, " + identity.Name})
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if store := StoreFromContext(r.Context()); store != nil {
		if identity, ok := store.Current(); ok {
			h.record(r, Event{Kind: EventLogout, Username: identity.Username, IdentityID: identity.ID, Role: identity.Role.String()})
		}
		store.Clear()
	}
	if sess := shared.SessionFromContext(r.Context()); sess != nil && h.sessionManager != nil {
		h.sessionManager.Destroy(sess)
	}
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) {
	identity, ok := CurrentIdentity(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	httpx.JSON(w, http.StatusOK, identity)
}

func (h *Handler) record(r *http.Request, event Event) {
	event.RemoteAddr = r.RemoteAddr
	event.UserAgent = r.UserAgent()
	event.At = time.Now().UTC()
	if err := h.events.RecordAuthEvent(r.Context(), event); err != nil {
		h.logger.Warn("record auth event", slog.String("kind", string(event.Kind)), slog.Any("error", err))
	}
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, data loginPageData, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrfManager.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	data.Demo = demoCredentials
	viewData := view.TemplateData{
		Title:       "Sign In",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, status, "pages/login.html", viewData); err != nil {
		h.logger.Error("render login", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
