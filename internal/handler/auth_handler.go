package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"cleanreports/internal/config"
	"cleanreports/internal/domain"
	"cleanreports/internal/middleware"
	"cleanreports/internal/service"
	"cleanreports/internal/view"
)

// TooManyAttemptsMessage is shown on the login form when the rate limit trips.
const TooManyAttemptsMessage = "ログイン試行回数が多すぎます。しばらくしてから再度お試しください。"

// AuthHandler handles authentication endpoints and the login pages.
type AuthHandler struct {
	authService service.AuthService
	session     config.SessionConfig
	cookieTTL   time.Duration
}

// NewAuthHandler creates a new AuthHandler. cookieTTL bounds the lifetime of
// the browser session cookie and should match the access token expiry.
func NewAuthHandler(authService service.AuthService, session config.SessionConfig, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, session: session, cookieTTL: cookieTTL}
}

// Login handles POST /api/v1/auth/login
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body LoginRequest true "Credentials"
// @Success      200 {object} APIResponse{data=service.TokenPair}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      403 {object} APIResponse
// @Failure      429 {object} APIResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.SignInWithPassword(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

// RefreshToken handles POST /api/v1/auth/refresh
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body RefreshRequest true "Refresh token"
// @Success      200 {object} APIResponse{data=service.TokenPair}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input service.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

// Me handles GET /api/v1/auth/me
// @Summary      Current session identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse{data=domain.Identity}
// @Failure      401 {object} APIResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, identity)
}

// LoginPage handles GET /login. A visitor who already holds a valid session
// goes straight to the dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if token := middleware.SessionToken(c, h.session.CookieName); token != "" {
		if _, err := h.authService.CurrentUser(c.Request.Context(), token); err == nil {
			c.Redirect(http.StatusSeeOther, view.DashboardPath)
			return
		}
	}
	h.renderLogin(c, http.StatusOK, "", "")
}

// LoginSubmit handles POST /login from the login form.
func (h *AuthHandler) LoginSubmit(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		h.renderLogin(c, http.StatusBadRequest, c.PostForm("email"), domain.ErrInvalidCredentials.Error())
		return
	}

	tokenPair, err := h.authService.SignInWithPassword(c.Request.Context(), input)
	if err != nil {
		status, _, _ := MapDomainError(err)
		msg := err.Error()
		if status >= http.StatusInternalServerError {
			log.WithField("request_id", middleware.GetRequestID(c)).WithError(err).Error("login failed")
			msg = view.LoadErrorMessage
		}
		h.renderLogin(c, status, input.Email, msg)
		return
	}

	h.setSessionCookie(c, tokenPair.AccessToken, int(h.cookieTTL.Seconds()))
	c.Redirect(http.StatusSeeOther, view.DashboardPath)
}

// SignOut handles POST /auth/signout: the session is revoked, the cookie
// cleared and the browser sent back to the login page.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if token := middleware.SessionToken(c, h.session.CookieName); token != "" {
		if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
			log.WithField("request_id", middleware.GetRequestID(c)).WithError(err).Warn("sign out failed")
		}
	}
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// LoginRateLimited renders the login form with a 429 when a client exceeds
// the login rate limit.
func (h *AuthHandler) LoginRateLimited(c *gin.Context) {
	h.renderLogin(c, http.StatusTooManyRequests, c.PostForm("email"), TooManyAttemptsMessage)
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, email, msg string) {
	c.HTML(status, view.TemplateLogin, view.LoginPage{
		AppName: view.AppName,
		Email:   email,
		Error:   msg,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, value, maxAge, "/", "", h.session.Secure, true)
}
