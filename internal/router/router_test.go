package router_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cleanreports/internal/config"
	"cleanreports/internal/domain"
	"cleanreports/internal/handler"
	"cleanreports/internal/middleware"
	"cleanreports/internal/router"
	"cleanreports/internal/service"
	"cleanreports/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	engine  *gin.Engine
	auth    *mocks.MockAuthService
	listing *mocks.MockListingService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := &config.Config{
		Session: config.SessionConfig{CookieName: "cr_session"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	authSvc := new(mocks.MockAuthService)
	listingSvc := new(mocks.MockListingService)

	engine, err := router.Setup(
		cfg,
		authSvc,
		middleware.NewIPRateLimiter(0.001, 1),
		handler.NewAuthHandler(authSvc, cfg.Session, 15*time.Minute),
		handler.NewDashboardHandler(listingSvc, config.ErrorPolicyDegrade),
		handler.NewReportHandler(listingSvc, config.ErrorPolicyDegrade),
		handler.NewHealthHandler(nil, nil),
	)
	require.NoError(t, err)
	return &testApp{engine: engine, auth: authSvc, listing: listingSvc}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_RootRedirectsToDashboard(t *testing.T) {
	app := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/", http.NoBody)
	w := app.do(req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRouter_DashboardRequiresSession(t *testing.T) {
	app := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/dashboard", http.NoBody)
	w := app.do(req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRouter_DashboardWithSession(t *testing.T) {
	app := newTestApp(t)

	app.auth.On("CurrentUser", mock.Anything, "token").Return(&domain.Identity{Email: "admin@test.com"}, nil)
	app.listing.On("Resolve", mock.Anything, domain.FilterRequest{Page: 1}).Return(&service.Listing{
		Result: domain.EmptyResultPage(1, 12),
		Stores: []string{},
	}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/dashboard", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "cr_session", Value: "token"})
	w := app.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@test.com")
	assert.Contains(t, w.Body.String(), "レポートがありません")
}

func TestRouter_APIRequiresSession(t *testing.T) {
	app := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports", http.NoBody)
	w := app.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	app.listing.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	app := newTestApp(t)

	app.auth.On("SignInWithPassword", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	post := func() *httptest.ResponseRecorder {
		form := url.Values{"email": {"admin@test.com"}, "password": {"wrong"}}
		req, _ := http.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "10.0.0.1:1234"
		return app.do(req)
	}

	first := post()
	assert.Equal(t, http.StatusUnauthorized, first.Code)
	assert.Contains(t, first.Body.String(), "Invalid login credentials")

	second := post()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), handler.TooManyAttemptsMessage)
	app.auth.AssertNumberOfCalls(t, "SignInWithPassword", 1)
}

func TestRouter_HealthAndDocs(t *testing.T) {
	app := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	assert.Equal(t, http.StatusOK, app.do(req).Code)

	req, _ = http.NewRequest(http.MethodGet, "/swagger/doc.json", http.NoBody)
	w := app.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/reports/export/csv")
}
