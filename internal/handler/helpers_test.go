package handler_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"cleanreports/internal/domain"
	"cleanreports/internal/middleware"
	"cleanreports/internal/view"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newHTMLContext returns a test context whose engine can render the page templates.
func newHTMLContext(t *testing.T, w *httptest.ResponseRecorder) *gin.Context {
	t.Helper()
	c, engine := gin.CreateTestContext(w)
	tmpl, err := view.Templates()
	require.NoError(t, err)
	engine.SetHTMLTemplate(tmpl)
	return c
}

func setIdentity(c *gin.Context, email string) {
	identity := &domain.Identity{UserID: uuid.New(), Email: email}
	c.Set(middleware.ContextKeyUserID, identity.UserID)
	c.Set(middleware.ContextKeyEmail, identity.Email)
	c.Set(middleware.ContextKeyIdentity, identity)
}
