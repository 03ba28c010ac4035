package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cleanreports/internal/config"
	"cleanreports/internal/domain"
	"cleanreports/internal/service"
	"cleanreports/internal/view"
)

// DashboardHandler renders the report gallery.
type DashboardHandler struct {
	listingService service.ListingService
	policy         config.ErrorPolicy
	now            func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(listingService service.ListingService, policy config.ErrorPolicy) *DashboardHandler {
	return &DashboardHandler{listingService: listingService, policy: policy, now: time.Now}
}

// Dashboard handles GET /dashboard?page&store&month
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	req := filterRequest(c)

	listing, err := resolveListing(c, h.listingService, h.policy, req)
	if err != nil {
		page := view.NewDashboardPage(currentEmail(c), domain.EmptyResultPage(req.Page, h.listingService.PageSize()), nil, req, h.now())
		page.Error = view.LoadErrorMessage
		page.Empty = false
		c.HTML(http.StatusInternalServerError, view.TemplateDashboard, page)
		return
	}

	c.HTML(http.StatusOK, view.TemplateDashboard,
		view.NewDashboardPage(currentEmail(c), listing.Result, listing.Stores, req, h.now()))
}

// Home handles GET / by sending visitors to the dashboard.
func Home(c *gin.Context) {
	c.Redirect(http.StatusFound, view.DashboardPath)
}
