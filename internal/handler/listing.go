package handler

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"cleanreports/internal/config"
	"cleanreports/internal/domain"
	"cleanreports/internal/middleware"
	"cleanreports/internal/service"
)

// filterRequest reads the page, store and month query parameters.
func filterRequest(c *gin.Context) domain.FilterRequest {
	return domain.ParseFilterRequest(c.Query("page"), c.Query("store"), c.Query("month"))
}

// resolveListing runs the listing query and applies the error policy. Under
// the degrade policy a failure becomes an empty page and a nil error; under
// surface the error is returned for the caller to report.
func resolveListing(
	c *gin.Context,
	svc service.ListingService,
	policy config.ErrorPolicy,
	req domain.FilterRequest,
) (*service.Listing, error) {
	listing, err := svc.Resolve(c.Request.Context(), req)
	if err == nil {
		return listing, nil
	}

	entry := log.WithField("request_id", middleware.GetRequestID(c)).
		WithField("page", req.Page).
		WithField("store", req.Store).
		WithField("month", req.Month).
		WithError(err)

	if policy == config.ErrorPolicySurface {
		entry.Error("listing query failed")
		return nil, err
	}
	entry.Warn("listing query failed, rendering empty result")
	return &service.Listing{
		Result: domain.EmptyResultPage(req.Page, svc.PageSize()),
		Stores: []string{},
	}, nil
}
