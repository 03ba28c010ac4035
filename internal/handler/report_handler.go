package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"cleanreports/internal/config"
	"cleanreports/internal/csvexport"
	"cleanreports/internal/domain"
	"cleanreports/internal/middleware"
	"cleanreports/internal/service"
	"cleanreports/internal/xlsxexport"
)

// ReportHandler handles the JSON report endpoints.
type ReportHandler struct {
	listingService service.ListingService
	policy         config.ErrorPolicy
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(listingService service.ListingService, policy config.ErrorPolicy) *ReportHandler {
	return &ReportHandler{listingService: listingService, policy: policy}
}

// List handles GET /api/v1/reports
// @Summary      List completed cleaning reports
// @Description  Newest first, filtered by store and month. Pages past the end are empty.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "1-based page number" default(1)
// @Param        store query string false "Exact store name"
// @Param        month query string false "Month (YYYY-MM)"
// @Success      200 {object} APIResponse{data=[]domain.Report,meta=PagMeta}
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Router       /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	listing, err := resolveListing(c, h.listingService, h.policy, filterRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, listing.Result.Rows, NewPagMeta(listing.Result))
}

// Stores handles GET /api/v1/reports/stores
// @Summary      Distinct store names
// @Description  Sorted unique store names of completed reports.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse{data=[]string}
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Router       /reports/stores [get]
func (h *ReportHandler) Stores(c *gin.Context) {
	stores, err := h.listingService.DistinctStores(c.Request.Context())
	if err != nil {
		if h.policy == config.ErrorPolicySurface {
			HandleError(c, err)
			return
		}
		log.WithField("request_id", middleware.GetRequestID(c)).WithError(err).Warn("store enumeration failed")
		stores = []string{}
	}

	RespondOK(c, stores)
}

// ExportCSV handles GET /api/v1/reports/export/csv
// @Summary      Export reports as CSV
// @Description  Streams every report matching the filters as UTF-8 CSV with a BOM.
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        store query string false "Exact store name"
// @Param        month query string false "Month (YYYY-MM)"
// @Success      200 {file} file
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Router       /reports/export/csv [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	req := filterRequest(c)

	w := csvexport.NewWriter(c.Writer)
	started := false
	start := func() error {
		if started {
			return nil
		}
		started = true
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename(req.Month, "csv")+`"`)
		c.Status(http.StatusOK)
		if _, err := c.Writer.Write(csvexport.BOM); err != nil {
			return err
		}
		return w.WriteHeader()
	}

	err := h.listingService.ForEachBatch(c.Request.Context(), req, func(batch []domain.Report) error {
		if err := start(); err != nil {
			return err
		}
		if err := w.WriteReports(batch); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	})
	if err == nil {
		err = start()
		w.Flush()
		if err == nil {
			err = w.Error()
		}
	}
	if err != nil {
		if !started {
			HandleError(c, err)
			return
		}
		log.WithField("request_id", middleware.GetRequestID(c)).WithError(err).Error("csv export aborted")
	}
}

// ExportXLSX handles GET /api/v1/reports/export/xlsx
// @Summary      Export reports as XLSX
// @Description  Builds an Excel workbook of every report matching the filters.
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        store query string false "Exact store name"
// @Param        month query string false "Month (YYYY-MM)"
// @Success      200 {file} file
// @Failure      401 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Router       /reports/export/xlsx [get]
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	req := filterRequest(c)

	w, err := xlsxexport.NewWriter()
	if err != nil {
		HandleError(c, err)
		return
	}

	err = w.WriteHeader()
	if err == nil {
		err = h.listingService.ForEachBatch(c.Request.Context(), req, w.WriteReports)
	}
	if err != nil {
		_ = w.Close()
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename(req.Month, "xlsx")+`"`)
	c.Data(http.StatusOK, xlsxexport.ContentType, buf.Bytes())
}
