package http

import (
	"fmt"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/service"
)

type reportHandler struct {
	reportSvc service.ReportService
	now       func() time.Time
}

func newReportHandler(reportSvc service.ReportService) *reportHandler {
	return &reportHandler{
		reportSvc: reportSvc,
		now:       time.Now,
	}
}

// DailyReport serves the report of ?date=YYYY-MM-DD, today in UTC when omitted.
func (h *reportHandler) DailyReport(w http.ResponseWriter, r *http.Request) error {
	var date *openapi_types.Date
	if err := bindQuery(r, "date", &date); err != nil {
		return err
	}

	day := h.now().UTC()
	if date != nil {
		day = date.Time
	}

	report, err := h.reportSvc.DailyReport(r.Context(), day)
	if err != nil {
		return fmt.Errorf("report service daily report: %w", err)
	}

	return writeJSON(w, http.StatusOK, toDailyReportResponse(report))
}
