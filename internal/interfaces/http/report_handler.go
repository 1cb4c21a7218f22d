package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/denta-stock-api/internal/application/reports"
)

// ReportHandler tablero, reportes por período y exportación a PDF.
type ReportHandler struct {
	dashboardUC *reports.DashboardUseCase
	reportsUC   *reports.ReportsUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(dashboardUC *reports.DashboardUseCase, reportsUC *reports.ReportsUseCase) *ReportHandler {
	return &ReportHandler{dashboardUC: dashboardUC, reportsUC: reportsUC}
}

// Dashboard godoc
// @Summary      Tablero
// @Description  Contadores de stock, alertas de stock bajo y movimientos recientes
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboardUC.GetSummary(c.Context(), identityFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte por período
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        period  query  string  false  "7d | 30d | 90d | all (por defecto 30d)"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Report(c *fiber.Ctx) error {
	out, err := h.reportsUC.Get(c.Context(), identityFrom(c), c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte a PDF
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        period  query  string  false  "7d | 30d | 90d | all (por defecto 30d)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	raw, err := h.reportsUC.ExportPDF(c.Context(), identityFrom(c), c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("inventario-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(raw)
}

// TeamHandler datos del equipo autenticado.
type TeamHandler struct {
	uc *reports.TeamUseCase
}

// NewTeamHandler construye el handler de equipos.
func NewTeamHandler(uc *reports.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Me godoc
// @Summary      Equipo actual
// @Description  Equipo del token con su plan y estado de suscripción
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.TeamResponse
// @Router       /api/teams/me [get]
func (h *TeamHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.Context(), identityFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
