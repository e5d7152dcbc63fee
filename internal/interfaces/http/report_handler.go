package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/ports"
	"github.com/jhoicas/ventas-analytics/internal/application/usecase"
)

// ReportHandler descarga la selección filtrada como PDF o XML.
type ReportHandler struct {
	uc  *usecase.ReportUseCase
	pdf ports.ReportRenderer
	xml ports.ReportRenderer
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase, pdf, xml ports.ReportRenderer) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf, xml: xml}
}

// SalesPDF godoc
// @Summary      Informe de ventas en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales.pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	return h.export(c, h.pdf, "pdf")
}

// SalesXML godoc
// @Summary      Informe de ventas en XML
// @Tags         reports
// @Security     Bearer
// @Produce      application/xml
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales.xml [get]
func (h *ReportHandler) SalesXML(c *fiber.Ctx) error {
	return h.export(c, h.xml, "xml")
}

func (h *ReportHandler) export(c *fiber.Ctx, r ports.ReportRenderer, ext string) error {
	var filter dto.SalesFilterRequest
	if err := c.QueryParser(&filter); err != nil {
		return badQuery(c)
	}
	out, contentType, err := h.uc.Export(c.UserContext(), filter, r)
	if err != nil {
		return writeError(c, err)
	}
	name := fmt.Sprintf("sales_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(out)
}
