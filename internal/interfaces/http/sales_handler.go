package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/dto"
)

// SalesHandler expone la tabla de ventas, el resumen del tablero y el borrado total.
type SalesHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *appanalytics.DashboardUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// List godoc
// @Summary      Ventas filtradas (paginado)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from           query  string  false  "YYYY-MM-DD"
// @Param        to             query  string  false  "YYYY-MM-DD"
// @Param        country        query  string  false  "país o Unknown"
// @Param        group          query  string  false  "grupo de clientes o Unknown"
// @Param        customer_type  query  string  false  "private|business"
// @Param        customer       query  string  false  "número de cliente"
// @Param        article_id     query  string  false  "artículo"
// @Param        limit          query  int     false  "máx. 1000"
// @Param        offset         query  int     false  "desplazamiento"
// @Success      200  {object}  dto.SalesListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	var filter dto.SalesFilterRequest
	if err := c.QueryParser(&filter); err != nil {
		return badQuery(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), filter, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      KPIs y agrupaciones del tablero
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/summary [get]
func (h *SalesHandler) Summary(c *fiber.Ctx) error {
	var filter dto.SalesFilterRequest
	if err := c.QueryParser(&filter); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.Summary(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CustomerCount godoc
// @Summary      Número de clientes registrados
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CustomerCountResponse
// @Router       /api/customers/count [get]
func (h *SalesHandler) CustomerCount(c *fiber.Ctx) error {
	n, err := h.uc.CustomerCount(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CustomerCountResponse{Count: n})
}

// ClearAll godoc
// @Summary      Borrar ventas y clientes
// @Tags         data
// @Security     Bearer
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/data [delete]
func (h *SalesHandler) ClearAll(c *fiber.Ctx) error {
	if err := h.uc.ClearAll(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
