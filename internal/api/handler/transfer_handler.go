package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fsociety/forum/internal/api/metrics"
	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/ports"
)

const maxImportBytes = 16 << 20

type TransferHandler struct {
	transfer ports.TransferService
}

func NewTransferHandler(transfer ports.TransferService) *TransferHandler {
	return &TransferHandler{transfer: transfer}
}

// Export handles GET /api/admin/export.
//
// @Summary      Export users and posts (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Dump
// @Failure      403  {object}  errorResponse
// @Router       /admin/export [get]
func (h *TransferHandler) Export(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="fsociety-data.json"`)
	return c.JSON(http.StatusOK, h.transfer.Export(c.Request().Context()))
}

// Import handles POST /api/admin/import. The body is a document produced by
// Export; users and posts it contains replace the current ones.
//
// @Summary      Import users and posts (admin)
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  domain.Dump  true  "Exported document"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/import [post]
func (h *TransferHandler) Import(c echo.Context) error {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.transfer.Import(c.Request().Context(), raw); err != nil {
		if errors.Is(err, domain.ErrInvalidImport) {
			metrics.ImportsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.ImportsTotal.WithLabelValues("applied").Inc()
	return c.NoContent(http.StatusNoContent)
}
