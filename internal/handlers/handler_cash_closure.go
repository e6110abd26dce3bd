package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/workexpress/wx_backend/internal/apperrors"
	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/dto"
	"github.com/workexpress/wx_backend/internal/middleware"
)

// cashClosureHandler handles HTTP requests for the cash-period lifecycle.
type cashClosureHandler struct {
	closureService portssvc.CashClosureSvcFacade
}

func newCashClosureHandler(cs portssvc.CashClosureSvcFacade) *cashClosureHandler {
	return &cashClosureHandler{
		closureService: cs,
	}
}

// registerCashClosureRoutes registers routes for the cash-period lifecycle.
func registerCashClosureRoutes(rg *gin.RouterGroup, closureService portssvc.CashClosureSvcFacade) {
	h := newCashClosureHandler(closureService)

	closures := rg.Group("/cash-closures")
	{
		closures.GET("/current", h.getCurrent)
		closures.POST("/close", h.close)
		closures.GET("", h.history)
		closures.GET("/:cashClosureID/transactions", h.transactions)
		closures.POST("/check", h.runCheck)
	}
}

// getCurrent godoc
// @Summary Get the current cash closure
// @Description Returns the open cash period with live per-method aggregates, opening one if none exists
// @Tags cash-closures
// @Produce json
// @Success 200 {object} dto.CashClosureView
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve cash closure"
// @Security BearerAuth
// @Router /cash-closures/current [get]
func (h *cashClosureHandler) getCurrent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	view, err := h.closureService.GetCurrentCashClosure(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get current cash closure", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cash closure"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// close godoc
// @Summary Close the current cash closure
// @Description Seals the open cash period with its final totals, attributed to the calling operator
// @Tags cash-closures
// @Produce json
// @Success 200 {object} dto.CashClosureView
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "No open cash closure"
// @Failure 500 {object} map[string]string "Failed to close cash closure"
// @Security BearerAuth
// @Router /cash-closures/close [post]
func (h *cashClosureHandler) close(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	operatorID, ok := middleware.GetOperatorIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Operator id not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, err := h.closureService.CloseCashClosure(c.Request.Context(), operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoOpenCashClosure) {
			logger.Warn("Close requested with no open cash closure")
			c.JSON(http.StatusConflict, gin.H{"error": "No cash closure is currently open"})
			return
		}
		logger.Error("Failed to close cash closure", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close cash closure"})
		return
	}

	logger.Info("Cash closure closed", slog.String("cash_closure_id", view.CashClosureID), slog.String("operator_id", operatorID))
	c.JSON(http.StatusOK, view)
}

// history godoc
// @Summary List cash closure history
// @Description Returns a filtered, paginated list of past cash periods with per-method breakdowns
// @Tags cash-closures
// @Produce json
// @Param page query int false "Page number (1-indexed)"
// @Param limit query int false "Page size"
// @Param startDate query string false "Inclusive start date (2006-01-02)"
// @Param endDate query string false "Inclusive end date (2006-01-02)"
// @Param status query string false "Filter by status" Enums(open, closed)
// @Success 200 {object} dto.CashClosureHistoryResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Failed to list cash closures"
// @Security BearerAuth
// @Router /cash-closures [get]
func (h *cashClosureHandler) history(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CashClosureHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind history filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: " + err.Error()})
		return
	}

	resp, err := h.closureService.GetCashClosureHistory(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid history filter", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list cash closures", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cash closures"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// transactions godoc
// @Summary List transactions of a cash closure
// @Description Returns a page of the raw transaction rows tied to one cash period
// @Tags cash-closures
// @Produce json
// @Param cashClosureID path string true "Cash closure ID"
// @Param page query int false "Page number (1-indexed)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.CashClosureTransactionsResponse
// @Failure 404 {object} map[string]string "Cash closure not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /cash-closures/{cashClosureID}/transactions [get]
func (h *cashClosureHandler) transactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cashClosureID := c.Param("cashClosureID")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.closureService.GetTransactionsForCashClosure(c.Request.Context(), cashClosureID, page, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Cash closure not found", slog.String("cash_closure_id", cashClosureID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Cash closure not found"})
			return
		}
		logger.Error("Failed to list transactions", slog.String("cash_closure_id", cashClosureID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// runCheck godoc
// @Summary Run the automatic cash closure check
// @Description Executes the same open/close decision the scheduler runs every five minutes and reports what it did
// @Tags cash-closures
// @Produce json
// @Success 200 {object} dto.AutomaticCashClosureResult
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /cash-closures/check [post]
func (h *cashClosureHandler) runCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	role, _ := middleware.GetOperatorRoleFromCtx(c.Request.Context())
	if role != "admin" && role != "manager" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	result := h.closureService.CheckAndProcessAutomaticCashClosure(c.Request.Context())
	if result.Error != "" {
		logger.Warn("Automatic check reported failure", slog.String("action", result.Action), slog.String("error", result.Error))
	}

	c.JSON(http.StatusOK, result)
}
