package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/workexpress/wx_backend/internal/apperrors"
	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/dto"
	"github.com/workexpress/wx_backend/internal/middleware"
)

// tokenCookieName is the cookie some frontend clients send instead of an
// Authorization header.
const tokenCookieName = "workexpress_token"

// cargoHandler handles shipment listing, carrier search and tracking
// reconciliation requests.
type cargoHandler struct {
	cargoService    portssvc.CargoSvcFacade
	trackingService portssvc.TrackingSvcFacade
}

func newCargoHandler(cs portssvc.CargoSvcFacade, ts portssvc.TrackingSvcFacade) *cargoHandler {
	return &cargoHandler{
		cargoService:    cs,
		trackingService: ts,
	}
}

// registerCargoRoutes registers the carrier-backed routes.
func registerCargoRoutes(rg *gin.RouterGroup, cargoService portssvc.CargoSvcFacade, trackingService portssvc.TrackingSvcFacade) {
	h := newCargoHandler(cargoService, trackingService)

	cargo := rg.Group("/cargo")
	{
		cargo.GET("/packages", h.listPackages)
		cargo.GET("/search/:tracking", h.searchByTracking)
		cargo.GET("/external/:tracking", h.externalTracking)
	}
}

// listPackages godoc
// @Summary List recent carrier shipments
// @Description Proxies the carrier's shipment listing over the last five days
// @Tags cargo
// @Produce json
// @Success 200 {array} domain.CarrierShipmentRow
// @Failure 502 {object} map[string]string "Carrier unavailable"
// @Security BearerAuth
// @Router /cargo/packages [get]
func (h *cargoHandler) listPackages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.cargoService.GetPackages(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrExternalService) {
			logger.Error("Carrier listing failed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Carrier service unavailable"})
			return
		}
		logger.Error("Failed to list packages", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list packages"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// searchByTracking godoc
// @Summary Search the carrier for a tracking number
// @Description Searches escalating recency windows, then day by day over the last 30 days, for an exact tracking match
// @Tags cargo
// @Produce json
// @Param tracking path string true "Tracking number"
// @Success 200 {object} domain.CarrierShipmentRow
// @Failure 404 {object} map[string]string "Tracking number not found"
// @Failure 502 {object} map[string]string "Carrier unavailable"
// @Security BearerAuth
// @Router /cargo/search/{tracking} [get]
func (h *cargoHandler) searchByTracking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	trackingNumber := c.Param("tracking")

	row, err := h.cargoService.FindByTracking(c.Request.Context(), trackingNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrExternalService) {
			logger.Error("Carrier search failed", slog.String("tracking", trackingNumber), slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Carrier service unavailable"})
			return
		}
		logger.Error("Failed to search tracking", slog.String("tracking", trackingNumber), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search tracking number"})
		return
	}

	c.JSON(http.StatusOK, row)
}

// externalTracking godoc
// @Summary Resolve a tracking number
// @Description Resolves a tracking number local-first, falling back to the carrier and persisting the first external hit
// @Tags cargo
// @Produce json
// @Param tracking path string true "Tracking number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Missing tracking number"
// @Failure 404 {object} map[string]string "Tracking number not found"
// @Failure 502 {object} map[string]string "Carrier unavailable"
// @Security BearerAuth
// @Router /cargo/external/{tracking} [get]
func (h *cargoHandler) externalTracking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	trackingNumber := c.Param("tracking")

	result, err := h.trackingService.GetExternalTracking(c.Request.Context(), trackingNumber, extractIdentity(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tracking number not found"})
			return
		}
		if errors.Is(err, apperrors.ErrExternalService) {
			logger.Error("Carrier detail lookup failed", slog.String("tracking", trackingNumber), slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Carrier service unavailable"})
			return
		}
		logger.Error("Failed to resolve tracking", slog.String("tracking", trackingNumber), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve tracking number"})
		return
	}

	if result.Source == dto.TrackingSourceLocal {
		c.JSON(http.StatusOK, gin.H{"source": result.Source, "package": result.Package})
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": result.Source, "shipment": result.External})
}

// extractIdentity pulls the acting identity from the request: the auth
// middleware's context values when present, otherwise a raw token from the
// Authorization header or the frontend cookie for the manual decode path.
func extractIdentity(c *gin.Context) dto.RequestIdentity {
	identity := dto.RequestIdentity{}
	identity.OperatorID, _ = middleware.GetOperatorIDFromCtx(c.Request.Context())
	identity.Email, _ = middleware.GetOperatorEmailFromCtx(c.Request.Context())
	identity.Role, _ = middleware.GetOperatorRoleFromCtx(c.Request.Context())

	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		identity.RawToken = strings.TrimPrefix(header, "Bearer ")
	} else if cookie, err := c.Cookie(tokenCookieName); err == nil {
		identity.RawToken = cookie
	}

	return identity
}
