package handler

import (
	"errors"
	"net/http"
	"strconv"

	"safety_reports/internal/model"
	"safety_reports/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler handles safety report requests
type ReportHandler struct {
	service service.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(s service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{service: s, logger: logger}
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var req model.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	report, err := h.service.CreateReport(c.Request.Context(), userID, req)
	if err != nil {
		h.logger.Error("Error creating report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) GetMyReports(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	reports, err := h.service.GetUserReports(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error fetching reports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) UpdateReport(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	var req model.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	report, err := h.service.UpdateReport(c.Request.Context(), reportID, userID, req)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Report not found"})
			return
		}
		h.logger.Error("Error updating report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	if err := h.service.DeleteReport(c.Request.Context(), reportID, userID); err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Report not found"})
			return
		}
		h.logger.Error("Error deleting report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// RegisterReportRoutes registers report routes
func (h *ReportHandler) RegisterReportRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, demoMW gin.HandlerFunc) {
	reportGroup := rg.Group("/reports")
	reportGroup.Use(authMW)
	{
		reportGroup.POST("", demoMW, h.CreateReport)
		reportGroup.GET("", h.GetMyReports)
		reportGroup.PUT("/:id", demoMW, h.UpdateReport)
		reportGroup.DELETE("/:id", demoMW, h.DeleteReport)
	}
}
