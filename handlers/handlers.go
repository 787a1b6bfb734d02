package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"rescue-dashboard/middleware"
	"rescue-dashboard/models"
	"rescue-dashboard/services"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Roles issued by the auth service.
const (
	RoleUser       = "user"
	RoleRescueTeam = "rescue_team"
	RoleAdmin      = "admin"
)

// ReportHandler handles the report, stats and map endpoints.
type ReportHandler struct {
	databaseService *services.DatabaseService
	hub             *services.WebSocketHub
	maxMapPins      int
}

func NewReportHandler(databaseService *services.DatabaseService, hub *services.WebSocketHub, maxMapPins int) *ReportHandler {
	return &ReportHandler{
		databaseService: databaseService,
		hub:             hub,
		maxMapPins:      maxMapPins,
	}
}

// HealthHandler handles health check requests
func (h *ReportHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Message: "Rescue dashboard service is running",
		Service: "rescue-dashboard",
	})
}

// presentation returns the id style and label audience for the caller's role.
func presentation(role string) (services.IDStyle, services.Audience) {
	if role == RoleAdmin || role == RoleRescueTeam {
		return services.IDStyleOperations, services.AudienceOperations
	}
	return services.IDStyleCitizen, services.AudienceCitizen
}

// GetReports lists reports through the filter engine. Admins and rescue
// teams see every report; citizens see their own. Filters come in as query
// parameters and malformed values simply do not constrain.
func (h *ReportHandler) GetReports(c *gin.Context) {
	role := middleware.GetRoleFromContext(c)
	userID := middleware.GetUserIDFromContext(c)

	var criteria models.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		log.Warnf("Ignoring malformed filter query: %v", err)
	}

	var reports []models.Report
	var err error
	if role == RoleAdmin || role == RoleRescueTeam {
		reports, err = h.databaseService.GetAllReports()
	} else {
		reports, err = h.databaseService.GetReportsByReporter(userID)
	}
	if err != nil {
		log.Errorf("Failed to load reports for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	style, audience := presentation(role)
	response := services.ProjectReports(services.FilterReports(reports, criteria), style, audience)
	c.JSON(http.StatusOK, response)
}

// GetReport returns one report with its projection.
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid integer"})
		return
	}

	report, err := h.databaseService.GetReportByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		log.Errorf("Failed to load report %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	style, audience := presentation(middleware.GetRoleFromContext(c))
	c.JSON(http.StatusOK, models.ReportView{
		Report:     report,
		Projection: services.ProjectReport(report, style, audience),
	})
}

// CreateReport accepts a new report submission. The photo URL is stored as
// given; status always starts at received.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var args models.CreateReportArgs
	if err := c.ShouldBindJSON(&args); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.GetUserIDFromContext(c)
	report, err := h.databaseService.CreateReport(&args, userID)
	if err != nil {
		log.Errorf("Failed to create report for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save the report"})
		return
	}

	h.hub.BroadcastReport(services.MessageReportCreated, report)

	c.JSON(http.StatusCreated, models.ReportView{
		Report:     report,
		Projection: services.ProjectReport(report, services.IDStyleCitizen, services.AudienceCitizen),
	})
}

// UpdateReportStatus applies a status mutation from a rescue team or admin.
// Whether resolving requires a field review is a product decision left to the
// clients; the service persists whatever was sent.
func (h *ReportHandler) UpdateReportStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid integer"})
		return
	}

	var args models.StatusUpdateArgs
	if err := c.ShouldBindJSON(&args); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.databaseService.UpdateReportStatus(id, &args)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		log.Errorf("Failed to update report %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update the report"})
		return
	}

	h.hub.BroadcastReport(services.MessageReportUpdated, report)

	c.JSON(http.StatusOK, models.ReportView{
		Report:     report,
		Projection: services.ProjectReport(report, services.IDStyleOperations, services.AudienceOperations),
	})
}

// TrackReport is the public tracking endpoint: citizen projection plus the
// narrative status message, no authentication required.
func (h *ReportHandler) TrackReport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid integer"})
		return
	}

	report, err := h.databaseService.GetReportByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		log.Errorf("Failed to track report %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.TrackingResponse{
		Report:     report,
		Projection: services.ProjectReport(report, services.IDStyleCitizen, services.AudienceCitizen),
		Message:    services.DisplayLabel(report.Status, services.AudienceCitizen),
	})
}

// GetStats returns the admin dashboard counters.
func (h *ReportHandler) GetStats(c *gin.Context) {
	stats, err := h.databaseService.GetDashboardStats()
	if err != nil {
		log.Errorf("Failed to load dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetUsers lists accounts through the filter engine, admin only.
func (h *ReportHandler) GetUsers(c *gin.Context) {
	var criteria models.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		log.Warnf("Ignoring malformed filter query: %v", err)
	}

	users, err := h.databaseService.GetAllUsers()
	if err != nil {
		log.Errorf("Failed to load users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, services.FilterUsers(users, criteria))
}

// GetMap returns viewport-clustered report pins for the impact map.
func (h *ReportHandler) GetMap(c *gin.Context) {
	var vp models.MapViewport
	if err := c.ShouldBindQuery(&vp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid viewport"})
		return
	}

	reports, err := h.databaseService.GetAllReports()
	if err != nil {
		log.Errorf("Failed to load reports for map: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	pins := services.BuildMapPins(reports, vp)
	if h.maxMapPins > 0 && len(pins) > h.maxMapPins {
		pins = pins[:h.maxMapPins]
	}
	c.JSON(http.StatusOK, models.MapResponse{Pins: pins, Count: len(pins)})
}
