package handlers

import (
	"county-workhub/internal/core/domain"
	"county-workhub/internal/core/services"
	"county-workhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetAdminDashboard returns workforce-wide statistics
// @Summary Admin dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

// GetMyDashboard routes to the dashboard matching the caller's role
// @Summary Own dashboard
// @Description Returns the dashboard for the caller's role
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/me [get]
func (h *DashboardHandler) GetMyDashboard(c *fiber.Ctx) error {
	userID, role, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	switch role {
	case domain.RoleAdmin:
		data, err := h.dashboardService.GetAdminDashboard(c.Context())
		if err != nil {
			return response.InternalServerError(c, "Failed to load dashboard")
		}
		return response.Success(c, "Dashboard retrieved successfully", data)
	case domain.RoleSupervisor:
		data, err := h.dashboardService.GetSupervisorDashboard(c.Context(), userID)
		if err != nil {
			return response.InternalServerError(c, "Failed to load dashboard")
		}
		return response.Success(c, "Dashboard retrieved successfully", data)
	case domain.RoleWorker:
		data, err := h.dashboardService.GetWorkerDashboard(c.Context(), userID)
		if err != nil {
			return response.InternalServerError(c, "Failed to load dashboard")
		}
		return response.Success(c, "Dashboard retrieved successfully", data)
	default:
		return response.Forbidden(c, "No dashboard for this role")
	}
}
