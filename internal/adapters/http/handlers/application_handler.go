package handlers

import (
	"errors"
	"strconv"

	"county-workhub/internal/core/domain"
	"county-workhub/internal/core/services"
	"county-workhub/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles job application endpoints
type ApplicationHandler struct {
	appService *services.ApplicationService
	validate   *validator.Validate
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		appService: appService,
		validate:   validator.New(),
	}
}

func actor(c *fiber.Ctx) (uint, domain.Role, bool) {
	id, ok := c.Locals("userID").(uint)
	if !ok {
		return 0, "", false
	}
	role, ok := c.Locals("role").(domain.Role)
	if !ok {
		return 0, "", false
	}
	return id, role, true
}

// SubmitApplication submits a job application
// @Summary Apply for a job
// @Description Submit an application for an open job
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitApplicationInput true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /applications [post]
func (h *ApplicationHandler) SubmitApplication(c *fiber.Ctx) error {
	userID, _, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.SubmitApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validate.Struct(&input); err != nil {
		return response.BadRequest(c, "Validation failed: "+err.Error())
	}

	app, err := h.appService.SubmitApplication(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return response.NotFound(c, "Job not found")
		case errors.Is(err, services.ErrJobNotOpen):
			return response.BadRequest(c, "Job is not open for applications")
		case errors.Is(err, services.ErrAlreadyApplied):
			return response.Conflict(c, "Already applied for this job")
		default:
			return response.InternalServerError(c, "Failed to submit application")
		}
	}

	return response.Created(c, "Application submitted successfully", fiber.Map{"application": app})
}

// ListApplications lists applications
// @Summary List applications
// @Description Admins see all applications, everyone else their own
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /applications [get]
func (h *ApplicationHandler) ListApplications(c *fiber.Ctx) error {
	userID, role, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	apps, err := h.appService.ListApplications(c.Context(), userID, role)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved successfully", fiber.Map{"applications": apps})
}

// GetApplication gets an application by ID
// @Summary Get application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id} [get]
func (h *ApplicationHandler) GetApplication(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	app, err := h.appService.GetApplication(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			return response.NotFound(c, "Application not found")
		default:
			return response.InternalServerError(c, "Failed to get application")
		}
	}

	return response.Success(c, "Application retrieved successfully", fiber.Map{"application": app})
}

// ReviewApplication accepts or rejects an application
// @Summary Review application
// @Description Accept or reject a pending application; accepting promotes the applicant to worker
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param body body services.ReviewApplicationInput true "Review verdict"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications/{id}/review [put]
func (h *ApplicationHandler) ReviewApplication(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	var input services.ReviewApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	app, err := h.appService.ReviewApplication(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			return response.NotFound(c, "Application not found")
		case errors.Is(err, services.ErrInvalidReviewStatus):
			return response.BadRequest(c, "Review status must be accepted or rejected")
		case errors.Is(err, services.ErrApplicationReviewed):
			return response.Error(c, fiber.StatusUnprocessableEntity, "Application already reviewed")
		default:
			return response.InternalServerError(c, "Failed to review application")
		}
	}

	return response.Success(c, "Application reviewed successfully", fiber.Map{"application": app})
}

// WithdrawApplication withdraws an application
// @Summary Withdraw application
// @Description Delete an application; owner or admin only
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id} [delete]
func (h *ApplicationHandler) WithdrawApplication(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid application ID")
	}

	userID, role, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.appService.WithdrawApplication(c.Context(), uint(id), userID, role); err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			return response.NotFound(c, "Application not found")
		case errors.Is(err, services.ErrNotApplicationOwner):
			return response.Forbidden(c, "Not the owner of this application")
		default:
			return response.InternalServerError(c, "Failed to withdraw application")
		}
	}

	return response.Success(c, "Application withdrawn successfully", nil)
}
