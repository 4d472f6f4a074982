package handlers

import (
	"errors"
	"strconv"

	"county-workhub/internal/core/services"
	"county-workhub/internal/pkg/pagination"
	"county-workhub/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// JobHandler handles job board endpoints
type JobHandler struct {
	jobService *services.JobService
	validate   *validator.Validate
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		validate:   validator.New(),
	}
}

// ListJobs lists job postings
// @Summary List jobs
// @Description List jobs, open by default; pass status=all for every job
// @Tags Jobs
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "open, closed or all"
// @Success 200 {object} response.Response
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	input := &services.ListJobsInput{
		Page:   params.Page,
		Limit:  params.Limit,
		Status: c.Query("status"),
	}

	result, err := h.jobService.ListJobs(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidJobStatus):
			return response.BadRequest(c, "Invalid job status")
		default:
			return response.InternalServerError(c, "Failed to list jobs")
		}
	}

	return response.Success(c, "Jobs retrieved successfully", result)
}

// GetJob gets a job by ID
// @Summary Get job
// @Tags Jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	job, err := h.jobService.GetJob(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return response.NotFound(c, "Job not found")
		default:
			return response.InternalServerError(c, "Failed to get job")
		}
	}

	return response.Success(c, "Job retrieved successfully", fiber.Map{"job": job})
}

// CreateJob creates a job posting
// @Summary Create job
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateJobInput true "Job data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	var input services.CreateJobInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validate.Struct(&input); err != nil {
		return response.BadRequest(c, "Validation failed: "+err.Error())
	}

	job, err := h.jobService.CreateJob(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDepartmentNotFound):
			return response.NotFound(c, "Department not found")
		default:
			return response.InternalServerError(c, "Failed to create job")
		}
	}

	return response.Created(c, "Job created successfully", fiber.Map{"job": job})
}

// UpdateJob updates a job posting
// @Summary Update job
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param body body services.UpdateJobInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	var input services.UpdateJobInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	job, err := h.jobService.UpdateJob(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return response.NotFound(c, "Job not found")
		case errors.Is(err, services.ErrDepartmentNotFound):
			return response.NotFound(c, "Department not found")
		case errors.Is(err, services.ErrInvalidJobStatus):
			return response.BadRequest(c, "Invalid job status")
		default:
			return response.InternalServerError(c, "Failed to update job")
		}
	}

	return response.Success(c, "Job updated successfully", fiber.Map{"job": job})
}

// DeleteJob deletes a job posting
// @Summary Delete job
// @Description Delete a job and its applications
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	if err := h.jobService.DeleteJob(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrJobNotFound):
			return response.NotFound(c, "Job not found")
		default:
			return response.InternalServerError(c, "Failed to delete job")
		}
	}

	return response.Success(c, "Job deleted successfully", nil)
}
