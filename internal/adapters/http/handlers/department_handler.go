package handlers

import (
	"errors"
	"strconv"

	"county-workhub/internal/core/services"
	"county-workhub/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DepartmentHandler handles department endpoints
type DepartmentHandler struct {
	deptService *services.DepartmentService
	validate    *validator.Validate
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(deptService *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		deptService: deptService,
		validate:    validator.New(),
	}
}

// ListDepartments lists all departments
// @Summary List departments
// @Tags Departments
// @Produce json
// @Success 200 {object} response.Response
// @Router /departments [get]
func (h *DepartmentHandler) ListDepartments(c *fiber.Ctx) error {
	depts, err := h.deptService.ListDepartments(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list departments")
	}

	return response.Success(c, "Departments retrieved successfully", fiber.Map{"departments": depts})
}

// GetDepartment gets a department by ID
// @Summary Get department
// @Tags Departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departments/{id} [get]
func (h *DepartmentHandler) GetDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	dept, err := h.deptService.GetDepartment(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDepartmentNotFound):
			return response.NotFound(c, "Department not found")
		default:
			return response.InternalServerError(c, "Failed to get department")
		}
	}

	return response.Success(c, "Department retrieved successfully", fiber.Map{"department": dept})
}

// CreateDepartment creates a department
// @Summary Create department
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateDepartmentInput true "Department data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /departments [post]
func (h *DepartmentHandler) CreateDepartment(c *fiber.Ctx) error {
	var input services.CreateDepartmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validate.Struct(&input); err != nil {
		return response.BadRequest(c, "Validation failed: "+err.Error())
	}

	dept, err := h.deptService.CreateDepartment(c.Context(), &input)
	if err != nil {
		return h.mapDepartmentError(c, err, "Failed to create department")
	}

	return response.Created(c, "Department created successfully", fiber.Map{"department": dept})
}

// UpdateDepartment updates a department
// @Summary Update department
// @Tags Departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param body body services.UpdateDepartmentInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /departments/{id} [put]
func (h *DepartmentHandler) UpdateDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	var input services.UpdateDepartmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dept, err := h.deptService.UpdateDepartment(c.Context(), uint(id), &input)
	if err != nil {
		return h.mapDepartmentError(c, err, "Failed to update department")
	}

	return response.Success(c, "Department updated successfully", fiber.Map{"department": dept})
}

// DeleteDepartment deletes a department
// @Summary Delete department
// @Description Delete a department, its jobs and their applications
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departments/{id} [delete]
func (h *DepartmentHandler) DeleteDepartment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	if err := h.deptService.DeleteDepartment(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrDepartmentNotFound):
			return response.NotFound(c, "Department not found")
		default:
			return response.InternalServerError(c, "Failed to delete department")
		}
	}

	return response.Success(c, "Department deleted successfully", nil)
}

// ListWorkers lists a department's workers
// @Summary List department workers
// @Tags Departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /departments/{id}/workers [get]
func (h *DepartmentHandler) ListWorkers(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid department ID")
	}

	workers, err := h.deptService.ListWorkers(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDepartmentNotFound):
			return response.NotFound(c, "Department not found")
		default:
			return response.InternalServerError(c, "Failed to list workers")
		}
	}

	return response.Success(c, "Workers retrieved successfully", fiber.Map{"workers": workers})
}

func (h *DepartmentHandler) mapDepartmentError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrDepartmentNotFound):
		return response.NotFound(c, "Department not found")
	case errors.Is(err, services.ErrDepartmentExists):
		return response.Conflict(c, "Department name already exists")
	case errors.Is(err, services.ErrSupervisorNotFound):
		return response.NotFound(c, "Supervisor not found")
	case errors.Is(err, services.ErrNotASupervisor):
		return response.BadRequest(c, "User is not a supervisor")
	case errors.Is(err, services.ErrSupervisorAssigned):
		return response.Conflict(c, "Supervisor already assigned to another department")
	default:
		return response.InternalServerError(c, fallback)
	}
}
