package handlers

import (
	"errors"
	"strconv"

	"county-workhub/internal/core/services"
	"county-workhub/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TaskHandler handles task lifecycle endpoints
type TaskHandler struct {
	taskService *services.TaskService
	validate    *validator.Validate
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validate:    validator.New(),
	}
}

// CreateTask assigns a task to a worker
// @Summary Create task
// @Description Assign a new task to a worker
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateTaskInput true "Task data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	userID, _, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validate.Struct(&input); err != nil {
		return response.BadRequest(c, "Validation failed: "+err.Error())
	}

	task, err := h.taskService.CreateTask(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWorkerNotFound):
			return response.NotFound(c, "Worker not found")
		case errors.Is(err, services.ErrNotAWorker):
			return response.BadRequest(c, "Assignee is not a worker")
		case errors.Is(err, services.ErrInvalidDateRange):
			return response.BadRequest(c, "Start date must not be after end date")
		default:
			return response.InternalServerError(c, "Failed to create task")
		}
	}

	return response.Created(c, "Task created successfully", fiber.Map{"task": task})
}

// ListTasks lists tasks scoped by the caller's role
// @Summary List tasks
// @Description Admins see all tasks, supervisors the ones they assigned, workers their own
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	userID, role, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	tasks, err := h.taskService.ListTasks(c.Context(), userID, role)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tasks")
	}

	return response.Success(c, "Tasks retrieved successfully", fiber.Map{"tasks": tasks})
}

// GetTask gets a task by ID
// @Summary Get task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	task, err := h.taskService.GetTask(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			return response.NotFound(c, "Task not found")
		default:
			return response.InternalServerError(c, "Failed to get task")
		}
	}

	return response.Success(c, "Task retrieved successfully", fiber.Map{"task": task})
}

// UpdateTask updates a task
// @Summary Update task
// @Description Workers move progress status; supervisors and admins may edit all fields
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param body body services.UpdateTaskInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	userID, role, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.taskService.UpdateTask(c.Context(), uint(id), userID, role, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			return response.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrNotTaskParticipant):
			return response.Forbidden(c, "Not allowed to modify this task")
		case errors.Is(err, services.ErrInvalidTaskProgress):
			return response.BadRequest(c, "Invalid progress status")
		case errors.Is(err, services.ErrInvalidDateRange):
			return response.BadRequest(c, "Start date must not be after end date")
		default:
			return response.InternalServerError(c, "Failed to update task")
		}
	}

	return response.Success(c, "Task updated successfully", fiber.Map{"task": task})
}

// ReviewTask approves or denies a completed task
// @Summary Review task
// @Description Approve or deny a task that has been completed
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param body body services.ReviewTaskInput true "Review verdict"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /tasks/{id}/review [put]
func (h *TaskHandler) ReviewTask(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	var input services.ReviewTaskInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	task, err := h.taskService.ReviewTask(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			return response.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrInvalidTaskVerdict):
			return response.BadRequest(c, "Verdict must be approved or denied")
		case errors.Is(err, services.ErrTaskNotCompleted):
			return response.Error(c, fiber.StatusUnprocessableEntity, "Task has not been completed")
		default:
			return response.InternalServerError(c, "Failed to review task")
		}
	}

	return response.Success(c, "Task reviewed successfully", fiber.Map{"task": task})
}

// DeleteTask deletes a task
// @Summary Delete task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid task ID")
	}

	if err := h.taskService.DeleteTask(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			return response.NotFound(c, "Task not found")
		default:
			return response.InternalServerError(c, "Failed to delete task")
		}
	}

	return response.Success(c, "Task deleted successfully", nil)
}
