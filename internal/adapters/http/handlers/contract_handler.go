package handlers

import (
	"errors"
	"strconv"

	"county-workhub/internal/core/services"
	"county-workhub/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContractHandler handles employment contract endpoints
type ContractHandler struct {
	contractService *services.ContractService
	validate        *validator.Validate
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contractService *services.ContractService) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		validate:        validator.New(),
	}
}

// CreateContract creates a contract for a worker
// @Summary Create contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateContractInput true "Contract data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contracts [post]
func (h *ContractHandler) CreateContract(c *fiber.Ctx) error {
	userID, _, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateContractInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validate.Struct(&input); err != nil {
		return response.BadRequest(c, "Validation failed: "+err.Error())
	}

	contract, err := h.contractService.CreateContract(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWorkerNotFound):
			return response.NotFound(c, "Worker not found")
		case errors.Is(err, services.ErrNotAWorker):
			return response.BadRequest(c, "User is not a worker")
		case errors.Is(err, services.ErrInvalidDateRange):
			return response.BadRequest(c, "Start date must not be after end date")
		default:
			return response.InternalServerError(c, "Failed to create contract")
		}
	}

	return response.Created(c, "Contract created successfully", fiber.Map{"contract": contract})
}

// ListContracts lists contracts scoped by the caller's role
// @Summary List contracts
// @Description Admins see all contracts, workers their own
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /contracts [get]
func (h *ContractHandler) ListContracts(c *fiber.Ctx) error {
	userID, role, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	contracts, err := h.contractService.ListContracts(c.Context(), userID, role)
	if err != nil {
		return response.InternalServerError(c, "Failed to list contracts")
	}

	return response.Success(c, "Contracts retrieved successfully", fiber.Map{"contracts": contracts})
}

// GetContract gets a contract by ID
// @Summary Get contract
// @Description Get a contract; workers may only read their own
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contract ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contracts/{id} [get]
func (h *ContractHandler) GetContract(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid contract ID")
	}

	userID, role, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	contract, err := h.contractService.GetContract(c.Context(), uint(id), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContractNotFound):
			return response.NotFound(c, "Contract not found")
		case errors.Is(err, services.ErrNotContractOwner):
			return response.Forbidden(c, "Not the owner of this contract")
		default:
			return response.InternalServerError(c, "Failed to get contract")
		}
	}

	return response.Success(c, "Contract retrieved successfully", fiber.Map{"contract": contract})
}

// UpdateContract updates a contract
// @Summary Update contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contract ID"
// @Param body body services.UpdateContractInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contracts/{id} [put]
func (h *ContractHandler) UpdateContract(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid contract ID")
	}

	var input services.UpdateContractInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	contract, err := h.contractService.UpdateContract(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrContractNotFound):
			return response.NotFound(c, "Contract not found")
		case errors.Is(err, services.ErrInvalidDateRange):
			return response.BadRequest(c, "Start date must not be after end date")
		default:
			return response.InternalServerError(c, "Failed to update contract")
		}
	}

	return response.Success(c, "Contract updated successfully", fiber.Map{"contract": contract})
}

// DeleteContract deletes a contract
// @Summary Delete contract
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contract ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contracts/{id} [delete]
func (h *ContractHandler) DeleteContract(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid contract ID")
	}

	if err := h.contractService.DeleteContract(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrContractNotFound):
			return response.NotFound(c, "Contract not found")
		default:
			return response.InternalServerError(c, "Failed to delete contract")
		}
	}

	return response.Success(c, "Contract deleted successfully", nil)
}
