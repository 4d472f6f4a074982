package handlers

import (
	"errors"
	"strconv"

	"county-workhub/internal/core/services"
	"county-workhub/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment ledger endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
	validate       *validator.Validate
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validate:       validator.New(),
	}
}

// CreatePayment records a payment for a worker
// @Summary Create payment
// @Description Record an unpaid payment for a worker, optionally tied to a task
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePaymentInput true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var input services.CreatePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validate.Struct(&input); err != nil {
		return response.BadRequest(c, "Validation failed: "+err.Error())
	}

	payment, err := h.paymentService.CreatePayment(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWorkerNotFound):
			return response.NotFound(c, "Worker not found")
		case errors.Is(err, services.ErrNotAWorker):
			return response.BadRequest(c, "User is not a worker")
		case errors.Is(err, services.ErrTaskNotFound):
			return response.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		default:
			return response.InternalServerError(c, "Failed to create payment")
		}
	}

	return response.Created(c, "Payment created successfully", fiber.Map{"payment": payment})
}

// ListPayments lists payments scoped by the caller's role
// @Summary List payments
// @Description Admins see all payments, workers their own
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	userID, role, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	payments, err := h.paymentService.ListPayments(c.Context(), userID, role)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully", fiber.Map{"payments": payments})
}

// GetPayment gets a payment by ID
// @Summary Get payment
// @Description Get a payment; workers may only read their own
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	userID, role, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	payment, err := h.paymentService.GetPayment(c.Context(), uint(id), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return response.NotFound(c, "Payment not found")
		case errors.Is(err, services.ErrNotPaymentOwner):
			return response.Forbidden(c, "Not the owner of this payment")
		default:
			return response.InternalServerError(c, "Failed to get payment")
		}
	}

	return response.Success(c, "Payment retrieved successfully", fiber.Map{"payment": payment})
}

// SettlePayment updates a payment's status or amount
// @Summary Settle payment
// @Description Mark a payment as paid or correct its amount
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param body body services.SettlePaymentInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [put]
func (h *PaymentHandler) SettlePayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	var input services.SettlePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payment, err := h.paymentService.SettlePayment(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return response.NotFound(c, "Payment not found")
		case errors.Is(err, services.ErrInvalidPaymentStatus):
			return response.BadRequest(c, "Invalid payment status")
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		default:
			return response.InternalServerError(c, "Failed to update payment")
		}
	}

	return response.Success(c, "Payment updated successfully", fiber.Map{"payment": payment})
}

// DeletePayment deletes a payment
// @Summary Delete payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	if err := h.paymentService.DeletePayment(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return response.NotFound(c, "Payment not found")
		default:
			return response.InternalServerError(c, "Failed to delete payment")
		}
	}

	return response.Success(c, "Payment deleted successfully", nil)
}
