package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/sms-relay/internal/middlewares"
	"github.com/onurcolak/sms-relay/pkg/response"
	"github.com/onurcolak/sms-relay/pkg/validator"
)

type validationService interface {
	BeginValidation(ctx context.Context, accountID int64, candidate string) (string, error)
	CancelValidation(ctx context.Context, accountID int64) error
}

type forwardingRemover interface {
	RemoveForwardingNumber(ctx context.Context, accountID int64) error
}

// ValidationHandler serves the forwarding number lifecycle.
type ValidationHandler struct {
	validation validationService
	accounts   forwardingRemover
}

func NewValidationHandler(validation validationService, accounts forwardingRemover) *ValidationHandler {
	return &ValidationHandler{
		validation: validation,
		accounts:   accounts,
	}
}

type BeginValidationRequest struct {
	Number string `json:"number" validate:"required,localnumber"`
}

type BeginValidationResponse struct {
	Code string `json:"code"`
}

// BeginValidation godoc
// @Summary Start validating a forwarding number
// @Description Texts instructions to the candidate number and returns the code the user must text back from it
// @Tags forwarding
// @Accept json
// @Produce json
// @Security SessionToken
// @Param request body BeginValidationRequest true "Candidate number, 11 digits"
// @Success 201 {object} response.SuccessResponse{data=BeginValidationResponse}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/forwarding/validation [post]
func (h *ValidationHandler) BeginValidation(c echo.Context) error {
	var req BeginValidationRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	code, err := h.validation.BeginValidation(c.Request().Context(), middlewares.AccountID(c), req.Number)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Text this code from the number to confirm it", BeginValidationResponse{Code: code})
}

// CancelValidation godoc
// @Summary Cancel a pending validation
// @Tags forwarding
// @Security SessionToken
// @Success 204
// @Router /api/v1/forwarding/validation [delete]
func (h *ValidationHandler) CancelValidation(c echo.Context) error {
	if err := h.validation.CancelValidation(c.Request().Context(), middlewares.AccountID(c)); err != nil {
		return respondError(c, err)
	}

	return response.NoContent(c)
}

// RemoveForwardingNumber godoc
// @Summary Stop forwarding
// @Description Clears the validated forwarding number; inbound messages are no longer relayed
// @Tags forwarding
// @Security SessionToken
// @Success 204
// @Router /api/v1/forwarding [delete]
func (h *ValidationHandler) RemoveForwardingNumber(c echo.Context) error {
	if err := h.accounts.RemoveForwardingNumber(c.Request().Context(), middlewares.AccountID(c)); err != nil {
		return respondError(c, err)
	}

	return response.NoContent(c)
}
