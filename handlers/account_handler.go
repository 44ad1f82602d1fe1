package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/internal/middlewares"
	"github.com/onurcolak/sms-relay/internal/service"
	"github.com/onurcolak/sms-relay/pkg/response"
	"github.com/onurcolak/sms-relay/pkg/validator"
)

type accountService interface {
	CreateAccount(ctx context.Context, email, externalID string) (*domain.NewAccountResult, error)
	Dashboard(ctx context.Context, accountID int64) (*service.Dashboard, error)
	TelephoneMessages(ctx context.Context, accountID int64) ([]domain.TelephoneMessages, error)
	MessagePage(ctx context.Context, accountID, telephoneID int64, page, pageSize int) ([]domain.Message, int64, error)
	DeleteMessage(ctx context.Context, accountID, messageID int64) error
}

type AccountHandler struct {
	service accountService
}

func NewAccountHandler(service accountService) *AccountHandler {
	return &AccountHandler{service: service}
}

type CreateAccountRequest struct {
	Email      string `json:"email" validate:"required,email,max=255"`
	ExternalID string `json:"externalId" validate:"required,max=255"`
}

// CreateAccount godoc
// @Summary Create an account
// @Description Registers an account after login, provisions its telephone number and returns a session token. Repeating the call for a known e-mail returns the existing account.
// @Tags accounts
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Param account body CreateAccountRequest true "Account to create"
// @Success 201 {object} response.SuccessResponse{data=domain.NewAccountResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	result, err := h.service.CreateAccount(c.Request().Context(), req.Email, req.ExternalID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Account ready", result)
}

// GetDashboard godoc
// @Summary Session dashboard
// @Description Returns the signed-in account, every telephone it may view with messages, and its sharing lists
// @Tags accounts
// @Produce json
// @Security SessionToken
// @Success 200 {object} response.SuccessResponse{data=service.Dashboard}
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/me [get]
func (h *AccountHandler) GetDashboard(c echo.Context) error {
	dashboard, err := h.service.Dashboard(c.Request().Context(), middlewares.AccountID(c))
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, dashboard)
}

// GetTelephones godoc
// @Summary Visible telephones
// @Description Own telephone first, then telephones shared with the account, each with messages newest first
// @Tags messages
// @Produce json
// @Security SessionToken
// @Success 200 {object} response.SuccessResponse{data=[]domain.TelephoneMessages}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/me/telephones [get]
func (h *AccountHandler) GetTelephones(c echo.Context) error {
	telephones, err := h.service.TelephoneMessages(c.Request().Context(), middlewares.AccountID(c))
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, telephones)
}

// GetTelephoneMessages godoc
// @Summary Messages of one telephone
// @Description Paginated messages, newest first, of a telephone the account owns or has an active share for
// @Tags messages
// @Produce json
// @Security SessionToken
// @Param id path int true "Telephone ID"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} response.PaginatedResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/telephones/{id}/messages [get]
func (h *AccountHandler) GetTelephoneMessages(c echo.Context) error {
	telephoneID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err)
	}

	page, pageSize, err := parsePaginationParams(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	messages, totalCount, err := h.service.MessagePage(
		c.Request().Context(),
		middlewares.AccountID(c),
		telephoneID,
		page,
		pageSize,
	)
	if err != nil {
		return respondError(c, err)
	}

	return response.Paginated(c, messages, page, pageSize, totalCount)
}

// DeleteMessage godoc
// @Summary Delete a message
// @Description Deletes a message from the account's own telephone
// @Tags messages
// @Security SessionToken
// @Param id path int true "Message ID"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/messages/{id} [delete]
func (h *AccountHandler) DeleteMessage(c echo.Context) error {
	messageID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, err)
	}

	if err := h.service.DeleteMessage(c.Request().Context(), middlewares.AccountID(c), messageID); err != nil {
		return respondError(c, err)
	}

	return response.NoContent(c)
}
