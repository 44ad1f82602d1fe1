package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/internal/middlewares"
	"github.com/onurcolak/sms-relay/pkg/response"
	"github.com/onurcolak/sms-relay/pkg/validator"
)

type shareService interface {
	RequestShare(ctx context.Context, fromID, toID int64) (*domain.ShareRequest, error)
	RequestShareByEmail(ctx context.Context, fromID int64, email string) (*domain.ShareRequest, error)
	AcceptShare(ctx context.Context, fromID, toID int64) error
	RevokeShare(ctx context.Context, fromID, toID int64) error
	Overview(ctx context.Context, accountID int64) (*domain.ShareOverview, error)
}

type ShareHandler struct {
	service shareService
}

func NewShareHandler(service shareService) *ShareHandler {
	return &ShareHandler{service: service}
}

// ShareRequestBody addresses the recipient by e-mail or by account id.
type ShareRequestBody struct {
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	AccountID int64  `json:"accountId,omitempty" validate:"omitempty,min=1"`
}

// GetShares godoc
// @Summary Sharing overview
// @Description Pending incoming and outgoing requests with the counterpart profile, and active shares in both directions
// @Tags shares
// @Produce json
// @Security SessionToken
// @Success 200 {object} response.SuccessResponse{data=domain.ShareOverview}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/shares [get]
func (h *ShareHandler) GetShares(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context(), middlewares.AccountID(c))
	if err != nil {
		return respondError(c, err)
	}

	return response.Ok(c, overview)
}

// RequestShare godoc
// @Summary Share my messages
// @Description Sends a pending share request to another account
// @Tags shares
// @Accept json
// @Produce json
// @Security SessionToken
// @Param request body ShareRequestBody true "Recipient"
// @Success 201 {object} response.SuccessResponse{data=domain.ShareRequest}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /api/v1/shares [post]
func (h *ShareHandler) RequestShare(c echo.Context) error {
	var req ShareRequestBody
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	if (req.Email == "") == (req.AccountID == 0) {
		return response.BadRequestWithMessage(c, "exactly one of email or accountId is required")
	}

	ctx := c.Request().Context()
	from := middlewares.AccountID(c)

	var (
		request *domain.ShareRequest
		err     error
	)
	if req.Email != "" {
		request, err = h.service.RequestShareByEmail(ctx, from, req.Email)
	} else {
		request, err = h.service.RequestShare(ctx, from, req.AccountID)
	}
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Share request sent", request)
}

// AcceptShare godoc
// @Summary Accept a share request
// @Description Accepts the pending request sent by the given account
// @Tags shares
// @Produce json
// @Security SessionToken
// @Param accountId path int true "Sender account ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/shares/incoming/{accountId}/accept [post]
func (h *ShareHandler) AcceptShare(c echo.Context) error {
	from, err := parseIDParam(c, "accountId")
	if err != nil {
		return response.BadRequest(c, err)
	}

	if err := h.service.AcceptShare(c.Request().Context(), from, middlewares.AccountID(c)); err != nil {
		return respondError(c, err)
	}

	return response.OkWithMessage(c, "Share accepted", nil)
}

// RemoveIncoming godoc
// @Summary Reject or leave a share
// @Description Deletes the request sent by the given account, pending or active. Deleting a missing request is not an error.
// @Tags shares
// @Security SessionToken
// @Param accountId path int true "Sender account ID"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/shares/incoming/{accountId} [delete]
func (h *ShareHandler) RemoveIncoming(c echo.Context) error {
	from, err := parseIDParam(c, "accountId")
	if err != nil {
		return response.BadRequest(c, err)
	}

	if err := h.service.RevokeShare(c.Request().Context(), from, middlewares.AccountID(c)); err != nil {
		return respondError(c, err)
	}

	return response.NoContent(c)
}

// RemoveOutgoing godoc
// @Summary Cancel or revoke a share
// @Description Deletes the request sent to the given account, pending or active. Deleting a missing request is not an error.
// @Tags shares
// @Security SessionToken
// @Param accountId path int true "Recipient account ID"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/shares/outgoing/{accountId} [delete]
func (h *ShareHandler) RemoveOutgoing(c echo.Context) error {
	to, err := parseIDParam(c, "accountId")
	if err != nil {
		return response.BadRequest(c, err)
	}

	if err := h.service.RevokeShare(c.Request().Context(), middlewares.AccountID(c), to); err != nil {
		return respondError(c, err)
	}

	return response.NoContent(c)
}
