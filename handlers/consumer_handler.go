package handlers

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/sms-relay/internal/consumer"
	"github.com/onurcolak/sms-relay/pkg/response"
)

type consumerControl interface {
	Start(ctx context.Context) error
	Stop() error
	IsRunning() bool
	GetStatus() consumer.ConsumerStatus
}

// ConsumerHandler controls the NATS inbound SMS consumer.
type ConsumerHandler struct {
	consumer consumerControl
	ctx      context.Context
}

// NewConsumerHandler takes the process context; a started consumer keeps
// routing until Stop or shutdown, independent of the request that started it.
func NewConsumerHandler(c consumerControl, ctx context.Context) *ConsumerHandler {
	return &ConsumerHandler{
		consumer: c,
		ctx:      ctx,
	}
}

// StartConsumer godoc
// @Summary Start the NATS consumer
// @Description Subscribes to the inbound SMS subject and routes every message
// @Tags consumer
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Success 200 {object} response.SuccessResponse{data=consumer.ConsumerStatus}
// @Failure 409 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/consumer/start [post]
func (h *ConsumerHandler) StartConsumer(c echo.Context) error {
	if h.consumer.IsRunning() {
		return response.OkWithMessage(c, "Consumer is already running", h.consumer.GetStatus())
	}

	if err := h.consumer.Start(h.ctx); err != nil {
		if errors.Is(err, consumer.ErrNotConfigured) {
			return response.Conflict(c, err)
		}
		return response.InternalServerError(c, err)
	}

	return response.OkWithMessage(c, "Consumer started successfully", h.consumer.GetStatus())
}

// StopConsumer godoc
// @Summary Stop the NATS consumer
// @Tags consumer
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Success 200 {object} response.SuccessResponse{data=consumer.ConsumerStatus}
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/consumer/stop [post]
func (h *ConsumerHandler) StopConsumer(c echo.Context) error {
	if !h.consumer.IsRunning() {
		return response.OkWithMessage(c, "Consumer is already stopped", h.consumer.GetStatus())
	}

	if err := h.consumer.Stop(); err != nil {
		return response.InternalServerError(c, err)
	}

	return response.OkWithMessage(c, "Consumer stopped successfully", h.consumer.GetStatus())
}

// GetConsumerStatus godoc
// @Summary Consumer status
// @Description Subject, queue group, counters per routing outcome
// @Tags consumer
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Success 200 {object} response.SuccessResponse{data=consumer.ConsumerStatus}
// @Router /api/v1/consumer/status [get]
func (h *ConsumerHandler) GetConsumerStatus(c echo.Context) error {
	return response.Ok(c, h.consumer.GetStatus())
}
