package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onurcolak/sms-relay/internal/domain"
	"github.com/onurcolak/sms-relay/pkg/logger"
	"github.com/onurcolak/sms-relay/pkg/response"
)

// emptyLaML acknowledges a carrier webhook without replying to the sender.
const emptyLaML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

type inboundRouter interface {
	HandleInbound(ctx context.Context, sms domain.InboundSMS) domain.InboundOutcome
}

type InboundHandler struct {
	router inboundRouter
}

func NewInboundHandler(router inboundRouter) *InboundHandler {
	return &InboundHandler{router: router}
}

// InboundSMSRequest accepts the carrier's form post (From, To, Body) or JSON.
type InboundSMSRequest struct {
	From string `json:"from" form:"From"`
	To   string `json:"to" form:"To"`
	Body string `json:"body" form:"Body"`
}

// ReceiveSMS godoc
// @Summary Inbound SMS webhook
// @Description Routes an inbound SMS. Always answers 200 so the carrier never retries; form posts get an empty LaML document.
// @Tags inbound
// @Accept x-www-form-urlencoded,json
// @Produce json,xml
// @Param x-api-key header string true "Inbound API key"
// @Param From formData string false "Sender number"
// @Param To formData string false "Receiving number"
// @Param Body formData string false "Message text"
// @Success 200 {object} response.SuccessResponse
// @Router /api/v1/inbound/sms [post]
func (h *InboundHandler) ReceiveSMS(c echo.Context) error {
	outcome := domain.OutcomeDropped

	var req InboundSMSRequest
	if err := c.Bind(&req); err != nil {
		logger.Warnf("Discarding unreadable inbound SMS: %v", err)
	} else if strings.TrimSpace(req.To) == "" {
		logger.Warnf("Discarding inbound SMS without a receiving number")
	} else {
		outcome = h.router.HandleInbound(c.Request().Context(), domain.InboundSMS{
			From: req.From,
			To:   req.To,
			Body: req.Body,
		})
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) {
		return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, []byte(emptyLaML))
	}

	return response.Ok(c, map[string]any{"outcome": outcome})
}
