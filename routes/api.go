package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/onurcolak/sms-relay/environments"
	"github.com/onurcolak/sms-relay/handlers"
	"github.com/onurcolak/sms-relay/internal/middlewares"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Health     *handlers.HealthHandler
	Inbound    *handlers.InboundHandler
	Account    *handlers.AccountHandler
	Share      *handlers.ShareHandler
	Validation *handlers.ValidationHandler
	Session    *handlers.SessionHandler
	Consumer   *handlers.ConsumerHandler
}

type tokenParser interface {
	Parse(token string) (int64, error)
}

// RegisterRoutes registers all API routes with middleware
func RegisterRoutes(
	e *echo.Echo,
	h Handlers,
	tokens tokenParser,
	cfg *environments.Config,
) {
	e.GET("/health", h.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	// Carrier webhook
	inbound := v1.Group("/inbound", middlewares.APIKeyAuth(cfg.Auth.InboundAPIKey))
	inbound.POST("/sms", h.Inbound.ReceiveSMS)

	// Operator endpoints share the admin key
	adminKey := middlewares.APIKeyAuth(cfg.Auth.AdminAPIKey)

	v1.POST("/accounts", h.Account.CreateAccount, adminKey)

	consumerGroup := v1.Group("/consumer", adminKey)
	consumerGroup.POST("/start", h.Consumer.StartConsumer)
	consumerGroup.POST("/stop", h.Consumer.StopConsumer)
	consumerGroup.GET("/status", h.Consumer.GetConsumerStatus)

	// Signed-in account
	me := v1.Group("", middlewares.SessionAuth(tokens))

	me.GET("/me", h.Account.GetDashboard)
	me.GET("/me/telephones", h.Account.GetTelephones)
	me.GET("/telephones/:id/messages", h.Account.GetTelephoneMessages)
	me.DELETE("/messages/:id", h.Account.DeleteMessage)

	me.GET("/shares", h.Share.GetShares)
	me.POST("/shares", h.Share.RequestShare)
	me.POST("/shares/incoming/:accountId/accept", h.Share.AcceptShare)
	me.DELETE("/shares/incoming/:accountId", h.Share.RemoveIncoming)
	me.DELETE("/shares/outgoing/:accountId", h.Share.RemoveOutgoing)

	me.POST("/forwarding/validation", h.Validation.BeginValidation)
	me.DELETE("/forwarding/validation", h.Validation.CancelValidation)
	me.DELETE("/forwarding", h.Validation.RemoveForwardingNumber)

	me.GET("/session/live", h.Session.Live)
}
