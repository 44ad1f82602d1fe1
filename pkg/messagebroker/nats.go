package messagebroker

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/onurcolak/sms-relay/pkg/logger"
)

// Message is a received NATS message, stripped to what consumers need.
type Message struct {
	Subject string
	Data    []byte
}

type Subscription interface {
	Unsubscribe() error
}

// NATSClient wraps a core NATS connection.
type NATSClient struct {
	conn *nats.Conn
}

// NewNATSClient connects to url. Reconnects are unlimited; disconnects and
// reconnects are logged.
func NewNATSClient(url, name string) (*NATSClient, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(5*time.Second),
		nats.PingInterval(20*time.Second),
		nats.MaxPingsOutstanding(3),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warnf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Infof("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Infof("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Infof("Connected to NATS at %s", conn.ConnectedUrl())

	return &NATSClient{conn: conn}, nil
}

// QueueSubscribe delivers messages on subject to handler, load-balanced
// across subscribers sharing queue. handler runs on the subscription's
// goroutine, one message at a time.
func (c *NATSClient) QueueSubscribe(subject, queue string, handler func(Message)) (Subscription, error) {
	sub, err := c.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(Message{Subject: msg.Subject, Data: msg.Data})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	return sub, nil
}

func (c *NATSClient) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Close drains pending messages before closing the connection.
func (c *NATSClient) Close() {
	if c.conn == nil || c.conn.IsClosed() {
		return
	}
	if err := c.conn.Drain(); err != nil {
		logger.Warnf("Failed to drain NATS connection: %v", err)
		c.conn.Close()
	}
}
