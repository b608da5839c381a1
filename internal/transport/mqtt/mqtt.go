// Package mqtt implements the MQTT transport for ordertaker.
//
// MQTT suits in-store devices such as table tablets and drive-through
// microphones. The transport subscribes to a wildcard order topic whose last
// level names the tenant, and publishes each result under the result prefix
// keyed by the request source.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/nadzzz/ordertaker/internal/config"
	"github.com/nadzzz/ordertaker/internal/message"
	"github.com/nadzzz/ordertaker/internal/transport"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	quiesceMillis  = 250
)

// Option configures the MQTT transport.
type Option func(*Transport)

// WithClient uses c instead of building a client from config.
func WithClient(c paho.Client) Option {
	return func(t *Transport) { t.client = c }
}

// WithLogger sets the transport logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) { t.logger = l }
}

// Transport implements transport.Transport over MQTT.
type Transport struct {
	cfg    config.MQTTConfig
	logger *slog.Logger

	mu     sync.Mutex
	client paho.Client
}

// New creates a new MQTT transport from config.
func New(cfg config.MQTTConfig, opts ...Option) *Transport {
	t := &Transport{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("transport", "mqtt")
	return t
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "mqtt" }

// Listen connects to the broker and subscribes to the order topic. It blocks
// until the context is cancelled. Built clients resubscribe on reconnect.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	onMessage := func(_ paho.Client, m paho.Message) {
		t.handleMessage(ctx, handler, m)
	}

	t.mu.Lock()
	built := t.client == nil
	if built {
		opts := paho.NewClientOptions().
			AddBroker(t.cfg.Broker).
			SetClientID(t.cfg.ClientID).
			SetAutoReconnect(true).
			SetOrderMatters(false).
			SetConnectionLostHandler(func(_ paho.Client, err error) {
				t.logger.Warn("mqtt connection lost", "error", err)
			}).
			SetOnConnectHandler(func(c paho.Client) {
				if err := wait(c.Subscribe(t.cfg.Topic, t.cfg.QoS, onMessage), connectTimeout); err != nil {
					t.logger.Error("mqtt subscribe failed", "topic", t.cfg.Topic, "error", err)
				}
			})
		t.client = paho.NewClient(opts)
	}
	client := t.client
	t.mu.Unlock()

	if !client.IsConnected() {
		if err := wait(client.Connect(), connectTimeout); err != nil {
			return fmt.Errorf("mqtt connect %s: %w", t.cfg.Broker, err)
		}
	}
	// Clients built here subscribe from their connect handler.
	if !built {
		if err := wait(client.Subscribe(t.cfg.Topic, t.cfg.QoS, onMessage), connectTimeout); err != nil {
			return fmt.Errorf("mqtt subscribe %s: %w", t.cfg.Topic, err)
		}
	}

	t.logger.Info("mqtt transport listening", "broker", t.cfg.Broker, "topic", t.cfg.Topic)
	<-ctx.Done()
	return nil
}

// handleMessage decodes one order, dispatches it and publishes the result.
func (t *Transport) handleMessage(ctx context.Context, handler transport.Handler, m paho.Message) {
	var req message.OrderRequest
	if err := json.Unmarshal(m.Payload(), &req); err != nil {
		t.logger.Warn("dropping malformed order", "topic", m.Topic(), "error", err)
		return
	}
	if tenant := TenantFromTopic(m.Topic()); tenant != "" {
		req.Tenant = tenant
	}

	res, err := handler.HandleOrder(ctx, &req)
	if err != nil {
		t.logger.Error("order dispatch failed", "topic", m.Topic(), "error", err)
		return
	}

	payload, err := json.Marshal(res)
	if err != nil {
		t.logger.Error("encoding result", "error", err)
		return
	}
	topic := ResultTopic(t.cfg.ResultPrefix, req.Source, req.Tenant)
	if err := t.publish(topic, payload); err != nil {
		t.logger.Error("publishing result", "topic", topic, "error", err)
	}
}

// Send publishes a payload to the topic named by the target endpoint.
func (t *Transport) Send(_ context.Context, target message.Target, payload []byte) error {
	if target.Endpoint == "" {
		return errors.New("mqtt send: target topic is empty")
	}
	if err := t.publish(target.Endpoint, payload); err != nil {
		return fmt.Errorf("mqtt send to %s: %w", target.Endpoint, err)
	}
	t.logger.Debug("mqtt send success", "topic", target.Endpoint, "bytes", len(payload))
	return nil
}

func (t *Transport) publish(topic string, payload []byte) error {
	t.mu.Lock()
	client := t.client
	t.mu.Unlock()
	if client == nil || !client.IsConnected() {
		return errors.New("not connected")
	}
	return wait(client.Publish(topic, t.cfg.QoS, false, payload), publishTimeout)
}

// Close disconnects from the MQTT broker.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client != nil && t.client.IsConnected() {
		t.client.Disconnect(quiesceMillis)
	}
	return nil
}

// TenantFromTopic returns the last level of an order topic, or "" when the
// topic has no usable last level.
func TenantFromTopic(topic string) string {
	i := strings.LastIndexByte(topic, '/')
	last := topic[i+1:]
	if last == "+" || last == "#" {
		return ""
	}
	return last
}

// ResultTopic builds <prefix>/<source>. Requests without a source answer on
// the tenant's topic instead.
func ResultTopic(prefix, source, tenant string) string {
	key := source
	if key == "" {
		key = tenant
	}
	if key == "" {
		key = "anonymous"
	}
	// Wildcards and separators are not allowed inside a single level.
	key = strings.NewReplacer("/", "_", "+", "_", "#", "_").Replace(key)
	return strings.TrimSuffix(prefix, "/") + "/" + key
}

func wait(tok paho.Token, timeout time.Duration) error {
	if !tok.WaitTimeout(timeout) {
		return errors.New("timed out")
	}
	return tok.Error()
}
