package notify

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/infra/logger"
)

// Config defines the connection parameters for the MQTT notifier.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "ridepool-notifier"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "ridepool/vehicle"
	}
}

// MQTTNotifier publishes assignments on a per-vehicle topic.
type MQTTNotifier struct {
	cli    paho.Client
	prefix string
	qos    byte
	log    logger.Logger
}

// NewMQTTNotifier connects to the broker.
func NewMQTTNotifier(cfg Config) (*MQTTNotifier, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)

	log := logger.New("mqtt-notifier")
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}

	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &MQTTNotifier{cli: cli, prefix: cfg.TopicPrefix, qos: cfg.QoS, log: log}, nil
}

// NotifyMatch publishes the decision to the assigned vehicle's topic.
// Rejected results are not published.
func (n *MQTTNotifier) NotifyMatch(res model.MatchResult) error {
	if res.Kind == model.MatchRejected {
		return nil
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("%s/%s/assignment", n.prefix, res.VehicleID)
	token := n.cli.Publish(topic, n.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.cli.Disconnect(250)
}

// MockNotifier records notifications for tests.
type MockNotifier struct {
	Sent []model.MatchResult
	Err  error
}

func (m *MockNotifier) NotifyMatch(res model.MatchResult) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, res)
	return nil
}
