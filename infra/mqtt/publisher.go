// Package mqtt publishes comparison results to an MQTT topic for dashboard
// consumers.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/evroute/core/logger"
	"github.com/kilianp07/evroute/core/model"
	infralogger "github.com/kilianp07/evroute/infra/logger"
)

// Config defines the MQTT connection and target topic.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "evroute"
	}
	if c.Topic == "" {
		c.Topic = "evroute/comparisons"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	return nil
}

// ResultPublisher pushes comparison results to a broker using Eclipse Paho.
type ResultPublisher struct {
	cli   paho.Client
	topic string
	qos   byte
	log   logger.Logger
}

// NewResultPublisher connects to the broker and returns a publisher.
func NewResultPublisher(cfg Config) (*ResultPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)
	cli := paho.NewClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(10*time.Second) || tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %v", tok.Error())
	}
	return &ResultPublisher{
		cli:   cli,
		topic: cfg.Topic,
		qos:   cfg.QoS,
		log:   infralogger.New("mqtt-publisher"),
	}, nil
}

type comparisonPayload struct {
	RequestID      string                   `json:"request_id"`
	Start          model.NodeID             `json:"start"`
	End            model.NodeID             `json:"end"`
	Results        map[string]model.Outcome `json:"results"`
	BestByTime     string                   `json:"best_by_time,omitempty"`
	BestByEnergy   string                   `json:"best_by_energy,omitempty"`
	BestByDistance string                   `json:"best_by_distance,omitempty"`
}

// PublishComparison serializes the result and publishes it on the configured
// topic.
func (p *ResultPublisher) PublishComparison(res model.ComparisonResult) error {
	payload, err := json.Marshal(comparisonPayload{
		RequestID:      res.RequestID,
		Start:          res.Start,
		End:            res.End,
		Results:        res.ResultsByName(),
		BestByTime:     res.BestByTime,
		BestByEnergy:   res.BestByEnergy,
		BestByDistance: res.BestByDistance,
	})
	if err != nil {
		return err
	}
	tok := p.cli.Publish(p.topic, p.qos, false, payload)
	if !tok.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("mqtt publish timeout")
	}
	return tok.Error()
}

// Close disconnects from the broker.
func (p *ResultPublisher) Close() {
	p.cli.Disconnect(250)
	p.log.Infof("mqtt publisher closed")
}
