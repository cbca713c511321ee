package publisher

import (
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-json-experiment/json"
	"github.com/google/uuid"

	"github.com/jgoulah/ecomonitor/internal/config"
)

// Publisher handles publishing summaries to MQTT and Home Assistant
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	ha          *HAClient
}

// New creates a new publisher for whichever outputs are enabled
func New(mqttCfg config.MQTTConfig, haCfg config.HAConfig) (*Publisher, error) {
	if !mqttCfg.Enabled && !haCfg.Enabled {
		return nil, errors.New("neither MQTT nor Home Assistant is enabled in config")
	}

	p := &Publisher{}

	if haCfg.Enabled {
		ha, err := NewHAClient(haCfg)
		if err != nil {
			return nil, err
		}
		p.ha = ha
	}

	if mqttCfg.Enabled {
		if mqttCfg.Broker == "" {
			return nil, errors.New("MQTT broker address is required when enabled")
		}

		p.topicPrefix = mqttCfg.GetTopicPrefix()

		// Configure MQTT client options
		opts := mqtt.NewClientOptions()
		opts.AddBroker(fmt.Sprintf("tcp://%s", mqttCfg.Broker))
		opts.SetClientID("ecomonitor-" + uuid.NewString()[:8])
		opts.SetAutoReconnect(true)
		opts.SetConnectRetry(false)
		opts.SetConnectTimeout(10 * time.Second)

		if mqttCfg.Username != "" {
			opts.SetUsername(mqttCfg.Username)
		}
		if mqttCfg.Password != "" {
			opts.SetPassword(mqttCfg.Password)
		}

		// Create and connect client
		p.client = mqtt.NewClient(opts)
		if token := p.client.Connect(); token.Wait() && token.Error() != nil {
			return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
		}
	}

	return p, nil
}

// Message is a single MQTT publication
type Message struct {
	Topic   string
	Payload []byte
}

// Messages lays out a summary as retained MQTT messages under prefix
func Messages(prefix string, s Summary) ([]Message, error) {
	msgs := make([]Message, 0, len(s.Totals)+1)
	for _, t := range s.Totals {
		msgs = append(msgs, Message{
			Topic:   fmt.Sprintf("%s/%s/total_kwh", prefix, Slug(t.Appliance)),
			Payload: []byte(fmt.Sprintf("%.2f", t.KWh)),
		})
	}

	insights, err := json.Marshal(s.Insights)
	if err != nil {
		return nil, fmt.Errorf("encoding insights: %w", err)
	}
	msgs = append(msgs, Message{Topic: prefix + "/insights", Payload: insights})

	return msgs, nil
}

// Publish sends the summary to every enabled output
func (p *Publisher) Publish(s Summary) error {
	if p.client != nil {
		msgs, err := Messages(p.topicPrefix, s)
		if err != nil {
			return err
		}
		for _, msg := range msgs {
			token := p.client.Publish(msg.Topic, 1, true, msg.Payload)
			if !token.WaitTimeout(10*time.Second) {
				return fmt.Errorf("publishing %s: timed out", msg.Topic)
			}
			if err := token.Error(); err != nil {
				return fmt.Errorf("publishing %s: %w", msg.Topic, err)
			}
		}
	}

	if p.ha != nil {
		if err := p.ha.Publish(s); err != nil {
			return err
		}
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
