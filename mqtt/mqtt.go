// mqtt.go - MQTT client used to notify the kitchen of paid orders

package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 5 * time.Second

// Client publishes JSON messages to an MQTT broker.
type Client struct {
	conn paho.Client
}

// Connect dials broker (e.g. tcp://localhost:1883) and waits for the
// connection to be acknowledged.
func Connect(broker, clientID string) (*Client, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(publishTimeout)

	conn := paho.NewClient(opts)
	token := conn.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return nil, fmt.Errorf("connect %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", broker, err)
	}
	return &Client{conn: conn}, nil
}

// Publish sends payload to topic with QoS 1. Strings and byte slices are
// sent as-is, anything else is JSON encoded.
func (c *Client) Publish(topic string, payload interface{}) error {
	body, err := Encode(payload)
	if err != nil {
		return err
	}
	token := c.conn.Publish(topic, 1, false, body)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s: timed out", topic)
	}
	return token.Error()
}

// Close disconnects after giving in-flight messages up to 250ms.
func (c *Client) Close() {
	c.conn.Disconnect(250)
}

// Encode turns a payload into the bytes put on the wire.
func Encode(payload interface{}) ([]byte, error) {
	switch p := payload.(type) {
	case string:
		return []byte(p), nil
	case []byte:
		return p, nil
	default:
		body, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		return body, nil
	}
}

// Discard is a publisher that drops every message. It is used when no
// broker is configured.
type Discard struct{}

func (Discard) Publish(string, interface{}) error { return nil }
