// Package ingest feeds odometer telemetry from the vehicle fleet into the
// engine. Vehicles publish mileage to fleet/odometer/<VIN>; each message is
// recorded exactly like a reading posted over the REST API.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/engine"
)

const (
	topicFilter    = "fleet/odometer/+"
	connectTimeout = 10 * time.Second
	handleTimeout  = 15 * time.Second
)

// reading is the MQTT payload shape.
type reading struct {
	Mileage     int    `json:"mileage"`
	ServiceType string `json:"serviceType,omitempty"`
}

// OdometerIngestor subscribes to fleet odometer topics and records readings.
type OdometerIngestor struct {
	engine *engine.Engine
	client mqtt.Client
}

// NewOdometerIngestor connects to the broker and subscribes. An unreachable
// broker is an error; message-level failures are only logged.
func NewOdometerIngestor(brokerURL string, eng *engine.Engine) (*OdometerIngestor, error) {
	ing := &OdometerIngestor{engine: eng}

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("fleet-maintenance-odometer").
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetOnConnectHandler(func(c mqtt.Client) {
			if token := c.Subscribe(topicFilter, 1, ing.handleMessage); token.Wait() && token.Error() != nil {
				log.WithError(token.Error()).Error("mqtt subscribe failed")
			}
		})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.WaitTimeout(connectTimeout) && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	ing.client = client
	log.WithField("broker", brokerURL).Info("odometer ingestor connected")
	return ing, nil
}

func (i *OdometerIngestor) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	vin := vinFromTopic(msg.Topic())
	if vin == "" {
		log.WithField("topic", msg.Topic()).Warn("odometer message without VIN")
		return
	}

	var in reading
	if err := json.Unmarshal(msg.Payload(), &in); err != nil {
		log.WithError(err).WithField("vin", vin).Warn("invalid odometer payload")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	result, err := i.engine.RecordOdometerReading(ctx, vin, in.Mileage, in.ServiceType)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"vin": vin, "mileage": in.Mileage}).
			Warn("odometer reading rejected")
		return
	}

	fields := log.Fields{
		"vin":                vin,
		"mileage":            in.Mileage,
		"nextServiceMileage": result.NextServiceMileage,
	}
	if result.ServiceID != nil {
		fields["serviceId"] = result.ServiceID.Hex()
	}
	log.WithFields(fields).Info("odometer reading recorded")
}

// Close disconnects from the broker.
func (i *OdometerIngestor) Close() {
	if i.client != nil {
		i.client.Disconnect(250)
	}
}

func vinFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 {
		return ""
	}
	return parts[2]
}
