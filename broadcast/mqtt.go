package broadcast

import (
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTPublisher mirrors the UDP payload to an MQTT topic for consumers
// beyond the local subnet. Reconnects are handled by the library.
type MQTTPublisher struct {
	topic  string
	client mqtt.Client
}

// NewMQTTPublisher connects to the broker. The initial connect failure is
// returned; later drops auto-reconnect.
func NewMQTTPublisher(broker string, port int, topic string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", broker, port))
	opts.SetClientID(fmt.Sprintf("towerwitch-%d", time.Now().Unix()))
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(1 * time.Minute)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("broadcast: mqtt connection lost: %v", err)
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("broadcast: mqtt connect: %w", token.Error())
	}
	log.Printf("broadcast: connected to mqtt broker %s:%d, topic %s", broker, port, topic)

	return &MQTTPublisher{topic: topic, client: client}, nil
}

// Publish sends the packet at QoS 0. Failures are logged, never fatal; the
// UDP path is the primary transport.
func (p *MQTTPublisher) Publish(pkt Packet) {
	payload, err := pkt.Marshal()
	if err != nil {
		log.Printf("broadcast: mqtt marshal: %v", err)
		return
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			log.Printf("broadcast: mqtt publish: %v", token.Error())
		}
	}()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
