package broadcast

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"
)

const (
	DefaultPort     = 12345
	DefaultAddress  = "255.255.255.255"
	DefaultInterval = 25 * time.Second

	// consecutive send failures before the sender disables itself for the
	// rest of the session
	maxConsecutiveErrors = 50
)

// UDPSender pushes packets to a broadcast address at a fixed cadence. After
// too many consecutive failures it shuts itself off so a dead network does
// not flood the logs for hours.
type UDPSender struct {
	addr     string
	interval time.Duration

	mu        sync.Mutex
	conn      net.Conn
	lastSend  time.Time
	errCount  int
	disabled  bool
	announced bool
}

// NewUDPSender dials the broadcast address. UDP dialing does not touch the
// network, so this only fails on bad configuration.
func NewUDPSender(address string, port int, interval time.Duration) (*UDPSender, error) {
	if address == "" {
		address = DefaultAddress
	}
	if port <= 0 {
		port = DefaultPort
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	conn, err := net.Dial("udp", net.JoinHostPort(address, fmt.Sprintf("%d", port)))
	if err != nil {
		return nil, fmt.Errorf("broadcast: dial udp: %w", err)
	}
	return &UDPSender{
		addr:     conn.RemoteAddr().String(),
		interval: interval,
		conn:     conn,
	}, nil
}

// Send transmits the packet if the interval has elapsed since the last
// transmission. Returns whether a datagram actually went out.
func (s *UDPSender) Send(pkt Packet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disabled {
		return false
	}
	now := time.Now()
	if !s.lastSend.IsZero() && now.Sub(s.lastSend) < s.interval {
		return false
	}

	payload, err := pkt.Marshal()
	if err != nil {
		s.recordError(fmt.Errorf("marshal: %w", err))
		return false
	}
	if _, err := s.conn.Write(payload); err != nil {
		s.recordError(fmt.Errorf("send: %w", err))
		return false
	}

	s.lastSend = now
	s.errCount = 0
	if !s.announced {
		log.Printf("broadcast: sending %d towers to %s every %s", len(pkt.Towers), s.addr, s.interval)
		s.announced = true
	}
	return true
}

func (s *UDPSender) recordError(err error) {
	s.errCount++
	if s.errCount <= 3 || s.errCount%10 == 0 {
		log.Printf("broadcast: error #%d: %v", s.errCount, err)
	}
	if s.errCount >= maxConsecutiveErrors {
		log.Printf("broadcast: disabled after %d consecutive errors", s.errCount)
		s.disabled = true
		s.conn.Close()
	}
}

// Disabled reports whether the sender gave up after repeated failures.
func (s *UDPSender) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled
}

// Close releases the socket.
func (s *UDPSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = true
	return s.conn.Close()
}
