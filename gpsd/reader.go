package gpsd

import (
	"bufio"
	"fmt"
	"log"
	"os/exec"
	"sync"
	"time"

	"towerwitch/geo"
)

// Reader supervises a gpspipe subprocess and delivers fixes on a buffered
// channel. When the process dies it restarts with backoff; when the binary
// is missing entirely the reader reports unavailable and the caller falls
// back to a configured position.
type Reader struct {
	binary   string
	args     []string
	fixes    chan geo.Position
	shutdown chan struct{}
	stopOnce sync.Once
}

// NewReader prepares a reader for the given gpspipe binary. An empty binary
// name selects the default "gpspipe".
func NewReader(binary string) *Reader {
	if binary == "" {
		binary = "gpspipe"
	}
	return &Reader{
		binary:   binary,
		args:     []string{"-w"},
		fixes:    make(chan geo.Position, 100),
		shutdown: make(chan struct{}),
	}
}

// Available reports whether the gpspipe binary can be found at all.
func (r *Reader) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// Fixes is the stream of parsed positions. It closes when the reader stops.
func (r *Reader) Fixes() <-chan geo.Position {
	return r.fixes
}

// Start verifies the binary exists and launches the supervision loop. The
// first launch failure is returned synchronously; later failures restart
// with backoff in the background.
func (r *Reader) Start() error {
	if !r.Available() {
		return fmt.Errorf("gpsd: %s not found in PATH", r.binary)
	}
	go r.supervise()
	return nil
}

// Stop terminates the subprocess and closes the fix channel.
func (r *Reader) Stop() {
	r.stopOnce.Do(func() {
		close(r.shutdown)
	})
}

func (r *Reader) supervise() {
	const (
		initialDelay = 2 * time.Second
		maxDelay     = 30 * time.Second
	)
	defer close(r.fixes)

	delay := initialDelay
	for {
		select {
		case <-r.shutdown:
			return
		default:
		}

		start := time.Now()
		if err := r.runOnce(); err != nil {
			log.Printf("gpsd: %v", err)
		}

		select {
		case <-r.shutdown:
			return
		default:
		}

		// a run that survived a while earns a fresh backoff
		if time.Since(start) > time.Minute {
			delay = initialDelay
		}
		log.Printf("gpsd: restarting %s in %s", r.binary, delay)
		select {
		case <-time.After(delay):
		case <-r.shutdown:
			return
		}
		if delay *= 2; delay > maxDelay {
			delay = maxDelay
		}
	}
}

// deliver queues a fix without blocking. When the consumer has fallen
// behind, the oldest queued fix is evicted so the newest one always lands.
func (r *Reader) deliver(fix geo.Position) {
	select {
	case r.fixes <- fix:
		return
	default:
	}
	select {
	case <-r.fixes:
	default:
	}
	select {
	case r.fixes <- fix:
	default:
	}
}

// runOnce launches one gpspipe process and pumps its output until the
// process exits or the reader shuts down.
func (r *Reader) runOnce() error {
	cmd := exec.Command(r.binary, r.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", r.binary, err)
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-r.shutdown:
			cmd.Process.Kill()
		case <-done:
		}
	}()

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fix, ok := parseTPV(scanner.Bytes())
		if !ok {
			continue
		}
		r.deliver(fix)
	}
	close(done)

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s exited: %w", r.binary, err)
	}
	return fmt.Errorf("%s stream ended", r.binary)
}
