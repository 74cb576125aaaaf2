package notify

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/clinicdesk/scheduler/pkg/logging"
)

// DefaultBasePort matches the legacy deployment: doctor N listens on
// DefaultBasePort + N.
const DefaultBasePort = 6000

const (
	dialTimeout = 3 * time.Second
	readTimeout = 5 * time.Second
)

// TCPNotifier sends the sentinel over a short-lived TCP connection to
// the doctor's deterministic address. The wire format is one UTF-8
// line with no framing, no acknowledgment and no authentication; it is
// a closed LAN-only protocol.
type TCPNotifier struct {
	host     string
	basePort int
	logger   *logging.Logger
}

// NewTCPNotifier creates a notifier targeting host. A zero basePort
// falls back to DefaultBasePort.
func NewTCPNotifier(host string, basePort int, logger *logging.Logger) *TCPNotifier {
	if basePort <= 0 {
		basePort = DefaultBasePort
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &TCPNotifier{host: host, basePort: basePort, logger: logger}
}

// NotifyNewAppointment opens a connection, writes the sentinel line and
// closes. A doctor whose client is not listening simply misses the
// ping.
func (n *TCPNotifier) NotifyNewAppointment(ctx context.Context, doctorID int) error {
	addr := net.JoinHostPort(n.host, strconv.Itoa(n.basePort+doctorID))

	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("notify: dial doctor %d at %s: %w", doctorID, addr, err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintln(conn, Sentinel); err != nil {
		return fmt.Errorf("notify: write to doctor %d: %w", doctorID, err)
	}
	return nil
}

// Listener is one doctor session's inbound channel. It owns the bound
// socket and must be closed when the session ends.
type Listener struct {
	doctorID int
	ln       net.Listener
	onPing   func()
	logger   *logging.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

// ListenTCP binds the doctor's notification address and starts the
// accept loop. onPing runs once per received sentinel. Bind failure
// (address already in use) is returned to the caller so the session
// can continue without live notifications.
func ListenTCP(basePort, doctorID int, onPing func(), logger *logging.Logger) (*Listener, error) {
	if basePort <= 0 {
		basePort = DefaultBasePort
	}
	if logger == nil {
		logger = logging.Default()
	}

	ln, err := net.Listen("tcp", ":"+strconv.Itoa(basePort+doctorID))
	if err != nil {
		return nil, fmt.Errorf("notify: bind doctor %d: %w", doctorID, err)
	}

	l := &Listener{
		doctorID: doctorID,
		ln:       ln,
		onPing:   onPing,
		logger:   logger,
		closed:   make(chan struct{}),
	}
	go l.acceptLoop()

	logger.Info("notification listener bound", "doctor_id", doctorID, "addr", ln.Addr().String())
	return l, nil
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Close releases the socket and stops the accept loop.
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.closed)
		err = l.ln.Close()
	})
	return err
}

func (l *Listener) acceptLoop() {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			select {
			case <-l.closed:
				return
			default:
			}
			l.logger.Warn("notification accept failed", "doctor_id", l.doctorID, "error", err)
			return
		}
		// One handling unit per connection so a stalled peer cannot
		// block future pings.
		go l.handle(conn)
	}
}

func (l *Listener) handle(conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		return
	}
	if strings.TrimSpace(line) == Sentinel {
		l.onPing()
	}
}

var _ Notifier = (*TCPNotifier)(nil)
