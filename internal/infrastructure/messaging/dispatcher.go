package messaging

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"maisquecardapio.backend/pkg/logger"
	"maisquecardapio.backend/pkg/metrics"
)

// Notification kinds
const (
	KindOrder      = "order"
	KindReminder7d = "reminder_7d"
	KindReminder3d = "reminder_3d"
	KindExpired    = "expired"
	KindOperator   = "operator"
	KindRenewed    = "renewed"
	KindWelcome    = "welcome"
	KindUpgrade    = "upgrade"
)

// Outcomes reported for every enqueued message
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeDropped = "dropped"
	OutcomeSkipped = "skipped"
)

const DefaultQueueSize = 256

var ErrDispatcherStopped = errors.New("dispatcher stopped")

// Message is one outbound WhatsApp text. A zero Gateway means the platform gateway.
type Message struct {
	Kind            string
	EstablishmentID int64
	Gateway         GatewayConfig
	Number          string
	Text            string

	requestID string
}

// Result is the outcome of one message
type Result struct {
	Message Message
	Outcome string
	Err     error
}

// Dispatcher sends messages on a worker goroutine so callers never block on the gateway
type Dispatcher struct {
	sender   Sender
	platform GatewayConfig
	timeout  time.Duration

	queue   chan Message
	results chan<- Result
	done    chan struct{}

	mu      sync.RWMutex
	running bool
	stopped bool
}

// NewDispatcher creates a dispatcher; call Start to launch the worker
func NewDispatcher(sender Sender, platform GatewayConfig, queueSize int, timeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		sender:   sender,
		platform: platform,
		timeout:  timeout,
		queue:    make(chan Message, queueSize),
		done:     make(chan struct{}),
	}
}

// WithResults mirrors every result to ch. Sends to ch never block the worker.
func (d *Dispatcher) WithResults(ch chan<- Result) *Dispatcher {
	d.results = ch
	return d
}

// Start launches the worker; a second call is a no-op
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running || d.stopped {
		return
	}
	d.running = true
	go d.run()
}

// Enqueue hands msg to the worker and reports whether it was accepted.
// It never blocks: a full queue or a stopped dispatcher drops the message.
func (d *Dispatcher) Enqueue(ctx context.Context, msg Message) bool {
	if reqID, ok := ctx.Value(logger.RequestIDKey).(string); ok {
		msg.requestID = reqID
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		d.report(ctx, Result{Message: msg, Outcome: OutcomeDropped, Err: ErrDispatcherStopped})
		return false
	}

	select {
	case d.queue <- msg:
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
		return true
	default:
		d.report(ctx, Result{Message: msg, Outcome: OutcomeDropped, Err: errors.New("queue full")})
		return false
	}
}

// Shutdown stops accepting messages and waits for the queue to drain or ctx to end
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	wasRunning := d.running
	close(d.queue)
	d.mu.Unlock()

	if !wasRunning {
		return nil
	}
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		metrics.NotificationQueueDepth.Set(float64(len(d.queue)))
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx := context.Background()
	if msg.requestID != "" {
		ctx = context.WithValue(ctx, logger.RequestIDKey, msg.requestID)
	}

	gw := msg.Gateway
	if !gw.Configured() {
		gw = d.platform
	}
	if !gw.Configured() || msg.Number == "" {
		d.report(ctx, Result{Message: msg, Outcome: OutcomeSkipped})
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.sender.Send(sendCtx, gw, msg.Number, msg.Text); err != nil {
		d.report(ctx, Result{Message: msg, Outcome: OutcomeFailed, Err: err})
		return
	}
	d.report(ctx, Result{Message: msg, Outcome: OutcomeSent})
}

func (d *Dispatcher) report(ctx context.Context, r Result) {
	metrics.NotificationsTotal.WithLabelValues(r.Message.Kind, r.Outcome).Inc()

	fields := []zap.Field{
		zap.String("kind", r.Message.Kind),
		zap.String("outcome", r.Outcome),
		zap.Int64("establishment_id", r.Message.EstablishmentID),
	}
	switch r.Outcome {
	case OutcomeSent:
		logger.Info(ctx, "Notification sent", fields...)
	case OutcomeSkipped:
		logger.Debug(ctx, "Notification skipped, no gateway or number", fields...)
	default:
		logger.Warn(ctx, "Notification not delivered", append(fields, zap.Error(r.Err))...)
	}

	if d.results != nil {
		select {
		case d.results <- r:
		default:
		}
	}
}
