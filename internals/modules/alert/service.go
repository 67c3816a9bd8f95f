package alert

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"uptime-monitor/internals/modules/check"

	"github.com/rs/zerolog"
)

const sendTimeout = 15 * time.Second

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Message renders the alert text for c's current state.
func Message(c check.Check) string {
	return fmt.Sprintf("[MONITOR] Alert: Your check for %s %s is currently %s",
		strings.ToUpper(string(c.Method)),
		c.Target(),
		strings.ToLower(string(c.ComparableState())),
	)
}

type Service struct {
	// lifecycle
	ctx         context.Context
	workerCount int
	workerWG    sync.WaitGroup
	mu          sync.RWMutex
	closed      bool

	// channels
	alertChan chan check.Check

	// misc
	sender Sender
	logger *zerolog.Logger
}

func NewService(sender Sender, workerCount, queueSize int, logger *zerolog.Logger) *Service {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Service{
		ctx:         context.Background(),
		workerCount: workerCount,
		alertChan:   make(chan check.Check, queueSize),
		sender:      sender,
		logger:      logger,
	}
}

// Start starts the alert workers. Sends in progress are not cancelled by ctx.
func (s *Service) Start(ctx context.Context) {
	s.ctx = context.WithoutCancel(ctx)

	s.workerWG.Add(s.workerCount)
	for range s.workerCount {
		go s.handleAlerts()
	}
}

// Dispatch queues an alert for c. It never blocks: when the queue is full or
// the service is closed, the alert is dropped with a warning.
func (s *Service) Dispatch(ctx context.Context, c check.Check) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.logger.Warn().Str("check_id", c.ID).Msg("alert service closed, alert dropped")
		return
	}

	select {
	case s.alertChan <- c:
	default:
		s.logger.Warn().Str("check_id", c.ID).Msg("alert queue full, alert dropped")
	}
}

// Notify formats and sends the alert for c synchronously.
func (s *Service) Notify(ctx context.Context, c check.Check) error {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := s.sender.Send(sendCtx, c.OwnerPhone, Message(c)); err != nil {
		return fmt.Errorf("alert for check %s: %w", c.ID, err)
	}
	return nil
}

func (s *Service) handleAlerts() {
	defer s.workerWG.Done()

	for c := range s.alertChan {
		if err := s.Notify(s.ctx, c); err != nil {
			s.logger.Warn().Err(err).Str("check_id", c.ID).Msg("failed to send alert")
			continue
		}
		s.logger.Info().
			Str("check_id", c.ID).
			Str("state", string(c.ComparableState())).
			Msg("alert sent")
	}
}

// Close stops accepting alerts and waits for the queued ones to be sent.
func (s *Service) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.alertChan)
	}
	s.mu.Unlock()

	s.workerWG.Wait()
}
