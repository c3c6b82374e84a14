package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

const handlerTimeout = 30 * time.Second

// Dispatcher delivers events to subscribed handlers on a background
// goroutine. Publish never blocks; it fails when the buffer is full.
type Dispatcher struct {
	handlers map[string][]Handler
	mu       sync.RWMutex
	running  bool
	eventCh  chan DomainEvent
	stopCh   chan struct{}
	wg       sync.WaitGroup
	logger   logger.Interface
}

func NewDispatcher(bufferSize int, log logger.Interface) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		eventCh:  make(chan DomainEvent, bufferSize),
		stopCh:   make(chan struct{}),
		logger:   log,
	}
}

func (d *Dispatcher) Subscribe(eventType string, handler Handler) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	return nil
}

func (d *Dispatcher) Publish(event DomainEvent) error {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()
	if !running {
		return fmt.Errorf("event dispatcher is not running")
	}

	select {
	case d.eventCh <- event:
		return nil
	default:
		return fmt.Errorf("event channel is full, dropped %s", event.EventType())
	}
}

func (d *Dispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("event dispatcher is already running")
	}
	d.running = true

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.loop()
	}()
	return nil
}

// Stop drains buffered events and waits for in-flight handlers.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return fmt.Errorf("event dispatcher is not running")
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()
	return nil
}

func (d *Dispatcher) loop() {
	for {
		select {
		case <-d.stopCh:
			for {
				select {
				case event := <-d.eventCh:
					d.dispatch(event)
				default:
					return
				}
			}
		case event := <-d.eventCh:
			d.dispatch(event)
		}
	}
}

func (d *Dispatcher) dispatch(event DomainEvent) {
	d.mu.RLock()
	handlers := d.handlers[event.EventType()]
	d.mu.RUnlock()

	for _, h := range handlers {
		d.wg.Add(1)
		go func(h Handler) {
			defer d.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					d.logger.Errorw("event handler panicked", "event_type", event.EventType(), "panic", r)
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
			defer cancel()

			if err := h(ctx, event); err != nil {
				d.logger.Warnw("event handler failed",
					"event_type", event.EventType(),
					"aggregate_id", event.AggregateID(),
					"error", err,
				)
			}
		}(h)
	}
}
