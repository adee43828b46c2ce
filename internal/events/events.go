// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events fans server-sent events out to every connected client.
package events

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/MKhiriev/lowboy/internal/logger"
)

// Capacity bounds the publish queue and every subscriber's buffer.
const Capacity = 32

// ErrClosed is returned by Publish once the broker stopped.
var ErrClosed = errors.New("events: broker closed")

// Event is one server-sent event. Data may span several lines.
type Event struct {
	Name string
	Data string
}

// WriteTo writes e in the text/event-stream format.
func (e Event) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	if e.Name != "" {
		b.WriteString("event: ")
		b.WriteString(e.Name)
		b.WriteByte('\n')
	}
	for _, line := range strings.Split(e.Data, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Broker receives events on a bounded queue and copies each one to every
// subscriber. Publishers block while the queue is full. A subscriber whose
// own buffer is full misses the event rather than stalling the others.
type Broker struct {
	queue chan Event
	done  chan struct{}

	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool

	logger *logger.Logger
}

func NewBroker(log *logger.Logger) *Broker {
	return &Broker{
		queue:  make(chan Event, Capacity),
		done:   make(chan struct{}),
		subs:   make(map[*Subscription]struct{}),
		logger: log.Component("events"),
	}
}

// Publish queues ev for delivery. It blocks while the queue is full, until
// ctx is done or the broker stops.
func (b *Broker) Publish(ctx context.Context, ev Event) error {
	select {
	case <-b.done:
		return ErrClosed
	default:
	}

	select {
	case b.queue <- ev:
		return nil
	case <-b.done:
		return ErrClosed
	case <-ctx.Done():
		return fmt.Errorf("publishing %q: %w", ev.Name, ctx.Err())
	}
}

// Run delivers queued events until ctx is cancelled, then closes every
// subscription so open streams end.
func (b *Broker) Run(ctx context.Context) {
	defer b.shutdown()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-b.queue:
			b.broadcast(ev)
		}
	}
}

func (b *Broker) broadcast(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.ch <- ev:
		default:
			b.logger.Warn().Str("event", ev.Name).Msg("subscriber is too slow, dropping event")
		}
	}
}

func (b *Broker) shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
	for sub := range b.subs {
		close(sub.ch)
		delete(b.subs, sub)
	}
}

// Subscribe registers a new receiver. The subscription's channel is closed
// when the broker stops; callers must Close it when done.
func (b *Broker) Subscribe() *Subscription {
	sub := &Subscription{ch: make(chan Event, Capacity), broker: b}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(sub.ch)
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

// Subscribers returns the number of open subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Subscription is one receiver of a [Broker].
type Subscription struct {
	ch     chan Event
	broker *Broker
}

// C delivers the events.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

// Close unregisters s. It is safe to call more than once.
func (s *Subscription) Close() {
	b := s.broker
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[s]; ok {
		delete(b.subs, s)
		close(s.ch)
	}
}
