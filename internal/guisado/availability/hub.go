package availability

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"fonda/internal/domain"
)

const subscriberBuffer = 32

// Subscription recibe los eventos de un solo dia. C se cierra al cancelar
// la suscripcion o si el suscriptor se queda atras.
type Subscription struct {
	C <-chan domain.AvailabilityEvent

	ch   chan domain.AvailabilityEvent
	day  string
	hub  *Hub
	once sync.Once
}

func (s *Subscription) Unsubscribe() {
	s.hub.remove(s)
}

// Hub reparte eventos de disponibilidad a los suscriptores de este proceso.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[*Subscription]struct{}),
		logger: logger,
	}
}

func (h *Hub) Subscribe(day time.Time) *Subscription {
	ch := make(chan domain.AvailabilityEvent, subscriberBuffer)
	sub := &Subscription{
		C:   ch,
		ch:  ch,
		day: domain.FormatDay(day),
		hub: h,
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Publish entrega el evento localmente; cumple la misma interfaz que el broker.
func (h *Hub) Publish(_ context.Context, ev domain.AvailabilityEvent) error {
	h.Broadcast(ev)
	return nil
}

func (h *Hub) Broadcast(ev domain.AvailabilityEvent) {
	day := domain.FormatDay(ev.Guisado.Date)

	var lagging []*Subscription

	h.mu.RLock()
	for sub := range h.subs {
		if sub.day != day {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			lagging = append(lagging, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range lagging {
		h.logger.Warn("dropping lagging availability subscriber", zap.String("day", sub.day))
		h.remove(sub)
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close cancela todas las suscripciones.
func (h *Hub) Close() {
	h.mu.RLock()
	subs := make([]*Subscription, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		h.remove(sub)
	}
}

func (h *Hub) remove(sub *Subscription) {
	sub.once.Do(func() {
		h.mu.Lock()
		delete(h.subs, sub)
		h.mu.Unlock()
		close(sub.ch)
	})
}
