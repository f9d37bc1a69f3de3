// Package notify delivers short-lived user feedback (toasts) for completed
// state changes.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier accepts fire-and-forget notifications. Implementations must not
// fail or block the caller.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, message string)
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(context.Context, Kind, string) {}

// Subscriber consumes delivered notifications.
type Subscriber func(ctx context.Context, n Notification) error

// Emitter turns each Notify call into one Notification and hands it to
// every subscriber. A failing or panicking subscriber is logged and skipped.
type Emitter struct {
	log  logrus.FieldLogger
	subs []Subscriber
	now  func() time.Time
}

func NewEmitter(log logrus.FieldLogger, subs ...Subscriber) *Emitter {
	return &Emitter{log: log, subs: subs, now: time.Now}
}

func (e *Emitter) Subscribe(s Subscriber) {
	e.subs = append(e.subs, s)
}

func (e *Emitter) Notify(ctx context.Context, kind Kind, message string) {
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: e.now().UTC(),
	}
	for _, s := range e.subs {
		if err := deliver(ctx, s, n); err != nil && e.log != nil {
			e.log.WithFields(logrus.Fields{
				"notification": n.ID,
				"error":        err,
			}).Warn("notification not delivered")
		}
	}
}

func deliver(ctx context.Context, s Subscriber, n Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()
	return s(ctx, n)
}

// LogSubscriber writes every notification to log.
func LogSubscriber(log logrus.FieldLogger) Subscriber {
	return func(_ context.Context, n Notification) error {
		log.WithFields(logrus.Fields{
			"notification": n.ID,
			"kind":         n.Kind,
		}).Info(n.Message)
		return nil
	}
}

type notifierKey struct{}

// NewContext makes n the notifier for everything downstream of ctx.
func NewContext(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierKey{}, n)
}

// FromContext returns the request's notifier, or Discard when there is
// none.
func FromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierKey{}).(Notifier); ok && n != nil {
		return n
	}
	return Discard
}
