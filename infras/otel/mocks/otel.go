package mocks

import (
	"context"
	"sync"

	"hotel/infras/otel"
)

// Otel hands out recording scopes and keeps them by span name so tests can
// assert on what a call traced. It is safe for the goroutines services spawn.
type Otel struct {
	mu     sync.Mutex
	scopes map[string][]*Scope
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := &Scope{}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.scopes == nil {
		o.scopes = map[string][]*Scope{}
	}

	o.scopes[spanName] = append(o.scopes[spanName], scope)

	return ctx, scope
}

func (o *Otel) Shutdown(context.Context) error {
	return nil
}

// Scopes returns the scopes opened under spanName in call order.
func (o *Otel) Scopes(spanName string) []*Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.scopes[spanName]
}

func NewOtel() *Otel {
	return &Otel{}
}
