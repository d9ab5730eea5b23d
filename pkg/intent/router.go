package intent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Teo107/farmer-assistant/pkg/ai"
)

type Router struct {
	rules   []Rule
	client  ai.Client // nil disables delegation
	timeout time.Duration
	log     *zap.Logger
}

type Option func(*Router)

// WithInterpreter enables AI delegation with a per-call timeout.
func WithInterpreter(c ai.Client, timeout time.Duration) Option {
	return func(r *Router) {
		r.client = c
		r.timeout = timeout
	}
}

func WithRules(rules []Rule) Option { return func(r *Router) { r.rules = rules } }

func NewRouter(log *zap.Logger, opts ...Option) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Router{rules: DefaultRules(), log: log.Named("intent")}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Route classifies text. The interpreter, when configured, is asked first;
// the ordered rules answer whenever it cannot.
func (r *Router) Route(ctx context.Context, text string) Intent {
	if in, ok := Delegate(ctx, r.client, text, r.timeout, r.log); ok {
		return in
	}
	return Classify(r.rules, text)
}
