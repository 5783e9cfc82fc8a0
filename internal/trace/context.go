package trace

import "context"

type ctxKey struct{}

// FromContext extracts the Tracer from context, Nop when absent.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext holds current span info for propagation.
type SpanContext struct {
	SpanID uint64
}

type spanCtxKey struct{}

// CurrentSpan retrieves the active span context from context.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	if sc, ok := ctx.Value(spanCtxKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}

// WithSpanContext attaches span context.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// WithSpan makes s the parent for spans begun from the returned context.
func WithSpan(ctx context.Context, s *Span) context.Context {
	if s == nil || s.ID() == 0 {
		return ctx
	}
	return WithSpanContext(ctx, SpanContext{SpanID: s.ID()})
}
