package renderer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/blockdom/pkg/vdom"
)

// Default tracer name for blockdom instrumentation.
const defaultTracerName = "blockdom"

// patchTracer wraps every top-level Patch call in a span carrying the root
// node kind and the host-operation counts.
type patchTracer struct {
	tracer trace.Tracer
	ctx    context.Context
}

// WithTracing enables OpenTelemetry tracing of top-level Patch calls using
// the named tracer from the global provider. An empty name uses the
// default. Spans are children of ctx.
func WithTracing(ctx context.Context, name string) Option {
	if name == "" {
		name = defaultTracerName
	}
	return func(r *Renderer) {
		r.tracer = &patchTracer{
			tracer: otel.Tracer(name),
			ctx:    ctx,
		}
	}
}

// start opens a span for one patch call and returns the closer that
// records the final op counts. Nil-safe.
func (t *patchTracer) start(root *vdom.VNode) func(opStats) {
	if t == nil {
		return func(opStats) {}
	}
	kind := "nil"
	if root != nil {
		kind = root.Kind.String()
	}
	_, span := t.tracer.Start(t.ctx, "blockdom.patch",
		trace.WithAttributes(attribute.String("vdom.root_kind", kind)))
	return func(stats opStats) {
		span.SetAttributes(
			attribute.Int("vdom.mounts", stats.mounts),
			attribute.Int("vdom.patches", stats.patches),
			attribute.Int("vdom.moves", stats.moves),
			attribute.Int("vdom.unmounts", stats.unmounts),
		)
		span.End()
	}
}
