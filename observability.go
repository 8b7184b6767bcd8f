// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reverse

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "rivaas.dev/reverse"

// Operation names used as the reverse.operation attribute.
const (
	opURI = "uri"
	opURL = "url"
)

// instruments holds the metric instruments of a [Resolver].
type instruments struct {
	resolutions metric.Int64Counter
	failures    metric.Int64Counter
	duration    metric.Float64Histogram
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(instrumentationName)

	resolutions, err := meter.Int64Counter("reverse.resolutions",
		metric.WithDescription("Number of route resolutions"),
		metric.WithUnit("{resolution}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolutions counter: %w", err)
	}

	failures, err := meter.Int64Counter("reverse.resolution.errors",
		metric.WithDescription("Number of failed route resolutions by error kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create errors counter: %w", err)
	}

	duration, err := meter.Float64Histogram("reverse.resolution.duration",
		metric.WithDescription("Duration of route resolutions"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &instruments{resolutions: resolutions, failures: failures, duration: duration}, nil
}

// observation tracks one resolution from start to finish.
type observation struct {
	r     *Resolver
	ctx   context.Context
	span  trace.Span
	op    string
	id    string
	start time.Time
}

// observe starts a span for a resolution. The caller must call end.
func (r *Resolver) observe(ctx context.Context, op, id string) *observation {
	ctx, span := r.tracer.Start(ctx, "reverse.Resolve",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("reverse.operation", op),
			attribute.String("reverse.route_id", id),
		),
	)

	return &observation{r: r, ctx: ctx, span: span, op: op, id: id, start: time.Now()}
}

// end records metrics, logs the outcome and closes the span.
func (o *observation) end(result string, err error) {
	defer o.span.End()

	opAttr := attribute.String("reverse.operation", o.op)
	o.r.inst.resolutions.Add(o.ctx, 1, metric.WithAttributes(opAttr))
	o.r.inst.duration.Record(o.ctx, time.Since(o.start).Seconds(), metric.WithAttributes(opAttr))

	if err != nil {
		kind := KindOf(err).String()
		o.r.inst.failures.Add(o.ctx, 1, metric.WithAttributes(opAttr, attribute.String("reverse.error_kind", kind)))
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, kind)
		o.r.logger.WarnContext(o.ctx, "route resolution failed",
			"route_id", o.id,
			"operation", o.op,
			"kind", kind,
			"error", err,
		)
		return
	}

	o.span.SetAttributes(attribute.String("reverse.result", result))
	o.r.logger.DebugContext(o.ctx, "route resolved",
		"route_id", o.id,
		"operation", o.op,
		"result", result,
	)
}
