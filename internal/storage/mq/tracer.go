package mq

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("internal/storage/mq")

	// kTracer creates produce, receive and process spans and carries the trace context in record headers.
	kTracer = kotel.NewTracer()
)
