package outbox

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/tuanvumaihuynh/pos-backoffice/pkg/correlationid"
)

const (
	ContentTypeHeader = "content-type"
	ContentTypeJSON   = "application/json"
)

// BuildHeaders returns the headers stored next to an outbox payload: the W3C trace context of ctx,
// its correlation id and the payload content type.
func BuildHeaders(ctx context.Context) map[string]string {
	headers := map[string]string{
		ContentTypeHeader: ContentTypeJSON,
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := correlationid.FromContext(ctx); ok {
		headers[correlationid.Header] = correlationID
	}

	return headers
}

// ExtractContextFromHeaders restores the trace and correlation id that BuildHeaders captured.
func ExtractContextFromHeaders(ctx context.Context, headers map[string]string) context.Context {
	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := headers[correlationid.Header]; ok && correlationID != "" {
		ctx = correlationid.NewContext(ctx, correlationID)
	}

	return ctx
}

// InjectCorrelationIDFromRecord copies the correlation id header of rec into ctx, if present.
func InjectCorrelationIDFromRecord(ctx context.Context, rec *kgo.Record) context.Context {
	for _, header := range rec.Headers {
		if header.Key == correlationid.Header && len(header.Value) > 0 {
			return correlationid.NewContext(ctx, string(header.Value))
		}
	}
	return ctx
}
