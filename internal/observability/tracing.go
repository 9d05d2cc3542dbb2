package observability

import "go.opentelemetry.io/otel"

// Tracer is the package-wide tracer used to span bootstrap and search
// operations. With no SDK configured it resolves to otel's no-op
// implementation, so instrumentation is always safe to call.
var Tracer = otel.Tracer("catalogd")
