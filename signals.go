package markup

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for serialization events.
var (
	SignalPolicyResolved  = capitan.NewSignal("markup.policy.resolved", "Per-type policy resolved and cached")
	SignalMarshalStart    = capitan.NewSignal("markup.marshal.start", "Document assembly beginning")
	SignalMarshalComplete = capitan.NewSignal("markup.marshal.complete", "Document assembly finished")
	SignalProjectStart    = capitan.NewSignal("markup.project.start", "JSON projection beginning")
	SignalProjectComplete = capitan.NewSignal("markup.project.complete", "JSON projection finished")
)

// Keys for typed event data.
var (
	KeyTypeName  = capitan.NewStringKey("type_name")
	KeyEncoding  = capitan.NewStringKey("encoding")
	KeySize      = capitan.NewIntKey("size")
	KeyNodeCount = capitan.NewIntKey("node_count")
	KeyDuration  = capitan.NewDurationKey("duration")
	KeyError     = capitan.NewErrorKey("error")
	KeyMethod    = capitan.NewStringKey("default_method")
)

// emitPolicyResolved emits an event when a type's policy is first resolved.
func emitPolicyResolved(ctx context.Context, typeName string, pol Policy) {
	capitan.Emit(ctx, SignalPolicyResolved,
		KeyTypeName.Field(typeName),
		KeyMethod.Field(pol.DefaultMethod.String()),
	)
}

// emitMarshalStart emits an event when document assembly begins.
func emitMarshalStart(ctx context.Context, typeName, encoding string) {
	capitan.Emit(ctx, SignalMarshalStart,
		KeyTypeName.Field(typeName),
		KeyEncoding.Field(encoding),
	)
}

// emitMarshalComplete emits an event when document assembly finishes.
func emitMarshalComplete(ctx context.Context, typeName string, size int, duration time.Duration, nodes int, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyNodeCount.Field(nodes),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMarshalComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMarshalComplete, fields...)
	}
}

// emitProjectStart emits an event when JSON projection begins.
func emitProjectStart(ctx context.Context, encoding string) {
	capitan.Emit(ctx, SignalProjectStart,
		KeyEncoding.Field(encoding),
	)
}

// emitProjectComplete emits an event when JSON projection finishes.
func emitProjectComplete(ctx context.Context, encoding string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyEncoding.Field(encoding),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalProjectComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalProjectComplete, fields...)
	}
}
