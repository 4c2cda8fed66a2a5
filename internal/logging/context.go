package logging

import (
	"context"
	"maps"
)

type fieldsKey struct{}

// WithFields returns a context whose *Context log entries carry fields.
// Fields accumulate across nested calls; later values win.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	merged := maps.Clone(FieldsFrom(ctx))
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// FieldsFrom returns the fields attached to ctx, or nil.
func FieldsFrom(ctx context.Context) map[string]any {
	fields, _ := ctx.Value(fieldsKey{}).(map[string]any)
	return fields
}

func contextFields(ctx context.Context, fields []map[string]any) map[string]any {
	base := FieldsFrom(ctx)
	if base == nil {
		return mergeFields(fields...)
	}
	return mergeFields(append([]map[string]any{base}, fields...)...)
}
