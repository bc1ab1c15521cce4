package observability

import (
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// GormTracer is a gorm plugin that opens a client span around every statement.
// Purely observational: it never alters statement behaviour or outcome.
type GormTracer struct{}

// NewGormTracer constructs the plugin. Register it with db.Use.
func NewGormTracer() *GormTracer {
	return &GormTracer{}
}

// Name implements gorm.Plugin.
func (*GormTracer) Name() string {
	return "larder:tracing"
}

// Initialize implements gorm.Plugin, hooking span start/finish around each
// statement family.
func (p *GormTracer) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	type hook struct {
		op       string
		before   func(string, func(*gorm.DB)) error
		after    func(string, func(*gorm.DB)) error
		spanName string
	}

	hooks := []hook{
		{op: "gorm:create", spanName: "db.create",
			before: func(name string, fn func(*gorm.DB)) error { return cb.Create().Before(name).Register("larder:trace_start_create", fn) },
			after:  func(name string, fn func(*gorm.DB)) error { return cb.Create().After(name).Register("larder:trace_end_create", fn) }},
		{op: "gorm:query", spanName: "db.query",
			before: func(name string, fn func(*gorm.DB)) error { return cb.Query().Before(name).Register("larder:trace_start_query", fn) },
			after:  func(name string, fn func(*gorm.DB)) error { return cb.Query().After(name).Register("larder:trace_end_query", fn) }},
		{op: "gorm:update", spanName: "db.update",
			before: func(name string, fn func(*gorm.DB)) error { return cb.Update().Before(name).Register("larder:trace_start_update", fn) },
			after:  func(name string, fn func(*gorm.DB)) error { return cb.Update().After(name).Register("larder:trace_end_update", fn) }},
		{op: "gorm:delete", spanName: "db.delete",
			before: func(name string, fn func(*gorm.DB)) error { return cb.Delete().Before(name).Register("larder:trace_start_delete", fn) },
			after:  func(name string, fn func(*gorm.DB)) error { return cb.Delete().After(name).Register("larder:trace_end_delete", fn) }},
		{op: "gorm:row", spanName: "db.row",
			before: func(name string, fn func(*gorm.DB)) error { return cb.Row().Before(name).Register("larder:trace_start_row", fn) },
			after:  func(name string, fn func(*gorm.DB)) error { return cb.Row().After(name).Register("larder:trace_end_row", fn) }},
		{op: "gorm:raw", spanName: "db.raw",
			before: func(name string, fn func(*gorm.DB)) error { return cb.Raw().Before(name).Register("larder:trace_start_raw", fn) },
			after:  func(name string, fn func(*gorm.DB)) error { return cb.Raw().After(name).Register("larder:trace_end_raw", fn) }},
	}

	for _, h := range hooks {
		if err := h.before(h.op, startSpan(h.spanName)); err != nil {
			return err
		}
		if err := h.after(h.op, endSpan); err != nil {
			return err
		}
	}

	return nil
}

func startSpan(name string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Statement == nil || tx.Statement.Context == nil {
			return
		}
		ctx, _ := tracer().Start(tx.Statement.Context, name,
			trace.WithSpanKind(trace.SpanKindClient),
		)
		tx.Statement.Context = ctx
	}
}

func endSpan(tx *gorm.DB) {
	if tx.Statement == nil || tx.Statement.Context == nil {
		return
	}

	span := trace.SpanFromContext(tx.Statement.Context)
	defer span.End()

	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))

	// Record not found is an expected outcome, not a span failure.
	if err := tx.Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
