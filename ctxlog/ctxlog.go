// Package ctxlog provides a slog.Handler that tags every record with the
// utility.RequestContext found in the record's context, plus any attributes
// returned by user supplied extractors.
//
// Records logged with a context built by utility.ContextWithRequest (or by
// the handlers/reqctx middleware) gain a "request" group holding the
// execution mode, the ajax flag and, for HTTP requests, the method and URI.
//
// Example usage:
//
//	package main
//
//	import (
//		"log/slog"
//		"net/http"
//		"os"
//
//		"github.com/paccolamano/alo/ctxlog"
//		"github.com/paccolamano/alo/handlers/reqctx"
//	)
//
//	func main() {
//		logger := slog.New(ctxlog.NewContextHandler(
//			ctxlog.WithBaseHandler(slog.NewJSONHandler(os.Stdout, nil)),
//		))
//
//		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//			logger.InfoContext(r.Context(), "serving")
//		})
//
//		http.ListenAndServe(":8080", reqctx.New()(h))
//	}
package ctxlog

import (
	"context"
	"log/slog"
	"os"

	"github.com/paccolamano/alo/utility"
)

// RequestGroup is the group key of the attributes added by RequestAttrs.
const RequestGroup = "request"

// AttrExtractor returns the attributes to add to a record logged with ctx.
type AttrExtractor func(ctx context.Context) []slog.Attr

type config struct {
	baseHandler  slog.Handler
	extractors   []AttrExtractor
	requestAttrs bool
}

// Option configures a ContextHandler.
type Option func(*config)

// WithBaseHandler sets the handler records are delegated to. Default is a
// text handler on os.Stdout at info level. A nil h is ignored.
func WithBaseHandler(h slog.Handler) Option {
	return func(c *config) {
		if h != nil {
			c.baseHandler = h
		}
	}
}

// WithExtractor adds ex after the built-in request extractor.
func WithExtractor(ex AttrExtractor) Option {
	return func(c *config) {
		if ex != nil {
			c.extractors = append(c.extractors, ex)
		}
	}
}

// WithoutRequestAttrs disables RequestAttrs.
func WithoutRequestAttrs() Option {
	return func(c *config) {
		c.requestAttrs = false
	}
}

// ContextHandler wraps a base handler and enriches records from their
// context.
type ContextHandler struct {
	base       slog.Handler
	extractors []AttrExtractor
}

// NewContextHandler builds a ContextHandler. RequestAttrs is always the
// first extractor unless WithoutRequestAttrs is given.
func NewContextHandler(opts ...Option) *ContextHandler {
	c := &config{
		baseHandler:  slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		requestAttrs: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	extractors := c.extractors
	if c.requestAttrs {
		extractors = append([]AttrExtractor{RequestAttrs}, extractors...)
	}

	return &ContextHandler{
		base:       c.baseHandler,
		extractors: extractors,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	if attrs := h.extractAttrs(ctx); len(attrs) > 0 {
		rec = rec.Clone()
		rec.AddAttrs(attrs...)
	}

	return h.base.Handle(ctx, rec)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		base:       h.base.WithAttrs(attrs),
		extractors: h.extractors,
	}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{
		base:       h.base.WithGroup(name),
		extractors: h.extractors,
	}
}

func (h *ContextHandler) extractAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var result []slog.Attr
	for _, ex := range h.extractors {
		result = append(result, ex(ctx)...)
	}
	return result
}

// RequestAttrs describes the utility.RequestContext stored in ctx as a
// single "request" group. It returns nil when ctx carries none.
func RequestAttrs(ctx context.Context) []slog.Attr {
	rc := utility.RequestFromContext(ctx)
	if rc == nil {
		return nil
	}

	if utility.IsCliRequest(rc) {
		return []slog.Attr{slog.Group(RequestGroup, slog.String("mode", string(utility.ModeCLI)))}
	}

	return []slog.Attr{slog.Group(RequestGroup,
		slog.String("mode", string(utility.ModeHTTP)),
		slog.Bool("ajax", utility.IsAjaxRequest(rc)),
		slog.String("method", rc.Server["method"]),
		slog.String("uri", rc.Server["uri"]),
	)}
}
