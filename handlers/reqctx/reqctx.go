// Package reqctx provides an HTTP middleware that captures a
// utility.RequestContext for every incoming request and stores it in the
// request context, so that handlers can use the request predicates,
// fingerprinting and identifier helpers of the utility package without
// passing *http.Request around.
//
// Example usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//		"net/http"
//
//		"github.com/paccolamano/alo/handlers/reqctx"
//		"github.com/paccolamano/alo/utility"
//	)
//
//	func main() {
//		mux := http.NewServeMux()
//
//		myHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//			rc := reqctx.Get(r)
//			if utility.IsAjaxRequest(rc) {
//				w.Header().Set("Content-Type", "application/json")
//				fmt.Fprintln(w, `{"ok":true}`)
//				return
//			}
//
//			fp, _ := utility.GetFingerprint(rc, utility.HashSHA256)
//			fmt.Fprintf(w, "fingerprint: %s\n", fp)
//		})
//
//		mux.Handle("/", reqctx.New(
//			reqctx.WithEnv(map[string]string{"APP_ENV": "production"}),
//		)(myHandler))
//
//		log.Fatal(http.ListenAndServe(":8080", mux))
//	}
package reqctx

import (
	"context"
	"maps"
	"net/http"

	"github.com/paccolamano/alo/utility"
)

// config holds configuration options for the reqctx handler.
type config struct {
	contextKey any
	env        map[string]string
	parseForm  bool
	maxMemory  int64
}

// Option represents a functional option for configuring the reqctx handler.
type Option func(*config)

// WithContextKey stores the RequestContext under key in addition to the
// default location read by Get and utility.RequestFromContext.
func WithContextKey(key any) Option {
	return func(c *config) {
		c.contextKey = key
	}
}

// WithEnv sets the environment snapshot exposed through RequestContext.Env.
// By default it is empty.
func WithEnv(env map[string]string) Option {
	return func(c *config) {
		c.env = env
	}
}

// WithMultipartForm parses multipart request bodies, using at most
// maxMemory bytes of memory, so that uploaded file names end up in
// RequestContext.Files.
func WithMultipartForm(maxMemory int64) Option {
	return func(c *config) {
		c.parseForm = true
		c.maxMemory = maxMemory
	}
}

// New returns a handler that builds a utility.RequestContext with
// utility.NewHTTPContext for each incoming request and stores it in the
// request context.
//
// Example usage:
//
//	http.Handle("/api", New()(yourHandler))
//
// You can then retrieve it later in the request lifecycle:
//
//	rc := reqctx.Get(r)
func New(opts ...Option) func(http.Handler) http.Handler {
	c := &config{}

	for _, opt := range opts {
		opt(c)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c.parseForm && r.MultipartForm == nil {
				// not a multipart body, or a malformed one; files stay empty
				_ = r.ParseMultipartForm(c.maxMemory)
			}

			rc := utility.NewHTTPContext(r)
			if c.env != nil {
				rc.Env = maps.Clone(c.env)
			}

			ctx := utility.ContextWithRequest(r.Context(), rc)
			if c.contextKey != nil {
				ctx = context.WithValue(ctx, c.contextKey, rc)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Get retrieves the RequestContext stored by New. If the request did not
// go through New it returns nil, which the utility predicates treat as a
// CLI invocation.
func Get(r *http.Request) *utility.RequestContext {
	if r == nil {
		return nil
	}
	return utility.RequestFromContext(r.Context())
}

// GetWithKey retrieves the RequestContext stored under key by New
// configured with WithContextKey. If none is stored it returns nil.
func GetWithKey(r *http.Request, key any) *utility.RequestContext {
	if r == nil {
		return nil
	}

	rc, ok := r.Context().Value(key).(*utility.RequestContext)
	if !ok {
		return nil
	}

	return rc
}
