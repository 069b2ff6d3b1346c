package utility

import (
	"context"
	"net/http"
	"os"
	"strings"
)

// ExecMode tells how the running code was invoked.
type ExecMode string

const (
	// ModeCLI means there is no HTTP request behind the current call.
	ModeCLI ExecMode = "cli"

	// ModeHTTP means the call serves an HTTP request.
	ModeHTTP ExecMode = "http"
)

const (
	// HeaderRequestedWith is the header set by browsers' XHR wrappers.
	HeaderRequestedWith = "X-Requested-With"

	// AjaxRequestedWith is the HeaderRequestedWith value that marks an AJAX request.
	AjaxRequestedWith = "XMLHttpRequest"
)

// RequestContext is a snapshot of the state a helper may need to know
// about the current invocation. A nil *RequestContext is a CLI invocation
// with no state.
type RequestContext struct {
	// Mode is the execution mode. The zero value counts as ModeCLI.
	Mode ExecMode

	// Headers holds the request headers. Keys are canonical.
	Headers http.Header

	// Cookies maps cookie names to values.
	Cookies map[string]string

	// Query holds the URL query parameters.
	Query map[string][]string

	// Files maps multipart form fields to the names of the uploaded files.
	Files map[string][]string

	// Env is the environment visible to the invocation.
	Env map[string]string

	// Server holds request metadata such as method, uri, protocol, host
	// and remote address.
	Server map[string]string
}

// Header returns the first value of the header key, or "" if rc is nil or
// the header is absent.
func (rc *RequestContext) Header(key string) string {
	if rc == nil || rc.Headers == nil {
		return ""
	}
	return rc.Headers.Get(key)
}

// NewCLIContext returns a CLI RequestContext carrying a snapshot of the
// process environment.
func NewCLIContext() *RequestContext {
	env := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		env[k] = v
	}

	return &RequestContext{
		Mode:    ModeCLI,
		Headers: http.Header{},
		Cookies: map[string]string{},
		Query:   map[string][]string{},
		Files:   map[string][]string{},
		Env:     env,
		Server:  map[string]string{},
	}
}

// NewHTTPContext returns a RequestContext describing r. Uploaded file
// names are recorded only when r's multipart form has already been parsed.
// Env is left empty.
func NewHTTPContext(r *http.Request) *RequestContext {
	rc := &RequestContext{
		Mode:    ModeHTTP,
		Headers: r.Header.Clone(),
		Cookies: map[string]string{},
		Query:   map[string][]string{},
		Files:   map[string][]string{},
		Env:     map[string]string{},
		Server: map[string]string{
			"method":      r.Method,
			"uri":         r.RequestURI,
			"protocol":    r.Proto,
			"host":        r.Host,
			"remote_addr": r.RemoteAddr,
		},
	}

	if rc.Headers == nil {
		rc.Headers = http.Header{}
	}

	for _, c := range r.Cookies() {
		rc.Cookies[c.Name] = c.Value
	}

	if r.URL != nil {
		for k, v := range r.URL.Query() {
			rc.Query[k] = v
		}
	}

	if r.MultipartForm != nil {
		for field, headers := range r.MultipartForm.File {
			for _, fh := range headers {
				rc.Files[field] = append(rc.Files[field], fh.Filename)
			}
		}
	}

	return rc
}

// IsCliRequest reports whether rc describes a command-line invocation.
// Anything but an HTTP context is one: a nil rc, a zero RequestContext and
// a context built by NewCLIContext all report true.
func IsCliRequest(rc *RequestContext) bool {
	return rc == nil || rc.Mode != ModeHTTP
}

// IsAjaxRequest reports whether rc carries the X-Requested-With header
// with the exact value XMLHttpRequest.
func IsAjaxRequest(rc *RequestContext) bool {
	return rc.Header(HeaderRequestedWith) == AjaxRequestedWith
}

// IsRegularRequest reports whether rc is neither a CLI nor an AJAX request.
func IsRegularRequest(rc *RequestContext) bool {
	return !IsCliRequest(rc) && !IsAjaxRequest(rc)
}

// requestContextKey is the context key under which a RequestContext is stored.
type requestContextKey struct{}

// ContextWithRequest returns a copy of ctx carrying rc.
func ContextWithRequest(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestFromContext returns the RequestContext stored in ctx by
// ContextWithRequest, or nil if there is none.
func RequestFromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc
}
