// Package utility provides the small, independent helpers shared by
// applications built on alo: existence checks with fallbacks, a runtime
// constant registry, request-context predicates, conditional module
// loading, XSS-safe escaping, random strings, hashing and identifier
// generation.
//
// Nothing here reads ambient request state. Functions that need to know
// about the current request take a *RequestContext, which callers build
// with NewHTTPContext or NewCLIContext (or obtain from the
// handlers/reqctx middleware).
//
// Example usage:
//
//	package main
//
//	import (
//		"fmt"
//		"net/http"
//
//		"github.com/paccolamano/alo/utility"
//	)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		rc := utility.NewHTTPContext(r)
//
//		name := r.URL.Query().Get("name")
//		greeting := utility.IfNull(&name, "stranger", true)
//
//		if utility.IsAjaxRequest(rc) {
//			w.Header().Set("Content-Type", "application/json")
//		}
//
//		fmt.Fprintf(w, "hello %s", utility.EscapeHTML(greeting))
//	}
package utility
