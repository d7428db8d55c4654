package web

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// htmxRequestHeader is set by HTMX on every request it issues.
const htmxRequestHeader = "HX-Request"

func isHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(htmxRequestHeader), "true")
}

// renderPage renders fragment for HTMX requests and full otherwise.
func renderPage(w http.ResponseWriter, r *http.Request, fragment, full templ.Component) {
	w.Header().Add("Vary", htmxRequestHeader)

	target := full
	if isHTMXRequest(r) {
		target = fragment
	}
	templ.Handler(target).ServeHTTP(w, r)
}
