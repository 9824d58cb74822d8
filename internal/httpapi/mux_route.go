package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// muxRouteTemplate extracts the matched route's path template (e.g.
// "/production/optimize/{optimizer_type}") when r carries gorilla/mux's
// current-route value, and reports false otherwise. The Metrics
// middleware wraps the router from outside, where no route is attached
// to its request, so there it always reports false and the caller falls
// back to the literal path.
func muxRouteTemplate(r *http.Request) (string, bool) {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "", false
	}
	tmpl, err := route.GetPathTemplate()
	if err != nil {
		return "", false
	}
	return tmpl, true
}
