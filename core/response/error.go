package response

import (
	"net/http"

	"github.com/dmitrymomot/imgstore/core/handler"
)

// Error returns a handler response that propagates the given error.
// Handlers use it to pass domain errors through to the router's error
// handler instead of rendering anything themselves.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
