package response

import (
	"net/http"

	"github.com/dmitrymomot/imgstore/core/handler"
)

// Redirect creates a 302 Found response pointing at the given URL.
func Redirect(url string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, url, http.StatusFound)
		return nil
	}
}
