package binder

import "net/http"

// Binder binds HTTP request data to a Go value. Implementations extract data
// from a part of the request (form fields, uploaded files) and map it into a
// strongly-typed struct.
type Binder func(r *http.Request, v any) error
