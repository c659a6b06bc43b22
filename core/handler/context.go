package handler

import (
	"context"
	"net/http"
)

// Context is the contract request contexts must satisfy. The router ships a
// default implementation; applications provide their own to carry typed
// request-scoped data.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}
