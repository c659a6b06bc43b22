// Package response provides composable HTTP response builders returning
// handler.Response closures, plus structured HTTP errors and error handlers.
//
// # Response Builders
//
// Builders cover the surfaces this service speaks: JSON for the API
// contract, plain text for health probes, and bare status codes.
//
//	import "github.com/dmitrymomot/imgstore/core/response"
//
//	func healthHandler(ctx handler.Context) handler.Response {
//		return response.String("ALIVE")
//	}
//
//	func uploadHandler(ctx handler.Context) handler.Response {
//		result, err := process(ctx)
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSON(result)
//	}
//
// # Structured Errors
//
// HTTPError pairs an HTTP status with a machine-readable code and a
// human-readable message, and implements the error interface:
//
//	return response.Error(response.ErrBadRequest.WithMessage("path is required"))
//
// Predefined errors exist for the statuses this service emits; WithMessage,
// WithDetails and WithError derive copies without mutating the originals.
//
// # Error Handlers
//
// The router invokes an ErrorHandler when a handler or response returns an
// error. JSONErrorHandler renders the HTTPError as JSON; ErrorHandler renders
// plain text. Applications that need a custom envelope (this service's
// {"success": false, "error": ...} contract) supply their own handler and use
// ConvertToHTTPError for the status mapping.
package response
