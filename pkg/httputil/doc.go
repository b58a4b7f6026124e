// Package httputil provides the HTTP plumbing of the kinship API server.
//
// # Handlers
//
// A [HandlerFunc] returns an error instead of writing failures itself.
// [Handler] adapts it to [net/http.Handler], logs the error and writes a
// JSON body:
//
//	{"error": {"code": "ROOT_NOT_FOUND", "message": "root \"x\" is not among the 3 persons"}}
//
// The status code comes from [StatusFor], which maps the codes of
// pkg/errors; an [Error] created with [Errorf] carries its own status.
//
// # Serving
//
// [NewServer] returns an [net/http.Server] with timeouts and a request
// body limit. [Serve] runs it until the context is cancelled and then
// shuts it down gracefully.
package httputil
