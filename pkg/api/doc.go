// Package api exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz                      liveness and build version
//	POST   /v1/layouts                   lay out a people document and store it
//	GET    /v1/layouts                   list stored layouts (?root=&limit=)
//	GET    /v1/layouts/{id}              fetch a stored layout
//	DELETE /v1/layouts/{id}              delete a stored layout
//	GET    /v1/layouts/{id}/render       render a stored layout (?format=&frame=&labels=&download=)
//
// Errors are JSON bodies of the form {"error": {"code": ..., "message": ...}}
// with the status derived from the error code.
package api
