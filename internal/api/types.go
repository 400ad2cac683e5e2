// Package api defines the request/response types shared by HTTP handlers.
package api

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	// Error holds the human-readable failure description.
	Error string `json:"error"`
}
