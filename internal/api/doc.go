// Package api implements the HTTP boundary: request DTOs with their
// validation tags, the card handler, and error-to-status mapping. Requests
// rejected here never reach the service layer.
package api
