// internal/handler/response.go
package handler

import (
	"errors"
	"net/http"

	"relay-service/internal/provider"

	"github.com/go-chi/render"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message"`
	Error     interface{}            `json:"error,omitempty"`
	Errors    map[string]string      `json:"errors,omitempty"`
	Warnings  []string               `json:"warnings,omitempty"`
	Details   interface{}            `json:"details,omitempty"`
	Order     map[string]interface{} `json:"order,omitempty"`
	Key       string                 `json:"key,omitempty"`
	OrderID   string                 `json:"orderId,omitempty"`
	PaymentID string                 `json:"paymentId,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, resp *Response) {
	render.Status(r, statusCode)
	render.JSON(w, r, resp)
}

func sendSuccess(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, r, http.StatusOK, &Response{Success: true, Message: message})
}

func sendError(w http.ResponseWriter, r *http.Request, statusCode int, message string, err error) {
	resp := &Response{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, r, statusCode, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		sendError(w, r, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	return true
}

// providerPayload surfaces what a provider answered, or the error text when the
// failure happened before a response arrived.
func providerPayload(err error) interface{} {
	var apiErr *provider.APIError
	if errors.As(err, &apiErr) && apiErr.Payload != nil {
		return apiErr.Payload
	}
	return map[string]string{"message": err.Error()}
}
