package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// ErrorDetail is the body of a JSON error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON writes v with the given status.
func JSON(v any, status int) Response {
	return jsonResponse{status: status, body: v}
}

// JSONError writes {"error": {...}}. HTTPError keeps its status and key;
// any other error becomes a 500.
func JSONError(err error) Response {
	resp := jsonResponse{status: http.StatusInternalServerError}
	detail := ErrorDetail{Code: ErrInternalServerError.Key, Message: http.StatusText(http.StatusInternalServerError)}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		resp.status = httpErr.Code
		detail = ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}
	resp.body = map[string]ErrorDetail{"error": detail}
	return resp
}

type signalsResponse struct {
	status int
	value  any
}

func (s signalsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return jsonResponse{status: s.status, body: s.value}.Render(w, r)
	}
	data, err := json.Marshal(s.value)
	if err != nil {
		return err
	}
	return datastar.NewSSE(w, r).PatchSignals(data)
}

// Signals patches v as signals for DataStar requests and writes it as JSON
// with the given status otherwise.
func Signals(v any, status int) Response {
	return signalsResponse{status: status, value: v}
}
