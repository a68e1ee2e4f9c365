package handler

import "net/http"

// SSEHandler runs for the lifetime of an SSE connection. Return when
// ctx.Done() is closed.
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "SSE endpoint requires DataStar connection")
	}

	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE keeps the connection open and hands a StreamContext to h.
func SSE(h SSEHandler) Response {
	return sseResponse{handler: h}
}
