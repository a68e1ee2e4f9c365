package handler

import "errors"

var (
	ErrNilResponse         = errors.New("handler returned nil response")
	ErrSSENotInitialized   = errors.New("SSE not initialized for this request")
	ErrBinderNotApplicable = errors.New("binder not applicable to this request")
)
