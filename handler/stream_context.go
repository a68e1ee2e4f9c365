package handler

import (
	"encoding/json"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext extends Context with methods for pushing updates over an
// open SSE connection.
type StreamContext interface {
	Context

	// SendComponent patches a component into the page.
	SendComponent(component TemplComponent, opts ...TemplOption) error

	// RemoveElement removes the elements matching selector.
	RemoveElement(selector string) error

	// SendSignals patches signals. v must marshal to a JSON object.
	SendSignals(v any) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) RemoveElement(selector string) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElements("", datastar.WithSelector(selector), datastar.WithMode(datastar.ElementPatchModeRemove))
}

func (c *streamContext) SendSignals(v any) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}
