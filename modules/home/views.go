package home

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/starterkit/handler"
	"github.com/dmitrymomot/starterkit/pkg/toast"
)

const (
	toastContainerID = "toast-container"
	datastarScript   = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"
)

// PageParams is passed to Views.Page. Views supplies the parts the page is
// built from; nil fields fall back to DefaultViews.
type PageParams struct {
	AppName string
	State   State
	Toasts  []toast.Notification
	Views   Views
}

// Views renders the page. Each field may be replaced individually.
type Views struct {
	Page           func(PageParams) templ.Component
	CountButton    func(State) templ.Component
	DemoButtons    func(State) templ.Component
	ToastItem      func(toast.Notification) templ.Component
	ToastContainer func([]toast.Notification) templ.Component
	ErrorToast     func(handler.ErrorToastParams) templ.Component
	ErrorPage      func(handler.ErrorPageParams) templ.Component
}

// DefaultViews returns the built-in components.
func DefaultViews() Views {
	return Views{
		Page:           page,
		CountButton:    countButton,
		DemoButtons:    demoButtons,
		ToastItem:      toastItem,
		ToastContainer: toastContainer,
		ErrorToast:     errorToast,
		ErrorPage:      errorPage,
	}
}

// merge fills nil fields of v from defaults.
func (v Views) merge(defaults Views) Views {
	if v.Page == nil {
		v.Page = defaults.Page
	}
	if v.CountButton == nil {
		v.CountButton = defaults.CountButton
	}
	if v.DemoButtons == nil {
		v.DemoButtons = defaults.DemoButtons
	}
	if v.ToastItem == nil {
		v.ToastItem = defaults.ToastItem
	}
	if v.ToastContainer == nil {
		v.ToastContainer = defaults.ToastContainer
	}
	if v.ErrorToast == nil {
		v.ErrorToast = defaults.ErrorToast
	}
	if v.ErrorPage == nil {
		v.ErrorPage = defaults.ErrorPage
	}
	return v
}

func toastElementID(id string) string {
	return "toast-" + id
}

func component(fn func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(fn)
}

func page(p PageParams) templ.Component {
	parts := p.Views.merge(DefaultViews())
	return component(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(p.State)
		if err != nil {
			return err
		}
		title := templ.EscapeString(p.AppName)

		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><script type="module" src="%s"></script></head>`, title, datastarScript); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<body data-signals="%s" data-init="@get('/stream')"><main class="container">`, templ.EscapeString(string(signals))); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<header><h1>%s</h1><p>Go + chi + templ + Datastar starter with toast notifications and error reporting.</p></header>`, title); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<section class="actions">`); err != nil {
			return err
		}
		if err := parts.CountButton(p.State).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div class="toast-demo">`+
			`<button type="button" class="outline" data-on:click="@post('/toasts/success')">Show Success Toast</button>`+
			`<button type="button" class="outline" data-on:click="@post('/toasts/error')">Show Error Toast</button>`+
			`</div>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div class="error-demo"><h3>Error Handling Demo</h3>`); err != nil {
			return err
		}
		if err := parts.DemoButtons(p.State).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<p class="muted">These buttons demonstrate error handling with toast notifications and logging</p></div></section>`); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<section class="features">`+
			`<article><h2>Layout &amp; UI</h2><ul><li>Server rendered pages</li><li>Toast notification system</li><li>Live updates over SSE</li></ul></article>`+
			`<article><h2>Stack</h2><ul><li>chi router</li><li>templ components</li><li>Datastar signals</li></ul></article>`+
			`<article><h2>Error Handling</h2><ul><li>Async operation wrapper</li><li>Backend error mapping</li><li>Structured error logging</li></ul></article>`+
			`</section></main>`); err != nil {
			return err
		}

		if err := parts.ToastContainer(p.Toasts).Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</body></html>`)
		return err
	})
}

func countButton(s State) templ.Component {
	return component(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<button id="count-button" type="button" class="primary" data-on:click="@post('/count')" data-text="'count is ' + $count">count is %d</button>`,
			s.Count)
		return err
	})
}

var demoLabels = []struct {
	op    Operation
	label string
}{
	{OpAsync, "Simulate Async Error"},
	{OpDatabase, "Simulate DB Error"},
	{OpNetwork, "Simulate Network Error"},
}

func demoButtons(s State) templ.Component {
	return component(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<div id="demo-buttons" class="demo-buttons">`)
		for _, d := range demoLabels {
			text, disabled := d.label, ""
			if s.Loading {
				text, disabled = "Loading...", " disabled"
			}
			fmt.Fprintf(&sb,
				`<button type="button" class="destructive" data-on:click="@post('/demo/%s')" data-attr:disabled="$loading" data-text="$loading ? 'Loading...' : '%s'"%s>%s</button>`,
				d.op, templ.EscapeString(d.label), disabled, templ.EscapeString(text))
		}
		sb.WriteString(`</div>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func toastItem(n toast.Notification) templ.Component {
	return component(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		fmt.Fprintf(&sb, `<div id="%s" class="toast toast-%s" role="status"><strong>%s</strong>`,
			toastElementID(n.ID), n.Kind, templ.EscapeString(n.Title))
		if n.Description != "" {
			fmt.Fprintf(&sb, `<p>%s</p>`, templ.EscapeString(n.Description))
		}
		fmt.Fprintf(&sb, `<button type="button" class="toast-close" aria-label="Dismiss" data-on:click="@delete('/toasts/%s')">&times;</button></div>`,
			templ.EscapeString(n.ID))
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func toastContainer(items []toast.Notification) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="%s" class="toasts" aria-live="polite">`, toastContainerID); err != nil {
			return err
		}
		for _, n := range items {
			if err := toastItem(n).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func errorToast(p handler.ErrorToastParams) templ.Component {
	return component(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="toast toast-error" role="alert"><strong>%s</strong><p>%s</p></div>`,
			TitleError, templ.EscapeString(p.Message))
		return err
	})
}

func errorPage(p handler.ErrorPageParams) templ.Component {
	return component(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Error %d</title></head><body><main class="container"><h1>Error %d</h1><p>%s</p><p class="muted">Request ID: %s</p><a href="%s">Try again</a></main></body></html>`,
			p.StatusCode, p.StatusCode, templ.EscapeString(p.Error), templ.EscapeString(p.RequestID), templ.EscapeString(string(templ.URL(p.RetryURL))))
		return err
	})
}
