// Package templates renders the HTML pages of the quote builder as templ
// components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// NavData is shown in the header of every page.
type NavData struct {
	CompanyName string
	ActivePath  string
	ItemCount   int
	DraftTotal  string
}

// htmlWriter keeps the first write error so components can write in
// sequence and check once.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// tag writes <name attrs>escaped text</name>.
func (h *htmlWriter) tag(name, attrs, s string) {
	if attrs != "" {
		h.rawf("<%s %s>", name, attrs)
	} else {
		h.rawf("<%s>", name)
	}
	h.text(s)
	h.rawf("</%s>", name)
}

func navLink(h *htmlWriter, nav NavData, href, label string) {
	class := "nav-link"
	if nav.ActivePath == href {
		class += " active"
	}
	h.rawf(`<a class="%s" href="%s">`, class, templ.EscapeString(href))
	h.text(label)
	h.raw(`</a>`)
}

// Page wraps body in the document shell with the navigation header.
func Page(title string, nav NavData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en-IN"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.tag("title", "", title)
		h.raw(`<link rel="stylesheet" href="/static/css/output.css">`)
		h.raw(`<script src="/static/js/htmx.min.js" defer></script>`)
		h.raw(`</head><body><header class="no-print">`)
		h.tag("strong", `class="brand"`, nav.CompanyName)
		h.raw(`<nav>`)
		navLink(h, nav, "/quote/preview", "Quote")
		navLink(h, nav, "/quotes", "Saved Quotes")
		h.raw(`</nav>`)
		h.rawf(`<span class="draft-summary">%d items · `, nav.ItemCount)
		h.text(nav.DraftTotal)
		h.raw(`</span></header><main>`)
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}
