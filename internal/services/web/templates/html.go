package templates

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/platform/basepath"
)

// html writes markup to w and keeps the first write error.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

// component adapts a writer function into a templ component.
func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

// raw writes trusted markup.
func (h *html) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

// text writes escaped text.
func (h *html) text(value string) {
	h.raw(templ.EscapeString(value))
}

// attr writes ` name="value"` with value escaped.
func (h *html) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// href writes an href to an app path resolved against the base path.
func (h *html) href(path string) {
	h.attr("href", h.url(path))
}

// url resolves an app path and drops unsafe schemes.
func (h *html) url(path string) string {
	return string(templ.URL(basepath.Resolve(h.ctx, path)))
}

// render writes a nested component.
func (h *html) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// children writes the components passed through templ.WithChildren.
func (h *html) children() {
	h.render(templ.GetChildren(h.ctx))
}

// classes joins non-empty class names.
func classes(names ...string) string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return strings.Join(out, " ")
}

// Group renders components in order.
func Group(parts ...templ.Component) templ.Component {
	return component(func(h *html) {
		for _, part := range parts {
			h.render(part)
		}
	})
}

// Text renders escaped text.
func Text(value string) templ.Component {
	return component(func(h *html) { h.text(value) })
}

// Paragraph renders a paragraph of escaped text.
func Paragraph(value string) templ.Component {
	return component(func(h *html) {
		h.raw(`<p>`)
		h.text(value)
		h.raw(`</p>`)
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
