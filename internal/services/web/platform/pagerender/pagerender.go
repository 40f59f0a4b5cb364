// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/retina.care/internal/services/web/i18n"
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	flashnotice "github.com/louisbranch/retina.care/internal/services/web/platform/flash"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

// RequestResolver resolves viewer and cookie policy from a request.
// This decouples platform rendering from the module-layer Dependencies type.
type RequestResolver interface {
	ResolveRequestViewer(r *http.Request) module.Viewer
	RequestPolicy() requestmeta.Policy
}

// ModulePage describes a signed-in page response.
type ModulePage struct {
	Title         string
	Heading       string
	StatusCode    int
	HeadingAction templ.Component
	Body          templ.Component
}

// PublicPage describes a signed-out page response.
type PublicPage struct {
	Title           string
	MetaDescription string
	StatusCode      int
	Body            templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WriteModulePage renders page inside the app shell. The pending flash notice
// becomes the page toast.
func WriteModulePage(w http.ResponseWriter, r *http.Request, resolver RequestResolver, page ModulePage) error {
	if w == nil {
		return nil
	}
	ctx := httpx.RequestContext(r)
	loc := webi18n.FromContext(ctx)
	viewer := module.Viewer{}
	var policy requestmeta.Policy
	if resolver != nil {
		viewer = resolver.ResolveRequestViewer(r)
		policy = resolver.RequestPolicy()
	}
	currentPath := ""
	if r != nil && r.URL != nil {
		currentPath = r.URL.Path
	}
	layout := webtemplates.AppLayout(webtemplates.AppLayoutView{
		Title:         page.Title,
		Heading:       page.Heading,
		Lang:          loc.Lang(),
		CurrentPath:   currentPath,
		Viewer:        viewer,
		Toast:         resolveFlashToast(w, r, policy, loc),
		Languages:     languageOptions(r, loc),
		HeadingAction: page.HeadingAction,
	}, loc)
	return write(w, ctx, page.StatusCode, layout, page.Body)
}

// WritePublicPage renders page inside the signed-out shell.
func WritePublicPage(w http.ResponseWriter, r *http.Request, resolver RequestResolver, page PublicPage) error {
	if w == nil {
		return nil
	}
	ctx := httpx.RequestContext(r)
	loc := webi18n.FromContext(ctx)
	var policy requestmeta.Policy
	if resolver != nil {
		policy = resolver.RequestPolicy()
	}
	layout := webtemplates.PublicLayout(webtemplates.PublicLayoutView{
		Title:           page.Title,
		MetaDescription: page.MetaDescription,
		Lang:            loc.Lang(),
		Toast:           resolveFlashToast(w, r, policy, loc),
		Languages:       languageOptions(r, loc),
	}, loc)
	return write(w, ctx, page.StatusCode, layout, page.Body)
}

func write(w http.ResponseWriter, ctx context.Context, statusCode int, layout templ.Component, body templ.Component) error {
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	if body == nil {
		body = emptyComponent{}
	}
	var buf bytes.Buffer
	if err := layout.Render(templ.WithChildren(ctx, body), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy, loc webi18n.Localizer) *webtemplates.AppToast {
	notice, ok := flashnotice.ReadAndClear(w, r, policy)
	if !ok {
		return nil
	}
	message := strings.TrimSpace(notice.Message)
	if key := strings.TrimSpace(notice.Key); key != "" {
		message = strings.TrimSpace(loc.T(key))
	}
	if message == "" {
		return nil
	}
	return &webtemplates.AppToast{
		Kind:    string(notice.Kind),
		Message: message,
	}
}

func languageOptions(r *http.Request, loc webi18n.Localizer) []webtemplates.LanguageOptionView {
	if r == nil {
		return nil
	}
	options := webi18n.LanguageOptions(loc, r.URL)
	out := make([]webtemplates.LanguageOptionView, 0, len(options))
	for _, option := range options {
		out = append(out, webtemplates.LanguageOptionView{
			Tag:    option.Tag,
			Label:  option.Label,
			URL:    option.URL,
			Active: option.Active,
		})
	}
	return out
}
