package templates

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/platform/branding"
	"github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// LanguageOptionView is one entry of the language switcher.
type LanguageOptionView struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// AppLayoutView carries the app shell around a module page.
type AppLayoutView struct {
	Title         string
	Heading       string
	Lang          string
	CurrentPath   string
	Viewer        module.Viewer
	Toast         *AppToast
	Languages     []LanguageOptionView
	HeadingAction templ.Component
}

// PageTitle suffixes title with the product name.
func PageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return branding.AppName
	}
	return title + " | " + branding.AppName
}

// AppLayout renders the signed-in shell; the page body is passed through
// templ.WithChildren.
func AppLayout(view AppLayoutView, loc Localizer) templ.Component {
	return component(func(h *html) {
		documentHead(h, view.Lang, view.Title)
		h.raw(`<body class="app"><header class="topbar"><a class="brand"`)
		h.href(routepath.Root)
		h.raw(`>`)
		h.text(branding.AppName)
		h.raw(`</a>`)
		if view.Viewer.SignedIn {
			h.raw(`<nav class="nav"`)
			h.attr("aria-label", T(loc, "core.nav.label"))
			h.raw(`><ul>`)
			for _, item := range NavItems(view.Viewer.Role, view.CurrentPath, loc) {
				h.raw(`<li><a`)
				h.href(item.URL)
				if item.Active {
					h.attr("class", "is-active")
					h.attr("aria-current", "page")
				}
				h.raw(`>`)
				h.text(item.Label)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul></nav>`)
			viewerMenu(h, view.Viewer, loc)
		}
		languageSwitcher(h, view.Languages, loc)
		h.raw(`</header><main class="main" id="main">`)
		heading := defaultString(view.Heading, view.Title)
		if heading != "" || view.HeadingAction != nil {
			h.raw(`<div class="page-heading"><h1>`)
			h.text(heading)
			h.raw(`</h1>`)
			h.render(view.HeadingAction)
			h.raw(`</div>`)
		}
		h.children()
		h.raw(`</main>`)
		documentTail(h, view.Toast, loc)
	})
}

// PublicLayoutView carries the shell of signed-out pages.
type PublicLayoutView struct {
	Title           string
	MetaDescription string
	Lang            string
	Toast           *AppToast
	Languages       []LanguageOptionView
}

// PublicLayout renders the signed-out shell around the page body.
func PublicLayout(view PublicLayoutView, loc Localizer) templ.Component {
	return component(func(h *html) {
		documentHead(h, view.Lang, view.Title, view.MetaDescription)
		h.raw(`<body class="public"><header class="topbar"><a class="brand"`)
		h.href(routepath.Root)
		h.raw(`>`)
		h.text(branding.AppName)
		h.raw(`</a>`)
		languageSwitcher(h, view.Languages, loc)
		h.raw(`</header><main class="main main-narrow" id="main">`)
		h.children()
		h.raw(`</main>`)
		documentTail(h, view.Toast, loc)
	})
}

func documentHead(h *html, lang string, title string, description ...string) {
	h.raw(`<!doctype html><html`)
	h.attr("lang", defaultString(lang, "en-US"))
	h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	for _, text := range description {
		if strings.TrimSpace(text) != "" {
			h.raw(`<meta name="description"`)
			h.attr("content", text)
			h.raw(`>`)
		}
	}
	h.raw(`<title>`)
	h.text(PageTitle(title))
	h.raw(`</title><link rel="stylesheet"`)
	h.href(routepath.StaticPrefix + "app.css")
	h.raw(`><script defer`)
	h.attr("src", h.url(routepath.StaticPrefix+"app.js"))
	h.raw(`></script></head>`)
}

// documentTail renders the single toast region and overlay spinner.
func documentTail(h *html, toast *AppToast, loc Localizer) {
	h.raw(`<div id="toast-region" class="toast-region" aria-live="polite">`)
	if toast != nil && strings.TrimSpace(toast.Message) != "" {
		h.render(Toast(*toast))
	}
	h.raw(`</div>`)
	h.render(Spinner(SpinnerView{ID: "spinner-overlay", Overlay: true, Label: T(loc, "core.spinner.loading")}))
	h.raw(`</body></html>`)
}

func viewerMenu(h *html, viewer module.Viewer, loc Localizer) {
	h.raw(`<div class="viewer"><span class="viewer-email">`)
	h.text(viewer.Email)
	h.raw(`</span>`)
	if viewer.Role.Valid() {
		h.render(Badge(T(loc, viewer.Role.LabelKey()), "role"))
	}
	h.raw(`<form method="post" class="inline-form"`)
	h.attr("action", h.url(routepath.Logout))
	h.raw(`><button type="submit" class="btn btn-link">`)
	h.text(T(loc, "core.nav.sign_out"))
	h.raw(`</button></form></div>`)
}

func languageSwitcher(h *html, options []LanguageOptionView, loc Localizer) {
	if len(options) < 2 {
		return
	}
	h.raw(`<ul class="languages"`)
	h.attr("aria-label", T(loc, "core.language.label"))
	h.raw(`>`)
	for _, option := range options {
		h.raw(`<li><a`)
		h.href(option.URL)
		h.attr("hreflang", option.Tag)
		if option.Active {
			h.attr("aria-current", "true")
		}
		h.raw(`>`)
		h.text(option.Label)
		h.raw(`</a></li>`)
	}
	h.raw(`</ul>`)
}
