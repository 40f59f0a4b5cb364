package templates

import "github.com/a-h/templ"

// LandingView is the signed-out home page.
type LandingView struct {
	Heading   string
	Lead      string
	Primary   LinkView
	Secondary LinkView
	Features  []DefinitionItem
}

// Landing renders the home page hero and feature list.
func Landing(view LandingView) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="hero" id="landing"><h1>`)
		h.text(view.Heading)
		h.raw(`</h1><p class="hero-lead">`)
		h.text(view.Lead)
		h.raw(`</p><div class="hero-actions">`)
		h.render(Link(view.Primary))
		h.render(Link(view.Secondary))
		h.raw(`</div></section><ul class="features">`)
		for _, feature := range view.Features {
			h.raw(`<li class="feature"><h3>`)
			h.text(feature.Term)
			h.raw(`</h3><p>`)
			h.text(feature.Value)
			h.raw(`</p></li>`)
		}
		h.raw(`</ul>`)
	})
}
