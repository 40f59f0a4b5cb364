package public

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/publichandler"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

type handlers struct {
	publichandler.Base
}

func newHandlers(base publichandler.Base) handlers {
	return handlers{Base: base}
}

func (h handlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	if viewer := h.ResolveRequestViewer(r); h.IsViewerSignedIn(r) && viewer.Role.Valid() {
		httpx.WriteRedirect(w, r, viewer.Role.DashboardPath())
		return
	}
	loc := h.PageLocalizer(r)
	h.WritePublicPage(w, r, webtemplates.T(loc, "web.landing.title"), webtemplates.T(loc, "web.landing.description"), http.StatusOK, webtemplates.Landing(landingView(loc)))
}

func (handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func landingView(loc webtemplates.Localizer) webtemplates.LandingView {
	features := []string{"upload", "review", "reports", "analytics"}
	view := webtemplates.LandingView{
		Heading:   webtemplates.T(loc, "web.landing.heading"),
		Lead:      webtemplates.T(loc, "web.landing.lead"),
		Primary:   webtemplates.LinkView{Label: webtemplates.T(loc, "web.landing.cta_register"), URL: routepath.Register, Primary: true},
		Secondary: webtemplates.LinkView{Label: webtemplates.T(loc, "web.landing.cta_login"), URL: routepath.Login},
	}
	for _, feature := range features {
		view.Features = append(view.Features, webtemplates.DefinitionItem{
			Term:  webtemplates.T(loc, "web.landing.feature_"+feature+"_title"),
			Value: webtemplates.T(loc, "web.landing.feature_"+feature+"_body"),
		})
	}
	return view
}
