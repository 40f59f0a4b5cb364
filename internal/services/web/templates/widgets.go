package templates

import (
	"strings"

	"github.com/a-h/templ"
)

// AppToast is the one-time notice shown in the layout toast region.
type AppToast struct {
	Kind    string
	Message string
}

// ToastDismissAfterMillis is how long a toast stays before removing itself.
const ToastDismissAfterMillis = 4000

// Toast renders a self-dismissing notice.
func Toast(toast AppToast) templ.Component {
	return component(func(h *html) {
		kind := toastKind(toast.Kind)
		h.raw(`<div`)
		h.attr("class", "toast toast-"+kind)
		h.attr("role", toastRole(kind))
		h.attr("data-toast", "")
		h.attr("data-dismiss-after", itoa(ToastDismissAfterMillis))
		h.raw(`>`)
		h.text(toast.Message)
		h.raw(`</div>`)
	})
}

func toastKind(kind string) string {
	switch kind = strings.TrimSpace(kind); kind {
	case "success", "warning", "error":
		return kind
	default:
		return "info"
	}
}

func toastRole(kind string) string {
	if kind == "error" || kind == "warning" {
		return "alert"
	}
	return "status"
}

// ModalView describes a dialog. A modal with OnCloseURL navigates there once
// its dismiss animation has finished.
type ModalView struct {
	ID         string
	Title      string
	Body       templ.Component
	CloseLabel string
	OnCloseURL string
	Open       bool
}

// Modal renders a dialog node driven by the static script.
func Modal(view ModalView) templ.Component {
	return component(func(h *html) {
		id := strings.TrimSpace(view.ID)
		if id == "" {
			id = "app-modal"
		}
		h.raw(`<div`)
		h.attr("id", id)
		h.attr("class", classes("modal", openClass(view.Open)))
		h.attr("role", "dialog")
		h.attr("aria-modal", "true")
		h.attr("aria-labelledby", id+"-title")
		h.attr("data-modal", "")
		if !view.Open {
			h.attr("hidden", "")
		}
		if strings.TrimSpace(view.OnCloseURL) != "" {
			h.attr("data-on-close", h.url(view.OnCloseURL))
		}
		h.raw(`><div class="modal-backdrop" data-modal-close></div><div class="modal-panel"><header class="modal-header"><h2`)
		h.attr("id", id+"-title")
		h.raw(`>`)
		h.text(view.Title)
		h.raw(`</h2><button type="button" class="modal-close" data-modal-close`)
		h.attr("aria-label", view.CloseLabel)
		h.raw(`>&times;</button></header><div class="modal-body">`)
		h.render(view.Body)
		h.raw(`</div></div></div>`)
	})
}

func openClass(open bool) string {
	if open {
		return "is-open"
	}
	return ""
}

// SpinnerView describes a loading indicator. Overlay spinners cover the
// viewport and are shown by the static script while a form submits.
type SpinnerView struct {
	ID      string
	Overlay bool
	Label   string
}

// Spinner renders a loading indicator.
func Spinner(view SpinnerView) templ.Component {
	return component(func(h *html) {
		h.raw(`<div`)
		if view.ID != "" {
			h.attr("id", view.ID)
		}
		if view.Overlay {
			h.attr("class", "spinner-overlay")
			h.attr("data-spinner-overlay", "")
			h.attr("hidden", "")
		} else {
			h.attr("class", "spinner-inline")
		}
		h.attr("role", "status")
		h.attr("aria-live", "polite")
		h.raw(`><span class="spinner" aria-hidden="true"></span><span class="spinner-label">`)
		h.text(view.Label)
		h.raw(`</span></div>`)
	})
}

// Banner renders an inline message. Error banners are announced.
func Banner(kind string, message string) templ.Component {
	return component(func(h *html) {
		if strings.TrimSpace(message) == "" {
			return
		}
		kind = toastKind(kind)
		h.raw(`<div`)
		h.attr("class", "banner banner-"+kind)
		h.attr("role", toastRole(kind))
		h.raw(`>`)
		h.text(message)
		h.raw(`</div>`)
	})
}

// Badge renders a short status label.
func Badge(label string, tone string) templ.Component {
	return component(func(h *html) {
		h.raw(`<span`)
		h.attr("class", classes("badge", "badge-"+strings.TrimSpace(tone)))
		h.raw(`>`)
		h.text(label)
		h.raw(`</span>`)
	})
}

// statusTones maps backend status values onto badge tones.
var statusTones = map[string]string{
	"uploaded":       "info",
	"processing":     "warning",
	"analyzed":       "success",
	"completed":      "success",
	"error":          "error",
	"failed":         "error",
	"pending":        "warning",
	"verified":       "success",
	"rejected":       "error",
	"approved":       "success",
	"needs_revision": "warning",
	"active":         "success",
	"expired":        "muted",
	"cancelled":      "muted",
	"closed":         "muted",
}

// StatusBadge renders a backend status value with its translated label.
// Unknown statuses are shown as sent.
func StatusBadge(status string, loc Localizer) templ.Component {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return Text(Placeholder)
	}
	tone, ok := statusTones[status]
	if !ok {
		return Badge(status, "muted")
	}
	return Badge(T(loc, "core.status."+status), tone)
}

// StatusLabel returns the translated label of a backend status value, or the
// value as sent when it is unknown.
func StatusLabel(status string, loc Localizer) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if _, ok := statusTones[status]; !ok {
		return status
	}
	return T(loc, "core.status."+status)
}

// EnumLabel translates value under the catalog prefix when it is one of
// known, and returns it as sent otherwise.
func EnumLabel(loc Localizer, prefix string, value string, known []string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, k := range known {
		if strings.EqualFold(k, value) {
			return T(loc, prefix+k)
		}
	}
	return value
}

// Options builds select options for known values translated under prefix.
func Options(loc Localizer, prefix string, known []string) []OptionView {
	out := make([]OptionView, 0, len(known))
	for _, k := range known {
		out = append(out, OptionView{Value: k, Label: T(loc, prefix+k)})
	}
	return out
}

// LinkView is a navigational link or action.
type LinkView struct {
	Label   string
	URL     string
	Primary bool
}

// Link renders an anchor styled as a button when Primary is set.
func Link(view LinkView) templ.Component {
	return component(func(h *html) {
		h.raw(`<a`)
		h.href(view.URL)
		if view.Primary {
			h.attr("class", "btn btn-primary")
		} else {
			h.attr("class", "link")
		}
		h.raw(`>`)
		h.text(view.Label)
		h.raw(`</a>`)
	})
}

// PostButtonView is a one-button form for state-changing actions.
type PostButtonView struct {
	Action  string
	Label   string
	Tone    string
	Hidden  map[string]string
	Confirm string
}

// PostButton renders a form posting to Action.
func PostButton(view PostButtonView) templ.Component {
	return component(func(h *html) {
		h.raw(`<form method="post" class="inline-form" data-spinner`)
		h.attr("action", h.url(view.Action))
		if view.Confirm != "" {
			h.attr("data-confirm", view.Confirm)
		}
		h.raw(`>`)
		for _, name := range sortedKeys(view.Hidden) {
			h.raw(`<input type="hidden"`)
			h.attr("name", name)
			h.attr("value", view.Hidden[name])
			h.raw(`>`)
		}
		h.raw(`<button type="submit"`)
		h.attr("class", classes("btn", "btn-"+defaultString(view.Tone, "secondary")))
		h.raw(`>`)
		h.text(view.Label)
		h.raw(`</button></form>`)
	})
}

// StatView is one figure on a dashboard.
type StatView struct {
	Label string
	Value string
	URL   string
}

// Stats renders a grid of dashboard figures.
func Stats(items []StatView) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="stats">`)
		for _, item := range items {
			h.raw(`<div class="stat"><span class="stat-value">`)
			h.text(defaultString(item.Value, Placeholder))
			h.raw(`</span><span class="stat-label">`)
			if item.URL != "" {
				h.raw(`<a`)
				h.href(item.URL)
				h.raw(`>`)
				h.text(item.Label)
				h.raw(`</a>`)
			} else {
				h.text(item.Label)
			}
			h.raw(`</span></div>`)
		}
		h.raw(`</div>`)
	})
}

// DefinitionItem is one term of a description list.
type DefinitionItem struct {
	Term  string
	Value string
}

// Definitions renders a description list; blank values show Placeholder.
func Definitions(items []DefinitionItem) templ.Component {
	return component(func(h *html) {
		h.raw(`<dl class="definitions">`)
		for _, item := range items {
			h.raw(`<dt>`)
			h.text(item.Term)
			h.raw(`</dt><dd>`)
			h.text(defaultString(item.Value, Placeholder))
			h.raw(`</dd>`)
		}
		h.raw(`</dl>`)
	})
}

// Image renders a retinal image thumbnail or preview.
func Image(src string, alt string) templ.Component {
	return component(func(h *html) {
		h.raw(`<img class="retinal-image" loading="lazy"`)
		h.attr("src", imageSrc(h, src))
		h.attr("alt", alt)
		h.raw(`>`)
	})
}

// imageSrc allows inline image data URLs alongside ordinary URLs.
func imageSrc(h *html, src string) string {
	src = strings.TrimSpace(src)
	if strings.HasPrefix(strings.ToLower(src), "data:image/") {
		return src
	}
	return h.url(src)
}

// SectionView titles a card of page content.
type SectionView struct {
	ID     string
	Title  string
	Action *LinkView
}

// Section renders a titled card around body.
func Section(view SectionView, body ...templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<section class="card"`)
		if view.ID != "" {
			h.attr("id", view.ID)
		}
		h.raw(`>`)
		if view.Title != "" || view.Action != nil {
			h.raw(`<header class="card-header"><h2>`)
			h.text(view.Title)
			h.raw(`</h2>`)
			if view.Action != nil {
				h.render(Link(*view.Action))
			}
			h.raw(`</header>`)
		}
		for _, part := range body {
			h.render(part)
		}
		h.raw(`</section>`)
	})
}

// Placeholder stands in for values that could not be loaded.
const Placeholder = "-"

func defaultString(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// MessageView is one chat message. Own marks messages sent by the viewer.
type MessageView struct {
	Author string
	Body   string
	SentAt string
	Own    bool
}

// MessageThread renders a conversation oldest first. The last message is
// anchored as #latest.
func MessageThread(messages []MessageView, empty string) templ.Component {
	return component(func(h *html) {
		if len(messages) == 0 {
			h.raw(`<p class="empty">`)
			h.text(empty)
			h.raw(`</p>`)
			return
		}
		h.raw(`<ol class="thread">`)
		for i, m := range messages {
			h.raw(`<li`)
			h.attr("class", classes("message", ownClass(m.Own)))
			if i == len(messages)-1 {
				h.attr("id", "latest")
			}
			h.raw(`><header><strong>`)
			h.text(defaultString(m.Author, Placeholder))
			h.raw(`</strong> <time>`)
			h.text(m.SentAt)
			h.raw(`</time></header><p>`)
			h.text(m.Body)
			h.raw(`</p></li>`)
		}
		h.raw(`</ol>`)
	})
}

func ownClass(own bool) string {
	if own {
		return "message-own"
	}
	return ""
}
