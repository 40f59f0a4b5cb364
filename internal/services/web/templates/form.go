package templates

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
)

// FieldKind selects the control rendered for a field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldPassword FieldKind = "password"
	FieldURL      FieldKind = "url"
	FieldNumber   FieldKind = "number"
	FieldDate     FieldKind = "date"
	FieldSearch   FieldKind = "search"
	FieldHidden   FieldKind = "hidden"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	FieldFile     FieldKind = "file"
)

// OptionView is one select option.
type OptionView struct {
	Value string
	Label string
}

// FieldView describes one form control.
type FieldView struct {
	Name         string
	Label        string
	Kind         FieldKind
	Value        string
	Placeholder  string
	Hint         string
	Options      []OptionView
	Required     bool
	Autocomplete string
	Accept       string
	Multiple     bool
	Error        string
}

// FormView describes a form. Method defaults to post; post forms show the
// overlay spinner while submitting.
type FormView struct {
	ID          string
	Action      string
	Method      string
	Fields      []FieldView
	SubmitLabel string
	Error       string
	Secondary   *LinkView
	Inline      bool
	Multipart   bool
}

// Form renders a form with per-field error messages.
func Form(view FormView) templ.Component {
	return component(func(h *html) {
		method := strings.ToLower(strings.TrimSpace(view.Method))
		if method == "" {
			method = "post"
		}
		h.raw(`<form novalidate`)
		if view.ID != "" {
			h.attr("id", view.ID)
		}
		h.attr("class", classes("form", inlineClass(view.Inline)))
		h.attr("method", method)
		h.attr("action", h.url(view.Action))
		if method == "post" {
			h.attr("data-spinner", "")
			if view.Multipart {
				h.attr("enctype", "multipart/form-data")
			}
		}
		h.raw(`>`)
		h.render(Banner("error", view.Error))
		for _, field := range view.Fields {
			h.render(Field(field))
		}
		h.raw(`<div class="form-actions"><button type="submit" class="btn btn-primary">`)
		h.text(view.SubmitLabel)
		h.raw(`</button>`)
		if view.Secondary != nil {
			h.render(Link(*view.Secondary))
		}
		h.raw(`</div></form>`)
	})
}

func inlineClass(inline bool) string {
	if inline {
		return "form-inline"
	}
	return ""
}

// Field renders one labeled control and its error.
func Field(field FieldView) templ.Component {
	return component(func(h *html) {
		if field.Kind == FieldHidden {
			h.raw(`<input type="hidden"`)
			h.attr("name", field.Name)
			h.attr("value", field.Value)
			h.raw(`>`)
			return
		}
		id := "field-" + field.Name
		errorID := id + "-error"
		invalid := strings.TrimSpace(field.Error) != ""

		h.raw(`<div`)
		h.attr("class", classes("field", invalidClass(invalid)))
		h.raw(`><label`)
		h.attr("for", id)
		h.raw(`>`)
		h.text(field.Label)
		h.raw(`</label>`)

		switch field.Kind {
		case FieldTextarea:
			h.raw(`<textarea rows="4"`)
			fieldAttrs(h, field, id, errorID, invalid)
			h.raw(`>`)
			h.text(field.Value)
			h.raw(`</textarea>`)
		case FieldSelect:
			h.raw(`<select`)
			fieldAttrs(h, field, id, errorID, invalid)
			h.raw(`>`)
			for _, option := range field.Options {
				h.raw(`<option`)
				h.attr("value", option.Value)
				if option.Value == field.Value {
					h.raw(` selected`)
				}
				h.raw(`>`)
				h.text(option.Label)
				h.raw(`</option>`)
			}
			h.raw(`</select>`)
		default:
			kind := field.Kind
			if kind == "" {
				kind = FieldText
			}
			h.raw(`<input`)
			h.attr("type", string(kind))
			fieldAttrs(h, field, id, errorID, invalid)
			if kind != FieldPassword && kind != FieldFile {
				h.attr("value", field.Value)
			}
			h.raw(`>`)
		}
		if field.Hint != "" {
			h.raw(`<p class="field-hint">`)
			h.text(field.Hint)
			h.raw(`</p>`)
		}
		if invalid {
			h.raw(`<p class="field-error"`)
			h.attr("id", errorID)
			h.raw(`>`)
			h.text(field.Error)
			h.raw(`</p>`)
		}
		h.raw(`</div>`)
	})
}

func fieldAttrs(h *html, field FieldView, id string, errorID string, invalid bool) {
	h.attr("id", id)
	h.attr("name", field.Name)
	if field.Placeholder != "" {
		h.attr("placeholder", field.Placeholder)
	}
	if field.Autocomplete != "" {
		h.attr("autocomplete", field.Autocomplete)
	}
	if field.Accept != "" {
		h.attr("accept", field.Accept)
	}
	if field.Multiple {
		h.raw(` multiple`)
	}
	if field.Required {
		h.raw(` required`)
	}
	if invalid {
		h.attr("aria-invalid", "true")
		h.attr("aria-describedby", errorID)
	}
}

func invalidClass(invalid bool) string {
	if invalid {
		return "is-invalid"
	}
	return ""
}

// FieldError localizes a validation message.
func FieldError(loc Localizer, msg formvalidate.Message) string {
	if strings.TrimSpace(msg.Text) != "" {
		return msg.Text
	}
	if msg.Key == "" {
		return ""
	}
	return T(loc, msg.Key, msg.Args...)
}

// ApplyErrors copies validation errors onto matching fields.
func ApplyErrors(fields []FieldView, errs formvalidate.Errors, loc Localizer) []FieldView {
	if len(errs) == 0 {
		return fields
	}
	out := make([]FieldView, len(fields))
	copy(out, fields)
	for i := range out {
		if msg, ok := errs[out[i].Name]; ok {
			out[i].Error = FieldError(loc, msg)
		}
	}
	return out
}

// Optional renders c when ok.
func Optional(ok bool, c templ.Component) templ.Component {
	if !ok {
		return nil
	}
	return c
}
