package publicauth

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

func authCard(id string, title string, banner templ.Component, form webtemplates.FormView, footer ...templ.Component) templ.Component {
	parts := []templ.Component{banner, webtemplates.Form(form)}
	parts = append(parts, footer...)
	return webtemplates.Section(webtemplates.SectionView{ID: id, Title: title}, parts...)
}

func loginPage(loc webtemplates.Localizer, form loginForm, errs formvalidate.Errors, message string) templ.Component {
	fields := []webtemplates.FieldView{
		{Name: "email", Label: webtemplates.T(loc, "web.auth.field_email"), Kind: webtemplates.FieldEmail, Value: form.Email, Required: true, Autocomplete: "email"},
		{Name: "password", Label: webtemplates.T(loc, "web.auth.field_password"), Kind: webtemplates.FieldPassword, Required: true, Autocomplete: "current-password"},
		{Name: routepath.NextQueryKey, Kind: webtemplates.FieldHidden, Value: safeNext(form.Next)},
	}
	return authCard("login", webtemplates.T(loc, "web.auth.login_heading"),
		webtemplates.Banner("error", message),
		webtemplates.FormView{
			ID:          "login-form",
			Action:      routepath.Login,
			Fields:      webtemplates.ApplyErrors(fields, errs, loc),
			SubmitLabel: webtemplates.T(loc, "web.auth.login_submit"),
			Secondary:   &webtemplates.LinkView{Label: webtemplates.T(loc, "web.auth.forgot_link"), URL: routepath.ForgotPassword},
		},
		webtemplates.Paragraph(webtemplates.T(loc, "web.auth.no_account")),
		webtemplates.Link(webtemplates.LinkView{Label: webtemplates.T(loc, "web.auth.register_link"), URL: routepath.Register}),
	)
}

func registerPage(loc webtemplates.Localizer, form registerForm, errs formvalidate.Errors, message string) templ.Component {
	fields := []webtemplates.FieldView{
		{Name: "email", Label: webtemplates.T(loc, "web.auth.field_email"), Kind: webtemplates.FieldEmail, Value: form.Email, Required: true, Autocomplete: "email"},
		{Name: "password", Label: webtemplates.T(loc, "web.auth.field_password"), Kind: webtemplates.FieldPassword, Required: true, Autocomplete: "new-password", Hint: webtemplates.T(loc, "web.auth.password_hint")},
		{Name: "confirm", Label: webtemplates.T(loc, "web.auth.field_confirm"), Kind: webtemplates.FieldPassword, Required: true, Autocomplete: "new-password"},
		{Name: "role", Label: webtemplates.T(loc, "web.auth.field_role"), Kind: webtemplates.FieldSelect, Value: form.Role, Options: roleOptions(loc), Required: true},
	}
	return authCard("register", webtemplates.T(loc, "web.auth.register_heading"),
		webtemplates.Banner("error", message),
		webtemplates.FormView{
			ID:          "register-form",
			Action:      routepath.Register,
			Fields:      webtemplates.ApplyErrors(fields, errs, loc),
			SubmitLabel: webtemplates.T(loc, "web.auth.register_submit"),
			Secondary:   &webtemplates.LinkView{Label: webtemplates.T(loc, "web.auth.login_link"), URL: routepath.Login},
		},
	)
}

func roleOptions(loc webtemplates.Localizer) []webtemplates.OptionView {
	roles := role.Registerable()
	options := make([]webtemplates.OptionView, 0, len(roles))
	for _, r := range roles {
		options = append(options, webtemplates.OptionView{Value: string(r), Label: webtemplates.T(loc, r.LabelKey())})
	}
	return options
}

func forgotPage(loc webtemplates.Localizer, form forgotForm, errs formvalidate.Errors, message string, success string) templ.Component {
	fields := []webtemplates.FieldView{
		{Name: "email", Label: webtemplates.T(loc, "web.auth.field_email"), Kind: webtemplates.FieldEmail, Value: form.Email, Required: true, Autocomplete: "email"},
	}
	return authCard("forgot-password", webtemplates.T(loc, "web.auth.forgot_heading"),
		webtemplates.Group(webtemplates.Banner("error", message), webtemplates.Banner("success", success)),
		webtemplates.FormView{
			ID:          "forgot-form",
			Action:      routepath.ForgotPassword,
			Fields:      webtemplates.ApplyErrors(fields, errs, loc),
			SubmitLabel: webtemplates.T(loc, "web.auth.forgot_submit"),
			Secondary:   &webtemplates.LinkView{Label: webtemplates.T(loc, "web.auth.login_link"), URL: routepath.Login},
		},
	)
}

func resetPage(loc webtemplates.Localizer, form resetForm, errs formvalidate.Errors, message string) templ.Component {
	fields := []webtemplates.FieldView{
		{Name: "token", Label: webtemplates.T(loc, "web.auth.field_token"), Value: form.Token, Required: true},
		{Name: "password", Label: webtemplates.T(loc, "web.auth.field_new_password"), Kind: webtemplates.FieldPassword, Required: true, Autocomplete: "new-password", Hint: webtemplates.T(loc, "web.auth.password_hint")},
		{Name: "confirm", Label: webtemplates.T(loc, "web.auth.field_confirm"), Kind: webtemplates.FieldPassword, Required: true, Autocomplete: "new-password"},
	}
	return authCard("reset-password", webtemplates.T(loc, "web.auth.reset_heading"),
		webtemplates.Banner("error", message),
		webtemplates.FormView{
			ID:          "reset-form",
			Action:      routepath.ResetPassword,
			Fields:      webtemplates.ApplyErrors(fields, errs, loc),
			SubmitLabel: webtemplates.T(loc, "web.auth.reset_submit"),
		},
	)
}
