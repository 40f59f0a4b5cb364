package profile

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

type profileView struct {
	Role    role.Role
	Data    profileData
	Patient patientForm
	Doctor  doctorForm
	Errors  formvalidate.Errors
	Message string
	Banner  string
}

func profileBody(view profileView, loc webtemplates.Localizer) templ.Component {
	return webtemplates.Group(
		webtemplates.Banner("error", view.Banner),
		webtemplates.Section(webtemplates.SectionView{ID: "profile-account", Title: webtemplates.T(loc, "web.profile.account_heading")},
			webtemplates.Definitions(accountItems(view, loc)),
		),
		profileEditor(view, loc),
	)
}

func accountItems(view profileView, loc webtemplates.Localizer) []webtemplates.DefinitionItem {
	account := view.Data.Account
	roleLabel := ""
	if r, ok := role.FromID(account.RoleID); ok {
		roleLabel = webtemplates.T(loc, r.LabelKey())
	} else if view.Role.Valid() {
		roleLabel = webtemplates.T(loc, view.Role.LabelKey())
	}
	items := []webtemplates.DefinitionItem{
		{Term: webtemplates.T(loc, "web.profile.field_email"), Value: account.Email},
		{Term: webtemplates.T(loc, "web.profile.field_role"), Value: roleLabel},
		{Term: webtemplates.T(loc, "web.profile.field_status"), Value: account.Status},
	}
	if clinicID := account.ClinicID.String(); clinicID != "" {
		items = append(items, webtemplates.DefinitionItem{Term: webtemplates.T(loc, "web.profile.field_clinic"), Value: clinicID})
	}
	return items
}

func profileEditor(view profileView, loc webtemplates.Localizer) templ.Component {
	switch view.Role {
	case role.Patient:
		return patientEditor(view, loc)
	case role.Doctor:
		return doctorEditor(view, loc)
	default:
		return webtemplates.Section(webtemplates.SectionView{ID: "profile-editor"},
			webtemplates.Paragraph(webtemplates.T(loc, "web.profile.no_editable_profile")),
		)
	}
}

func patientEditor(view profileView, loc webtemplates.Localizer) templ.Component {
	form := view.Patient
	fields := []webtemplates.FieldView{
		{Name: "patient_name", Label: webtemplates.T(loc, "web.profile.field_full_name"), Kind: webtemplates.FieldText, Value: form.Name, Required: true, Autocomplete: "name"},
		{Name: "date_of_birth", Label: webtemplates.T(loc, "web.profile.field_date_of_birth"), Kind: webtemplates.FieldDate, Value: form.DateOfBirth, Autocomplete: "bday"},
		{Name: "gender", Label: webtemplates.T(loc, "web.profile.field_gender"), Kind: webtemplates.FieldSelect, Value: form.Gender, Options: genderOptions(loc)},
		{Name: "medical_history", Label: webtemplates.T(loc, "web.profile.field_medical_history"), Kind: webtemplates.FieldTextarea, Value: form.MedicalHistory},
	}
	title := webtemplates.T(loc, "web.profile.patient_heading")
	if view.Data.Patient == nil && view.Data.ProfileErr == nil {
		title = webtemplates.T(loc, "web.profile.patient_create_heading")
	}
	return webtemplates.Section(webtemplates.SectionView{ID: "profile-editor", Title: title},
		webtemplates.Form(webtemplates.FormView{
			ID:          "patient-profile-form",
			Action:      routepath.ProfileUpdate,
			Fields:      webtemplates.ApplyErrors(fields, view.Errors, loc),
			SubmitLabel: webtemplates.T(loc, "web.profile.save"),
			Error:       view.Message,
		}),
	)
}

func doctorEditor(view profileView, loc webtemplates.Localizer) templ.Component {
	form := view.Doctor
	fields := []webtemplates.FieldView{
		{Name: "doctor_name", Label: webtemplates.T(loc, "web.profile.field_full_name"), Kind: webtemplates.FieldText, Value: form.Name, Required: true, Autocomplete: "name"},
		{Name: "specialization", Label: webtemplates.T(loc, "web.profile.field_specialization"), Kind: webtemplates.FieldText, Value: form.Specialization},
		{Name: "license_number", Label: webtemplates.T(loc, "web.profile.field_license_number"), Kind: webtemplates.FieldText, Value: form.LicenseNumber},
	}
	return webtemplates.Section(webtemplates.SectionView{ID: "profile-editor", Title: webtemplates.T(loc, "web.profile.doctor_heading")},
		webtemplates.Form(webtemplates.FormView{
			ID:          "doctor-profile-form",
			Action:      routepath.ProfileUpdate,
			Fields:      webtemplates.ApplyErrors(fields, view.Errors, loc),
			SubmitLabel: webtemplates.T(loc, "web.profile.save"),
			Error:       view.Message,
		}),
	)
}

func genderOptions(loc webtemplates.Localizer) []webtemplates.OptionView {
	options := []webtemplates.OptionView{{Value: "", Label: webtemplates.T(loc, "web.profile.gender_unset")}}
	for _, g := range genders {
		options = append(options, webtemplates.OptionView{Value: g, Label: webtemplates.T(loc, "web.profile.gender_"+g)})
	}
	return options
}
