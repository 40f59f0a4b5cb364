package clinic

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

// recentImages is how many images the dashboard lists.
const recentImages = 5

func uploadAction(loc webtemplates.Localizer) templ.Component {
	return webtemplates.Link(webtemplates.LinkView{
		Label:   webtemplates.T(loc, "web.clinic.upload_action"),
		URL:     routepath.ClinicImageUpload,
		Primary: true,
	})
}

func exportAction(loc webtemplates.Localizer) templ.Component {
	return webtemplates.Link(webtemplates.LinkView{
		Label:   webtemplates.T(loc, "web.analytics.export_csv"),
		URL:     routepath.ClinicAnalyticsExport,
		Primary: true,
	})
}

func countLabel(n int, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(n)
}

func dashboardBody(data overviewData, banner string, loc webtemplates.Localizer) templ.Component {
	analyzed := 0
	for _, img := range data.Images {
		if img.Status == backendapi.ImageAnalyzed {
			analyzed++
		}
	}
	stats := []webtemplates.StatView{
		{Label: webtemplates.T(loc, "web.clinic.dashboard.stat_images"), Value: countLabel(len(data.Images), data.ImagesErr == nil && data.ClinicErr == nil), URL: routepath.ClinicImages},
		{Label: webtemplates.T(loc, "web.clinic.dashboard.stat_analyzed"), Value: countLabel(analyzed, data.ImagesErr == nil && data.ClinicErr == nil)},
		{Label: webtemplates.T(loc, "web.clinic.dashboard.stat_patients"), Value: countLabel(len(data.Patients), data.PatientsErr == nil && data.ClinicErr == nil), URL: routepath.ClinicPatients},
	}
	recent := data.Images
	if len(recent) > recentImages {
		recent = recent[:recentImages]
	}
	return webtemplates.Group(
		webtemplates.Banner("error", banner),
		clinicCard(data.Clinic, loc),
		webtemplates.Stats(stats),
		webtemplates.Section(webtemplates.SectionView{
			ID:     "clinic-recent-images",
			Title:  webtemplates.T(loc, "web.clinic.dashboard.recent_images"),
			Action: &webtemplates.LinkView{Label: webtemplates.T(loc, "web.clinic.dashboard.view_all"), URL: routepath.ClinicImages},
		}, imagesTable("recent-images-table", recent, 1, nil, loc)),
	)
}

func clinicCard(clinic backendapi.Clinic, loc webtemplates.Localizer) templ.Component {
	var logo templ.Component
	if clinic.LogoURL != "" {
		logo = webtemplates.Image(clinic.LogoURL, webtemplates.T(loc, "web.clinic.logo_alt", clinic.Name))
	}
	return webtemplates.Section(webtemplates.SectionView{ID: "clinic-info", Title: clinic.Name},
		logo,
		webtemplates.Definitions([]webtemplates.DefinitionItem{
			{Term: webtemplates.T(loc, "web.clinic.field_address"), Value: clinic.Address},
			{Term: webtemplates.T(loc, "web.clinic.field_phone"), Value: clinic.Phone},
			{Term: webtemplates.T(loc, "web.clinic.field_status"), Value: webtemplates.StatusLabel(clinic.VerificationStatus, loc)},
			{Term: webtemplates.T(loc, "web.clinic.field_created"), Value: backendapi.DisplayTime(clinic.CreatedAt)},
		}),
	)
}

func patientsTable(patients []backendapi.Patient, page int, pageURL func(int) string, loc webtemplates.Localizer) templ.Component {
	return webtemplates.Table(webtemplates.TableView[backendapi.Patient]{
		ID: "patients-table",
		Columns: []webtemplates.Column[backendapi.Patient]{
			webtemplates.ColumnText(webtemplates.T(loc, "web.clinic.patients.column_name"), func(p backendapi.Patient) string { return p.PatientName }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.clinic.patients.column_dob"), func(p backendapi.Patient) string { return backendapi.DisplayTime(p.DateOfBirth) }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.clinic.patients.column_id"), func(p backendapi.Patient) string { return p.PatientID.String() }),
		},
		Rows:         patients,
		PageSize:     paging.Size(),
		CurrentPage:  page,
		PageURL:      pageURL,
		EmptyMessage: webtemplates.T(loc, "web.clinic.patients.empty"),
	}, loc)
}

func imagesTable(id string, images []backendapi.RetinalImage, page int, pageURL func(int) string, loc webtemplates.Localizer) templ.Component {
	return webtemplates.Table(webtemplates.TableView[backendapi.RetinalImage]{
		ID: id,
		Columns: []webtemplates.Column[backendapi.RetinalImage]{
			{Header: webtemplates.T(loc, "web.images.column_preview"), Class: "table-thumb", Cell: func(img backendapi.RetinalImage) templ.Component {
				return webtemplates.Image(img.ImageURL, webtemplates.T(loc, "web.images.preview_alt", img.EyeSide))
			}},
			webtemplates.ColumnText(webtemplates.T(loc, "web.images.column_patient"), func(img backendapi.RetinalImage) string { return img.PatientID.String() }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.images.column_type"), func(img backendapi.RetinalImage) string {
				return webtemplates.EnumLabel(loc, "core.image_type.", img.ImageType, backendapi.ImageTypes)
			}),
			webtemplates.ColumnText(webtemplates.T(loc, "web.images.column_eye"), func(img backendapi.RetinalImage) string {
				return webtemplates.EnumLabel(loc, "core.eye_side.", img.EyeSide, backendapi.EyeSides)
			}),
			webtemplates.ColumnText(webtemplates.T(loc, "web.images.column_uploaded"), func(img backendapi.RetinalImage) string { return backendapi.DisplayTime(img.UploadTime) }),
			{Header: webtemplates.T(loc, "web.images.column_status"), Cell: func(img backendapi.RetinalImage) templ.Component {
				return webtemplates.StatusBadge(img.Status, loc)
			}},
		},
		Rows:         images,
		PageSize:     paging.Size(),
		CurrentPage:  page,
		PageURL:      pageURL,
		EmptyMessage: webtemplates.T(loc, "web.clinic.images.empty"),
	}, loc)
}

func uploadBody(form bulkForm, patients []backendapi.Patient, errs formvalidate.Errors, message string, loc webtemplates.Localizer) templ.Component {
	options := make([]webtemplates.OptionView, 0, len(patients)+1)
	options = append(options, webtemplates.OptionView{Label: webtemplates.T(loc, "web.clinic.upload.choose_patient")})
	for _, p := range patients {
		options = append(options, webtemplates.OptionView{Value: p.PatientID.String(), Label: p.PatientName})
	}
	fields := []webtemplates.FieldView{
		{Name: "patient_id", Label: webtemplates.T(loc, "web.clinic.upload.field_patient"), Kind: webtemplates.FieldSelect, Value: form.PatientID, Options: options, Required: true},
		{Name: "image_type", Label: webtemplates.T(loc, "web.images.field_type"), Kind: webtemplates.FieldSelect, Value: form.ImageType, Options: webtemplates.Options(loc, "core.image_type.", backendapi.ImageTypes), Required: true},
		{Name: "eye_side", Label: webtemplates.T(loc, "web.images.field_eye"), Kind: webtemplates.FieldSelect, Value: form.EyeSide, Options: webtemplates.Options(loc, "core.eye_side.", backendapi.EyeSides), Required: true},
		{Name: "image_files", Label: webtemplates.T(loc, "web.clinic.upload.field_files"), Kind: webtemplates.FieldFile, Accept: "image/*", Multiple: true, Required: true, Hint: webtemplates.T(loc, "web.clinic.upload.files_hint")},
		{Name: "notes", Label: webtemplates.T(loc, "web.images.field_notes"), Kind: webtemplates.FieldTextarea, Value: form.Notes},
	}
	return webtemplates.Section(webtemplates.SectionView{ID: "clinic-upload"},
		webtemplates.Form(webtemplates.FormView{
			ID:          "bulk-upload-form",
			Action:      routepath.ClinicImageUpload,
			Fields:      webtemplates.ApplyErrors(fields, errs, loc),
			SubmitLabel: webtemplates.T(loc, "web.clinic.upload.submit"),
			Error:       message,
			Multipart:   true,
			Secondary:   &webtemplates.LinkView{Label: webtemplates.T(loc, "core.action.cancel"), URL: routepath.ClinicImages},
		}),
	)
}

func analyticsBody(rows []backendapi.MetricRow, banner string, loc webtemplates.Localizer) templ.Component {
	return webtemplates.Group(
		webtemplates.Banner("error", banner),
		webtemplates.Section(webtemplates.SectionView{ID: "clinic-analytics"}, metricsTable(rows, loc)),
	)
}

func metricsTable(rows []backendapi.MetricRow, loc webtemplates.Localizer) templ.Component {
	return webtemplates.Table(webtemplates.TableView[backendapi.MetricRow]{
		ID: "metrics-table",
		Columns: []webtemplates.Column[backendapi.MetricRow]{
			webtemplates.ColumnText(webtemplates.T(loc, "web.analytics.column_metric"), func(m backendapi.MetricRow) string { return m.Key }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.analytics.column_value"), func(m backendapi.MetricRow) string { return m.Value }),
		},
		Rows:         rows,
		PageSize:     len(rows),
		CurrentPage:  1,
		EmptyMessage: webtemplates.T(loc, "web.analytics.empty"),
	}, loc)
}
