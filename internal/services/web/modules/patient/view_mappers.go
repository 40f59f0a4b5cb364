package patient

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

// recentImages is how many images the dashboard lists.
const recentImages = 5

type imagesView struct {
	Banner       string
	Images       []backendapi.RetinalImage
	Page         int
	Query        string
	Detail       *imageDetail
	DetailBanner string
}

type reportsView struct {
	Banner  string
	Reports []backendapi.Report
	Page    int
	Query   string
}

func uploadAction(loc webtemplates.Localizer) templ.Component {
	return webtemplates.Link(webtemplates.LinkView{
		Label:   webtemplates.T(loc, "web.patient.upload_action"),
		URL:     routepath.PatientImageUpload,
		Primary: true,
	})
}

func dashboardBody(data dashboardData, banner string, loc webtemplates.Localizer) templ.Component {
	stats := []webtemplates.StatView{
		{Label: webtemplates.T(loc, "web.patient.dashboard.stat_images"), Value: countLabel(len(data.Images), data.ImagesErr == nil && data.ResolvedErr == nil), URL: routepath.PatientImages},
		{Label: webtemplates.T(loc, "web.patient.dashboard.stat_reports"), Value: countLabel(len(data.Reports), data.ReportsErr == nil && data.ResolvedErr == nil), URL: routepath.PatientReports},
		{Label: webtemplates.T(loc, "web.patient.dashboard.stat_unread"), Value: countLabel(data.Unread, data.UnreadErr == nil), URL: routepath.NotificationsPrefix},
		{Label: webtemplates.T(loc, "web.patient.dashboard.stat_credits"), Value: countLabel(data.Credits.RemainingCredits, data.CreditsErr == nil), URL: routepath.PatientSubscription},
	}
	recent := data.Images
	if len(recent) > recentImages {
		recent = recent[:recentImages]
	}
	return webtemplates.Group(
		webtemplates.Banner("error", banner),
		webtemplates.Stats(stats),
		webtemplates.Section(webtemplates.SectionView{
			ID:     "patient-recent-images",
			Title:  webtemplates.T(loc, "web.patient.dashboard.recent_images"),
			Action: &webtemplates.LinkView{Label: webtemplates.T(loc, "web.patient.dashboard.view_all"), URL: routepath.PatientImages},
		}, imagesTable("recent-images-table", recent, 1, "", loc)),
	)
}

// countLabel returns "" for a failed fetch so the stat shows a placeholder.
func countLabel(n int, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(n)
}

func imagesTable(id string, images []backendapi.RetinalImage, page int, query string, loc webtemplates.Localizer) templ.Component {
	return webtemplates.Table(webtemplates.TableView[backendapi.RetinalImage]{
		ID: id,
		Columns: []webtemplates.Column[backendapi.RetinalImage]{
			{Header: webtemplates.T(loc, "web.images.column_preview"), Class: "table-thumb", Cell: func(img backendapi.RetinalImage) templ.Component {
				return webtemplates.Image(img.ImageURL, webtemplates.T(loc, "web.images.preview_alt", eyeLabel(img.EyeSide, loc)))
			}},
			webtemplates.ColumnText(webtemplates.T(loc, "web.images.column_type"), func(img backendapi.RetinalImage) string { return typeLabel(img.ImageType, loc) }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.images.column_eye"), func(img backendapi.RetinalImage) string { return eyeLabel(img.EyeSide, loc) }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.images.column_uploaded"), func(img backendapi.RetinalImage) string { return backendapi.DisplayTime(img.UploadTime) }),
			{Header: webtemplates.T(loc, "web.images.column_status"), Cell: func(img backendapi.RetinalImage) templ.Component {
				return webtemplates.StatusBadge(img.Status, loc)
			}},
			{Header: "", Class: "table-actions", Cell: func(img backendapi.RetinalImage) templ.Component {
				return webtemplates.Link(webtemplates.LinkView{
					Label: webtemplates.T(loc, "web.images.view"),
					URL:   routepath.WithPage(routepath.PatientImage(img.ImageID.String()), "", page),
				})
			}},
		},
		Rows:         images,
		PageSize:     paging.Size(),
		CurrentPage:  page,
		PageURL:      func(n int) string { return routepath.WithPage(routepath.PatientImages, query, n) },
		EmptyMessage: webtemplates.T(loc, "web.patient.images.empty"),
	}, loc)
}

func imagesBody(view imagesView, loc webtemplates.Localizer) templ.Component {
	parts := []templ.Component{
		webtemplates.Banner("error", view.Banner),
		webtemplates.Section(webtemplates.SectionView{ID: "patient-images"}, imagesTable("images-table", view.Images, view.Page, view.Query, loc)),
	}
	if view.Detail != nil {
		parts = append(parts, webtemplates.Modal(webtemplates.ModalView{
			ID:         "image-detail",
			Title:      webtemplates.T(loc, "web.images.detail_title", typeLabel(view.Detail.Image.ImageType, loc), eyeLabel(view.Detail.Image.EyeSide, loc)),
			Body:       imageDetailBody(*view.Detail, view.DetailBanner, loc),
			CloseLabel: webtemplates.T(loc, "core.action.close"),
			OnCloseURL: routepath.WithPage(routepath.PatientImages, "", view.Page),
			Open:       true,
		}))
	}
	return webtemplates.Group(parts...)
}

func imageDetailBody(detail imageDetail, banner string, loc webtemplates.Localizer) templ.Component {
	img := detail.Image
	return webtemplates.Group(
		webtemplates.Image(img.ImageURL, webtemplates.T(loc, "web.images.preview_alt", eyeLabel(img.EyeSide, loc))),
		webtemplates.Definitions([]webtemplates.DefinitionItem{
			{Term: webtemplates.T(loc, "web.images.column_type"), Value: typeLabel(img.ImageType, loc)},
			{Term: webtemplates.T(loc, "web.images.column_eye"), Value: eyeLabel(img.EyeSide, loc)},
			{Term: webtemplates.T(loc, "web.images.column_uploaded"), Value: backendapi.DisplayTime(img.UploadTime)},
			{Term: webtemplates.T(loc, "web.images.column_status"), Value: webtemplates.StatusLabel(img.Status, loc)},
		}),
		webtemplates.Banner("error", banner),
		analysesTable(detail.Analyses, loc),
	)
}

func analysesTable(analyses []backendapi.Analysis, loc webtemplates.Localizer) templ.Component {
	return webtemplates.Table(webtemplates.TableView[backendapi.Analysis]{
		ID: "analyses-table",
		Columns: []webtemplates.Column[backendapi.Analysis]{
			webtemplates.ColumnText(webtemplates.T(loc, "web.analyses.column_time"), func(a backendapi.Analysis) string { return backendapi.DisplayTime(a.AnalysisTime) }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.analyses.column_model"), func(a backendapi.Analysis) string { return a.AIModelVersionID.String() }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.analyses.column_duration"), func(a backendapi.Analysis) string { return secondsLabel(a.ProcessingTime, loc) }),
			{Header: webtemplates.T(loc, "web.analyses.column_status"), Cell: func(a backendapi.Analysis) templ.Component {
				return webtemplates.StatusBadge(a.Status, loc)
			}},
		},
		Rows:         analyses,
		PageSize:     len(analyses),
		CurrentPage:  1,
		EmptyMessage: webtemplates.T(loc, "web.analyses.empty"),
	}, loc)
}

func secondsLabel(d backendapi.Decimal, loc webtemplates.Localizer) string {
	if d.String() == "" {
		return ""
	}
	return webtemplates.T(loc, "web.analyses.seconds", d.Float())
}

func uploadBody(form uploadForm, errs formvalidate.Errors, message string, loc webtemplates.Localizer) templ.Component {
	imageURL := form.ImageURL
	if isDataURL(imageURL) {
		imageURL = ""
	}
	fields := []webtemplates.FieldView{
		{Name: "image_type", Label: webtemplates.T(loc, "web.images.field_type"), Kind: webtemplates.FieldSelect, Value: form.ImageType, Options: webtemplates.Options(loc, "core.image_type.", backendapi.ImageTypes), Required: true},
		{Name: "eye_side", Label: webtemplates.T(loc, "web.images.field_eye"), Kind: webtemplates.FieldSelect, Value: form.EyeSide, Options: webtemplates.Options(loc, "core.eye_side.", backendapi.EyeSides), Required: true},
		{Name: "image_file", Label: webtemplates.T(loc, "web.images.field_file"), Kind: webtemplates.FieldFile, Accept: "image/*", Hint: webtemplates.T(loc, "web.images.file_hint")},
		{Name: "image_url", Label: webtemplates.T(loc, "web.images.field_url"), Kind: webtemplates.FieldURL, Value: imageURL, Placeholder: "https://", Hint: webtemplates.T(loc, "web.images.url_hint")},
		{Name: "notes", Label: webtemplates.T(loc, "web.images.field_notes"), Kind: webtemplates.FieldTextarea, Value: form.Notes},
	}
	return webtemplates.Section(webtemplates.SectionView{ID: "patient-upload"},
		webtemplates.Form(webtemplates.FormView{
			ID:          "upload-form",
			Action:      routepath.PatientImageUpload,
			Fields:      webtemplates.ApplyErrors(fields, errs, loc),
			SubmitLabel: webtemplates.T(loc, "web.images.upload_submit"),
			Error:       message,
			Multipart:   true,
			Secondary:   &webtemplates.LinkView{Label: webtemplates.T(loc, "core.action.cancel"), URL: routepath.PatientImages},
		}),
	)
}

func reportsBody(view reportsView, loc webtemplates.Localizer) templ.Component {
	table := webtemplates.Table(webtemplates.TableView[backendapi.Report]{
		ID: "reports-table",
		Columns: []webtemplates.Column[backendapi.Report]{
			webtemplates.ColumnText(webtemplates.T(loc, "web.reports.column_created"), func(r backendapi.Report) string { return backendapi.DisplayTime(r.CreatedAt) }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.reports.column_analysis"), func(r backendapi.Report) string { return r.AnalysisID.String() }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.reports.column_doctor"), func(r backendapi.Report) string { return r.DoctorID.String() }),
			{Header: "", Class: "table-actions", Cell: func(r backendapi.Report) templ.Component {
				if r.ReportURL == "" {
					return nil
				}
				return webtemplates.Link(webtemplates.LinkView{Label: webtemplates.T(loc, "web.reports.open"), URL: r.ReportURL})
			}},
		},
		Rows:         view.Reports,
		PageSize:     paging.Size(),
		CurrentPage:  view.Page,
		PageURL:      func(n int) string { return routepath.WithPage(routepath.PatientReports, view.Query, n) },
		EmptyMessage: webtemplates.T(loc, "web.reports.empty"),
	}, loc)
	return webtemplates.Group(
		webtemplates.Banner("error", view.Banner),
		webtemplates.Section(webtemplates.SectionView{ID: "patient-reports"}, table),
	)
}

func subscriptionBody(data subscriptionData, banner string, loc webtemplates.Localizer) templ.Component {
	current := []webtemplates.DefinitionItem{
		{Term: webtemplates.T(loc, "web.patient.subscription.remaining"), Value: countLabel(data.Credits.RemainingCredits, data.CreditsErr == nil)},
	}
	if sub := data.Subscription; sub != nil {
		current = append(current,
			webtemplates.DefinitionItem{Term: webtemplates.T(loc, "web.patient.subscription.package"), Value: packageName(sub.PackageID.String(), data.Packages)},
			webtemplates.DefinitionItem{Term: webtemplates.T(loc, "web.patient.subscription.period"), Value: backendapi.DisplayTime(sub.StartDate) + " - " + backendapi.DisplayTime(sub.EndDate)},
		)
	}
	var status templ.Component
	if data.Subscription == nil && data.SubscriptionErr == nil {
		status = webtemplates.Banner("info", webtemplates.T(loc, "web.patient.subscription.none"))
	}
	packages := webtemplates.Table(webtemplates.TableView[backendapi.ServicePackage]{
		ID: "packages-table",
		Columns: []webtemplates.Column[backendapi.ServicePackage]{
			webtemplates.ColumnText(webtemplates.T(loc, "web.packages.column_name"), func(p backendapi.ServicePackage) string { return p.Name }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.packages.column_price"), func(p backendapi.ServicePackage) string { return p.Price.String() }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.packages.column_images"), func(p backendapi.ServicePackage) string { return strconv.Itoa(p.ImageLimit) }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.packages.column_days"), func(p backendapi.ServicePackage) string { return strconv.Itoa(p.DurationDays) }),
			{Header: "", Class: "table-actions", Cell: func(p backendapi.ServicePackage) templ.Component {
				return webtemplates.PostButton(webtemplates.PostButtonView{
					Action:  routepath.PatientSubscriptionCreate,
					Label:   webtemplates.T(loc, "web.packages.purchase"),
					Tone:    "primary",
					Hidden:  map[string]string{"package_id": p.PackageID.String()},
					Confirm: webtemplates.T(loc, "web.packages.purchase_confirm", p.Name),
				})
			}},
		},
		Rows:         data.Packages,
		PageSize:     len(data.Packages),
		CurrentPage:  1,
		EmptyMessage: webtemplates.T(loc, "web.packages.empty"),
	}, loc)
	return webtemplates.Group(
		webtemplates.Banner("error", banner),
		status,
		webtemplates.Section(webtemplates.SectionView{ID: "patient-credits", Title: webtemplates.T(loc, "web.patient.subscription.current")},
			webtemplates.Definitions(current)),
		webtemplates.Section(webtemplates.SectionView{ID: "patient-packages", Title: webtemplates.T(loc, "web.patient.subscription.packages")}, packages),
	)
}

func packageName(packageID string, packages []backendapi.ServicePackage) string {
	for _, p := range packages {
		if p.PackageID.String() == packageID {
			return p.Name
		}
	}
	return packageID
}

func typeLabel(value string, loc webtemplates.Localizer) string {
	return webtemplates.EnumLabel(loc, "core.image_type.", value, backendapi.ImageTypes)
}

func eyeLabel(value string, loc webtemplates.Localizer) string {
	return webtemplates.EnumLabel(loc, "core.eye_side.", value, backendapi.EyeSides)
}

func isDataURL(value string) bool {
	return strings.HasPrefix(strings.ToLower(value), "data:")
}
