package doctor

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

// recentReviews is how many reviews the dashboard lists.
const recentReviews = 5

var genders = []string{"male", "female", "other", "prefer_not_to_say"}

type dashboardView struct {
	Data   dashboardData
	Banner string
	Page   int
	Query  string
}

type patientsView struct {
	Banner   string
	Name     string
	Patients []backendapi.Patient
	Page     int
	Query    string
}

type reviewView struct {
	Target  reviewTarget
	Banner  string
	Form    reviewForm
	Errors  formvalidate.Errors
	Message string
}

type reportsView struct {
	Banner  string
	Reports []backendapi.Report
	Page    int
	Query   string
}

func searchAction(loc webtemplates.Localizer) templ.Component {
	return webtemplates.Link(webtemplates.LinkView{
		Label:   webtemplates.T(loc, "web.doctor.patients.search_action"),
		URL:     routepath.DoctorPatients,
		Primary: true,
	})
}

func newReportAction(loc webtemplates.Localizer) templ.Component {
	return webtemplates.Link(webtemplates.LinkView{
		Label:   webtemplates.T(loc, "web.doctor.reports.create_action"),
		URL:     routepath.DoctorReportCreate,
		Primary: true,
	})
}

// reportURL opens the report form prefilled with values.
func reportURL(values url.Values) string {
	if encoded := values.Encode(); encoded != "" {
		return routepath.DoctorReportCreate + "?" + encoded
	}
	return routepath.DoctorReportCreate
}

func dashboardBody(view dashboardView, loc webtemplates.Localizer) templ.Component {
	data := view.Data
	stats := []webtemplates.StatView{
		{Label: webtemplates.T(loc, "web.doctor.dashboard.stat_pending"), Value: countLabel(len(data.Pending), data.PendingErr == nil)},
		{Label: webtemplates.T(loc, "web.doctor.dashboard.stat_awaiting"), Value: countLabel(len(data.Awaiting), data.AwaitingErr == nil)},
		{Label: webtemplates.T(loc, "web.doctor.dashboard.stat_reviews"), Value: countLabel(len(data.Reviews), data.DoctorErr == nil && data.ReviewsErr == nil), URL: routepath.DoctorReviews},
	}
	recent := data.Reviews
	if len(recent) > recentReviews {
		recent = recent[:recentReviews]
	}
	return webtemplates.Group(
		webtemplates.Banner("error", view.Banner),
		webtemplates.Stats(stats),
		webtemplates.Section(webtemplates.SectionView{
			ID:    "doctor-pending",
			Title: webtemplates.T(loc, "web.doctor.dashboard.pending_heading"),
		}, pendingTable(data.Pending, view.Page, view.Query, loc)),
		webtemplates.Section(webtemplates.SectionView{
			ID:     "doctor-recent-reviews",
			Title:  webtemplates.T(loc, "web.doctor.dashboard.recent_reviews"),
			Action: &webtemplates.LinkView{Label: webtemplates.T(loc, "web.doctor.dashboard.view_all"), URL: routepath.DoctorReviews},
		}, reviewsTable(recent, 1, nil, loc)),
	)
}

func countLabel(n int, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(n)
}

func pendingTable(pending []backendapi.PendingAnalysis, page int, query string, loc webtemplates.Localizer) templ.Component {
	return webtemplates.Table(webtemplates.TableView[backendapi.PendingAnalysis]{
		ID: "pending-table",
		Columns: []webtemplates.Column[backendapi.PendingAnalysis]{
			webtemplates.ColumnText(webtemplates.T(loc, "web.doctor.column_analysis"), func(p backendapi.PendingAnalysis) string { return p.AnalysisID.String() }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.doctor.column_image"), func(p backendapi.PendingAnalysis) string { return p.ImageID.String() }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.doctor.column_completed"), func(p backendapi.PendingAnalysis) string { return backendapi.DisplayTime(p.CompletedAt) }),
			{Header: webtemplates.T(loc, "web.doctor.column_status"), Cell: func(p backendapi.PendingAnalysis) templ.Component {
				return webtemplates.StatusBadge(p.Status, loc)
			}},
			{Header: "", Class: "table-actions", Cell: func(p backendapi.PendingAnalysis) templ.Component {
				return webtemplates.Link(webtemplates.LinkView{
					Label: webtemplates.T(loc, "web.doctor.review_action"),
					URL:   routepath.DoctorAnalysisReview(p.AnalysisID.String()),
				})
			}},
		},
		Rows:         pending,
		PageSize:     paging.Size(),
		CurrentPage:  page,
		PageURL:      func(n int) string { return routepath.WithPage(routepath.DoctorPrefix, query, n) },
		EmptyMessage: webtemplates.T(loc, "web.doctor.dashboard.pending_empty"),
	}, loc)
}

func reviewsTable(reviews []backendapi.Review, page int, pageURL func(int) string, loc webtemplates.Localizer) templ.Component {
	return webtemplates.Table(webtemplates.TableView[backendapi.Review]{
		ID: "reviews-table",
		Columns: []webtemplates.Column[backendapi.Review]{
			webtemplates.ColumnText(webtemplates.T(loc, "web.doctor.column_reviewed"), func(r backendapi.Review) string { return backendapi.DisplayTime(r.ReviewedAt) }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.doctor.column_analysis"), func(r backendapi.Review) string { return r.AnalysisID.String() }),
			{Header: webtemplates.T(loc, "web.doctor.column_status"), Cell: func(r backendapi.Review) templ.Component {
				return webtemplates.StatusBadge(r.ValidationStatus, loc)
			}},
			webtemplates.ColumnText(webtemplates.T(loc, "web.doctor.column_comment"), func(r backendapi.Review) string { return r.Comment }),
		},
		Rows:         reviews,
		PageSize:     paging.Size(),
		CurrentPage:  page,
		PageURL:      pageURL,
		EmptyMessage: webtemplates.T(loc, "web.doctor.reviews.empty"),
	}, loc)
}

func patientsBody(view patientsView, loc webtemplates.Localizer) templ.Component {
	search := webtemplates.Form(webtemplates.FormView{
		ID:     "patient-search",
		Action: routepath.DoctorPatients,
		Method: "get",
		Inline: true,
		Fields: []webtemplates.FieldView{{
			Name:        searchQueryKey,
			Label:       webtemplates.T(loc, "web.doctor.patients.field_name"),
			Kind:        webtemplates.FieldSearch,
			Value:       view.Name,
			Placeholder: webtemplates.T(loc, "web.doctor.patients.placeholder"),
		}},
		SubmitLabel: webtemplates.T(loc, "core.action.search"),
	})
	empty := webtemplates.T(loc, "web.doctor.patients.prompt")
	if view.Name != "" {
		empty = webtemplates.T(loc, "web.doctor.patients.empty", view.Name)
	}
	table := webtemplates.Table(webtemplates.TableView[backendapi.Patient]{
		ID: "patients-table",
		Columns: []webtemplates.Column[backendapi.Patient]{
			webtemplates.ColumnText(webtemplates.T(loc, "web.doctor.patients.column_name"), func(p backendapi.Patient) string { return p.PatientName }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.doctor.patients.column_dob"), func(p backendapi.Patient) string { return backendapi.DisplayTime(p.DateOfBirth) }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.doctor.patients.column_gender"), func(p backendapi.Patient) string {
				return webtemplates.EnumLabel(loc, "web.profile.gender_", p.Gender, genders)
			}),
			{Header: "", Class: "table-actions", Cell: func(p backendapi.Patient) templ.Component {
				return webtemplates.Link(webtemplates.LinkView{
					Label: webtemplates.T(loc, "web.doctor.reports.create_action"),
					URL:   reportURL(url.Values{"patient_id": {p.PatientID.String()}}),
				})
			}},
		},
		Rows:         view.Patients,
		PageSize:     paging.Size(),
		CurrentPage:  view.Page,
		PageURL:      func(n int) string { return routepath.WithPage(routepath.DoctorPatients, view.Query, n) },
		EmptyMessage: empty,
	}, loc)
	return webtemplates.Group(
		webtemplates.Banner("error", view.Banner),
		webtemplates.Section(webtemplates.SectionView{ID: "doctor-patients"}, search, table),
	)
}

func reviewBody(view reviewView, loc webtemplates.Localizer) templ.Component {
	target := view.Target
	details := []webtemplates.DefinitionItem{
		{Term: webtemplates.T(loc, "web.doctor.column_analysis"), Value: target.AnalysisID},
	}
	var preview templ.Component
	if p := target.Pending; p != nil {
		details = append(details,
			webtemplates.DefinitionItem{Term: webtemplates.T(loc, "web.doctor.column_image"), Value: p.ImageID.String()},
			webtemplates.DefinitionItem{Term: webtemplates.T(loc, "web.doctor.column_completed"), Value: backendapi.DisplayTime(p.CompletedAt)},
		)
	}
	if img := target.Image; img != nil {
		details = append(details,
			webtemplates.DefinitionItem{Term: webtemplates.T(loc, "web.images.column_type"), Value: webtemplates.EnumLabel(loc, "core.image_type.", img.ImageType, backendapi.ImageTypes)},
			webtemplates.DefinitionItem{Term: webtemplates.T(loc, "web.images.column_eye"), Value: webtemplates.EnumLabel(loc, "core.eye_side.", img.EyeSide, backendapi.EyeSides)},
		)
		preview = webtemplates.Image(img.ImageURL, webtemplates.T(loc, "web.doctor.review.image_alt", target.AnalysisID))
	}
	var notice templ.Component
	if target.Pending == nil && view.Banner == "" {
		notice = webtemplates.Banner("warning", webtemplates.T(loc, "web.doctor.review.not_queued"))
	}
	fields := []webtemplates.FieldView{
		{Name: "validation_status", Label: webtemplates.T(loc, "web.doctor.review.field_status"), Kind: webtemplates.FieldSelect, Value: view.Form.Status, Options: webtemplates.Options(loc, "core.status.", reviewStatuses), Required: true},
		{Name: "comment", Label: webtemplates.T(loc, "web.doctor.review.field_comment"), Kind: webtemplates.FieldTextarea, Value: view.Form.Comment, Hint: webtemplates.T(loc, "web.doctor.review.comment_hint")},
	}
	return webtemplates.Group(
		webtemplates.Banner("error", view.Banner),
		notice,
		webtemplates.Section(webtemplates.SectionView{ID: "review-target", Title: webtemplates.T(loc, "web.doctor.review.analysis_heading")},
			preview,
			webtemplates.Definitions(details),
		),
		webtemplates.Section(webtemplates.SectionView{ID: "review-form-section"},
			webtemplates.Form(webtemplates.FormView{
				ID:          "review-form",
				Action:      routepath.DoctorAnalysisReview(target.AnalysisID),
				Fields:      webtemplates.ApplyErrors(fields, view.Errors, loc),
				SubmitLabel: webtemplates.T(loc, "web.doctor.review.submit"),
				Error:       view.Message,
				Secondary:   &webtemplates.LinkView{Label: webtemplates.T(loc, "core.action.cancel"), URL: routepath.DoctorPrefix},
			}),
		),
	)
}

func reportsBody(view reportsView, loc webtemplates.Localizer) templ.Component {
	table := webtemplates.Table(webtemplates.TableView[backendapi.Report]{
		ID: "reports-table",
		Columns: []webtemplates.Column[backendapi.Report]{
			webtemplates.ColumnText(webtemplates.T(loc, "web.reports.column_created"), func(r backendapi.Report) string { return backendapi.DisplayTime(r.CreatedAt) }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.reports.column_patient"), func(r backendapi.Report) string { return r.PatientID.String() }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.reports.column_analysis"), func(r backendapi.Report) string { return r.AnalysisID.String() }),
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
		PageURL:      func(n int) string { return routepath.WithPage(routepath.DoctorReports, view.Query, n) },
		EmptyMessage: webtemplates.T(loc, "web.reports.empty"),
	}, loc)
	return webtemplates.Group(
		webtemplates.Banner("error", view.Banner),
		webtemplates.Section(webtemplates.SectionView{ID: "doctor-reports"}, table),
	)
}

func reportFormBody(form reportForm, errs formvalidate.Errors, message string, loc webtemplates.Localizer) templ.Component {
	fields := []webtemplates.FieldView{
		{Name: "patient_id", Label: webtemplates.T(loc, "web.doctor.report_create.field_patient"), Value: form.PatientID, Required: true},
		{Name: "analysis_id", Label: webtemplates.T(loc, "web.doctor.report_create.field_analysis"), Value: form.AnalysisID, Required: true},
		{Name: "report_url", Label: webtemplates.T(loc, "web.doctor.report_create.field_url"), Kind: webtemplates.FieldURL, Value: form.ReportURL, Placeholder: "https://", Required: true},
	}
	return webtemplates.Section(webtemplates.SectionView{ID: "doctor-report-create"},
		webtemplates.Form(webtemplates.FormView{
			ID:          "report-form",
			Action:      routepath.DoctorReportCreate,
			Fields:      webtemplates.ApplyErrors(fields, errs, loc),
			SubmitLabel: webtemplates.T(loc, "web.doctor.report_create.submit"),
			Error:       message,
			Secondary:   &webtemplates.LinkView{Label: webtemplates.T(loc, "core.action.cancel"), URL: routepath.DoctorReports},
		}),
	)
}
