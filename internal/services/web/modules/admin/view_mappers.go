package admin

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

// highlight is a dashboard figure read from a dotted metric key.
type highlight struct {
	key   string
	label string
}

var highlights = []highlight{
	{key: "users.total_users", label: "web.admin.dashboard.stat_users"},
	{key: "users.total_doctors", label: "web.admin.dashboard.stat_doctors"},
	{key: "users.total_clinics", label: "web.admin.dashboard.stat_clinics"},
	{key: "usage.total_images", label: "web.admin.dashboard.stat_images"},
	{key: "usage.success_rate", label: "web.admin.dashboard.stat_success_rate"},
	{key: "revenue.total_revenue", label: "web.admin.dashboard.stat_revenue"},
}

type clinicsView struct {
	Banner  string
	Clinics []backendapi.Clinic
	Page    int
	Query   string
}

func dashboardBody(metrics backendapi.Metrics, banner string, loc webtemplates.Localizer) templ.Component {
	stats := make([]webtemplates.StatView, 0, len(highlights))
	for _, hl := range highlights {
		value := ""
		if n, ok := metrics.Number(hl.key); ok {
			value = strconv.FormatFloat(n, 'f', -1, 64)
		}
		stats = append(stats, webtemplates.StatView{Label: webtemplates.T(loc, hl.label), Value: value})
	}
	return webtemplates.Group(
		webtemplates.Banner("error", banner),
		webtemplates.Stats(stats),
		webtemplates.Section(webtemplates.SectionView{
			ID:     "admin-metrics",
			Title:  webtemplates.T(loc, "web.admin.dashboard.all_metrics"),
			Action: &webtemplates.LinkView{Label: webtemplates.T(loc, "web.admin.analytics.heading"), URL: routepath.AdminAnalytics},
		}, metricsTable(metrics.Flatten(), loc)),
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

func clinicsBody(view clinicsView, loc webtemplates.Localizer) templ.Component {
	pageField := map[string]string{routepath.PageQueryKey: strconv.Itoa(view.Page)}
	table := webtemplates.Table(webtemplates.TableView[backendapi.Clinic]{
		ID: "clinics-table",
		Columns: []webtemplates.Column[backendapi.Clinic]{
			webtemplates.ColumnText(webtemplates.T(loc, "web.admin.clinics.column_name"), func(c backendapi.Clinic) string { return c.Name }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.admin.clinics.column_address"), func(c backendapi.Clinic) string { return c.Address }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.admin.clinics.column_phone"), func(c backendapi.Clinic) string { return c.Phone }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.admin.clinics.column_registered"), func(c backendapi.Clinic) string { return backendapi.DisplayTime(c.CreatedAt) }),
			{Header: webtemplates.T(loc, "web.admin.clinics.column_status"), Cell: func(c backendapi.Clinic) templ.Component {
				return webtemplates.StatusBadge(c.VerificationStatus, loc)
			}},
			{Header: "", Class: "table-actions", Cell: func(c backendapi.Clinic) templ.Component {
				return webtemplates.Group(
					webtemplates.PostButton(webtemplates.PostButtonView{
						Action: routepath.AdminClinicVerify(c.ClinicID.String()),
						Label:  webtemplates.T(loc, "web.admin.clinics.verify"),
						Tone:   "primary",
						Hidden: pageField,
					}),
					webtemplates.PostButton(webtemplates.PostButtonView{
						Action:  routepath.AdminClinicReject(c.ClinicID.String()),
						Label:   webtemplates.T(loc, "web.admin.clinics.reject"),
						Tone:    "danger",
						Hidden:  pageField,
						Confirm: webtemplates.T(loc, "web.admin.clinics.reject_confirm", c.Name),
					}),
				)
			}},
		},
		Rows:         view.Clinics,
		PageSize:     paging.Size(),
		CurrentPage:  view.Page,
		PageURL:      func(n int) string { return routepath.WithPage(routepath.AdminClinics, view.Query, n) },
		EmptyMessage: webtemplates.T(loc, "web.admin.clinics.empty"),
	}, loc)
	return webtemplates.Group(
		webtemplates.Banner("error", view.Banner),
		webtemplates.Section(webtemplates.SectionView{ID: "admin-clinics"}, table),
	)
}

func (q analyticsQuery) values() url.Values {
	return url.Values{"report": {q.Report}, "days": {strconv.Itoa(q.Days)}}
}

func exportAction(q analyticsQuery, loc webtemplates.Localizer) templ.Component {
	return webtemplates.Link(webtemplates.LinkView{
		Label:   webtemplates.T(loc, "web.analytics.export_csv"),
		URL:     routepath.AdminAnalyticsExport + "?" + q.values().Encode(),
		Primary: true,
	})
}

func analyticsBody(q analyticsQuery, rows []backendapi.MetricRow, banner string, loc webtemplates.Localizer) templ.Component {
	windows := make([]webtemplates.OptionView, 0, len(analyticsWindows))
	for _, days := range analyticsWindows {
		windows = append(windows, webtemplates.OptionView{Value: strconv.Itoa(days), Label: webtemplates.T(loc, "web.admin.analytics.window_days", days)})
	}
	filter := webtemplates.Form(webtemplates.FormView{
		ID:     "analytics-filter",
		Action: routepath.AdminAnalytics,
		Method: "get",
		Inline: true,
		Fields: []webtemplates.FieldView{
			{Name: "report", Label: webtemplates.T(loc, "web.admin.analytics.field_report"), Kind: webtemplates.FieldSelect, Value: q.Report, Options: webtemplates.Options(loc, "web.admin.analytics.report.", backendapi.AnalyticsReports())},
			{Name: "days", Label: webtemplates.T(loc, "web.admin.analytics.field_days"), Kind: webtemplates.FieldSelect, Value: strconv.Itoa(q.Days), Options: windows},
		},
		SubmitLabel: webtemplates.T(loc, "web.admin.analytics.apply"),
	})
	return webtemplates.Group(
		webtemplates.Banner("error", banner),
		webtemplates.Section(webtemplates.SectionView{
			ID:    "admin-analytics",
			Title: webtemplates.T(loc, "web.admin.analytics.report."+q.Report),
		}, filter, metricsTable(rows, loc)),
	)
}
