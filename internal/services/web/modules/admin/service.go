package admin

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

// AdminGateway performs the backend calls behind the admin screens.
type AdminGateway interface {
	AdminDashboard(ctx context.Context) (backendapi.Metrics, error)
	PendingClinics(ctx context.Context) ([]backendapi.Clinic, error)
	VerifyClinic(ctx context.Context, clinicID apiclient.ID) error
	RejectClinic(ctx context.Context, clinicID apiclient.ID) error
	Analytics(ctx context.Context, report string, days int) (backendapi.Metrics, error)
}

// Analytics windows offered for windowed reports.
var analyticsWindows = []int{7, 30, 90, 365}

const defaultWindow = 30

// analyticsQuery selects one analytics report.
type analyticsQuery struct {
	Report string
	Days   int
}

// parseAnalyticsQuery reads report and days, falling back to the image
// report over the default window for unknown values.
func parseAnalyticsQuery(report string, days string) analyticsQuery {
	q := analyticsQuery{Report: strings.TrimSpace(report), Days: defaultWindow}
	if !slices.Contains(backendapi.AnalyticsReports(), q.Report) {
		q.Report = backendapi.AnalyticsImages
	}
	if n, err := strconv.Atoi(strings.TrimSpace(days)); err == nil && slices.Contains(analyticsWindows, n) {
		q.Days = n
	}
	return q
}

// windowed reports whether the report honors the days window.
func (q analyticsQuery) windowed() bool {
	return q.Report == backendapi.AnalyticsImages || q.Report == backendapi.AnalyticsRevenue
}

type service struct {
	gateway AdminGateway
}

func newService(gateway AdminGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) dashboard(ctx context.Context) (backendapi.Metrics, error) {
	metrics, err := s.gateway.AdminDashboard(ctx)
	if err != nil {
		return backendapi.Metrics{}, err
	}
	return metrics, nil
}

func (s service) pendingClinics(ctx context.Context) ([]backendapi.Clinic, error) {
	clinics, err := s.gateway.PendingClinics(ctx)
	if err != nil {
		return []backendapi.Clinic{}, err
	}
	backendapi.NewestFirst(clinics, func(c backendapi.Clinic) string { return c.CreatedAt })
	return clinics, nil
}

func (s service) verifyClinic(ctx context.Context, clinicID string) error {
	id, err := requireClinicID(clinicID)
	if err != nil {
		return err
	}
	return s.gateway.VerifyClinic(ctx, id)
}

func (s service) rejectClinic(ctx context.Context, clinicID string) error {
	id, err := requireClinicID(clinicID)
	if err != nil {
		return err
	}
	return s.gateway.RejectClinic(ctx, id)
}

func (s service) analytics(ctx context.Context, q analyticsQuery) ([]backendapi.MetricRow, error) {
	days := 0
	if q.windowed() {
		days = q.Days
	}
	metrics, err := s.gateway.Analytics(ctx, q.Report, days)
	if err != nil {
		return []backendapi.MetricRow{}, err
	}
	return metrics.Flatten(), nil
}

func requireClinicID(raw string) (apiclient.ID, error) {
	id := apiclient.ID(strings.TrimSpace(raw))
	if id == "" {
		return "", apperrors.E(apperrors.KindNotFound, "clinic not found")
	}
	return id, nil
}
