package admin

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

type fakeGateway struct {
	dashboard    backendapi.Metrics
	dashboardErr error
	clinics      []backendapi.Clinic
	clinicsErr   error
	commandErr   error
	report       backendapi.Metrics
	reportErr    error

	calls *callRecorder
}

type callRecorder struct {
	verified []apiclient.ID
	rejected []apiclient.ID
	report   string
	days     int
}

var _ AdminGateway = fakeGateway{}

func (f fakeGateway) AdminDashboard(context.Context) (backendapi.Metrics, error) {
	return f.dashboard, f.dashboardErr
}

func (f fakeGateway) PendingClinics(context.Context) ([]backendapi.Clinic, error) {
	return f.clinics, f.clinicsErr
}

func (f fakeGateway) VerifyClinic(_ context.Context, clinicID apiclient.ID) error {
	if f.calls != nil {
		f.calls.verified = append(f.calls.verified, clinicID)
	}
	return f.commandErr
}

func (f fakeGateway) RejectClinic(_ context.Context, clinicID apiclient.ID) error {
	if f.calls != nil {
		f.calls.rejected = append(f.calls.rejected, clinicID)
	}
	return f.commandErr
}

func (f fakeGateway) Analytics(_ context.Context, report string, days int) (backendapi.Metrics, error) {
	if f.calls != nil {
		f.calls.report = report
		f.calls.days = days
	}
	return f.report, f.reportErr
}
