package doctor

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

type fakeGateway struct {
	doctor      backendapi.Doctor
	doctorErr   error
	pending     []backendapi.PendingAnalysis
	pendingErr  error
	awaiting    []backendapi.RetinalImage
	images      map[apiclient.ID]backendapi.RetinalImage
	reviews     []backendapi.Review
	reviewErr   error
	patients    []backendapi.Patient
	searchErr   error
	reports     []backendapi.Report
	reportErr   error
	reviewsErr  error

	searched  *backendapi.PatientSearch
	submitted *backendapi.ReviewInput
	created   *backendapi.ReportInput
}

var _ DoctorGateway = fakeGateway{}

func (f fakeGateway) DoctorByAccount(context.Context, apiclient.ID) (backendapi.Doctor, error) {
	return f.doctor, f.doctorErr
}

func (f fakeGateway) PendingReviews(context.Context) ([]backendapi.PendingAnalysis, error) {
	return f.pending, f.pendingErr
}

func (f fakeGateway) ImagesPendingAnalysis(context.Context) ([]backendapi.RetinalImage, error) {
	return f.awaiting, nil
}

func (f fakeGateway) Image(_ context.Context, imageID apiclient.ID) (backendapi.RetinalImage, error) {
	img, ok := f.images[imageID]
	if !ok {
		return backendapi.RetinalImage{}, apperrors.E(apperrors.KindNotFound, "image not found")
	}
	return img, nil
}

func (f fakeGateway) ReviewsByDoctor(context.Context, apiclient.ID) ([]backendapi.Review, error) {
	return f.reviews, f.reviewsErr
}

func (f fakeGateway) SubmitReview(_ context.Context, in backendapi.ReviewInput) (backendapi.Review, error) {
	if f.submitted != nil {
		*f.submitted = in
	}
	return backendapi.Review{AnalysisID: in.AnalysisID}, f.reviewErr
}

func (f fakeGateway) SearchPatients(_ context.Context, search backendapi.PatientSearch) ([]backendapi.Patient, error) {
	if f.searched != nil {
		*f.searched = search
	}
	return f.patients, f.searchErr
}

func (f fakeGateway) ReportsByDoctor(context.Context, apiclient.ID) ([]backendapi.Report, error) {
	return f.reports, nil
}

func (f fakeGateway) CreateReport(_ context.Context, in backendapi.ReportInput) (backendapi.Report, error) {
	if f.created != nil {
		*f.created = in
	}
	return backendapi.Report{PatientID: in.PatientID}, f.reportErr
}
