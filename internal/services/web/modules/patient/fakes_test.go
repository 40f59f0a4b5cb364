package patient

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

type fakeGateway struct {
	patient     backendapi.Patient
	patientErr  error
	createErr   error
	images      []backendapi.RetinalImage
	imagesErr   error
	analyses    []backendapi.Analysis
	analysesErr error
	uploadErr   error
	reports     []backendapi.Report
	reportsErr  error
	unread      []backendapi.Notification
	sub         *backendapi.Subscription
	subErr      error
	credits     backendapi.Credits
	creditsErr  error
	packages    []backendapi.ServicePackage
	subscribe   error

	created    *backendapi.PatientInput
	uploaded   *backendapi.ImageInput
	subscribed *backendapi.SubscriptionInput
}

var _ PatientGateway = fakeGateway{}

func (f fakeGateway) PatientByAccount(context.Context, apiclient.ID) (backendapi.Patient, error) {
	return f.patient, f.patientErr
}

func (f fakeGateway) CreatePatient(_ context.Context, in backendapi.PatientInput) (backendapi.Patient, error) {
	if f.created != nil {
		*f.created = in
	}
	if f.createErr != nil {
		return backendapi.Patient{}, f.createErr
	}
	return backendapi.Patient{PatientID: "p-new", AccountID: in.AccountID, PatientName: in.PatientName}, nil
}

func (f fakeGateway) ImagesByPatient(context.Context, apiclient.ID) ([]backendapi.RetinalImage, error) {
	return f.images, f.imagesErr
}

func (f fakeGateway) Image(_ context.Context, imageID apiclient.ID) (backendapi.RetinalImage, error) {
	for _, img := range f.images {
		if img.ImageID == imageID {
			return img, nil
		}
	}
	return backendapi.RetinalImage{}, apperrors.E(apperrors.KindNotFound, "image not found")
}

func (f fakeGateway) AnalysesByImage(context.Context, apiclient.ID) ([]backendapi.Analysis, error) {
	return f.analyses, f.analysesErr
}

func (f fakeGateway) UploadImage(_ context.Context, in backendapi.ImageInput) (backendapi.RetinalImage, error) {
	if f.uploaded != nil {
		*f.uploaded = in
	}
	if f.uploadErr != nil {
		return backendapi.RetinalImage{}, f.uploadErr
	}
	return backendapi.RetinalImage{ImageID: "img-new", PatientID: in.PatientID}, nil
}

func (f fakeGateway) ReportsByPatient(context.Context, apiclient.ID) ([]backendapi.Report, error) {
	return f.reports, f.reportsErr
}

func (f fakeGateway) UnreadNotifications(context.Context, apiclient.ID) ([]backendapi.Notification, error) {
	return f.unread, nil
}

func (f fakeGateway) ActiveSubscription(context.Context, apiclient.ID) (backendapi.Subscription, error) {
	if f.subErr != nil {
		return backendapi.Subscription{}, f.subErr
	}
	if f.sub == nil {
		return backendapi.Subscription{}, apperrors.E(apperrors.KindNotFound, "no subscription")
	}
	return *f.sub, nil
}

func (f fakeGateway) Credits(context.Context, apiclient.ID) (backendapi.Credits, error) {
	return f.credits, f.creditsErr
}

func (f fakeGateway) ServicePackages(context.Context) ([]backendapi.ServicePackage, error) {
	return f.packages, nil
}

func (f fakeGateway) Subscribe(_ context.Context, in backendapi.SubscriptionInput) (backendapi.Subscription, error) {
	if f.subscribed != nil {
		*f.subscribed = in
	}
	return backendapi.Subscription{AccountID: in.AccountID, PackageID: in.PackageID}, f.subscribe
}
