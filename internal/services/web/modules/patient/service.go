package patient

import (
	"context"
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"golang.org/x/sync/errgroup"
)

// PatientGateway performs the backend calls behind the patient screens.
type PatientGateway interface {
	PatientByAccount(ctx context.Context, accountID apiclient.ID) (backendapi.Patient, error)
	CreatePatient(ctx context.Context, in backendapi.PatientInput) (backendapi.Patient, error)
	ImagesByPatient(ctx context.Context, patientID apiclient.ID) ([]backendapi.RetinalImage, error)
	Image(ctx context.Context, imageID apiclient.ID) (backendapi.RetinalImage, error)
	AnalysesByImage(ctx context.Context, imageID apiclient.ID) ([]backendapi.Analysis, error)
	UploadImage(ctx context.Context, in backendapi.ImageInput) (backendapi.RetinalImage, error)
	ReportsByPatient(ctx context.Context, patientID apiclient.ID) ([]backendapi.Report, error)
	UnreadNotifications(ctx context.Context, accountID apiclient.ID) ([]backendapi.Notification, error)
	ActiveSubscription(ctx context.Context, accountID apiclient.ID) (backendapi.Subscription, error)
	Credits(ctx context.Context, accountID apiclient.ID) (backendapi.Credits, error)
	ServicePackages(ctx context.Context) ([]backendapi.ServicePackage, error)
	Subscribe(ctx context.Context, in backendapi.SubscriptionInput) (backendapi.Subscription, error)
}

type uploadForm struct {
	ImageType string `form:"image_type" validate:"required,oneof=fundus oct fluorescein angiography"`
	EyeSide   string `form:"eye_side" validate:"required,oneof=left right both"`
	ImageURL  string `form:"image_url" validate:"required,imagesrc"`
	Notes     string `form:"notes" validate:"max=500"`
}

type dashboardData struct {
	Patient     backendapi.Patient
	Images      []backendapi.RetinalImage
	Reports     []backendapi.Report
	Unread      int
	Credits     backendapi.Credits
	ImagesErr   error
	ReportsErr  error
	UnreadErr   error
	CreditsErr  error
	ResolvedErr error
}

// errs returns every fetch failure of the dashboard.
func (d dashboardData) errs() []error {
	return []error{d.ResolvedErr, d.ImagesErr, d.ReportsErr, d.UnreadErr, d.CreditsErr}
}

type imageDetail struct {
	Image       backendapi.RetinalImage
	Analyses    []backendapi.Analysis
	AnalysesErr error
}

type subscriptionData struct {
	Subscription    *backendapi.Subscription
	SubscriptionErr error
	Credits         backendapi.Credits
	CreditsErr      error
	Packages        []backendapi.ServicePackage
	PackagesErr     error
}

type service struct {
	gateway PatientGateway
}

func newService(gateway PatientGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func requireAccountID(viewer module.Viewer) (apiclient.ID, error) {
	accountID := apiclient.ID(strings.TrimSpace(viewer.AccountID.String()))
	if accountID == "" {
		return "", apperrors.EK(apperrors.KindUnauthorized, "core.error.session_required", "account id is required")
	}
	return accountID, nil
}

// resolvePatient returns the viewer's patient profile, creating a minimal
// one the first time a patient account opens a patient screen.
func (s service) resolvePatient(ctx context.Context, viewer module.Viewer) (backendapi.Patient, error) {
	accountID, err := requireAccountID(viewer)
	if err != nil {
		return backendapi.Patient{}, err
	}
	patient, err := s.gateway.PatientByAccount(ctx, accountID)
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		return patient, err
	}
	return s.gateway.CreatePatient(ctx, backendapi.PatientInput{
		AccountID:   accountID,
		PatientName: defaultPatientName(viewer.Email),
	})
}

// defaultPatientName derives a placeholder name from the sign-in email.
func defaultPatientName(email string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	if len(name) < 2 {
		return "Patient"
	}
	return name
}

func (s service) dashboard(ctx context.Context, viewer module.Viewer) dashboardData {
	var data dashboardData
	accountID, err := requireAccountID(viewer)
	if err != nil {
		data.ResolvedErr = err
		return data
	}
	data.Patient, data.ResolvedErr = s.resolvePatient(ctx, viewer)

	var g errgroup.Group
	if data.ResolvedErr == nil {
		g.Go(func() error {
			data.Images, data.ImagesErr = s.gateway.ImagesByPatient(ctx, data.Patient.PatientID)
			backendapi.NewestFirst(data.Images, func(img backendapi.RetinalImage) string { return img.UploadTime })
			return nil
		})
		g.Go(func() error {
			data.Reports, data.ReportsErr = s.gateway.ReportsByPatient(ctx, data.Patient.PatientID)
			return nil
		})
	}
	g.Go(func() error {
		unread, err := s.gateway.UnreadNotifications(ctx, accountID)
		data.Unread, data.UnreadErr = len(unread), err
		return nil
	})
	g.Go(func() error {
		data.Credits, data.CreditsErr = s.gateway.Credits(ctx, accountID)
		return nil
	})
	_ = g.Wait()
	return data
}

func (s service) images(ctx context.Context, viewer module.Viewer) ([]backendapi.RetinalImage, error) {
	patient, err := s.resolvePatient(ctx, viewer)
	if err != nil {
		return []backendapi.RetinalImage{}, err
	}
	images, err := s.gateway.ImagesByPatient(ctx, patient.PatientID)
	if err != nil {
		return []backendapi.RetinalImage{}, err
	}
	backendapi.NewestFirst(images, func(img backendapi.RetinalImage) string { return img.UploadTime })
	return images, nil
}

// imageDetail loads one of the viewer's images with its analyses. Images of
// other patients are reported as not found.
func (s service) imageDetail(ctx context.Context, viewer module.Viewer, imageID string) (imageDetail, error) {
	imageID = strings.TrimSpace(imageID)
	if imageID == "" {
		return imageDetail{}, apperrors.E(apperrors.KindNotFound, "image not found")
	}
	patient, err := s.resolvePatient(ctx, viewer)
	if err != nil {
		return imageDetail{}, err
	}
	image, err := s.gateway.Image(ctx, apiclient.ID(imageID))
	if err != nil {
		return imageDetail{}, err
	}
	if image.PatientID != patient.PatientID {
		return imageDetail{}, apperrors.E(apperrors.KindNotFound, "image not found")
	}
	detail := imageDetail{Image: image}
	detail.Analyses, detail.AnalysesErr = s.gateway.AnalysesByImage(ctx, image.ImageID)
	backendapi.NewestFirst(detail.Analyses, func(a backendapi.Analysis) string { return a.AnalysisTime })
	return detail, nil
}

func (s service) upload(ctx context.Context, viewer module.Viewer, form uploadForm) (backendapi.RetinalImage, formvalidate.Errors, error) {
	form = form.normalized()
	if errs := formvalidate.Struct(form); errs != nil {
		return backendapi.RetinalImage{}, errs, nil
	}
	patient, err := s.resolvePatient(ctx, viewer)
	if err != nil {
		return backendapi.RetinalImage{}, nil, err
	}
	image, err := s.gateway.UploadImage(ctx, backendapi.ImageInput{
		PatientID:  patient.PatientID,
		ClinicID:   viewer.ClinicID,
		UploadedBy: viewer.AccountID,
		ImageType:  form.ImageType,
		EyeSide:    form.EyeSide,
		ImageURL:   form.ImageURL,
		Notes:      form.Notes,
	})
	return image, modulehandler.FieldErrors(err), err
}

func (s service) reports(ctx context.Context, viewer module.Viewer) ([]backendapi.Report, error) {
	patient, err := s.resolvePatient(ctx, viewer)
	if err != nil {
		return []backendapi.Report{}, err
	}
	reports, err := s.gateway.ReportsByPatient(ctx, patient.PatientID)
	if err != nil {
		return []backendapi.Report{}, err
	}
	backendapi.NewestFirst(reports, func(r backendapi.Report) string { return r.CreatedAt })
	return reports, nil
}

func (s service) subscription(ctx context.Context, viewer module.Viewer) (subscriptionData, error) {
	accountID, err := requireAccountID(viewer)
	if err != nil {
		return subscriptionData{}, err
	}
	var data subscriptionData
	var g errgroup.Group
	g.Go(func() error {
		sub, err := s.gateway.ActiveSubscription(ctx, accountID)
		switch {
		case apperrors.KindOf(err) == apperrors.KindNotFound:
			// no active subscription
		case err != nil:
			data.SubscriptionErr = err
		default:
			data.Subscription = &sub
		}
		return nil
	})
	g.Go(func() error {
		data.Credits, data.CreditsErr = s.gateway.Credits(ctx, accountID)
		return nil
	})
	g.Go(func() error {
		data.Packages, data.PackagesErr = s.gateway.ServicePackages(ctx)
		return nil
	})
	_ = g.Wait()
	return data, nil
}

// purchase subscribes the viewer to a package, crediting its image limit.
func (s service) purchase(ctx context.Context, viewer module.Viewer, packageID string) error {
	accountID, err := requireAccountID(viewer)
	if err != nil {
		return err
	}
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "web.patient.subscription.error_no_package", "package is required")
	}
	packages, err := s.gateway.ServicePackages(ctx)
	if err != nil {
		return err
	}
	for _, pkg := range packages {
		if pkg.PackageID.String() != packageID {
			continue
		}
		_, err := s.gateway.Subscribe(ctx, backendapi.SubscriptionInput{
			AccountID:        accountID,
			PackageID:        pkg.PackageID,
			RemainingCredits: pkg.ImageLimit,
		})
		return err
	}
	return apperrors.EK(apperrors.KindNotFound, "web.patient.subscription.error_no_package", "package not found")
}

func (f uploadForm) normalized() uploadForm {
	f.ImageType = strings.ToLower(strings.TrimSpace(f.ImageType))
	f.EyeSide = strings.ToLower(strings.TrimSpace(f.EyeSide))
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	f.Notes = strings.TrimSpace(f.Notes)
	return f
}
