package doctor

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

// DoctorGateway performs the backend calls behind the doctor screens.
type DoctorGateway interface {
	DoctorByAccount(ctx context.Context, accountID apiclient.ID) (backendapi.Doctor, error)
	PendingReviews(ctx context.Context) ([]backendapi.PendingAnalysis, error)
	ImagesPendingAnalysis(ctx context.Context) ([]backendapi.RetinalImage, error)
	Image(ctx context.Context, imageID apiclient.ID) (backendapi.RetinalImage, error)
	ReviewsByDoctor(ctx context.Context, doctorID apiclient.ID) ([]backendapi.Review, error)
	SubmitReview(ctx context.Context, in backendapi.ReviewInput) (backendapi.Review, error)
	SearchPatients(ctx context.Context, search backendapi.PatientSearch) ([]backendapi.Patient, error)
	ReportsByDoctor(ctx context.Context, doctorID apiclient.ID) ([]backendapi.Report, error)
	CreateReport(ctx context.Context, in backendapi.ReportInput) (backendapi.Report, error)
}

// reviewStatuses are the outcomes a doctor can record for an analysis.
var reviewStatuses = []string{backendapi.ReviewApproved, backendapi.ReviewRejected, backendapi.ReviewNeedsRevision}

// reviewForm requires a comment unless the analysis is approved.
type reviewForm struct {
	Status  string `form:"validation_status" validate:"required,oneof=approved rejected needs_revision"`
	Comment string `form:"comment" validate:"required_unless=Status approved,max=2000"`
}

type reportForm struct {
	PatientID  string `form:"patient_id" validate:"required"`
	AnalysisID string `form:"analysis_id" validate:"required"`
	ReportURL  string `form:"report_url" validate:"required,url,max=500"`
}

type dashboardData struct {
	Doctor      backendapi.Doctor
	DoctorErr   error
	Pending     []backendapi.PendingAnalysis
	PendingErr  error
	Awaiting    []backendapi.RetinalImage
	AwaitingErr error
	Reviews     []backendapi.Review
	ReviewsErr  error
}

func (d dashboardData) errs() []error {
	return []error{d.DoctorErr, d.PendingErr, d.AwaitingErr, d.ReviewsErr}
}

// reviewTarget is the analysis under review. Pending and Image are nil when
// the analysis is no longer queued or its image could not be loaded.
type reviewTarget struct {
	AnalysisID string
	Pending    *backendapi.PendingAnalysis
	Image      *backendapi.RetinalImage
}

type service struct {
	gateway DoctorGateway
}

func newService(gateway DoctorGateway) service {
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

// resolveDoctor returns the viewer's doctor profile.
func (s service) resolveDoctor(ctx context.Context, viewer module.Viewer) (backendapi.Doctor, error) {
	accountID, err := requireAccountID(viewer)
	if err != nil {
		return backendapi.Doctor{}, err
	}
	doctor, err := s.gateway.DoctorByAccount(ctx, accountID)
	if apperrors.KindOf(err) == apperrors.KindNotFound {
		return backendapi.Doctor{}, apperrors.EK(apperrors.KindNotFound, "web.doctor.error_no_profile", "doctor profile not found")
	}
	return doctor, err
}

func (s service) dashboard(ctx context.Context, viewer module.Viewer) dashboardData {
	var data dashboardData
	var g errgroup.Group
	g.Go(func() error {
		data.Doctor, data.DoctorErr = s.resolveDoctor(ctx, viewer)
		if data.DoctorErr != nil {
			return nil
		}
		data.Reviews, data.ReviewsErr = s.gateway.ReviewsByDoctor(ctx, data.Doctor.DoctorID)
		backendapi.NewestFirst(data.Reviews, func(r backendapi.Review) string { return r.ReviewedAt })
		return nil
	})
	g.Go(func() error {
		data.Pending, data.PendingErr = s.gateway.PendingReviews(ctx)
		backendapi.NewestFirst(data.Pending, func(p backendapi.PendingAnalysis) string { return p.CompletedAt })
		return nil
	})
	g.Go(func() error {
		data.Awaiting, data.AwaitingErr = s.gateway.ImagesPendingAnalysis(ctx)
		return nil
	})
	_ = g.Wait()
	return data
}

// searchPatients runs a name search. A blank name lists nothing.
func (s service) searchPatients(ctx context.Context, name string) ([]backendapi.Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []backendapi.Patient{}, nil
	}
	patients, err := s.gateway.SearchPatients(ctx, backendapi.PatientSearch{Name: name})
	if err != nil {
		return []backendapi.Patient{}, err
	}
	return patients, nil
}

func (s service) reviews(ctx context.Context, viewer module.Viewer) ([]backendapi.Review, error) {
	doctor, err := s.resolveDoctor(ctx, viewer)
	if err != nil {
		return []backendapi.Review{}, err
	}
	reviews, err := s.gateway.ReviewsByDoctor(ctx, doctor.DoctorID)
	if err != nil {
		return []backendapi.Review{}, err
	}
	backendapi.NewestFirst(reviews, func(r backendapi.Review) string { return r.ReviewedAt })
	return reviews, nil
}

// reviewTarget finds the queued analysis and its image. Lookup failures leave
// the target partial; the review can still be submitted by id.
func (s service) reviewTarget(ctx context.Context, analysisID string) (reviewTarget, error) {
	target := reviewTarget{AnalysisID: strings.TrimSpace(analysisID)}
	if target.AnalysisID == "" {
		return target, apperrors.E(apperrors.KindNotFound, "analysis not found")
	}
	pending, err := s.gateway.PendingReviews(ctx)
	if err != nil {
		return target, err
	}
	for i := range pending {
		if pending[i].AnalysisID.String() == target.AnalysisID {
			target.Pending = &pending[i]
			break
		}
	}
	if target.Pending == nil || target.Pending.ImageID == "" {
		return target, nil
	}
	image, err := s.gateway.Image(ctx, target.Pending.ImageID)
	if err != nil {
		return target, err
	}
	target.Image = &image
	return target, nil
}

func (s service) submitReview(ctx context.Context, viewer module.Viewer, analysisID string, form reviewForm) (formvalidate.Errors, error) {
	form = form.normalized()
	if errs := formvalidate.Struct(form); errs != nil {
		return errs, nil
	}
	analysisID = strings.TrimSpace(analysisID)
	if analysisID == "" {
		return nil, apperrors.E(apperrors.KindNotFound, "analysis not found")
	}
	doctor, err := s.resolveDoctor(ctx, viewer)
	if err != nil {
		return nil, err
	}
	_, err = s.gateway.SubmitReview(ctx, backendapi.ReviewInput{
		AnalysisID:       apiclient.ID(analysisID),
		DoctorID:         doctor.DoctorID,
		ValidationStatus: form.Status,
		Comment:          form.Comment,
	})
	return modulehandler.FieldErrors(err), err
}

func (s service) reports(ctx context.Context, viewer module.Viewer) ([]backendapi.Report, error) {
	doctor, err := s.resolveDoctor(ctx, viewer)
	if err != nil {
		return []backendapi.Report{}, err
	}
	reports, err := s.gateway.ReportsByDoctor(ctx, doctor.DoctorID)
	if err != nil {
		return []backendapi.Report{}, err
	}
	backendapi.NewestFirst(reports, func(r backendapi.Report) string { return r.CreatedAt })
	return reports, nil
}

func (s service) createReport(ctx context.Context, viewer module.Viewer, form reportForm) (formvalidate.Errors, error) {
	form = form.normalized()
	if errs := formvalidate.Struct(form); errs != nil {
		return errs, nil
	}
	doctor, err := s.resolveDoctor(ctx, viewer)
	if err != nil {
		return nil, err
	}
	_, err = s.gateway.CreateReport(ctx, backendapi.ReportInput{
		PatientID:  apiclient.ID(form.PatientID),
		AnalysisID: apiclient.ID(form.AnalysisID),
		DoctorID:   doctor.DoctorID,
		ReportURL:  form.ReportURL,
	})
	return modulehandler.FieldErrors(err), err
}

func (f reviewForm) normalized() reviewForm {
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	f.Comment = strings.TrimSpace(f.Comment)
	return f
}

func (f reportForm) normalized() reportForm {
	f.PatientID = strings.TrimSpace(f.PatientID)
	f.AnalysisID = strings.TrimSpace(f.AnalysisID)
	f.ReportURL = strings.TrimSpace(f.ReportURL)
	return f
}
