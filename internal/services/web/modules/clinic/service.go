package clinic

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"golang.org/x/sync/errgroup"
)

// uploadWorkers bounds concurrent backend uploads in one bulk request.
const uploadWorkers = 4

// ClinicGateway performs the backend calls behind the clinic screens.
type ClinicGateway interface {
	Clinic(ctx context.Context, clinicID apiclient.ID) (backendapi.Clinic, error)
	ImagesByClinic(ctx context.Context, clinicID apiclient.ID) ([]backendapi.RetinalImage, error)
	PatientsByClinic(ctx context.Context, clinicID apiclient.ID) ([]backendapi.Patient, error)
	ImageStats(ctx context.Context) (backendapi.ImageStats, error)
	UploadImage(ctx context.Context, in backendapi.ImageInput) (backendapi.RetinalImage, error)
}

type bulkForm struct {
	PatientID string `form:"patient_id" validate:"required"`
	ImageType string `form:"image_type" validate:"required,oneof=fundus oct fluorescein angiography"`
	EyeSide   string `form:"eye_side" validate:"required,oneof=left right both"`
	Notes     string `form:"notes" validate:"max=500"`
}

// bulkFile is one file of a bulk upload.
type bulkFile struct {
	Name    string
	DataURL string
}

// bulkResult reports a bulk upload. Failed holds the names of files the
// backend refused; Err is the first of those failures.
type bulkResult struct {
	Total    int
	Uploaded int
	Failed   []string
	Err      error
}

type overviewData struct {
	Clinic      backendapi.Clinic
	ClinicErr   error
	Images      []backendapi.RetinalImage
	ImagesErr   error
	Patients    []backendapi.Patient
	PatientsErr error
}

func (d overviewData) errs() []error {
	return []error{d.ClinicErr, d.ImagesErr, d.PatientsErr}
}

type analyticsData struct {
	Rows      []backendapi.MetricRow
	ImagesErr error
	StatsErr  error
}

type service struct {
	gateway ClinicGateway
}

func newService(gateway ClinicGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

// requireClinicID returns the clinic the signed-in manager runs.
func requireClinicID(viewer module.Viewer) (apiclient.ID, error) {
	if strings.TrimSpace(viewer.AccountID.String()) == "" {
		return "", apperrors.EK(apperrors.KindUnauthorized, "core.error.session_required", "account id is required")
	}
	clinicID := apiclient.ID(strings.TrimSpace(viewer.ClinicID.String()))
	if clinicID == "" {
		return "", apperrors.EK(apperrors.KindNotFound, "web.clinic.error_no_clinic", "account has no clinic")
	}
	return clinicID, nil
}

// overview loads the clinic with its images and patients. Each part degrades
// on its own.
func (s service) overview(ctx context.Context, viewer module.Viewer) overviewData {
	var data overviewData
	clinicID, err := requireClinicID(viewer)
	if err != nil {
		data.ClinicErr = err
		return data
	}
	var g errgroup.Group
	g.Go(func() error {
		data.Clinic, data.ClinicErr = s.gateway.Clinic(ctx, clinicID)
		return nil
	})
	g.Go(func() error {
		data.Images, data.ImagesErr = s.gateway.ImagesByClinic(ctx, clinicID)
		backendapi.NewestFirst(data.Images, func(img backendapi.RetinalImage) string { return img.UploadTime })
		return nil
	})
	g.Go(func() error {
		data.Patients, data.PatientsErr = s.gateway.PatientsByClinic(ctx, clinicID)
		return nil
	})
	_ = g.Wait()
	return data
}

func (s service) patients(ctx context.Context, viewer module.Viewer) ([]backendapi.Patient, error) {
	clinicID, err := requireClinicID(viewer)
	if err != nil {
		return []backendapi.Patient{}, err
	}
	patients, err := s.gateway.PatientsByClinic(ctx, clinicID)
	if err != nil {
		return []backendapi.Patient{}, err
	}
	return patients, nil
}

func (s service) images(ctx context.Context, viewer module.Viewer) ([]backendapi.RetinalImage, error) {
	clinicID, err := requireClinicID(viewer)
	if err != nil {
		return []backendapi.RetinalImage{}, err
	}
	images, err := s.gateway.ImagesByClinic(ctx, clinicID)
	if err != nil {
		return []backendapi.RetinalImage{}, err
	}
	backendapi.NewestFirst(images, func(img backendapi.RetinalImage) string { return img.UploadTime })
	return images, nil
}

// bulkUpload validates form and uploads every file with the shared settings.
// Files are sent concurrently; one refusal does not stop the others.
func (s service) bulkUpload(ctx context.Context, viewer module.Viewer, form bulkForm, files []bulkFile) (bulkResult, formvalidate.Errors, error) {
	form = form.normalized()
	errs := formvalidate.Struct(form)
	if len(files) == 0 {
		if errs == nil {
			errs = formvalidate.Errors{}
		}
		errs.Add("image_files", formvalidate.Message{Key: "core.validation.required"})
	}
	if errs != nil {
		return bulkResult{}, errs, nil
	}
	clinicID, err := requireClinicID(viewer)
	if err != nil {
		return bulkResult{}, nil, err
	}
	assigned, err := s.gateway.PatientsByClinic(ctx, clinicID)
	if err != nil {
		return bulkResult{}, nil, err
	}
	if !slices.ContainsFunc(assigned, func(p backendapi.Patient) bool { return p.PatientID.String() == form.PatientID }) {
		errs := formvalidate.Errors{}
		errs.Add("patient_id", formvalidate.Message{Key: "web.clinic.upload.error_unknown_patient"})
		return bulkResult{}, errs, nil
	}

	result := bulkResult{Total: len(files)}
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(uploadWorkers)
	for _, file := range files {
		g.Go(func() error {
			_, err := s.gateway.UploadImage(ctx, backendapi.ImageInput{
				PatientID:  apiclient.ID(form.PatientID),
				ClinicID:   clinicID,
				UploadedBy: viewer.AccountID,
				ImageType:  form.ImageType,
				EyeSide:    form.EyeSide,
				ImageURL:   file.DataURL,
				Notes:      form.Notes,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, file.Name)
				if result.Err == nil {
					result.Err = err
				}
				return nil
			}
			result.Uploaded++
			return nil
		})
	}
	_ = g.Wait()
	slices.Sort(result.Failed)
	return result, nil, nil
}

// analytics combines the platform image counts with a breakdown of this
// clinic's images.
func (s service) analytics(ctx context.Context, viewer module.Viewer) (analyticsData, error) {
	clinicID, err := requireClinicID(viewer)
	if err != nil {
		return analyticsData{}, err
	}
	var (
		data   analyticsData
		images []backendapi.RetinalImage
		stats  backendapi.ImageStats
		g      errgroup.Group
	)
	g.Go(func() error {
		images, data.ImagesErr = s.gateway.ImagesByClinic(ctx, clinicID)
		return nil
	})
	g.Go(func() error {
		stats, data.StatsErr = s.gateway.ImageStats(ctx)
		return nil
	})
	_ = g.Wait()

	metrics := backendapi.Metrics{}
	if data.ImagesErr == nil {
		metrics["clinic"] = clinicBreakdown(images)
	}
	if data.StatsErr == nil {
		metrics["platform"] = map[string]any{
			"total_images": stats.TotalImages,
			"uploaded":     stats.Uploaded,
			"processing":   stats.Processing,
			"analyzed":     stats.Analyzed,
			"error":        stats.Error,
		}
	}
	data.Rows = metrics.Flatten()
	return data, nil
}

func clinicBreakdown(images []backendapi.RetinalImage) map[string]any {
	byStatus := map[string]any{}
	byType := map[string]any{}
	byEye := map[string]any{}
	patients := map[apiclient.ID]struct{}{}
	for _, img := range images {
		increment(byStatus, img.Status)
		increment(byType, img.ImageType)
		increment(byEye, img.EyeSide)
		if img.PatientID != "" {
			patients[img.PatientID] = struct{}{}
		}
	}
	return map[string]any{
		"total_images":     len(images),
		"patients_imaged":  len(patients),
		"images_by_status": byStatus,
		"images_by_type":   byType,
		"images_by_eye":    byEye,
	}
}

func increment(counts map[string]any, key string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		key = "unknown"
	}
	n, _ := counts[key].(int)
	counts[key] = n + 1
}

func (f bulkForm) normalized() bulkForm {
	f.PatientID = strings.TrimSpace(f.PatientID)
	f.ImageType = strings.ToLower(strings.TrimSpace(f.ImageType))
	f.EyeSide = strings.ToLower(strings.TrimSpace(f.EyeSide))
	f.Notes = strings.TrimSpace(f.Notes)
	return f
}
