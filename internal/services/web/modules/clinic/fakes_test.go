package clinic

import (
	"context"
	"strings"
	"sync"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

type fakeGateway struct {
	clinic      backendapi.Clinic
	clinicErr   error
	images      []backendapi.RetinalImage
	imagesErr   error
	patients    []backendapi.Patient
	patientsErr error
	stats       backendapi.ImageStats
	statsErr    error

	uploads *uploadRecorder
}

// uploadRecorder collects concurrent uploads. Inputs whose image URL
// contains reject fail with err.
type uploadRecorder struct {
	mu     sync.Mutex
	inputs []backendapi.ImageInput
	reject string
	err    error
}

var _ ClinicGateway = fakeGateway{}

func (f fakeGateway) Clinic(context.Context, apiclient.ID) (backendapi.Clinic, error) {
	return f.clinic, f.clinicErr
}

func (f fakeGateway) ImagesByClinic(context.Context, apiclient.ID) ([]backendapi.RetinalImage, error) {
	return f.images, f.imagesErr
}

func (f fakeGateway) PatientsByClinic(context.Context, apiclient.ID) ([]backendapi.Patient, error) {
	return f.patients, f.patientsErr
}

func (f fakeGateway) ImageStats(context.Context) (backendapi.ImageStats, error) {
	return f.stats, f.statsErr
}

func (f fakeGateway) UploadImage(_ context.Context, in backendapi.ImageInput) (backendapi.RetinalImage, error) {
	if f.uploads == nil {
		return backendapi.RetinalImage{ImageID: "img"}, nil
	}
	f.uploads.mu.Lock()
	defer f.uploads.mu.Unlock()
	f.uploads.inputs = append(f.uploads.inputs, in)
	if f.uploads.reject != "" && strings.Contains(in.ImageURL, f.uploads.reject) {
		return backendapi.RetinalImage{}, f.uploads.err
	}
	return backendapi.RetinalImage{ImageID: "img"}, nil
}
