package clinic

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/retina.care/internal/services/web/platform/flash"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func managerBase(clinicID apiclient.ID) modulehandler.Base {
	return modulehandler.NewBase(module.Dependencies{
		ResolveViewer: func(*http.Request) module.Viewer {
			return module.Viewer{SignedIn: true, Email: "mgr@example.com", Role: role.ClinicManager, AccountID: "21", ClinicID: clinicID}
		},
	})
}

func serveAs(t *testing.T, gateway ClinicGateway, base modulehandler.Base, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	m := NewWithGateway(gateway, base)
	if m.RequiredRole() != role.ClinicManager {
		t.Fatalf("RequiredRole() = %v, want clinic manager", m.RequiredRole())
	}
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	return rr
}

func serve(t *testing.T, gateway ClinicGateway, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	return serveAs(t, gateway, managerBase("c1"), req)
}

// bulkRequest posts files, each a PNG header followed by its name.
func bulkRequest(t *testing.T, fields map[string]string, files ...string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, name := range files {
		part, err := writer.CreateFormFile("image_files", name)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		if _, err := part.Write(append(append([]byte{}, pngHeader...), name...)); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, routepath.ClinicImageUpload, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q: %q", want, body)
		}
	}
}

func TestHealthyRequiresRealGateway(t *testing.T) {
	t.Parallel()

	if New().Healthy() {
		t.Fatal("New().Healthy() = true, want false")
	}
	if !NewWithGateway(fakeGateway{}, modulehandler.NewTestBase()).Healthy() {
		t.Fatal("fake gateway reported unhealthy")
	}
}

func TestDashboardShowsClinicAndImages(t *testing.T) {
	t.Parallel()

	gateway := fakeGateway{
		clinic:   backendapi.Clinic{ClinicID: "c1", Name: "Sunrise Eye Clinic", Phone: "555-0100", VerificationStatus: "verified"},
		images:   []backendapi.RetinalImage{{ImageID: "i1", PatientID: "p1", Status: "analyzed"}, {ImageID: "i2", PatientID: "p2", Status: "uploaded"}},
		patients: []backendapi.Patient{{PatientID: "p1"}, {PatientID: "p2"}, {PatientID: "p3"}},
	}
	rr := serve(t, gateway, httptest.NewRequest(http.MethodGet, routepath.ClinicPrefix, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	assertContains(t, rr.Body.String(),
		"Sunrise Eye Clinic",
		"555-0100",
		`id="recent-images-table"`,
		`<span class="stat-value">3</span>`,
		`<span class="stat-value">1</span>`,
	)
}

func TestDashboardWithoutClinicShowsBanner(t *testing.T) {
	t.Parallel()

	rr := serveAs(t, fakeGateway{}, managerBase(""), httptest.NewRequest(http.MethodGet, routepath.ClinicPrefix, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	assertContains(t, rr.Body.String(), `class="banner banner-error"`)
}

func TestPatientsPageDegradesOnFailure(t *testing.T) {
	t.Parallel()

	gateway := fakeGateway{patientsErr: apperrors.E(apperrors.KindUnavailable, "down")}
	rr := serve(t, gateway, httptest.NewRequest(http.MethodGet, routepath.ClinicPatients, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	assertContains(t, rr.Body.String(), `class="banner banner-error"`, `id="patients-table"`)
}

func TestImagesRedirectWhenSessionExpired(t *testing.T) {
	t.Parallel()

	gateway := fakeGateway{imagesErr: apperrors.E(apperrors.KindUnauthorized, "expired")}
	rr := serve(t, gateway, httptest.NewRequest(http.MethodGet, routepath.ClinicImages, nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
}

func TestBulkUploadSendsEveryFile(t *testing.T) {
	t.Parallel()

	uploads := &uploadRecorder{}
	gateway := fakeGateway{patients: []backendapi.Patient{{PatientID: "p1", PatientName: "Lan"}}, uploads: uploads}
	req := bulkRequest(t, map[string]string{"patient_id": "p1", "image_type": "fundus", "eye_side": "left"}, "a.png", "b.png", "c.png")
	rr := serve(t, gateway, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != routepath.ClinicImages {
		t.Fatalf("Location = %q, want %q", got, routepath.ClinicImages)
	}
	if len(uploads.inputs) != 3 {
		t.Fatalf("uploads = %d, want 3", len(uploads.inputs))
	}
	for _, in := range uploads.inputs {
		if in.ClinicID != "c1" || in.PatientID != "p1" || in.UploadedBy != "21" || !strings.HasPrefix(in.ImageURL, "data:image/png;base64,") {
			t.Fatalf("upload = %+v", in)
		}
	}
}

func TestBulkUploadReportsPartialFailure(t *testing.T) {
	t.Parallel()

	// The reject marker is the encoded tail of b.png.
	tail := base64.StdEncoding.EncodeToString(append(append([]byte{}, pngHeader...), "b.png"...))
	uploads := &uploadRecorder{reject: tail[len(tail)-8:], err: apperrors.E(apperrors.KindInvalidInput, "bad image")}
	gateway := fakeGateway{patients: []backendapi.Patient{{PatientID: "p1"}}, uploads: uploads}
	req := bulkRequest(t, map[string]string{"patient_id": "p1", "image_type": "oct", "eye_side": "right"}, "a.png", "b.png")
	rr := serve(t, gateway, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	var notice string
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == flashnotice.CookieName {
			notice = cookie.Value
		}
	}
	if notice == "" {
		t.Fatal("expected flash notice")
	}
}

func TestBulkUploadRequiresFilesAndAssignedPatient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		form  map[string]string
		files []string
	}{
		{name: "no files", form: map[string]string{"patient_id": "p1", "image_type": "fundus", "eye_side": "left"}},
		{name: "unknown patient", form: map[string]string{"patient_id": "p9", "image_type": "fundus", "eye_side": "left"}, files: []string{"a.png"}},
		{name: "bad eye side", form: map[string]string{"patient_id": "p1", "image_type": "fundus", "eye_side": "middle"}, files: []string{"a.png"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			uploads := &uploadRecorder{}
			gateway := fakeGateway{patients: []backendapi.Patient{{PatientID: "p1"}}, uploads: uploads}
			rr := serve(t, gateway, bulkRequest(t, tc.form, tc.files...))
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
			}
			if len(uploads.inputs) != 0 {
				t.Fatalf("uploads = %d, want 0", len(uploads.inputs))
			}
			assertContains(t, rr.Body.String(), `class="field-error"`)
		})
	}
}

func TestBulkUploadRejectsNonImageFile(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("patient_id", "p1")
	part, err := writer.CreateFormFile("image_files", "notes.txt")
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	_, _ = part.Write([]byte("plain text, not an image"))
	if err := writer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, routepath.ClinicImageUpload, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := serve(t, fakeGateway{patients: []backendapi.Patient{{PatientID: "p1"}}}, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
}

func TestAnalyticsCombinesClinicAndPlatformCounts(t *testing.T) {
	t.Parallel()

	gateway := fakeGateway{
		images: []backendapi.RetinalImage{
			{PatientID: "p1", Status: "analyzed", ImageType: "fundus", EyeSide: "left"},
			{PatientID: "p1", Status: "analyzed", ImageType: "oct", EyeSide: "right"},
			{PatientID: "p2", Status: "error", ImageType: "fundus", EyeSide: "left"},
		},
		stats: backendapi.ImageStats{TotalImages: 40, Analyzed: 30},
	}
	rr := serve(t, gateway, httptest.NewRequest(http.MethodGet, routepath.ClinicAnalytics, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	assertContains(t, rr.Body.String(),
		"clinic.images_by_status.analyzed",
		"clinic.patients_imaged",
		"platform.total_images",
		`href="/app/clinic/analytics/export.csv"`,
	)
}

func TestAnalyticsExportWritesCSV(t *testing.T) {
	t.Parallel()

	gateway := fakeGateway{
		images: []backendapi.RetinalImage{{PatientID: "p1", Status: "analyzed", ImageType: "fundus", EyeSide: "left"}},
		stats:  backendapi.ImageStats{TotalImages: 7},
	}
	m := NewWithGateway(gateway, managerBase("c1"))
	h := newHandlers(newService(gateway), m.base)
	h.now = func() time.Time { return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC) }
	rr := httptest.NewRecorder()
	h.handleAnalyticsExport(rr, httptest.NewRequest(http.MethodGet, routepath.ClinicAnalyticsExport, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="clinic-analytics-20260504.csv"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
	body := rr.Body.String()
	for _, want := range []string{"metric,value\n", "clinic.total_images,1\n", "platform.total_images,7\n"} {
		if !strings.Contains(body, want) {
			t.Fatalf("csv missing %q: %q", want, body)
		}
	}
}

func TestAnalyticsExportFailsWhenBackendDown(t *testing.T) {
	t.Parallel()

	gateway := fakeGateway{statsErr: apperrors.E(apperrors.KindUnavailable, "down")}
	rr := serve(t, gateway, httptest.NewRequest(http.MethodGet, routepath.ClinicAnalyticsExport, nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}
