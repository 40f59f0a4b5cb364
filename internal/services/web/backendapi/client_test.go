package backendapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

func newTestClient(t *testing.T, status int, body string) (*Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		requests = append(requests, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	api, err := apiclient.New(srv.URL)
	if err != nil {
		t.Fatalf("apiclient.New() error = %v", err)
	}
	return New(api), &requests
}

func TestImagesByPatientDecodesListEnvelope(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusOK, `{"message":"ok","data":{"count":2,"images":[
		{"image_id":11,"patient_id":3,"image_type":"fundus","eye_side":"left","status":"analyzed","upload_time":"2026-03-01T10:00:00"},
		{"image_id":"12","patient_id":3,"image_type":"oct","eye_side":"right","status":"uploaded"}
	]}}`)

	images, err := client.ImagesByPatient(context.Background(), "3")
	if err != nil {
		t.Fatalf("ImagesByPatient() error = %v", err)
	}
	if got := (*requests)[0].Path; got != "/api/retinal-images/patient/3" {
		t.Fatalf("path = %q, want %q", got, "/api/retinal-images/patient/3")
	}
	if len(images) != 2 {
		t.Fatalf("len(images) = %d, want 2", len(images))
	}
	if images[0].ImageID != "11" || images[1].ImageID != "12" {
		t.Fatalf("image ids = %q, %q", images[0].ImageID, images[1].ImageID)
	}
	if images[0].Status != ImageAnalyzed {
		t.Fatalf("status = %q, want %q", images[0].Status, ImageAnalyzed)
	}
}

func TestMissingIDFailsWithoutRequest(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusOK, `{}`)
	_, err := client.PatientByAccount(context.Background(), "")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("KindOf(err) = %v, want %v", apperrors.KindOf(err), apperrors.KindNotFound)
	}
	if len(*requests) != 0 {
		t.Fatalf("requests = %d, want 0", len(*requests))
	}
}

func TestSearchPatientsSendsFilters(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusOK, `{"data":{"count":1,"patients":[{"patient_id":5,"patient_name":"Lan"}]}}`)
	patients, err := client.SearchPatients(context.Background(), PatientSearch{Name: "Lan", RiskLevel: "high"})
	if err != nil {
		t.Fatalf("SearchPatients() error = %v", err)
	}
	if got := (*requests)[0].Query; got != "name=Lan&risk_level=high" {
		t.Fatalf("query = %q, want %q", got, "name=Lan&risk_level=high")
	}
	if len(patients) != 1 || patients[0].PatientName != "Lan" {
		t.Fatalf("patients = %+v", patients)
	}
}

func TestSubmitReviewPostsNumericIDs(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusCreated, `{"message":"Review created","data":{"review_id":9,"validation_status":"rejected"}}`)
	review, err := client.SubmitReview(context.Background(), ReviewInput{
		AnalysisID:       "4",
		DoctorID:         "2",
		ValidationStatus: ReviewRejected,
		Comment:          "blurred",
	})
	if err != nil {
		t.Fatalf("SubmitReview() error = %v", err)
	}
	req := (*requests)[0]
	if req.Method != http.MethodPost || req.Path != "/api/doctor-reviews" {
		t.Fatalf("request = %s %s", req.Method, req.Path)
	}
	if req.Body["analysis_id"] != float64(4) || req.Body["doctor_id"] != float64(2) {
		t.Fatalf("body = %v", req.Body)
	}
	if review.ReviewID != "9" {
		t.Fatalf("ReviewID = %q, want %q", review.ReviewID, "9")
	}
}

func TestStartConversationSendsActiveStatus(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusCreated, `{"data":{"conversation_id":1}}`)
	if _, err := client.StartConversation(context.Background(), ConversationInput{PatientID: "3", DoctorID: "8"}); err != nil {
		t.Fatalf("StartConversation() error = %v", err)
	}
	body := (*requests)[0].Body
	if body["status"] != "active" || body["patient_id"] != float64(3) || body["doctor_id"] != float64(8) {
		t.Fatalf("body = %v", body)
	}
}

func TestClinicCommandsUsePut(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusOK, `{"message":"Clinic verified"}`)
	if err := client.VerifyClinic(context.Background(), "6"); err != nil {
		t.Fatalf("VerifyClinic() error = %v", err)
	}
	if err := client.RejectClinic(context.Background(), "7"); err != nil {
		t.Fatalf("RejectClinic() error = %v", err)
	}
	want := []string{"/api/clinics/6/verify", "/api/clinics/7/reject"}
	for i, req := range *requests {
		if req.Method != http.MethodPut || req.Path != want[i] {
			t.Fatalf("request %d = %s %s, want PUT %s", i, req.Method, req.Path, want[i])
		}
	}
}

func TestAnalyticsWindowedReportsSendDays(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusOK, `{"data":{"period_days":30,"total_images":12,"type_distribution":{"fundus":10,"oct":2}}}`)
	metrics, err := client.Analytics(context.Background(), AnalyticsImages, 30)
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if _, err := client.Analytics(context.Background(), AnalyticsErrorRates, 30); err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if got := (*requests)[0].Query; got != "days=30" {
		t.Fatalf("images query = %q, want %q", got, "days=30")
	}
	if got := (*requests)[1].Query; got != "" {
		t.Fatalf("error-rates query = %q, want empty", got)
	}
	if got, ok := metrics.Number("type_distribution.fundus"); !ok || got != 10 {
		t.Fatalf("Number(type_distribution.fundus) = (%v, %v), want (10, true)", got, ok)
	}
}

func TestBackendErrorIsReturned(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.StatusNotImplemented, `{"message":"Not implemented"}`)
	err := client.ForgotPassword(context.Background(), "a@example.com")
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *apiclient.Error", err)
	}
	if apiErr.Status != http.StatusNotImplemented {
		t.Fatalf("Status = %d, want %d", apiErr.Status, http.StatusNotImplemented)
	}
}

func TestNilClientIsUnreachable(t *testing.T) {
	t.Parallel()

	var client *Client
	_, err := client.Me(context.Background())
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) || apiErr.Message != apiclient.MessageUnreachable {
		t.Fatalf("err = %v, want unreachable", err)
	}
}
