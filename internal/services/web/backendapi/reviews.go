package backendapi

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

// PendingReviews lists analyses waiting for a doctor review.
func (c *Client) PendingReviews(ctx context.Context) ([]PendingAnalysis, error) {
	return getList[PendingAnalysis](ctx, c, "/doctor-reviews/pending", "pending_analyses")
}

// ReviewsByDoctor lists a doctor's reviews.
func (c *Client) ReviewsByDoctor(ctx context.Context, doctorID apiclient.ID) ([]Review, error) {
	if err := requireID("doctor", doctorID); err != nil {
		return nil, err
	}
	return getList[Review](ctx, c, resource("/doctor-reviews/doctor", doctorID.String()), "reviews")
}

// SubmitReview records a doctor's validation of an analysis.
func (c *Client) SubmitReview(ctx context.Context, in ReviewInput) (Review, error) {
	return postOne[Review](ctx, c, "/doctor-reviews", in)
}

// CreateReport issues a medical report.
func (c *Client) CreateReport(ctx context.Context, in ReportInput) (Report, error) {
	return postOne[Report](ctx, c, "/medical-reports", in)
}

// ReportsByPatient lists a patient's reports.
func (c *Client) ReportsByPatient(ctx context.Context, patientID apiclient.ID) ([]Report, error) {
	if err := requireID("patient", patientID); err != nil {
		return nil, err
	}
	return getList[Report](ctx, c, resource("/medical-reports/patient", patientID.String()), "reports")
}

// ReportsByDoctor lists the reports a doctor issued.
func (c *Client) ReportsByDoctor(ctx context.Context, doctorID apiclient.ID) ([]Report, error) {
	if err := requireID("doctor", doctorID); err != nil {
		return nil, err
	}
	return getList[Report](ctx, c, resource("/medical-reports/doctor", doctorID.String()), "reports")
}
