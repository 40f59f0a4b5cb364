package backendapi

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

// Clinic returns one clinic.
func (c *Client) Clinic(ctx context.Context, clinicID apiclient.ID) (Clinic, error) {
	if err := requireID("clinic", clinicID); err != nil {
		return Clinic{}, err
	}
	return getOne[Clinic](ctx, c, resource("/clinics", clinicID.String()))
}

// PendingClinics lists clinics awaiting verification.
func (c *Client) PendingClinics(ctx context.Context) ([]Clinic, error) {
	return getList[Clinic](ctx, c, "/clinics/pending", "clinics")
}

// VerifyClinic approves a clinic.
func (c *Client) VerifyClinic(ctx context.Context, clinicID apiclient.ID) error {
	return c.reviewClinic(ctx, clinicID, "verify")
}

// RejectClinic rejects a clinic.
func (c *Client) RejectClinic(ctx context.Context, clinicID apiclient.ID) error {
	return c.reviewClinic(ctx, clinicID, "reject")
}

func (c *Client) reviewClinic(ctx context.Context, clinicID apiclient.ID, action string) error {
	if err := requireID("clinic", clinicID); err != nil {
		return err
	}
	_, err := c.put(ctx, resource("/clinics", clinicID.String(), action), nil)
	return err
}

// Analytics report names under /admin/analytics.
const (
	AnalyticsImages           = "images"
	AnalyticsRiskDistribution = "risk-distribution"
	AnalyticsRevenue          = "revenue"
	AnalyticsErrorRates       = "error-rates"
)

// AnalyticsReports lists the report names in display order.
func AnalyticsReports() []string {
	return []string{AnalyticsImages, AnalyticsRiskDistribution, AnalyticsRevenue, AnalyticsErrorRates}
}

// AdminDashboard returns the platform-wide statistics.
func (c *Client) AdminDashboard(ctx context.Context) (Metrics, error) {
	return getOne[Metrics](ctx, c, "/admin/dashboard")
}

// Analytics returns one analytics report. days is ignored by reports that
// are not windowed.
func (c *Client) Analytics(ctx context.Context, report string, days int) (Metrics, error) {
	var opts []apiclient.RequestOption
	if days > 0 && (report == AnalyticsImages || report == AnalyticsRevenue) {
		opts = append(opts, query("days", itoa(days)))
	}
	return getOne[Metrics](ctx, c, resource("/admin/analytics", report), opts...)
}
