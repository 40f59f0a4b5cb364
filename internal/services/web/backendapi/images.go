package backendapi

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

// ImageStats counts images by status.
type ImageStats struct {
	TotalImages int `json:"total_images"`
	Uploaded    int `json:"uploaded"`
	Processing  int `json:"processing"`
	Analyzed    int `json:"analyzed"`
	Error       int `json:"error"`
}

// UploadImage submits an image for analysis.
func (c *Client) UploadImage(ctx context.Context, in ImageInput) (RetinalImage, error) {
	return postOne[RetinalImage](ctx, c, "/retinal-images", in)
}

// Image returns one image.
func (c *Client) Image(ctx context.Context, imageID apiclient.ID) (RetinalImage, error) {
	if err := requireID("image", imageID); err != nil {
		return RetinalImage{}, err
	}
	return getOne[RetinalImage](ctx, c, resource("/retinal-images", imageID.String()))
}

// ImagesByPatient lists a patient's images.
func (c *Client) ImagesByPatient(ctx context.Context, patientID apiclient.ID) ([]RetinalImage, error) {
	if err := requireID("patient", patientID); err != nil {
		return nil, err
	}
	return getList[RetinalImage](ctx, c, resource("/retinal-images/patient", patientID.String()), "images")
}

// ImagesByClinic lists a clinic's images.
func (c *Client) ImagesByClinic(ctx context.Context, clinicID apiclient.ID) ([]RetinalImage, error) {
	if err := requireID("clinic", clinicID); err != nil {
		return nil, err
	}
	return getList[RetinalImage](ctx, c, resource("/retinal-images/clinic", clinicID.String()), "images")
}

// ImagesPendingAnalysis lists images not yet analyzed.
func (c *Client) ImagesPendingAnalysis(ctx context.Context) ([]RetinalImage, error) {
	return getList[RetinalImage](ctx, c, "/retinal-images/pending-analysis", "images")
}

// ImageStats returns image counts by status.
func (c *Client) ImageStats(ctx context.Context) (ImageStats, error) {
	return getOne[ImageStats](ctx, c, "/retinal-images/stats")
}

// AnalysesByImage lists the AI analyses of an image.
func (c *Client) AnalysesByImage(ctx context.Context, imageID apiclient.ID) ([]Analysis, error) {
	if err := requireID("image", imageID); err != nil {
		return nil, err
	}
	return getList[Analysis](ctx, c, resource("/ai-analyses/image", imageID.String()), "analyses")
}
