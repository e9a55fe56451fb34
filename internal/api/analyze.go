package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"

	apierrors "github.com/dmateus/plantdoc/internal/errors"
	"github.com/dmateus/plantdoc/internal/models"
)

// IsSupportedImageType reports whether mimeType is accepted for analysis.
func IsSupportedImageType(mimeType string) bool {
	for _, supported := range models.SupportedImageTypes() {
		if strings.HasPrefix(mimeType, supported) {
			return true
		}
	}
	return false
}

// Analyze uploads one image for diagnosis. Exactly one multipart request
// is issued, carrying the bearer credential and the active locale tag.
func (c *PlantClient) Analyze(fileName, mimeType string, data []byte) (*models.AnalysisResponse, error) {
	if c.AuthToken() == "" {
		return nil, apierrors.NewAuthError("log in before analyzing an image")
	}
	if len(data) == 0 {
		return nil, apierrors.NewInputError("image is empty")
	}
	if int64(len(data)) > models.MaxImageSize {
		return nil, apierrors.NewInputError(fmt.Sprintf("image exceeds maximum size of %d bytes", models.MaxImageSize))
	}
	if !IsSupportedImageType(mimeType) {
		return nil, apierrors.NewInputError(fmt.Sprintf("unsupported image type: %s", mimeType))
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}
	_ = writer.Close()

	req, err := c.newRequest(fhttp.MethodPost, models.PathAnalyze, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Language", c.Language())

	respBody, _, err := c.do("analyze", req, models.PathAnalyze)
	if err != nil {
		return nil, err
	}

	return parseAnalysisResponse(respBody)
}

func parseAnalysisResponse(body []byte) (*models.AnalysisResponse, error) {
	var raw struct {
		ID                 int             `json:"id"`
		Disease            string          `json:"disease"`
		Confidence         float64         `json:"confidence"`
		Severity           models.Severity `json:"severity"`
		Cure               string          `json:"cure"`
		RecoveryTime       string          `json:"recoveryTime"`
		PreventiveMeasures []string        `json:"preventiveMeasures"`
		Preview            string          `json:"preview"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apierrors.NewParseError("malformed analysis response", models.PathAnalyze)
	}
	if raw.Disease == "" {
		return nil, apierrors.NewParseError("analysis response missing disease", models.PathAnalyze)
	}

	return &models.AnalysisResponse{
		ID: raw.ID,
		Result: models.AnalysisResult{
			Disease:            raw.Disease,
			Confidence:         raw.Confidence,
			Severity:           raw.Severity,
			Cure:               raw.Cure,
			RecoveryTime:       raw.RecoveryTime,
			PreventiveMeasures: raw.PreventiveMeasures,
		},
		Preview: raw.Preview,
	}, nil
}
