package api

import (
	"encoding/json"

	fhttp "github.com/bogdanfinn/fhttp"

	apierrors "github.com/dmateus/plantdoc/internal/errors"
	"github.com/dmateus/plantdoc/internal/models"
)

// Analytics fetches the aggregated dashboard for the logged-in user.
func (c *PlantClient) Analytics() (*models.AnalyticsReport, error) {
	if c.AuthToken() == "" {
		return nil, apierrors.NewAuthError("log in to view analytics")
	}

	req, err := c.newRequest(fhttp.MethodGet, models.PathAnalytics, nil)
	if err != nil {
		return nil, err
	}

	body, _, err := c.do("fetch analytics", req, models.PathAnalytics)
	if err != nil {
		return nil, err
	}

	var report models.AnalyticsReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, apierrors.NewParseError("malformed analytics response", models.PathAnalytics)
	}

	return &report, nil
}
