package api

import (
	"encoding/json"
	"fmt"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/dmateus/plantdoc/internal/errors"
	"github.com/dmateus/plantdoc/internal/models"
)

// History fetches the persisted analysis history. The backend answers
// either with a bare array or, when paginated, with a {results:[...]}
// envelope; both normalize to the same ordered sequence. Server order is
// preserved (most recent first), never re-sorted here.
func (c *PlantClient) History() ([]models.HistoryEntry, error) {
	if c.AuthToken() == "" {
		return nil, apierrors.NewAuthError("log in to view analysis history")
	}

	req, err := c.newRequest(fhttp.MethodGet, models.PathHistory, nil)
	if err != nil {
		return nil, err
	}

	body, _, err := c.do("fetch history", req, models.PathHistory)
	if err != nil {
		return nil, err
	}

	return normalizeHistory(body)
}

func normalizeHistory(body []byte) ([]models.HistoryEntry, error) {
	parsed := gjson.ParseBytes(body)

	list := parsed
	if results := parsed.Get("results"); results.Exists() {
		list = results
	}
	if !list.IsArray() {
		return nil, apierrors.NewParseError("history response is not a list", models.PathHistory)
	}

	entries := []models.HistoryEntry{}
	var parseErr error
	list.ForEach(func(_, value gjson.Result) bool {
		var entry models.HistoryEntry
		if err := json.Unmarshal([]byte(value.Raw), &entry); err != nil {
			parseErr = apierrors.NewParseError("malformed history entry", models.PathHistory)
			return false
		}
		entries = append(entries, entry)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return entries, nil
}

// DeleteHistory removes one persisted entry. Any 2xx (the backend sends
// 204) counts as success.
func (c *PlantClient) DeleteHistory(id int) error {
	if c.AuthToken() == "" {
		return apierrors.NewAuthError("log in to manage analysis history")
	}

	path := fmt.Sprintf(models.PathHistoryDelete, id)
	req, err := c.newRequest(fhttp.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	_, _, err = c.do("delete history entry", req, path)
	return err
}
