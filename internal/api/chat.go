package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/dmateus/plantdoc/internal/errors"
	"github.com/dmateus/plantdoc/internal/models"
)

// Chat sends one conversation turn to the stateless chat endpoint. The
// endpoint keeps no state; history carries the full prior conversation as
// role-tagged turns, and newMessage travels as its own field.
func (c *PlantClient) Chat(history []models.ChatTurn, newMessage string) (string, error) {
	payload := models.ChatRequest{
		History:    history,
		NewMessage: newMessage,
	}
	if payload.History == nil {
		payload.History = []models.ChatTurn{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := c.newRequest(fhttp.MethodPost, models.PathChat, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Language", c.Language())

	respBody, _, err := c.do("chat", req, models.PathChat)
	if err != nil {
		return "", err
	}

	response := gjson.GetBytes(respBody, "response")
	if !response.Exists() {
		return "", apierrors.NewParseError("chat response missing response field", models.PathChat)
	}

	return response.String(), nil
}
