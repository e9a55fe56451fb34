package api

import "github.com/dmateus/plantdoc/internal/models"

// PlantAPI is the interface the controllers program against. It exists
// so session, analysis, history and chat logic can be tested with a mock
// instead of a live backend.
type PlantAPI interface {
	Login(email, password string) (*TokenPair, error)
	Register(email, password, fullName string) (*TokenPair, error)
	Analyze(fileName, mimeType string, data []byte) (*models.AnalysisResponse, error)
	History() ([]models.HistoryEntry, error)
	DeleteHistory(id int) error
	Analytics() (*models.AnalyticsReport, error)
	Chat(history []models.ChatTurn, newMessage string) (string, error)

	SetAuthToken(token string)
	ClearAuthToken()
	AuthToken() string
	SetLanguage(code string)
	Language() string
}

// Ensure PlantClient implements PlantAPI
var _ PlantAPI = (*PlantClient)(nil)
