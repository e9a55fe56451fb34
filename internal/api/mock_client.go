package api

import (
	"sync"

	"github.com/dmateus/plantdoc/internal/models"
)

// MockPlantClient is a mock implementation of PlantAPI for testing.
type MockPlantClient struct {
	mu sync.Mutex

	// Mock return values
	LoginPair    *TokenPair
	LoginErr     error
	RegisterPair *TokenPair
	RegisterErr  error
	AnalyzeVal   *models.AnalysisResponse
	AnalyzeErr   error
	HistoryVal   []models.HistoryEntry
	HistoryErr   error
	DeleteErr    error
	AnalyticsVal *models.AnalyticsReport
	AnalyticsErr error
	ChatVal      string
	ChatErr      error

	// Call recorders
	LoginCalls      int
	RegisterCalls   int
	AnalyzeCalls    int
	HistoryCalls    int
	DeleteCalls     int
	AnalyticsCalls  int
	ChatCalls       int
	LastDeletedID   int
	LastChatHistory []models.ChatTurn
	LastChatMessage string
	LastFileName    string

	token    string
	language string
}

// Ensure MockPlantClient implements PlantAPI
var _ PlantAPI = (*MockPlantClient)(nil)

func (m *MockPlantClient) Login(email, password string) (*TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls++
	return m.LoginPair, m.LoginErr
}

func (m *MockPlantClient) Register(email, password, fullName string) (*TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls++
	return m.RegisterPair, m.RegisterErr
}

func (m *MockPlantClient) Analyze(fileName, mimeType string, data []byte) (*models.AnalysisResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalyzeCalls++
	m.LastFileName = fileName
	return m.AnalyzeVal, m.AnalyzeErr
}

func (m *MockPlantClient) History() ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HistoryCalls++
	return m.HistoryVal, m.HistoryErr
}

func (m *MockPlantClient) DeleteHistory(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	m.LastDeletedID = id
	return m.DeleteErr
}

func (m *MockPlantClient) Analytics() (*models.AnalyticsReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnalyticsCalls++
	return m.AnalyticsVal, m.AnalyticsErr
}

func (m *MockPlantClient) Chat(history []models.ChatTurn, newMessage string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatCalls++
	m.LastChatHistory = append([]models.ChatTurn(nil), history...)
	m.LastChatMessage = newMessage
	return m.ChatVal, m.ChatErr
}

func (m *MockPlantClient) SetAuthToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func (m *MockPlantClient) ClearAuthToken() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
}

func (m *MockPlantClient) AuthToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MockPlantClient) SetLanguage(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.language = code
}

func (m *MockPlantClient) Language() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.language == "" {
		return models.DefaultLanguage.Code
	}
	return m.language
}
