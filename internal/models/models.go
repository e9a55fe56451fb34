// Package models contains data types and constants for the PlantDoc API.
package models

import (
	"strings"
	"time"
)

// Severity is the server-assigned severity bucket for a diagnosis.
type Severity string

// Known severity values
const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// ValidSeverity reports whether s is one of the known severity buckets.
func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// AnalysisResult is the diagnosis attached to an uploaded image.
// Immutable once attached to a record.
type AnalysisResult struct {
	Disease            string   `json:"disease"`
	Confidence         float64  `json:"confidence"`
	Severity           Severity `json:"severity"`
	Cure               string   `json:"cure"`
	RecoveryTime       string   `json:"recoveryTime"`
	PreventiveMeasures []string `json:"preventiveMeasures"`
}

// AnalysisResponse is the full analyze-endpoint response, the result
// plus the server-side preview URL for the stored image.
type AnalysisResponse struct {
	ID      int            `json:"id"`
	Result  AnalysisResult `json:"-"`
	Preview string         `json:"preview"`
}

// HistoryEntry is one server-persisted analysis, as returned by the
// history endpoint. The disease name keeps the machine format
// ("Tomato___Late_blight"); use HumanizeDiseaseName for display.
type HistoryEntry struct {
	ID                   int      `json:"id"`
	ImageURL             string   `json:"image_url"`
	CreatedAt            string   `json:"created_at"`
	DiseaseName          string   `json:"disease_name"`
	Confidence           float64  `json:"confidence"`
	Severity             Severity `json:"severity"`
	RecommendedTreatment string   `json:"recommended_treatment"`
	ExpectedRecoveryTime string   `json:"expected_recovery_time"`
	PreventionTips       []string `json:"prevention_tips"`
}

// AnalyticsSummary holds the headline counters of the analytics view.
type AnalyticsSummary struct {
	TotalUploads  int     `json:"totalUploads"`
	Analyzed      int     `json:"analyzed"`
	SuccessRate   float64 `json:"successRate"`
	AvgConfidence float64 `json:"avgConfidence"`
}

// DistributionItem is one slice of a name/value distribution chart.
type DistributionItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// AnalyticsReport is the aggregated dashboard payload.
type AnalyticsReport struct {
	Summary              AnalyticsSummary   `json:"summary"`
	DiseaseDistribution  []DistributionItem `json:"diseaseDistribution"`
	SeverityDistribution []DistributionItem `json:"severityDistribution"`
}

// Speaker identifies who produced a conversation message.
type Speaker string

// Conversation speakers
const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// ChatMessage is one entry of the local conversation log.
type ChatMessage struct {
	Speaker   Speaker
	Text      string
	Timestamp time.Time
}

// ChatPart is a single text fragment of a wire-format chat turn.
type ChatPart struct {
	Text string `json:"text"`
}

// ChatTurn is one role-tagged turn in the wire format the chat endpoint
// expects. Role is "user" or "model".
type ChatTurn struct {
	Role  string     `json:"role"`
	Parts []ChatPart `json:"parts"`
}

// ChatRequest is the chat endpoint request body.
type ChatRequest struct {
	History    []ChatTurn `json:"history"`
	NewMessage string     `json:"newMessage"`
}

// HumanizeDiseaseName converts a machine-formatted disease label
// ("Tomato___Late_blight") into a display label ("Tomato Late blight").
func HumanizeDiseaseName(name string) string {
	name = strings.ReplaceAll(name, "___", " ")
	return strings.ReplaceAll(name, "_", " ")
}
