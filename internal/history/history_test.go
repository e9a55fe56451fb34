package history

import (
	"errors"
	"testing"

	"github.com/dmateus/plantdoc/internal/api"
	"github.com/dmateus/plantdoc/internal/config"
	apierrors "github.com/dmateus/plantdoc/internal/errors"
	"github.com/dmateus/plantdoc/internal/models"
	"github.com/dmateus/plantdoc/internal/session"
)

type memoryCredentialStore struct {
	creds *config.Credentials
}

func (m *memoryCredentialStore) Load() (*config.Credentials, error) { return m.creds, nil }
func (m *memoryCredentialStore) Save(c *config.Credentials) error   { m.creds = c; return nil }
func (m *memoryCredentialStore) Clear() error                       { m.creds = nil; return nil }

func loggedInSession(t *testing.T, client api.PlantAPI) *session.Manager {
	t.Helper()
	m := session.NewManager(client, &memoryCredentialStore{creds: &config.Credentials{
		AccessToken: "tok",
		Email:       "farmer@example.com",
		DisplayName: "farmer",
	}})
	if !m.Restore() {
		t.Fatal("failed to restore test session")
	}
	return m
}

func threeEntries() []models.HistoryEntry {
	return []models.HistoryEntry{
		{ID: 1, DiseaseName: "Tomato___Late_blight"},
		{ID: 2, DiseaseName: "Potato___Early_blight"},
		{ID: 3, DiseaseName: "Healthy"},
	}
}

func TestReconciler_Fetch(t *testing.T) {
	client := &api.MockPlantClient{HistoryVal: threeEntries()}
	r := NewReconciler(client, loggedInSession(t, client))

	if err := r.Fetch(); err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}

	entries := r.Entries()
	if len(entries) != 3 {
		t.Fatalf("Entries() length = %d, want 3", len(entries))
	}
	// Server order is preserved
	for i, want := range []int{1, 2, 3} {
		if entries[i].ID != want {
			t.Errorf("entries[%d].ID = %d, want %d", i, entries[i].ID, want)
		}
	}
	if client.HistoryCalls != 1 {
		t.Errorf("HistoryCalls = %d, want 1", client.HistoryCalls)
	}
}

func TestReconciler_Fetch_FailureEmptiesProjection(t *testing.T) {
	client := &api.MockPlantClient{HistoryVal: threeEntries()}
	r := NewReconciler(client, loggedInSession(t, client))

	if err := r.Fetch(); err != nil {
		t.Fatal(err)
	}

	// A later failing fetch wipes the stale projection rather than
	// showing outdated entries
	client.HistoryErr = apierrors.NewNetworkError("fetch history", "/history", errors.New("refused"))
	if err := r.Fetch(); !errors.Is(err, apierrors.ErrUnreachable) {
		t.Errorf("Fetch() error = %v, want unreachable", err)
	}
	if got := r.Entries(); len(got) != 0 {
		t.Errorf("Entries() after failed fetch = %v, want empty", got)
	}
}

func TestReconciler_Fetch_RequiresSession(t *testing.T) {
	client := &api.MockPlantClient{HistoryVal: threeEntries()}
	r := NewReconciler(client, session.NewManager(client, &memoryCredentialStore{}))

	if err := r.Fetch(); !errors.Is(err, apierrors.ErrAuthRequired) {
		t.Errorf("Fetch() error = %v, want auth required", err)
	}
	if client.HistoryCalls != 0 {
		t.Error("no network call should be issued without a session")
	}
}

func TestReconciler_Delete_Optimistic(t *testing.T) {
	client := &api.MockPlantClient{HistoryVal: threeEntries()}
	r := NewReconciler(client, loggedInSession(t, client))
	if err := r.Fetch(); err != nil {
		t.Fatal(err)
	}

	if err := r.Delete(2); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	entries := r.Entries()
	if len(entries) != 2 || entries[0].ID != 1 || entries[1].ID != 3 {
		t.Errorf("Entries() after delete = %v, want [1 3]", entries)
	}
	if client.LastDeletedID != 2 {
		t.Errorf("LastDeletedID = %d, want 2", client.LastDeletedID)
	}
}

func TestReconciler_Delete_RollbackOnFailure(t *testing.T) {
	client := &api.MockPlantClient{
		HistoryVal: threeEntries(),
		DeleteErr:  apierrors.NewAPIError(500, "/history/2/", "the service had an internal error"),
	}
	r := NewReconciler(client, loggedInSession(t, client))
	if err := r.Fetch(); err != nil {
		t.Fatal(err)
	}

	if err := r.Delete(2); err == nil {
		t.Fatal("Delete() should surface the remote failure")
	}

	// The pre-delete snapshot is restored, order preserved
	entries := r.Entries()
	if len(entries) != 3 {
		t.Fatalf("Entries() after rollback = %v, want all three", entries)
	}
	for i, want := range []int{1, 2, 3} {
		if entries[i].ID != want {
			t.Errorf("entries[%d].ID = %d, want %d", i, entries[i].ID, want)
		}
	}
}

func TestReconciler_Delete_UnknownIDStillConfirms(t *testing.T) {
	client := &api.MockPlantClient{HistoryVal: threeEntries()}
	r := NewReconciler(client, loggedInSession(t, client))
	if err := r.Fetch(); err != nil {
		t.Fatal(err)
	}

	if err := r.Delete(99); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if got := r.Entries(); len(got) != 3 {
		t.Errorf("Entries() = %v, want unchanged", got)
	}
	if client.DeleteCalls != 1 {
		t.Error("the remote delete should still be attempted")
	}
}

func TestViewDetails(t *testing.T) {
	entry := models.HistoryEntry{
		ID:                   7,
		ImageURL:             "http://127.0.0.1:8000/media/uploads/7.jpg",
		CreatedAt:            "2026-08-01T10:30:00Z",
		DiseaseName:          "Tomato___Late_blight",
		Confidence:           0.89,
		Severity:             models.SeverityHigh,
		RecommendedTreatment: "Apply fungicide.",
		ExpectedRecoveryTime: "2 weeks",
		PreventionTips:       []string{"Rotate crops"},
	}

	detail := ViewDetails(entry)

	if detail.Result.Disease != "Tomato Late blight" {
		t.Errorf("Disease = %q, want humanized label", detail.Result.Disease)
	}
	if detail.Result.Cure != "Apply fungicide." {
		t.Errorf("Cure = %q", detail.Result.Cure)
	}
	if detail.Result.RecoveryTime != "2 weeks" {
		t.Errorf("RecoveryTime = %q", detail.Result.RecoveryTime)
	}
	if detail.ImageURL != entry.ImageURL || detail.ID != 7 {
		t.Errorf("detail = %+v", detail)
	}
	// Pure transform: the source entry keeps its machine label
	if entry.DiseaseName != "Tomato___Late_blight" {
		t.Error("ViewDetails must not mutate its input")
	}
}

func TestHumanizeDiseaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tomato___Late_blight", "Tomato Late blight"},
		{"Healthy", "Healthy"},
		{"Corn_(maize)___Common_rust", "Corn (maize) Common rust"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := models.HumanizeDiseaseName(tt.in); got != tt.want {
			t.Errorf("HumanizeDiseaseName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
