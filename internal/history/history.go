// Package history synchronizes a local projection of the persisted
// analysis history with the backend, including optimistic deletion.
package history

import (
	"sync"

	"github.com/dmateus/plantdoc/internal/api"
	apierrors "github.com/dmateus/plantdoc/internal/errors"
	"github.com/dmateus/plantdoc/internal/models"
	"github.com/dmateus/plantdoc/internal/session"
)

// Detail is a display-ready view of one history entry, shaped like an
// uploaded record with its diagnosis attached so the detail presentation
// can be shared with fresh analyses.
type Detail struct {
	ID         int
	ImageURL   string
	CapturedAt string
	Result     models.AnalysisResult
}

// Reconciler keeps the local history projection. Fetch replaces the
// projection wholesale; Delete mutates it optimistically and rolls back
// on remote failure. Last writer wins on the projection.
type Reconciler struct {
	client  api.PlantAPI
	session *session.Manager

	mu      sync.Mutex
	entries []models.HistoryEntry
}

// NewReconciler creates a reconciler with an empty projection.
func NewReconciler(client api.PlantAPI, sess *session.Manager) *Reconciler {
	return &Reconciler{client: client, session: sess}
}

// Fetch replaces the projection with the server's history. On any
// failure the projection is left empty and the error is returned for
// display; one call per view activation, no polling or retries.
func (r *Reconciler) Fetch() error {
	if !r.session.LoggedIn() {
		r.replace(nil)
		return apierrors.NewAuthError("log in to view analysis history")
	}

	entries, err := r.client.History()
	if err != nil {
		r.replace(nil)
		return err
	}

	r.replace(entries)
	return nil
}

// Entries returns a copy of the current projection, in server order.
func (r *Reconciler) Entries() []models.HistoryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.HistoryEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Delete removes id from the projection immediately, then confirms with
// the backend. Any non-2xx or network failure restores the pre-delete
// snapshot, order included, and the error is returned for display.
func (r *Reconciler) Delete(id int) error {
	r.mu.Lock()
	snapshot := make([]models.HistoryEntry, len(r.entries))
	copy(snapshot, r.entries)

	kept := r.entries[:0:0]
	for _, e := range r.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	r.mu.Unlock()

	if err := r.client.DeleteHistory(id); err != nil {
		r.replace(snapshot)
		return err
	}
	return nil
}

// ViewDetails assembles the display view of one entry. Pure transform,
// no state is touched; the machine disease label is humanized here.
func ViewDetails(entry models.HistoryEntry) Detail {
	return Detail{
		ID:         entry.ID,
		ImageURL:   entry.ImageURL,
		CapturedAt: entry.CreatedAt,
		Result: models.AnalysisResult{
			Disease:            models.HumanizeDiseaseName(entry.DiseaseName),
			Confidence:         entry.Confidence,
			Severity:           entry.Severity,
			Cure:               entry.RecommendedTreatment,
			RecoveryTime:       entry.ExpectedRecoveryTime,
			PreventiveMeasures: entry.PreventionTips,
		},
	}
}

func (r *Reconciler) replace(entries []models.HistoryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = entries
}
