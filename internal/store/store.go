// Package store keeps the in-memory collection of uploaded images and
// their attached analysis outcomes for the current process lifetime.
package store

import (
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmateus/plantdoc/internal/models"
)

// ImageRecord is one uploaded image plus, once analysis completes, its
// diagnosis. Preview is a local data-URI derived from the raw bytes so
// the record can be rendered without touching the filesystem again.
type ImageRecord struct {
	ID       string
	Name     string
	MIMEType string
	Size     int
	Preview  string
	AddedAt  time.Time
	Result   *models.AnalysisResult
}

// RecordStore holds image records in insertion order, newest first,
// together with an optional "currently selected" pointer. All methods
// are safe for concurrent use.
type RecordStore struct {
	mu         sync.RWMutex
	records    []ImageRecord
	selectedID string
}

// NewRecordStore creates an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// AddImage inserts a new record at the front of the collection and
// returns its id. IDs are never reused, even after removal.
func (s *RecordStore) AddImage(name, mimeType string, data []byte) string {
	record := ImageRecord{
		ID:       uuid.NewString(),
		Name:     name,
		MIMEType: mimeType,
		Size:     len(data),
		Preview:  DataURI(mimeType, data),
		AddedAt:  time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]ImageRecord{record}, s.records...)
	return record.ID
}

// UpdateResult attaches result to the record matching id. Unknown ids
// are a no-op; the record may already have been removed by the time an
// analysis completes.
func (s *RecordStore) UpdateResult(id string, result models.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			r := result
			s.records[i].Result = &r
			return
		}
	}
}

// RemoveImage drops the record matching id and clears the selection if
// it pointed at the removed record. Unknown ids are a no-op.
func (s *RecordStore) RemoveImage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			if s.selectedID == id {
				s.selectedID = ""
			}
			return
		}
	}
}

// Select marks the record matching id as the current selection. It
// reports false, leaving the selection unchanged, if id is unknown.
func (s *RecordStore) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.selectedID = id
			return true
		}
	}
	return false
}

// ClearSelection drops the current selection.
func (s *RecordStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = ""
}

// Selected returns the currently selected record, if any. The selection
// is resolved by id on every call, so a result attached after selection
// is visible here too.
func (s *RecordStore) Selected() (ImageRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedID == "" {
		return ImageRecord{}, false
	}
	for i := range s.records {
		if s.records[i].ID == s.selectedID {
			return s.records[i], true
		}
	}
	return ImageRecord{}, false
}

// Records returns a copy of the collection, newest first.
func (s *RecordStore) Records() []ImageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ImageRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of records held.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// DataURI encodes raw image bytes as an inline data URI.
func DataURI(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
