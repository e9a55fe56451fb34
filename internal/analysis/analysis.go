// Package analysis drives a single upload-and-analyze operation against
// the diagnosis endpoint and records the outcome in the record store.
package analysis

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmateus/plantdoc/internal/api"
	apierrors "github.com/dmateus/plantdoc/internal/errors"
	"github.com/dmateus/plantdoc/internal/models"
	"github.com/dmateus/plantdoc/internal/session"
	"github.com/dmateus/plantdoc/internal/store"
)

// State is the workflow phase of the controller.
type State string

// Workflow states. Failed and Succeeded are terminal for one run; the
// next Analyze call starts over from Uploading.
const (
	StateIdle      State = "idle"
	StateUploading State = "uploading"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Projection is the display-ready outcome of a successful analysis. It
// carries the server-side preview URL rather than the local data URI,
// so the rendered image matches what the backend stored.
type Projection struct {
	RecordID string
	FileName string
	Preview  string
	Result   models.AnalysisResult
}

// Controller runs the analyze workflow. At most one analysis is in
// flight at a time; concurrent calls are rejected at the boundary
// rather than queued.
type Controller struct {
	client  api.PlantAPI
	session *session.Manager
	records *store.RecordStore

	mu       sync.Mutex
	state    State
	inFlight bool
}

// NewController creates an idle controller.
func NewController(client api.PlantAPI, sess *session.Manager, records *store.RecordStore) *Controller {
	return &Controller{
		client:  client,
		session: sess,
		records: records,
		state:   StateIdle,
	}
}

// State returns the current workflow phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Analyze uploads exactly one image file and attaches the diagnosis to
// a new record. Preconditions (active session, exactly one readable
// image, nothing already in flight) are checked before any network
// traffic; a precondition failure leaves the state unchanged. Errors
// never leave the store half-mutated: the record pair is only written
// on success.
func (c *Controller) Analyze(paths []string) (*Projection, error) {
	if !c.session.LoggedIn() {
		return nil, apierrors.NewAuthError("log in before analyzing an image")
	}
	if len(paths) != 1 {
		return nil, apierrors.NewInputError("exactly one image file is required")
	}

	if err := c.begin(); err != nil {
		return nil, err
	}

	projection, err := c.run(paths[0])

	c.mu.Lock()
	c.inFlight = false
	if err != nil {
		c.state = StateFailed
	} else {
		c.state = StateSucceeded
	}
	c.mu.Unlock()

	return projection, err
}

// begin transitions Idle (or a prior terminal state) to Uploading,
// rejecting a second call while one is outstanding.
func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return apierrors.NewInputError("an analysis is already in progress")
	}
	c.inFlight = true
	c.state = StateUploading
	return nil
}

func (c *Controller) run(path string) (*Projection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apierrors.NewInputError("could not read image file: " + filepath.Base(path))
	}

	fileName := filepath.Base(path)
	mimeType := detectMIMEType(fileName, data)
	if !api.IsSupportedImageType(mimeType) {
		return nil, apierrors.NewInputError("unsupported image type: " + mimeType)
	}

	resp, err := c.client.Analyze(fileName, mimeType, data)
	if err != nil {
		return nil, err
	}

	id := c.records.AddImage(fileName, mimeType, data)
	c.records.UpdateResult(id, resp.Result)

	preview := resp.Preview
	if preview == "" {
		preview = store.DataURI(mimeType, data)
	}

	return &Projection{
		RecordID: id,
		FileName: fileName,
		Preview:  preview,
		Result:   resp.Result,
	}, nil
}

// detectMIMEType resolves the content type from the file extension,
// falling back to content sniffing for unknown extensions.
func detectMIMEType(fileName string, data []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(fileName)); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}
