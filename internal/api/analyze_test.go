package api

import (
	"errors"
	"strings"
	"testing"

	apierrors "github.com/dmateus/plantdoc/internal/errors"
	"github.com/dmateus/plantdoc/internal/models"
)

const analysisBody = `{
	"id": 42,
	"disease": "Tomato Late blight",
	"confidence": 0.89,
	"severity": "Medium",
	"cure": "Remove affected leaves and apply a copper-based fungicide.",
	"recoveryTime": "2-3 weeks",
	"preventiveMeasures": ["Rotate crops", "Water at soil level"],
	"preview": "http://127.0.0.1:8000/media/uploads/42.jpg"
}`

func TestPlantClient_Analyze(t *testing.T) {
	stub := okStub(analysisBody)
	client, err := NewClient(WithHTTPClient(stub), WithLanguage("es"))
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	client.SetAuthToken("tok")

	resp, err := client.Analyze("leaf.jpg", "image/jpeg", []byte("fake-jpeg-bytes"))
	if err != nil {
		t.Fatalf("Analyze() failed: %v", err)
	}

	if resp.Result.Disease != "Tomato Late blight" {
		t.Errorf("Disease = %q", resp.Result.Disease)
	}
	if resp.Result.Severity != models.SeverityMedium {
		t.Errorf("Severity = %q, want Medium", resp.Result.Severity)
	}
	if resp.Result.Confidence != 0.89 {
		t.Errorf("Confidence = %v", resp.Result.Confidence)
	}
	if len(resp.Result.PreventiveMeasures) != 2 {
		t.Errorf("PreventiveMeasures = %v", resp.Result.PreventiveMeasures)
	}
	if resp.Preview != "http://127.0.0.1:8000/media/uploads/42.jpg" {
		t.Errorf("Preview = %q", resp.Preview)
	}

	req := stub.lastRequest()
	if got := req.Header.Get("Language"); got != "es" {
		t.Errorf("Language header = %q, want es", got)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer tok" {
		t.Errorf("Authorization header = %q", got)
	}
	if ct := req.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
		t.Errorf("Content-Type = %q, want multipart", ct)
	}
	// The multipart body must carry the file under the "image" field
	if body := stub.lastBody(); !strings.Contains(body, `name="image"; filename="leaf.jpg"`) {
		t.Error("multipart body missing image part")
	}
}

func TestPlantClient_Analyze_Preconditions(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		mimeType string
		data     []byte
		wantErr  error
	}{
		{"no credential", "", "image/jpeg", []byte("x"), apierrors.ErrAuthRequired},
		{"empty data", "tok", "image/jpeg", nil, apierrors.ErrBadInput},
		{"unsupported type", "tok", "application/pdf", []byte("x"), apierrors.ErrBadInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := okStub(analysisBody)
			client, err := NewClient(WithHTTPClient(stub))
			if err != nil {
				t.Fatalf("NewClient() failed: %v", err)
			}
			if tt.token != "" {
				client.SetAuthToken(tt.token)
			}

			_, err = client.Analyze("leaf.jpg", tt.mimeType, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.wantErr)
			}
			if stub.calls != 0 {
				t.Error("no request should be issued when a precondition fails")
			}
		})
	}
}

func TestPlantClient_Analyze_OversizeImage(t *testing.T) {
	client, err := NewClient(WithHTTPClient(okStub(analysisBody)))
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	client.SetAuthToken("tok")

	big := make([]byte, models.MaxImageSize+1)
	_, err = client.Analyze("huge.png", "image/png", big)
	if !errors.Is(err, apierrors.ErrBadInput) {
		t.Errorf("oversize image should be rejected as bad input, got: %v", err)
	}
}

func TestPlantClient_Analyze_ServerError(t *testing.T) {
	stub := newStubHTTPClient(stubResponse{statusCode: 500, body: `{"error":"Failed to analyze the image."}`})
	client, err := NewClient(WithHTTPClient(stub))
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	client.SetAuthToken("tok")

	_, err = client.Analyze("leaf.jpg", "image/jpeg", []byte("x"))
	if err == nil {
		t.Fatal("Analyze() should fail on 500")
	}

	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error should be APIError, got %T", err)
	}
	if apiErr.Message != "Failed to analyze the image." {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestIsSupportedImageType(t *testing.T) {
	tests := []struct {
		mimeType string
		want     bool
	}{
		{"image/jpeg", true},
		{"image/png", true},
		{"image/gif", true},
		{"image/webp", true},
		{"image/tiff", false},
		{"application/octet-stream", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			if got := IsSupportedImageType(tt.mimeType); got != tt.want {
				t.Errorf("IsSupportedImageType(%q) = %v, want %v", tt.mimeType, got, tt.want)
			}
		})
	}
}
