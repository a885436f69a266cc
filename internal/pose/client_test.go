package pose

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/poslyzer/posture-backend-go/internal/apperrors"
)

func TestClientDetect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"detected": true,
			"landmarks": [
				{"name": "nose", "x": 0.5, "y": 0.2, "visibility": 0.95},
				{"name": "left_shoulder", "x": 0.45, "y": 0.4, "visibility": 0.9}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	lm, err := c.Detect(context.Background(), []byte{0x01})
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(lm) != 2 {
		t.Fatalf("expected 2 landmarks, got %d", len(lm))
	}
	nose := lm[Nose]
	if nose.X != 0.5 || nose.Y != 0.2 || nose.Visibility != 0.95 {
		t.Errorf("unexpected nose keypoint: %+v", nose)
	}
}

func TestClientDetectNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"detected": false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	lm, err := c.Detect(context.Background(), []byte{0x01})
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if lm != nil {
		t.Errorf("expected nil landmarks for no body, got %v", lm)
	}
}

func TestClientDetectServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Detect(context.Background(), []byte{0x01})
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperrors.KindOf(err) != apperrors.KindInternal {
		t.Errorf("expected internal kind, got %v", apperrors.KindOf(err))
	}
}
