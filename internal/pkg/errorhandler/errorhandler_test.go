package errorhandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portfolio/portfolio-api/internal/pkg/storage"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestInternalPassesErrorText(t *testing.T) {
	rr := httptest.NewRecorder()
	Internal(context.Background(), rr, "project.create", errors.New("relation \"projects\" does not exist"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if msg := decode(t, rr)["message"]; msg != `relation "projects" does not exist` {
		t.Fatalf("unexpected message %v", msg)
	}
}

func TestPublicHidesErrorText(t *testing.T) {
	rr := httptest.NewRecorder()
	Public(context.Background(), rr, "project.list", "Failed to load projects", errors.New("dial tcp 10.0.0.5:5432: refused"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if msg := decode(t, rr)["message"]; msg != "Failed to load projects" {
		t.Fatalf("unexpected message %v", msg)
	}
}

func TestUpload(t *testing.T) {
	tests := []struct {
		err     error
		handled bool
		message string
	}{
		{fmt.Errorf("wrapped: %w", storage.ErrInvalidFileType), true, "File type not allowed"},
		{storage.ErrFileTooLarge, true, "File is too large"},
		{storage.ErrEmptyFile, true, "File is empty"},
		{errors.New("disk full"), false, ""},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		handled := Upload(context.Background(), rr, tt.err)
		if handled != tt.handled {
			t.Fatalf("%v: handled=%v want %v", tt.err, handled, tt.handled)
		}
		if !handled {
			if rr.Body.Len() != 0 {
				t.Fatalf("%v: nothing should be written", tt.err)
			}
			continue
		}
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", tt.err, rr.Code)
		}
		if msg := decode(t, rr)["message"]; msg != tt.message {
			t.Fatalf("%v: unexpected message %v", tt.err, msg)
		}
	}
}
