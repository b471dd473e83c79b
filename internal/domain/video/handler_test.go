package video

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/portfolio/portfolio-api/internal/middleware"
)

const testPassword = "secret"

func newTestRouter(t *testing.T) (http.Handler, *Service) {
	t.Helper()
	svc := newTestService(t)
	return NewHandler(svc).Routes(middleware.AdminPassword(testPassword)), svc
}

func do(h http.Handler, method, path, body string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set(middleware.AdminPasswordHeader, testPassword)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateVideoOverHTTP(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := do(h, http.MethodPost, "/", `{"title":"Talk","description":"","videoUrl":"https://youtu.be/dQw4w9WgXcQ"}`, true)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			VideoID   *string `json:"videoId"`
			Thumbnail string  `json:"thumbnail"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !payload.Success || payload.Data.VideoID == nil || *payload.Data.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected payload %s", rr.Body.String())
	}
	if payload.Data.Thumbnail != "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" {
		t.Fatalf("unexpected thumbnail %q", payload.Data.Thumbnail)
	}
}

func TestUnrecognisedVideoIDIsNull(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := do(h, http.MethodPost, "/", `{"title":"Talk","videoUrl":"https://vimeo.com/1"}`, true)
	if !strings.Contains(rr.Body.String(), `"videoId":null`) || !strings.Contains(rr.Body.String(), `"thumbnail":""`) {
		t.Fatalf("expected null videoId and empty thumbnail, got %s", rr.Body.String())
	}
}

func TestVideoValidationAndAuth(t *testing.T) {
	h, svc := newTestRouter(t)

	if rr := do(h, http.MethodPost, "/", `{"title":"Talk"}`, true); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing videoUrl: expected 422, got %d", rr.Code)
	}
	if rr := do(h, http.MethodPost, "/", `{"title":"Talk","videoUrl":"https://youtu.be/dQw4w9WgXcQ"}`, false); rr.Code != http.StatusUnauthorized {
		t.Fatalf("no password: expected 401, got %d", rr.Code)
	}
	list, _ := svc.List(context.Background())
	if len(list) != 0 {
		t.Fatalf("no video may be stored")
	}
}

func TestUpdateDeleteVideoOverHTTP(t *testing.T) {
	h, svc := newTestRouter(t)
	v, _ := svc.Create(context.Background(), &CreateRequest{Title: "Talk", VideoURL: "https://youtu.be/dQw4w9WgXcQ"})
	path := "/" + strconv.FormatInt(v.ID, 10)

	if rr := do(h, http.MethodPut, path, `{"title":"Renamed"}`, true); rr.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", rr.Code)
	}
	if rr := do(h, http.MethodPut, "/5", `{"title":"x"}`, true); rr.Code != http.StatusNotFound {
		t.Fatalf("update unknown: expected 404, got %d", rr.Code)
	}
	if rr := do(h, http.MethodDelete, path, "", true); rr.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rr.Code)
	}
	if rr := do(h, http.MethodDelete, path, "", true); rr.Code != http.StatusNotFound {
		t.Fatalf("delete again: expected 404, got %d", rr.Code)
	}
}

func TestEmptyVideoListIsArray(t *testing.T) {
	h, _ := newTestRouter(t)
	rr := do(h, http.MethodGet, "/", "", false)
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("expected [], got %q", rr.Body.String())
	}
}
