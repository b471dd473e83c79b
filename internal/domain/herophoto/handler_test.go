package herophoto

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"testing"

	"github.com/portfolio/portfolio-api/internal/middleware"
)

const testPassword = "secret"

func newTestRouter(t *testing.T) (http.Handler, *Service) {
	t.Helper()
	svc, _, _ := newTestService(t)
	return NewHandler(svc, 1<<20).Routes(middleware.AdminPassword(testPassword)), svc
}

func multipartBody(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if withImage {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="me.jpg"`)
		h.Set("Content-Type", "image/jpeg")
		w, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		_, _ = w.Write([]byte("jpg"))
	}
	_ = mw.Close()
	return &buf, mw.FormDataContentType()
}

func send(h http.Handler, method, path string, body *bytes.Buffer, contentType string, admin bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if admin {
		req.Header.Set(middleware.AdminPasswordHeader, testPassword)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateHeroPhotoOverHTTP(t *testing.T) {
	h, _ := newTestRouter(t)

	body, ct := multipartBody(t, map[string]string{"positionX": "0"}, true)
	rr := send(h, http.MethodPost, "/", body, ct, true)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var payload struct {
		Success bool      `json:"success"`
		Message string    `json:"message"`
		Data    HeroPhoto `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Message != "Hero photo added" || payload.Data.Alt != DefaultAlt {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Data.PositionX != 0 || payload.Data.PositionY != 50 {
		t.Fatalf("unexpected positions %d/%d", payload.Data.PositionX, payload.Data.PositionY)
	}

	rr = send(h, http.MethodGet, "/", nil, "", false)
	var photos []HeroPhoto
	if err := json.Unmarshal(rr.Body.Bytes(), &photos); err != nil || len(photos) != 1 {
		t.Fatalf("expected one photo, got %s", rr.Body.String())
	}
}

func TestCreateHeroPhotoRequiresImage(t *testing.T) {
	h, _ := newTestRouter(t)

	body, ct := multipartBody(t, map[string]string{"alt": "Me"}, false)
	rr := send(h, http.MethodPost, "/", body, ct, true)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateHeroPhotoRejectsBadPosition(t *testing.T) {
	h, _ := newTestRouter(t)

	body, ct := multipartBody(t, map[string]string{"positionY": "150"}, true)
	rr := send(h, http.MethodPost, "/", body, ct, true)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestHeroPhotoAdminRoutesRequirePassword(t *testing.T) {
	h, _ := newTestRouter(t)

	body, ct := multipartBody(t, nil, true)
	if rr := send(h, http.MethodPost, "/", body, ct, false); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if rr := send(h, http.MethodDelete, "/1", nil, "", false); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestUpdateAndDeleteHeroPhotoOverHTTP(t *testing.T) {
	h, svc := newTestRouter(t)

	p, err := svc.Create(context.Background(), &CreateRequest{Alt: "Me"}, photo())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	path := "/" + strconv.FormatInt(p.ID, 10)

	body, ct := multipartBody(t, map[string]string{"alt": "Studio", "positionX": "20"}, false)
	rr := send(h, http.MethodPut, path, body, ct, true)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	body, ct = multipartBody(t, nil, false)
	if rr := send(h, http.MethodPut, "/abc", body, ct, true); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rr.Code)
	}

	if rr := send(h, http.MethodDelete, path, nil, "", true); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr := send(h, http.MethodDelete, path, nil, "", true); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestListEmptyIsArray(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := send(h, http.MethodGet, "/", nil, "", false)
	if rr.Code != http.StatusOK || string(bytes.TrimSpace(rr.Body.Bytes())) != "[]" {
		t.Fatalf("expected empty array, got %d %q", rr.Code, rr.Body.String())
	}
}
