package herophoto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/portfolio/portfolio-api/internal/pkg/storage"
	"github.com/portfolio/portfolio-api/internal/pkg/upload"
)

type uploaderStub struct {
	err      error
	count    int
	released []string
}

func (u *uploaderStub) Upload(ctx context.Context, category, folder string, f *upload.File) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.count++
	return fmt.Sprintf("/uploads/%s/%d.jpg", folder, u.count), nil
}

func (u *uploaderStub) Release(ctx context.Context, url string) error {
	u.released = append(u.released, url)
	return nil
}

func newTestService(t *testing.T) (*Service, *uploaderStub, string) {
	t.Helper()
	dir := t.TempDir()
	up := &uploaderStub{}
	svc := NewService(NewLocalRepository(dir), up)
	tick := time.UnixMilli(1700000000000)
	svc.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}
	return svc, up, dir
}

func photo() *upload.File {
	return &upload.File{Name: "a.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpg")}
}

func intPtr(n int) *int { return &n }

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	p, err := svc.Create(context.Background(), &CreateRequest{Alt: "  "}, photo())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Alt != DefaultAlt || p.PositionX != 50 || p.PositionY != 50 {
		t.Fatalf("expected defaults, got %+v", p)
	}
	if p.Image != "/uploads/hero/1.jpg" {
		t.Fatalf("unexpected image %q", p.Image)
	}
}

func TestCreateKeepsZeroPosition(t *testing.T) {
	svc, _, _ := newTestService(t)

	p, err := svc.Create(context.Background(), &CreateRequest{Alt: "Me", PositionX: intPtr(0), PositionY: intPtr(100)}, photo())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.PositionX != 0 || p.PositionY != 100 {
		t.Fatalf("expected 0/100, got %d/%d", p.PositionX, p.PositionY)
	}
}

func TestCreateRejectedUploadLeavesNoRecord(t *testing.T) {
	svc, up, _ := newTestService(t)
	up.err = storage.ErrInvalidFileType

	if _, err := svc.Create(context.Background(), &CreateRequest{}, photo()); !errors.Is(err, storage.ErrInvalidFileType) {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}
	photos, _ := svc.List(context.Background())
	if len(photos) != 0 {
		t.Fatalf("expected no photos, got %d", len(photos))
	}
}

func TestUpdateSwapsImageAndReleasesOld(t *testing.T) {
	svc, up, _ := newTestService(t)
	ctx := context.Background()

	p, _ := svc.Create(ctx, &CreateRequest{Alt: "Me"}, photo())

	alt := "Studio"
	updated, err := svc.Update(ctx, p.ID, &UpdateRequest{Alt: &alt, PositionY: intPtr(10)}, photo())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Alt != "Studio" || updated.PositionX != 50 || updated.PositionY != 10 {
		t.Fatalf("unexpected merge %+v", updated)
	}
	if updated.Image != "/uploads/hero/2.jpg" {
		t.Fatalf("expected new image, got %q", updated.Image)
	}
	if len(up.released) != 1 || up.released[0] != "/uploads/hero/1.jpg" {
		t.Fatalf("expected old image released, got %v", up.released)
	}

	if _, err := svc.Update(ctx, 42, &UpdateRequest{}, nil); !errors.Is(err, ErrHeroPhotoNotFound) {
		t.Fatalf("expected ErrHeroPhotoNotFound, got %v", err)
	}
}

func TestDeleteReleasesImage(t *testing.T) {
	svc, up, _ := newTestService(t)
	ctx := context.Background()

	p, _ := svc.Create(ctx, &CreateRequest{}, photo())
	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(up.released) != 1 || up.released[0] != p.Image {
		t.Fatalf("expected image released, got %v", up.released)
	}
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, ErrHeroPhotoNotFound) {
		t.Fatalf("expected ErrHeroPhotoNotFound, got %v", err)
	}
}

func TestReorder(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, &CreateRequest{Alt: "a"}, photo())
	b, _ := svc.Create(ctx, &CreateRequest{Alt: "b"}, photo())
	c, _ := svc.Create(ctx, &CreateRequest{Alt: "c"}, photo())

	if err := svc.Reorder(ctx, []int64{c.ID, 999, a.ID, b.ID}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	photos, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got []string
	for _, p := range photos {
		got = append(got, p.Alt)
	}
	if strings.Join(got, ",") != "c,a,b" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestListReadsStringPositions(t *testing.T) {
	svc, _, dir := newTestService(t)

	data := `[{"id":1,"image":"/uploads/hero/x.jpg","alt":"Old","positionX":"30","positionY":"","createdAt":"2024-01-02T03:04:05Z","order":0}]`
	if err := os.WriteFile(filepath.Join(dir, "hero-photos.json"), []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	photos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(photos) != 1 || photos[0].PositionX != 30 || photos[0].PositionY != DefaultPosition {
		t.Fatalf("unexpected photos %+v", photos)
	}

	out, _ := json.Marshal(photos[0])
	if !strings.Contains(string(out), `"positionX":30`) {
		t.Fatalf("positions should be written as numbers, got %s", out)
	}
}

func TestListDefaultsMissingAndNullPositions(t *testing.T) {
	svc, _, dir := newTestService(t)

	data := `[
		{"id":1,"image":"/uploads/hero/a.jpg","alt":"No positions","createdAt":"2024-01-02T03:04:05Z"},
		{"id":2,"image":"/uploads/hero/b.jpg","alt":"Null","positionX":null,"positionY":"","createdAt":"2024-01-02T03:04:05Z"}
	]`
	if err := os.WriteFile(filepath.Join(dir, "hero-photos.json"), []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	photos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(photos))
	}
	for _, p := range photos {
		if p.PositionX != DefaultPosition || p.PositionY != DefaultPosition {
			t.Fatalf("photo %d: expected %d/%d, got %d/%d", p.ID, DefaultPosition, DefaultPosition, p.PositionX, p.PositionY)
		}
	}
}

func TestUnmarshalKeepsExplicitZeroPosition(t *testing.T) {
	var p HeroPhoto
	if err := json.Unmarshal([]byte(`{"id":3,"positionX":0,"positionY":"0"}`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.PositionX != 0 || p.PositionY != 0 {
		t.Fatalf("explicit zero must survive, got %d/%d", p.PositionX, p.PositionY)
	}
}

func TestParsePositions(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name       string
		x, y       *string
		wantX      *int
		wantErrKey string
	}{
		{name: "absent", x: nil, y: nil},
		{name: "blank", x: str(" "), y: nil},
		{name: "zero", x: str("0"), y: nil, wantX: intPtr(0)},
		{name: "not a number", x: str("left"), y: nil, wantErrKey: "positionX"},
		{name: "out of range", x: nil, y: str("101"), wantErrKey: "positionY"},
		{name: "negative", x: str("-1"), y: nil, wantErrKey: "positionX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, _, errs := parsePositions(tt.x, tt.y)
			if tt.wantErrKey != "" {
				if _, ok := errs[tt.wantErrKey]; !ok {
					t.Fatalf("expected error on %s, got %v", tt.wantErrKey, errs)
				}
				return
			}
			if errs != nil {
				t.Fatalf("unexpected errors %v", errs)
			}
			if (x == nil) != (tt.wantX == nil) || (x != nil && *x != *tt.wantX) {
				t.Fatalf("unexpected x %v", x)
			}
		})
	}
}
