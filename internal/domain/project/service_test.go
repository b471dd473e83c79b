package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/portfolio/portfolio-api/internal/pkg/storage"
	"github.com/portfolio/portfolio-api/internal/pkg/upload"
)

type uploaderStub struct {
	err      error
	count    int
	uploaded []string
	released []string
}

func (u *uploaderStub) Upload(ctx context.Context, category, folder string, f *upload.File) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.count++
	url := fmt.Sprintf("/uploads/%s/%d.png", folder, u.count)
	u.uploaded = append(u.uploaded, url)
	return url, nil
}

func (u *uploaderStub) Release(ctx context.Context, url string) error {
	u.released = append(u.released, url)
	return nil
}

// failingRepo fails every write
type failingRepo struct {
	Repository
}

func (failingRepo) Create(context.Context, *Project) error { return errors.New("disk full") }
func (failingRepo) Update(context.Context, *Project) error { return errors.New("disk full") }

func newTestService(t *testing.T) (*Service, *uploaderStub) {
	t.Helper()
	up := &uploaderStub{}
	svc := NewService(NewLocalRepository(t.TempDir()), up)
	tick := time.UnixMilli(1700000000000)
	svc.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}
	return svc, up
}

func image() *upload.File {
	return &upload.File{Name: "a.png", ContentType: "image/png", Body: strings.NewReader("png")}
}

func TestCreateUploadsBeforePersisting(t *testing.T) {
	svc, up := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &CreateRequest{Title: " Site ", ProjectURL: "https://example.com"}, image())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Image != "/uploads/projects/1.png" || p.Title != "Site" || p.Order != 0 {
		t.Fatalf("unexpected project %+v", p)
	}
	if p.ID != 1700000000001 {
		t.Fatalf("expected millisecond id, got %d", p.ID)
	}
	if len(up.uploaded) != 1 {
		t.Fatalf("expected one upload, got %d", len(up.uploaded))
	}
}

func TestCreateRejectedUploadLeavesNoRecord(t *testing.T) {
	svc, up := newTestService(t)
	up.err = storage.ErrInvalidFileType
	ctx := context.Background()

	if _, err := svc.Create(ctx, &CreateRequest{Title: "Site", ProjectURL: "https://example.com"}, image()); !errors.Is(err, storage.ErrInvalidFileType) {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}

	projects, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("expected no records, got %d", len(projects))
	}
}

func TestCreateReleasesBlobWhenPersistFails(t *testing.T) {
	up := &uploaderStub{}
	svc := NewService(failingRepo{NewLocalRepository(t.TempDir())}, up)

	if _, err := svc.Create(context.Background(), &CreateRequest{Title: "Site", ProjectURL: "https://example.com"}, image()); err == nil {
		t.Fatalf("expected error")
	}
	if len(up.released) != 1 || up.released[0] != up.uploaded[0] {
		t.Fatalf("expected fresh blob released, got %v", up.released)
	}
}

func TestUpdateMergesFieldsAndReplacesImage(t *testing.T) {
	svc, up := newTestService(t)
	ctx := context.Background()

	p, _ := svc.Create(ctx, &CreateRequest{Title: "Old", Description: "keep", ProjectURL: "https://a.example.com"}, image())

	title := "New"
	updated, err := svc.Update(ctx, p.ID, &UpdateRequest{Title: &title}, image())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "New" || updated.Description != "keep" || updated.ProjectURL != "https://a.example.com" {
		t.Fatalf("fields not merged: %+v", updated)
	}
	if updated.Image != "/uploads/projects/2.png" {
		t.Fatalf("expected new image, got %q", updated.Image)
	}
	if len(up.released) != 1 || up.released[0] != "/uploads/projects/1.png" {
		t.Fatalf("expected old image released, got %v", up.released)
	}

	stored, _ := svc.Get(ctx, p.ID)
	if stored.Title != "New" {
		t.Fatalf("update not persisted: %+v", stored)
	}
}

func TestUpdateWithoutImageKeepsIt(t *testing.T) {
	svc, up := newTestService(t)
	ctx := context.Background()

	p, _ := svc.Create(ctx, &CreateRequest{Title: "Old", ProjectURL: "https://a.example.com"}, image())
	desc := "more"
	updated, err := svc.Update(ctx, p.ID, &UpdateRequest{Description: &desc}, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Image != p.Image || len(up.released) != 0 {
		t.Fatalf("image should be untouched, released=%v", up.released)
	}
}

func TestDeleteReleasesImageAndUnknownIsNotFound(t *testing.T) {
	svc, up := newTestService(t)
	ctx := context.Background()

	p, _ := svc.Create(ctx, &CreateRequest{Title: "Site", ProjectURL: "https://example.com"}, image())
	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(up.released) != 1 {
		t.Fatalf("expected image released")
	}

	if err := svc.Delete(ctx, p.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, 12345, &UpdateRequest{}, nil); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound on update, got %v", err)
	}
}

func TestReorder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, &CreateRequest{Title: "A", ProjectURL: "https://a.example.com"}, image())
	b, _ := svc.Create(ctx, &CreateRequest{Title: "B", ProjectURL: "https://b.example.com"}, image())
	c, _ := svc.Create(ctx, &CreateRequest{Title: "C", ProjectURL: "https://c.example.com"}, image())

	// Default listing is newest first
	list, _ := svc.List(ctx)
	if list[0].ID != c.ID {
		t.Fatalf("expected newest first before reorder")
	}

	if err := svc.Reorder(ctx, []int64{a.ID, 999, c.ID, b.ID}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	list, _ = svc.List(ctx)
	got := []int64{list[0].ID, list[1].ID, list[2].ID}
	want := []int64{a.ID, c.ID, b.ID}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %d want %d", i, got[i], want[i])
		}
	}
}

type listStub struct {
	Repository
	items []*Project
	err   error
}

func (s listStub) List(context.Context) ([]*Project, error) { return s.items, s.err }

func TestFallbackRepositoryList(t *testing.T) {
	ctx := context.Background()
	local := NewLocalRepository(t.TempDir())
	_ = local.Create(ctx, &Project{ID: 1, Title: "Local"})

	repo := NewFallbackRepository(listStub{Repository: local, err: errors.New("db down")}, local)
	items, err := repo.List(ctx)
	if err != nil || len(items) != 1 || items[0].Title != "Local" {
		t.Fatalf("expected local fallback, got %v err=%v", items, err)
	}

	repo = NewFallbackRepository(listStub{Repository: local, items: []*Project{}}, local)
	items, _ = repo.List(ctx)
	if len(items) != 1 {
		t.Fatalf("expected fallback on empty primary, got %d", len(items))
	}

	remote := []*Project{{ID: 2, Title: "Remote"}}
	repo = NewFallbackRepository(listStub{Repository: local, items: remote}, local)
	items, _ = repo.List(ctx)
	if len(items) != 1 || items[0].Title != "Remote" {
		t.Fatalf("expected primary data, got %v", items)
	}
}
