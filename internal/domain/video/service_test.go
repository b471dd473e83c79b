package video

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewLocalRepository(t.TempDir()))
	tick := time.UnixMilli(1700000000000)
	svc.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}
	return svc
}

func TestCreateDerivesYouTubeFields(t *testing.T) {
	svc := newTestService(t)

	v, err := svc.Create(context.Background(), &CreateRequest{Title: "Talk", VideoURL: "https://youtu.be/dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.VideoID == nil || *v.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected video id %v", v.VideoID)
	}
	if v.Thumbnail != "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" {
		t.Fatalf("unexpected thumbnail %q", v.Thumbnail)
	}
}

func TestCreateNonYouTubeURL(t *testing.T) {
	svc := newTestService(t)

	v, err := svc.Create(context.Background(), &CreateRequest{Title: "Elsewhere", VideoURL: "https://vimeo.com/1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.VideoID != nil || v.Thumbnail != "" {
		t.Fatalf("expected empty derived fields, got %v %q", v.VideoID, v.Thumbnail)
	}
}

func TestUpdateRederivesFromURL(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v, _ := svc.Create(ctx, &CreateRequest{Title: "Talk", Description: "keep", VideoURL: "https://youtu.be/dQw4w9WgXcQ"})

	url := "https://vimeo.com/1"
	updated, err := svc.Update(ctx, v.ID, &UpdateRequest{VideoURL: &url})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.VideoID != nil || updated.Thumbnail != "" {
		t.Fatalf("derived fields should be cleared, got %v %q", updated.VideoID, updated.Thumbnail)
	}
	if updated.Title != "Talk" || updated.Description != "keep" {
		t.Fatalf("fields not merged: %+v", updated)
	}

	if _, err := svc.Update(ctx, 1, &UpdateRequest{}); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestDeleteUnknownVideo(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Delete(context.Background(), 99); !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestReorderVideos(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, &CreateRequest{Title: "A", VideoURL: "https://youtu.be/aaaaaaaaaaa"})
	b, _ := svc.Create(ctx, &CreateRequest{Title: "B", VideoURL: "https://youtu.be/bbbbbbbbbbb"})

	if err := svc.Reorder(ctx, []int64{a.ID, b.ID}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	list, _ := svc.List(ctx)
	if list[0].ID != a.ID || list[0].Order != 0 || list[1].Order != 1 {
		t.Fatalf("unexpected order: %+v %+v", list[0], list[1])
	}
}
