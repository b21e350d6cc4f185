package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"photo-bridge/internal/media"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return db
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func fullMetadata() *media.Metadata {
	taken := time.Date(2026, 1, 29, 14, 30, 0, 0, time.UTC)
	return &media.Metadata{
		CameraMake:   strPtr("Canon"),
		CameraModel:  strPtr("EOS R5"),
		Lens:         strPtr("RF 24-70mm F2.8"),
		ISO:          intPtr(400),
		Aperture:     floatPtr(2.8),
		ShutterSpeed: floatPtr(0.008),
		FocalLength:  floatPtr(50),
		Width:        intPtr(8192),
		Height:       intPtr(5464),
		Latitude:     floatPtr(41.9),
		Longitude:    floatPtr(12.5),
		TakenAt:      &taken,
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	path := "/photos/rome/IMG_0001.CR2"

	if err := db.SaveMetadata(ctx, path, fullMetadata()); err != nil {
		t.Fatalf("SaveMetadata: %v", err)
	}

	got, err := db.GetMetadata(ctx, path)
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}

	if got.CameraMake == nil || *got.CameraMake != "Canon" {
		t.Errorf("CameraMake = %v, want Canon", got.CameraMake)
	}
	if got.CameraModel == nil || *got.CameraModel != "EOS R5" {
		t.Errorf("CameraModel = %v, want EOS R5", got.CameraModel)
	}
	if got.ISO == nil || *got.ISO != 400 {
		t.Errorf("ISO = %v, want 400", got.ISO)
	}
	if got.Aperture == nil || *got.Aperture != 2.8 {
		t.Errorf("Aperture = %v, want 2.8", got.Aperture)
	}
	if got.Width == nil || *got.Width != 8192 {
		t.Errorf("Width = %v, want 8192", got.Width)
	}
	if got.Latitude == nil || *got.Latitude != 41.9 {
		t.Errorf("Latitude = %v, want 41.9", got.Latitude)
	}
	if got.TakenAt == nil || !got.TakenAt.Equal(time.Date(2026, 1, 29, 14, 30, 0, 0, time.UTC)) {
		t.Errorf("TakenAt = %v, want 2026-01-29T14:30:00Z", got.TakenAt)
	}
}

func TestMetadataPartialRecord(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	path := "/photos/IMG_0002.NEF"

	meta := &media.Metadata{CameraModel: strPtr("D850")}
	if err := db.SaveMetadata(ctx, path, meta); err != nil {
		t.Fatalf("SaveMetadata: %v", err)
	}

	got, err := db.GetMetadata(ctx, path)
	if err != nil {
		t.Fatalf("GetMetadata: %v", err)
	}
	if got.CameraModel == nil || *got.CameraModel != "D850" {
		t.Errorf("CameraModel = %v, want D850", got.CameraModel)
	}
	if got.ISO != nil || got.Aperture != nil || got.TakenAt != nil {
		t.Errorf("absent fields should stay nil, got %+v", got)
	}
}

func TestMetadataUpsert(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	path := "/photos/IMG_0003.ARW"

	if err := db.SaveMetadata(ctx, path, &media.Metadata{ISO: intPtr(100)}); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveMetadata(ctx, path, &media.Metadata{ISO: intPtr(3200)}); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetMetadata(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if got.ISO == nil || *got.ISO != 3200 {
		t.Errorf("ISO = %v, want 3200 after upsert", got.ISO)
	}

	count, err := db.CountMetadata(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("CountMetadata = %d, want 1 (upsert must not duplicate)", count)
	}
}

func TestMetadataNotFound(t *testing.T) {
	db := newTestDatabase(t)

	_, err := db.GetMetadata(context.Background(), "/photos/unknown.jpg")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveMetadataNil(t *testing.T) {
	db := newTestDatabase(t)

	if err := db.SaveMetadata(context.Background(), "/photos/x.jpg", nil); err != nil {
		t.Errorf("SaveMetadata(nil) = %v, want no-op", err)
	}
	if _, err := db.GetMetadata(context.Background(), "/photos/x.jpg"); !errors.Is(err, ErrNotFound) {
		t.Error("nil metadata should not create a row")
	}
}

func TestRecordIsBestEffort(t *testing.T) {
	db := newTestDatabase(t)

	// Record must never panic or propagate errors
	db.Record("/photos/IMG_0004.RAF", fullMetadata())
	db.Record("/photos/IMG_0004.RAF", nil)

	got, err := db.GetMetadata(context.Background(), "/photos/IMG_0004.RAF")
	if err != nil {
		t.Fatalf("GetMetadata after Record: %v", err)
	}
	if got.CameraMake == nil || *got.CameraMake != "Canon" {
		t.Errorf("Record did not persist metadata: %+v", got)
	}
}
