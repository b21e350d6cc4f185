package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"photo-bridge/internal/logging"
	"photo-bridge/internal/media"
	"photo-bridge/internal/metrics"
)

// ErrNotFound is returned when no metadata exists for a path.
var ErrNotFound = errors.New("metadata not found")

// SaveMetadata upserts the capture metadata for a source path.
func (d *Database) SaveMetadata(ctx context.Context, path string, meta *media.Metadata) error {
	if meta == nil {
		return nil
	}

	query := `
	INSERT INTO photo_metadata
		(path, camera_make, camera_model, lens, iso, aperture, shutter_speed,
		 focal_length, width, height, latitude, longitude, taken_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(path) DO UPDATE SET
		camera_make = excluded.camera_make,
		camera_model = excluded.camera_model,
		lens = excluded.lens,
		iso = excluded.iso,
		aperture = excluded.aperture,
		shutter_speed = excluded.shutter_speed,
		focal_length = excluded.focal_length,
		width = excluded.width,
		height = excluded.height,
		latitude = excluded.latitude,
		longitude = excluded.longitude,
		taken_at = excluded.taken_at,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err := d.db.ExecContext(ctx, query, path,
		meta.CameraMake, meta.CameraModel, meta.Lens, meta.ISO,
		meta.Aperture, meta.ShutterSpeed, meta.FocalLength,
		meta.Width, meta.Height, meta.Latitude, meta.Longitude, meta.TakenAt)
	if err != nil {
		return fmt.Errorf("failed to save metadata for %s: %w", path, err)
	}
	return nil
}

// GetMetadata returns the stored capture metadata for a source path.
func (d *Database) GetMetadata(ctx context.Context, path string) (*media.Metadata, error) {
	query := `
	SELECT camera_make, camera_model, lens, iso, aperture, shutter_speed,
	       focal_length, width, height, latitude, longitude, taken_at
	FROM photo_metadata WHERE path = ?
	`

	var (
		make, model, lens        sql.NullString
		iso, width, height       sql.NullInt64
		aperture, shutter, focal sql.NullFloat64
		latitude, longitude      sql.NullFloat64
		takenAt                  sql.NullTime
	)

	err := d.db.QueryRowContext(ctx, query, path).Scan(
		&make, &model, &lens, &iso, &aperture, &shutter,
		&focal, &width, &height, &latitude, &longitude, &takenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata for %s: %w", path, err)
	}

	meta := &media.Metadata{}
	if make.Valid {
		meta.CameraMake = &make.String
	}
	if model.Valid {
		meta.CameraModel = &model.String
	}
	if lens.Valid {
		meta.Lens = &lens.String
	}
	if iso.Valid {
		v := int(iso.Int64)
		meta.ISO = &v
	}
	if aperture.Valid {
		meta.Aperture = &aperture.Float64
	}
	if shutter.Valid {
		meta.ShutterSpeed = &shutter.Float64
	}
	if focal.Valid {
		meta.FocalLength = &focal.Float64
	}
	if width.Valid {
		v := int(width.Int64)
		meta.Width = &v
	}
	if height.Valid {
		v := int(height.Int64)
		meta.Height = &v
	}
	if latitude.Valid {
		meta.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		meta.Longitude = &longitude.Float64
	}
	if takenAt.Valid {
		meta.TakenAt = &takenAt.Time
	}

	return meta, nil
}

// Record implements thumbs.MetadataRecorder. Writes are best-effort: a
// failed write is logged and swallowed so it never disturbs thumbnail
// delivery.
func (d *Database) Record(path string, meta *media.Metadata) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := d.SaveMetadata(ctx, path, meta); err != nil {
		metrics.MetadataWritesTotal.WithLabelValues("error").Inc()
		logging.Warn("Failed to record metadata: %v", err)
		return
	}
	metrics.MetadataWritesTotal.WithLabelValues("success").Inc()
}

// CountMetadata returns the number of stored metadata rows.
func (d *Database) CountMetadata(ctx context.Context) (int, error) {
	queryCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var count int
	err := d.db.QueryRowContext(queryCtx, "SELECT COUNT(*) FROM photo_metadata").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count metadata: %w", err)
	}
	return count, nil
}
