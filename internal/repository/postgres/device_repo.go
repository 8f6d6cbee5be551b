package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/NordCoder/Runboard/internal/domain/device"
	"github.com/jackc/pgx/v5"
)

var _ device.Repo = (*DeviceRepo)(nil)

type DeviceRepo struct{ db *DB }

func NewDeviceRepo(db *DB) *DeviceRepo { return &DeviceRepo{db: db} }

const (
	qDeviceUpsert = `
INSERT INTO devices (id, name, platform, os_version, status)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET name       = EXCLUDED.name,
    platform   = EXCLUDED.platform,
    os_version = EXCLUDED.os_version,
    status     = EXCLUDED.status,
    updated_at = NOW();
`
	qDeviceList = `
SELECT id, name, platform, os_version, status
FROM devices
ORDER BY created_at, id;
`
	qDeviceByName = `
SELECT id, name, platform, os_version, status
FROM devices
WHERE name = $1;
`
)

func scanDevice(row pgx.Row, d *device.Device) error {
	var platform, status string
	if err := row.Scan(&d.ID, &d.Name, &platform, &d.OSVersion, &status); err != nil {
		return mapErr(err)
	}
	d.Platform = device.Platform(platform)
	d.Status = device.Status(status)
	return nil
}

func (r *DeviceRepo) Upsert(ctx context.Context, d *device.Device) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if _, err := r.db.execQueryer(ctx).Exec(ctx, qDeviceUpsert,
		d.ID, d.Name, string(d.Platform), d.OSVersion, string(d.Status),
	); err != nil {
		return fmt.Errorf("upsert device: %w", mapErr(err))
	}
	return nil
}

func (r *DeviceRepo) List(ctx context.Context) ([]device.Device, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.execQueryer(ctx).Query(ctx, qDeviceList)
	if err != nil {
		return nil, fmt.Errorf("query devices: %w", err)
	}
	defer rows.Close()

	var out []device.Device
	for rows.Next() {
		var d device.Device
		if err := scanDevice(rows, &d); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *DeviceRepo) GetByName(ctx context.Context, name string) (*device.Device, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var d device.Device
	if err := scanDevice(r.db.execQueryer(ctx).QueryRow(ctx, qDeviceByName, name), &d); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, device.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
