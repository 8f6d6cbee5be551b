package device

import "context"

type Repo interface {
	List(ctx context.Context) ([]Device, error)
	GetByName(ctx context.Context, name string) (*Device, error)
	Upsert(ctx context.Context, d *Device) error
}
