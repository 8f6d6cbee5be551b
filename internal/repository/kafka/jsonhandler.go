package kafka

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSONHandler decodes each message into a fresh M. Undecodable payloads are
// reported as ErrPoison.
func JSONHandler[M any](handle func(context.Context, []byte, *M) error) Handler {
	return func(ctx context.Context, key, value []byte) error {
		msg := new(M)
		if err := json.Unmarshal(value, msg); err != nil {
			return fmt.Errorf("%w: decode: %v", ErrPoison, err)
		}
		return handle(ctx, key, msg)
	}
}
