package scisdh

import (
	"context"

	internalopts "gitlab.com/d21d3q/scisdh/internal/options"
)

// DecodeOptions configures parsing.
type DecodeOptions struct {
	// ByteOrder names the order of the pixel id and count fields
	// ("big" or "little"). Empty selects big endian.
	ByteOrder string
}

func (opts DecodeOptions) toInternal(ctx context.Context) (context.Context, error) {
	order, err := internalopts.ParseByteOrder(opts.ByteOrder)
	if err != nil {
		return ctx, err
	}
	return internalopts.WithByteOrder(ctx, order), nil
}
