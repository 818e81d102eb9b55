package options

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"

	"gitlab.com/d21d3q/scisdh/internal/header"
)

type contextKey struct{}

// WithByteOrder stores the field byte order inside the context.
func WithByteOrder(ctx context.Context, order binary.ByteOrder) context.Context {
	if order == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, order)
}

// ByteOrder retrieves the byte order from context, falling back to the
// header default.
func ByteOrder(ctx context.Context) binary.ByteOrder {
	if v := ctx.Value(contextKey{}); v != nil {
		if order, ok := v.(binary.ByteOrder); ok {
			return order
		}
	}
	return header.DefaultByteOrder
}

// ParseByteOrder maps a user supplied name to a byte order. An empty string
// selects the header default.
func ParseByteOrder(input string) (binary.ByteOrder, error) {
	clean := strings.ToLower(stripWhitespace(input))
	switch clean {
	case "":
		return header.DefaultByteOrder, nil
	case "big", "be", "msb", "bigendian", "big-endian":
		return binary.BigEndian, nil
	case "little", "le", "lsb", "littleendian", "little-endian":
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q (want big or little)", input)
	}
}

// ByteOrderName returns the short name accepted by ParseByteOrder.
func ByteOrderName(order binary.ByteOrder) string {
	if order == binary.LittleEndian {
		return "little"
	}
	return "big"
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
