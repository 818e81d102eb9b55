package scisdh

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"gitlab.com/d21d3q/scisdh/internal/header"
	internalopts "gitlab.com/d21d3q/scisdh/internal/options"
)

// ErrInvalidLength is returned when the input is shorter than a header.
var ErrInvalidLength = header.ErrInvalidLength

// HeaderSize is the encoded size of a science data header in bytes.
const HeaderSize = header.Size

// Result captures the outcome of Decode.
type Result struct {
	RawHex    string
	ByteCount int
	ByteOrder string
	Header    *header.ScienceDataHeader
	Fields    map[string]any
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"byte_count": r.ByteCount,
		"byte_order": r.ByteOrder,
		"raw_hex":    r.RawHex,
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("bytes:%d raw:%s (marshal error: %v)", r.ByteCount, r.RawHex, err)
	}
	return string(data)
}

// Print writes the decoded header fields to w, one per line.
func (r Result) Print(w io.Writer, prefix string) {
	if r.Header == nil {
		return
	}
	r.Header.Print(w, prefix)
}

// DecodeHex parses a hex-encoded header with default options.
func DecodeHex(ctx context.Context, raw string) (Result, error) {
	return DecodeHexWithOptions(ctx, raw, DecodeOptions{})
}

// DecodeHexWithOptions parses a hex-encoded header with custom options.
func DecodeHexWithOptions(ctx context.Context, raw string, opts DecodeOptions) (Result, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return Result{}, err
	}
	return Decode(ctx, data, opts)
}

// Decode parses the science data header at the front of data.
func Decode(ctx context.Context, data []byte, opts DecodeOptions) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	ctx, err := opts.toInternal(ctx)
	if err != nil {
		return Result{}, err
	}
	order := internalopts.ByteOrder(ctx)

	var hdr header.ScienceDataHeader
	if err := hdr.SetWithOrder(data, order); err != nil {
		return Result{}, err
	}
	return Result{
		RawHex:    strings.ToUpper(hex.EncodeToString(hdr.Raw[:])),
		ByteCount: len(data),
		ByteOrder: internalopts.ByteOrderName(order),
		Header:    &hdr,
		Fields:    hdr.Fields(),
	}, nil
}

func decodeHex(input string) ([]byte, error) {
	clean := strings.ToUpper(stripWhitespace(input))
	clean = strings.TrimPrefix(clean, "0X")
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex header must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
