package header

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// Layout of the science data header at the front of every pixel packet.
const (
	Size                     = 16
	PhotometerConfigIDLength = 8
	FirstPixelIDOffset       = PhotometerConfigIDLength
	FirstPixelIDLength       = 4
	NumPixelsOffset          = FirstPixelIDOffset + FirstPixelIDLength
	NumPixelsLength          = 4
)

// ErrInvalidLength is returned when a buffer cannot hold a full header.
var ErrInvalidLength = errors.New("science data header: invalid length")

// DefaultByteOrder is the order of the pixel id and count fields on the wire.
var DefaultByteOrder binary.ByteOrder = binary.BigEndian

// ScienceDataHeader is the decoded 16-byte header. The zero value is an
// all-zero header.
type ScienceDataHeader struct {
	PhotometerConfigurationID [PhotometerConfigIDLength]byte
	FirstPixelID              uint32
	NumPixels                 uint32
	Raw                       [Size]byte
}

// New builds a header from field values using DefaultByteOrder.
func New(configID [PhotometerConfigIDLength]byte, firstPixelID, numPixels uint32) ScienceDataHeader {
	h := ScienceDataHeader{
		PhotometerConfigurationID: configID,
		FirstPixelID:              firstPixelID,
		NumPixels:                 numPixels,
	}
	h.Raw = h.Bytes(DefaultByteOrder)
	return h
}

// Parse decodes the first Size bytes of buf.
func Parse(buf []byte) (ScienceDataHeader, error) {
	var h ScienceDataHeader
	if err := h.Set(buf); err != nil {
		return ScienceDataHeader{}, err
	}
	return h, nil
}

// Set decodes buf using DefaultByteOrder.
func (h *ScienceDataHeader) Set(buf []byte) error {
	return h.SetWithOrder(buf, DefaultByteOrder)
}

// SetWithOrder copies the first Size bytes of buf into Raw and extracts the
// fields from it. Trailing bytes belong to the packet payload and are
// ignored. On error the header is left untouched.
func (h *ScienceDataHeader) SetWithOrder(buf []byte, order binary.ByteOrder) error {
	if len(buf) < Size {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidLength, Size, len(buf))
	}
	if order == nil {
		order = DefaultByteOrder
	}
	copy(h.Raw[:], buf[:Size])
	copy(h.PhotometerConfigurationID[:], h.Raw[:PhotometerConfigIDLength])
	h.FirstPixelID = order.Uint32(h.Raw[FirstPixelIDOffset : FirstPixelIDOffset+FirstPixelIDLength])
	h.NumPixels = order.Uint32(h.Raw[NumPixelsOffset : NumPixelsOffset+NumPixelsLength])
	return nil
}

// Bytes encodes the logical fields into a fresh 16-byte image.
func (h ScienceDataHeader) Bytes(order binary.ByteOrder) [Size]byte {
	if order == nil {
		order = DefaultByteOrder
	}
	var out [Size]byte
	copy(out[:PhotometerConfigIDLength], h.PhotometerConfigurationID[:])
	order.PutUint32(out[FirstPixelIDOffset:], h.FirstPixelID)
	order.PutUint32(out[NumPixelsOffset:], h.NumPixels)
	return out
}

// ConfigIDString returns the photometer configuration id as upper-case hex.
func (h ScienceDataHeader) ConfigIDString() string {
	return strings.ToUpper(hex.EncodeToString(h.PhotometerConfigurationID[:]))
}

// LastPixelID returns the id of the last pixel in the packet. It reports
// false for empty packets and ranges that run past the uint32 id space.
func (h ScienceDataHeader) LastPixelID() (uint32, bool) {
	if h.NumPixels == 0 {
		return 0, false
	}
	last := uint64(h.FirstPixelID) + uint64(h.NumPixels) - 1
	if last > math.MaxUint32 {
		return 0, false
	}
	return uint32(last), true
}

// Fields returns the header as a flat field map for logging and JSON output.
func (h ScienceDataHeader) Fields() map[string]any {
	fields := map[string]any{
		"photometer_config_id": h.ConfigIDString(),
		"first_pixel_id":       h.FirstPixelID,
		"num_pixels":           h.NumPixels,
	}
	if last, ok := h.LastPixelID(); ok {
		fields["last_pixel_id"] = last
	}
	return fields
}

// Print writes a human-readable dump of the header to w, one field per line,
// each line starting with prefix.
func (h ScienceDataHeader) Print(w io.Writer, prefix string) {
	fmt.Fprintf(w, "%sPhotometerConfigurationID: %s\n", prefix, spacedHex(h.PhotometerConfigurationID[:]))
	fmt.Fprintf(w, "%sfirstPixelID: %d\n", prefix, h.FirstPixelID)
	fmt.Fprintf(w, "%snumPixels: %d\n", prefix, h.NumPixels)
}

func spacedHex(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 3)
	for i, by := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", by)
	}
	return sb.String()
}
