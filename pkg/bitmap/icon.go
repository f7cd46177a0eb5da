package bitmap

import (
	"github.com/pkg/errors"
)

const (
	Width    = 48
	Height   = 32
	RowBytes = Width / 8
	Size     = RowBytes * Height
)

var ErrInvalidLength = errors.New("invalid icon length")

// Icon is a 48x32 1bpp VMU LCD image, 6 bytes per row.
//
// Rows are stored top to bottom as produced by the icon editor. The VMU
// expects them bottom to top, see Flip.
type Icon [Size]byte

// FromBytes copies exactly Size bytes into an Icon.
func FromBytes(src []byte) (Icon, error) {
	var icon Icon
	if len(src) != Size {
		return icon, errors.Wrapf(ErrInvalidLength, "got %d bytes, want %d", len(src), Size)
	}
	copy(icon[:], src)
	return icon, nil
}

// Convert validates src and returns it in the row order the VMU LCD expects.
func Convert(src []byte) (Icon, error) {
	icon, err := FromBytes(src)
	if err != nil {
		return icon, err
	}
	return icon.Flip(), nil
}

// Flip reverses the row order. Bytes inside a row are left untouched, so
// applying it twice gives back the original icon.
func (i Icon) Flip() Icon {
	var out Icon
	for r := 0; r < Height; r++ {
		copy(out[r*RowBytes:(r+1)*RowBytes], i[(Height-1-r)*RowBytes:(Height-r)*RowBytes])
	}
	return out
}

// Row returns row r (0 = top).
func (i Icon) Row(r int) []byte {
	return i[r*RowBytes : (r+1)*RowBytes]
}

func (i Icon) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	off, mask := pixelOffset(x, y)
	return i[off]&mask != 0
}

func (i *Icon) SetPixel(x, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	off, mask := pixelOffset(x, y)
	if on {
		i[off] |= mask
	} else {
		i[off] &^= mask
	}
}

// pixelOffset maps a pixel to its byte and bit. Within a row the byte order
// is reversed and each byte is LSB first, so column 0 lives in bit 0 of the
// last byte of the row.
func pixelOffset(x, y int) (int, byte) {
	return y*RowBytes + (RowBytes - 1 - x/8), byte(1) << uint(x%8)
}
