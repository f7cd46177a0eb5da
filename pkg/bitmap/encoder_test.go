package bitmap

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	src := randomIcon(t, 7)
	assert.Equal(t, src, Encode(Decode(src)))
}

func TestEncodeGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(47, 31, color.Gray{Y: 127})
	img.SetGray(10, 10, color.Gray{Y: 128})

	icon := Encode(img)
	assert.True(t, icon.Pixel(0, 0))
	assert.True(t, icon.Pixel(47, 31))
	assert.False(t, icon.Pixel(10, 10))
	assert.Equal(t, byte(0x01), icon[5])
	assert.Equal(t, byte(0x80), icon[Size-RowBytes])
}

func TestEncodeOptions(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: 100}), image.Point{}, draw.Src)

	tests := []struct {
		name string
		opts []EncodeOption
		on   bool
	}{
		{"default", nil, true},
		{"low threshold", []EncodeOption{WithThreshold(50)}, false},
		{"invert", []EncodeOption{WithInvert(true)}, false},
		{"invert low threshold", []EncodeOption{WithThreshold(50), WithInvert(true)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			icon := Encode(img, tt.opts...)
			for y := 0; y < Height; y++ {
				for x := 0; x < Width; x++ {
					require.Equal(t, tt.on, icon.Pixel(x, y), "pixel (%d, %d)", x, y)
				}
			}
		})
	}
}

func TestEncodeKey(t *testing.T) {
	tests := []struct {
		opts []EncodeOption
		want string
	}{
		{nil, "t128"},
		{[]EncodeOption{WithInvert(true)}, "t128i"},
		{[]EncodeOption{WithThreshold(96), WithInvert(true)}, "t96i"},
		{[]EncodeOption{WithInvert(true), WithInvert(false)}, "t128"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EncodeKey(tt.opts...))
	}
}

func TestEncodeTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	assert.Equal(t, Icon{}, Encode(img))
}

func TestEncodeResizes(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, Width*4, Height*4))
	icon := Encode(img)
	for _, b := range icon {
		require.Equal(t, byte(0xFF), b)
	}
}

func TestEncodeOffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(100, 100, 100+Width, 100+Height))
	draw.Draw(img, img.Bounds(), image.White, img.Bounds().Min, draw.Src)
	img.SetGray(100, 100, color.Gray{})

	icon := Encode(img)
	assert.True(t, icon.Pixel(0, 0))
	assert.False(t, icon.Pixel(1, 0))
}

func TestMono(t *testing.T) {
	m := NewMono()
	assert.Equal(t, image.Rect(0, 0, Width, Height), m.Bounds())

	m.Set(3, 4, color.Black)
	m.Set(5, 4, color.White)
	m.Set(-1, 0, color.Black)

	assert.Equal(t, On, m.At(3, 4))
	assert.Equal(t, Off, m.At(5, 4))
	assert.Equal(t, Off, m.At(Width, 0))
	assert.True(t, m.Icon().Pixel(3, 4))

	r, g, b, _ := m.At(3, 4).RGBA()
	assert.Equal(t, []uint32{0, 0, 0}, []uint32{r, g, b})
}
