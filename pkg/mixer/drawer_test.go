package mixer

import (
	"image"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vmuicon/pkg/bitmap"
)

type failing struct{}

func (failing) Name() string { return "failing" }

func (failing) Process(image.Image) (image.Image, error) {
	return nil, errors.New("boom")
}

func TestCanvasBlank(t *testing.T) {
	icon, err := NewDrawer().Canvas(nil)
	require.NoError(t, err)
	assert.Equal(t, bitmap.Icon{}, icon)
}

func TestCanvasInvert(t *testing.T) {
	d := NewDrawer(WithEffect(EffectInvert()))
	icon, err := d.Canvas(nil)
	require.NoError(t, err)
	for _, b := range icon {
		require.Equal(t, byte(0xFF), b)
	}
}

func TestCanvasText(t *testing.T) {
	d := NewDrawer(WithEffect(EffectText("VMU")))
	icon, err := d.Canvas(nil)
	require.NoError(t, err)
	assert.NotEqual(t, bitmap.Icon{}, icon)

	// glyphs stay inside the vertical band of the single line
	for x := 0; x < bitmap.Width; x++ {
		assert.False(t, icon.Pixel(x, 0), "pixel (%d, 0)", x)
		assert.False(t, icon.Pixel(x, bitmap.Height-1), "pixel (%d, %d)", x, bitmap.Height-1)
	}
}

func TestCanvasTextTooManyLines(t *testing.T) {
	d := NewDrawer(WithEffect(EffectText("a\nb\nc")))
	_, err := d.Canvas(nil)
	assert.Error(t, err)
}

func TestCanvasEffectError(t *testing.T) {
	d := NewDrawer(WithEffect(EffectInvert(), failing{}))
	assert.Equal(t, []string{"invert", "failing"}, d.Effects())

	_, err := d.Canvas(nil)
	assert.EqualError(t, err, "effect failing: boom")
}

func TestCanvasEncodeOptions(t *testing.T) {
	d := NewDrawer(WithEncode(bitmap.WithInvert(true)))
	icon, err := d.Canvas(nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), icon[0])
}
