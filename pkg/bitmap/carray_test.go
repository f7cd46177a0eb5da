package bitmap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCArray(t *testing.T) {
	var icon Icon
	icon[0] = 0xAB
	icon[Size-1] = 0x01

	out := FormatCArray("", icon)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.Len(t, lines, Height+2)
	assert.Equal(t, "unsigned char icon[] = {", lines[0])
	assert.Equal(t, "    0xAB, 0x00, 0x00, 0x00, 0x00, 0x00,", lines[1])
	assert.Equal(t, "    0x00, 0x00, 0x00, 0x00, 0x00, 0x01,", lines[Height])
	assert.Equal(t, "};", lines[Height+1])
}

func TestCArrayRoundTrip(t *testing.T) {
	src := randomIcon(t, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, "vmu_logo", src))
	assert.True(t, strings.HasPrefix(buf.String(), "unsigned char vmu_logo[] = {"))

	got, err := ParseCArray(buf.String())
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestParseCArrayEditorOutput(t *testing.T) {
	// trailing spaces and a lowercase prefix, as the editor and hand edits leave them
	var sb strings.Builder
	sb.WriteString("// logo\nconst uint8 logo[192] = {")
	for i := 0; i < Size; i++ {
		if i%RowBytes == 0 {
			sb.WriteString("\n    ")
		}
		sb.WriteString("0xff, ")
	}
	sb.WriteString("\n};")

	icon, err := ParseCArray(sb.String())
	require.NoError(t, err)
	for _, b := range icon {
		require.Equal(t, byte(0xFF), b)
	}
}

func TestParseCArrayErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		length bool
	}{
		{"no braces", "0x00, 0x01", false},
		{"empty", "unsigned char icon[] = {};", true},
		{"short", "unsigned char icon[] = { 0x00, 0x01 };", true},
		{"wide literal", "unsigned char icon[] = {" + strings.Repeat(" 0x01,", Size) + " 0x100 };", false},
		{"wide literal in place", "unsigned char icon[] = {" + strings.Repeat(" 0x01,", Size-1) + " 0x1FF };", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCArray(tt.src)
			require.Error(t, err)
			assert.Equal(t, tt.length, errors.Is(err, ErrInvalidLength))
		})
	}
}
