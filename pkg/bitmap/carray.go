package bitmap

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const DefaultArrayName = "icon"

var hexByte = regexp.MustCompile(`0[xX]([0-9a-fA-F]+)`)

// FormatCArray renders icon as a C array definition with one row per line,
// ready to be included in a KallistiOS project.
func FormatCArray(name string, icon Icon) string {
	if name == "" {
		name = DefaultArrayName
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "unsigned char %s[] = {\n", name)
	for _, row := range lo.Chunk(icon[:], RowBytes) {
		sb.WriteString("   ")
		for _, b := range row {
			fmt.Fprintf(&sb, " 0x%02X,", b)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("};\n")
	return sb.String()
}

func WriteHeader(w io.Writer, name string, icon Icon) error {
	_, err := io.WriteString(w, FormatCArray(name, icon))
	return errors.WithStack(err)
}

// ParseCArray reads the initializer of the first C array in src. Anything
// before the opening brace is ignored.
func ParseCArray(src string) (Icon, error) {
	start := strings.IndexByte(src, '{')
	end := strings.LastIndexByte(src, '}')
	if start < 0 || end < start {
		return Icon{}, errors.New("no array initializer found")
	}

	matches := hexByte.FindAllStringSubmatch(src[start+1:end], -1)
	bs := make([]byte, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseUint(m[1], 16, 8)
		if err != nil {
			return Icon{}, errors.Errorf("%s is not a byte", m[0])
		}
		bs = append(bs, byte(v))
	}

	return FromBytes(bs)
}
