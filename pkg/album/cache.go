package album

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"

	"vmuicon/pkg/bitmap"
)

// NewCache keeps converted icons as raw .bin files. A nil fs disables it.
func NewCache(fs afero.Fs) *Cache {
	return &Cache{fs: fs}
}

type Cache struct {
	fs afero.Fs
}

func (c *Cache) dirname(name string) string {
	return strings.ReplaceAll(strings.TrimPrefix(path.Clean("/"+name), "/"), "/", "_")
}

// filename includes the source mtime so edited icons are converted again,
// and the encode variant so differently configured libraries sharing one
// cache never see each other's results.
func (c *Cache) filename(name, variant string, mod time.Time) string {
	if variant == "" {
		return fmt.Sprintf("%s/%d.bin", c.dirname(name), mod.UnixNano())
	}
	return fmt.Sprintf("%s/%s-%d.bin", c.dirname(name), variant, mod.UnixNano())
}

func (c *Cache) LoadIcon(name, variant string, mod time.Time) (bool, bitmap.Icon, error) {
	if c == nil || c.fs == nil {
		return false, bitmap.Icon{}, nil
	}

	bs, err := afero.ReadFile(c.fs, c.filename(name, variant, mod))
	if err != nil {
		if os.IsNotExist(err) {
			return false, bitmap.Icon{}, nil
		} else {
			return false, bitmap.Icon{}, err
		}
	}

	icon, err := bitmap.FromBytes(bs)
	if err != nil {
		return false, icon, err
	}

	return true, icon, nil
}

func (c *Cache) SaveIcon(name, variant string, mod time.Time, icon bitmap.Icon) error {
	if c == nil || c.fs == nil {
		return nil
	}

	dir := c.dirname(name)
	file := c.filename(name, variant, mod)

	if exists, err := afero.DirExists(c.fs, dir); err != nil {
		return err
	} else if !exists {
		if err2 := c.fs.MkdirAll(dir, 0755); err2 != nil {
			return err2
		}
	}

	return afero.WriteFile(c.fs, file, icon[:], 0644)
}
