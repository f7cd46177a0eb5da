package album

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// MaxDownload bounds remote icon sources; anything larger is not an icon.
const MaxDownload = 8 << 20

func NewDownloader(logger *zap.Logger) *Downloader {
	return &Downloader{
		cli:      resty.New().SetDoNotParseResponse(true),
		log:      logger,
		progress: true,
	}
}

type Downloader struct {
	cli      *resty.Client
	log      *zap.Logger
	progress bool
}

// Quiet disables the terminal progress bar.
func (d *Downloader) Quiet() *Downloader {
	d.progress = false
	return d
}

func (d *Downloader) Get(url string) ([]byte, error) {
	resp, err := d.cli.R().Get(url)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if resp.IsError() {
		return nil, errors.Errorf("download %s: %s", url, resp.Status())
	}

	var dst io.Writer = io.Discard
	if d.progress {
		dst = progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Downloading %s", url))
	}

	var buf bytes.Buffer
	n, err := io.Copy(io.MultiWriter(&buf, dst), io.LimitReader(resp.RawBody(), MaxDownload+1))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if n > MaxDownload {
		return nil, errors.Errorf("download %s: larger than %d bytes", url, MaxDownload)
	}

	d.log.With(zap.String("url", url), zap.Int64("size", n)).Debug("downloaded")
	return buf.Bytes(), nil
}
