// Package snapshot captures a rendered graph page as a PNG image using a
// headless browser.
//
// The interactive HTML output runs its physics simulation client side, so a
// faithful static image requires actually loading the page. Capture writes
// the page to a temporary file, opens it in headless Chrome via chromedp,
// waits for the layout to settle, and screenshots the viewport. A Chrome or
// Chromium binary must be installed on the host.
package snapshot

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
)

// Defaults applied by Capture when an Options field is zero.
const (
	DefaultWidth   = 1600
	DefaultHeight  = 1000
	DefaultSettle  = 2 * time.Second
	DefaultTimeout = 60 * time.Second
)

// Quality 100 selects lossless PNG capture instead of JPEG.
const pngQuality = 100

// Options configure a capture.
type Options struct {
	// Width and Height set the browser viewport in pixels.
	Width  int
	Height int

	// Settle is how long the physics simulation runs before the shot.
	Settle time.Duration

	// Timeout bounds the whole browser session, including startup.
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Settle <= 0 {
		o.Settle = DefaultSettle
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Capture renders the HTML page in headless Chrome and returns a PNG of the
// viewport. The page bytes are served from a temporary file, so pages using
// a CDN script tag for the visualization runtime need network access from
// the browser.
func Capture(ctx context.Context, page []byte, o Options) ([]byte, error) {
	o = o.withDefaults()

	dir, err := os.MkdirTemp("", "dot2html-snapshot-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "graph.html")
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write page")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	browserCtx, cancelBrowser := chromedp.NewContext(timeoutCtx)
	defer cancelBrowser()

	var shot []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(o.Width), int64(o.Height)),
		chromedp.Navigate(fileURL(path)),
		chromedp.Sleep(o.Settle),
		chromedp.FullScreenshot(&shot, pngQuality),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "capture page")
	}
	return shot, nil
}

func fileURL(path string) string {
	u := url.URL{Scheme: "file", Path: path}
	return u.String()
}
