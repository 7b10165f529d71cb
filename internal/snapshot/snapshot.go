// Package snapshot captures a rendered flow graph page as a PNG using headless Chrome.
package snapshot

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/cockroachdb/errors"

	"github.com/psidex/flowmap/internal/flowgraph"
	"github.com/psidex/flowmap/internal/graphs"
)

// Settle is how long to wait after the page has loaded for chart animations to finish.
const Settle = 1500 * time.Millisecond

type Options struct {
	Width   int64
	Height  int64
	Timeout time.Duration
}

// Snapshotter renders a view to a temporary HTML file and screenshots it.
type Snapshotter struct {
	renderer graphs.FileRenderer
	opts     Options
	logger   *slog.Logger
}

func NewSnapshotter(renderer graphs.FileRenderer, opts Options, logger *slog.Logger) *Snapshotter {
	return &Snapshotter{renderer: renderer, opts: opts, logger: logger}
}

// writePage renders v into dir and returns the file:// URL of the page.
func (s Snapshotter) writePage(dir string, v *flowgraph.View) (string, error) {
	path, err := graphs.RenderToFile(s.renderer, v, filepath.Join(dir, "flowmap"))
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// Capture returns the PNG screenshot of v as rendered by the snapshotter's renderer.
func (s Snapshotter) Capture(ctx context.Context, v *flowgraph.View) ([]byte, error) {
	startTime := time.Now()

	dir, err := os.MkdirTemp("", "flowmap-snapshot-")
	if err != nil {
		return nil, errors.Wrap(err, "creating snapshot dir")
	}
	defer os.RemoveAll(dir)

	pageURL, err := s.writePage(dir, v)
	if err != nil {
		return nil, err
	}

	timeoutCtx, timeoutCancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer timeoutCancel()

	chromeCtx, cancel := chromedp.NewContext(timeoutCtx)
	defer cancel()

	// The chart page pulls its scripts from a CDN; count what that costs. Listeners
	// run on chromedp's event goroutine.
	var downloadedBytes atomic.Int64
	countBytesAction := func(ctx context.Context) error {
		chromedp.ListenTarget(ctx, countBytes(&downloadedBytes))
		return nil
	}

	var png []byte
	err = chromedp.Run(chromeCtx,
		network.Enable(),
		chromedp.ActionFunc(countBytesAction),
		emulation.SetDeviceMetricsOverride(s.opts.Width, s.opts.Height, 1, false),
		chromedp.Navigate(pageURL),
		chromedp.Sleep(Settle),
		// Quality 100 selects PNG.
		chromedp.FullScreenshot(&png, 100),
	)
	if err != nil {
		return nil, errors.Wrap(err, "capturing snapshot")
	}

	s.logger.Debug("snapshot captured",
		"region", v.Graph.Anchor, "purpose", v.Graph.Purpose,
		"bytes", len(png), "downloaded", downloadedBytes.Load(), "elapsed", time.Since(startTime))
	return png, nil
}

// countBytes returns a target listener adding the size of every finished network
// load to total.
func countBytes(total *atomic.Int64) func(ev interface{}) {
	return func(ev interface{}) {
		switch ev := ev.(type) {
		case *network.EventLoadingFinished:
			total.Add(int64(ev.EncodedDataLength))
		}
	}
}

// CaptureToFile writes the snapshot of v to filename plus ".png" and returns the
// full path written.
func (s Snapshotter) CaptureToFile(ctx context.Context, v *flowgraph.View, filename string) (string, error) {
	png, err := s.Capture(ctx, v)
	if err != nil {
		return "", err
	}
	filename += ".png"
	if err := os.WriteFile(filename, png, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", filename)
	}
	return filename, nil
}
