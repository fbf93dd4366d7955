// Package snapshot captures rendered card pages with headless Chrome.
//
// Rod downloads a managed Chromium on first use unless ROD_BROWSER_BIN
// names an installed binary. Set ROD_NO_SANDBOX=1 in containers.
package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-shipcard/internal/fileutil"
	"github.com/alnah/go-shipcard/internal/process"
)

// Format is the capture output type.
type Format string

// Capture formats.
const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// Defaults match the common social preview size.
const (
	DefaultWidth   = 1200
	DefaultHeight  = 630
	DefaultTimeout = 30 * time.Second
	maxDimension   = 4096
)

// Options controls a single capture.
type Options struct {
	Format Format
	Width  int // viewport width in CSS pixels, PNG only
	Height int // viewport height in CSS pixels, PNG only
}

func (o Options) withDefaults() (Options, error) {
	if o.Format == "" {
		o.Format = FormatPNG
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Format != FormatPNG && o.Format != FormatPDF {
		return o, fmt.Errorf("%w: unknown format %q", ErrInvalidOptions, o.Format)
	}
	if o.Width < 0 || o.Width > maxDimension || o.Height < 0 || o.Height > maxDimension {
		return o, fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	}
	return o, nil
}

// fileRenderer captures a local HTML file. Tests substitute it to run
// without a browser.
type fileRenderer interface {
	RenderFile(ctx context.Context, path string, opts Options) ([]byte, error)
	Close() error
}

var _ fileRenderer = (*rodRenderer)(nil)

// Renderer turns complete HTML documents into PNG or PDF bytes.
// It is safe for concurrent use; captures share one browser.
type Renderer struct {
	files fileRenderer
}

// Option configures a Renderer.
type Option func(*rodRenderer)

// WithTimeout bounds page load when ctx has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *rodRenderer) { r.timeout = d }
}

// WithBrowserBin uses an installed Chrome instead of the managed download.
func WithBrowserBin(path string) Option {
	return func(r *rodRenderer) { r.browserBin = path }
}

// New creates a Renderer. The browser starts on the first capture.
func New(opts ...Option) *Renderer {
	r := &rodRenderer{timeout: DefaultTimeout, browserBin: os.Getenv("ROD_BROWSER_BIN")}
	for _, opt := range opts {
		opt(r)
	}
	return &Renderer{files: r}
}

// Capture renders htmlContent and returns the image or document bytes.
func (r *Renderer) Capture(ctx context.Context, htmlContent string, opts Options) ([]byte, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return r.files.RenderFile(ctx, path, opts)
}

// Close shuts the browser down.
func (r *Renderer) Close() error {
	return r.files.Close()
}

// rodRenderer drives headless Chrome through go-rod.
type rodRenderer struct {
	mu         sync.Mutex
	browser    *rod.Browser
	launcher   *launcher.Launcher
	timeout    time.Duration
	browserBin string
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()
	if r.browserBin != "" {
		l = l.Bin(r.browserBin)
	}
	// Containers and CI runners cannot use the Chrome sandbox.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || r.browserBin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		process.Terminate(l.PID())
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = b
	r.launcher = l
	return b, nil
}

// Close releases the browser and any child processes.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		process.Terminate(r.launcher.PID())
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFile opens a local HTML file and captures it.
func (r *rodRenderer) RenderFile(ctx context.Context, path string, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if opts.Format == FormatPNG {
		err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             opts.Width,
			Height:            opts.Height,
			DeviceScaleFactor: 1,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: viewport: %v", ErrPageCreate, err)
		}
	}

	if err := page.Navigate("file://" + path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch opts.Format {
	case FormatPDF:
		return capturePDF(page)
	default:
		return capturePNG(page)
	}
}

func capturePNG(page *rod.Page) ([]byte, error) {
	img, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: screenshot: %v", ErrCapture, err)
	}
	return img, nil
}

func capturePDF(page *rod.Page) ([]byte, error) {
	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		MarginTop:       floatPtr(0.4),
		MarginBottom:    floatPtr(0.4),
		MarginLeft:      floatPtr(0.4),
		MarginRight:     floatPtr(0.4),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: pdf: %v", ErrCapture, err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrCapture, err)
	}
	return data, nil
}

func floatPtr(v float64) *float64 {
	return &v
}
