package lightnovelpub

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

// browser is a headless Chrome instance shared by every rendered fetch of a client.
type browser struct {
	timeout time.Duration

	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func newBrowser(timeout time.Duration) (*browser, error) {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0"),
	)

	b := &browser{timeout: timeout}
	b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	b.browserCtx, b.browserCancel = chromedp.NewContext(b.allocCtx)

	// warm up so the first fetch doesn't pay for the browser start
	if err := chromedp.Run(b.browserCtx, chromedp.Navigate("about:blank")); err != nil {
		b.close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	log.Debug("Browser initialized successfully")
	return b, nil
}

func (b *browser) close() {
	if b.browserCancel != nil {
		b.browserCancel()
	}
	if b.allocCancel != nil {
		b.allocCancel()
	}
}

// documentStatus records the HTTP status of the first document response
// seen in a tab, which is the page itself rather than any frame inside it.
type documentStatus struct {
	status atomic.Int64
}

func (d *documentStatus) listen(ev interface{}) {
	if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument && e.Response != nil {
		d.status.CompareAndSwap(0, e.Response.Status)
	}
}

func (d *documentStatus) get() int {
	return int(d.status.Load())
}

// render loads target in a new tab and returns the resulting document markup
// with the HTTP status of the page. The status is 0 when no response was seen.
func (b *browser) render(ctx context.Context, target string) (string, int, error) {
	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	defer cancelTab()
	tabCtx, cancel := context.WithTimeout(tabCtx, b.timeout)
	defer cancel()

	// stop the tab when the caller gives up
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var status documentStatus
	chromedp.ListenTarget(tabCtx, status.listen)

	var html string
	err := chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", status.get(), fmt.Errorf("chromedp execution failed: %w", err)
	}
	return html, status.get(), nil
}
