package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"gitlab.com/pagetest.net/internal/config"
	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/ports/secondary"
	"gitlab.com/pagetest.net/internal/static/errs"
)

var _ secondary.Renderer = (*ChromeRenderer)(nil)

// ChromeRenderer starts a fresh headless browser for every page it renders.
type ChromeRenderer struct {
	cfg    *config.RendererConfig
	logger primary.Logger
}

func NewChromeRenderer(cfg *config.RendererConfig, logger primary.Logger) *ChromeRenderer {
	return &ChromeRenderer{cfg: cfg, logger: logger}
}

func (r *ChromeRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
	}
	if r.cfg.Headless {
		opts = append(opts, chromedp.Headless)
	}
	if r.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.cfg.ChromePath))
	}
	if r.cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(r.cfg.UserAgent))
	}
	if r.cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

// Render navigates to url, waits until the DOM settles and returns the outer
// HTML of the document element.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer allocCancel()
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()

	started := time.Now()
	resp, err := chromedp.RunResponse(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		r.logger.Error("Navigation failed", "url", url, "error", err)
		return "", errs.RenderError("navigate "+url, err)
	}
	if err := checkResponse(resp); err != nil {
		r.logger.Error("Navigation returned an error page", "url", url, "error", err)
		return "", errs.RenderError("navigate "+url, err)
	}

	report, err := waitStable(tabCtx, evaluateProbe, r.cfg.Settle, r.cfg.MaxPolls)
	if err != nil {
		return "", errs.RenderError("wait for "+url, err)
	}
	if !report.Stable {
		r.logger.Warn("Page did not settle, capturing current DOM", "url", url, "polls", report.Polls, "nodes", report.Nodes)
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", errs.RenderError("capture "+url, err)
	}
	if strings.TrimSpace(html) == "" {
		return "", errs.RenderError("capture "+url, fmt.Errorf("page rendered no html"))
	}

	r.logger.Info("Page rendered",
		"url", url,
		"status", statusOf(resp),
		"nodes", report.Nodes,
		"polls", report.Polls,
		"bytes", len(html),
		"duration", time.Since(started))
	return html, nil
}

// checkResponse rejects 4xx and 5xx main documents. Navigations without an
// HTTP response (data: or file: URLs) pass.
func checkResponse(resp *network.Response) error {
	if resp == nil {
		return nil
	}
	if resp.Status >= 400 {
		return fmt.Errorf("main document returned %d %s", resp.Status, resp.StatusText)
	}
	return nil
}

func statusOf(resp *network.Response) int64 {
	if resp == nil {
		return 0
	}
	return resp.Status
}
