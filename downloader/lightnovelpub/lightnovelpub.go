package lightnovelpub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"lightnovel-reader/extractor"
	"lightnovel-reader/model"
	"lightnovel-reader/utils"
)

const DefaultBaseURL = "https://lightnovelpub.me"

type Options struct {
	BaseURL    string
	RetryCount int
	Timeout    time.Duration
	// Render fetches pages through a headless browser.
	Render bool
}

type LightNovelPub struct {
	baseURL     string
	restyClient *resty.Client
	browser     renderer
}

// renderer fetches a page through a browser and reports its HTTP status.
type renderer interface {
	render(ctx context.Context, target string) (string, int, error)
	close()
}

var _ model.Source = (*LightNovelPub)(nil)

func New(opts Options) (*LightNovelPub, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	l := &LightNovelPub{
		baseURL: opts.BaseURL,
		restyClient: utils.NewRestyClient(utils.RestyOptions{
			BaseURL:    opts.BaseURL,
			RetryCount: opts.RetryCount,
			Timeout:    opts.Timeout,
		}),
	}

	if opts.Render {
		b, err := newBrowser(opts.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to init browser: %w", err)
		}
		l.browser = b
	}
	return l, nil
}

// Close releases the headless browser, if any.
func (l *LightNovelPub) Close() error {
	if l.browser != nil {
		l.browser.close()
	}
	return nil
}

func (l *LightNovelPub) Latest(ctx context.Context) ([]model.Novel, error) {
	log.Debugf("Getting latest novels")
	return l.listing(ctx, "/", nil)
}

func (l *LightNovelPub) Popular(ctx context.Context) ([]model.Novel, error) {
	log.Debugf("Getting popular novels")
	return l.listing(ctx, "/popular", nil)
}

func (l *LightNovelPub) Search(ctx context.Context, query string) ([]model.Novel, error) {
	log.Debugf("Searching novels for %q", query)
	return l.listing(ctx, "/search", url.Values{"q": {query}})
}

func (l *LightNovelPub) Novel(ctx context.Context, novelID string) (*model.DetailPage, error) {
	log.Debugf("Getting novel %v", novelID)

	body, err := l.fetch(ctx, "/novel/"+url.PathEscape(novelID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get novel info: %w", err)
	}
	page, err := extractor.Detail(body)
	if err != nil {
		return nil, err
	}
	if page.Novel.ID == "" {
		page.Novel.ID = novelID
	}
	return page, nil
}

func (l *LightNovelPub) Chapter(ctx context.Context, novelID, chapterID string) (*model.ChapterPage, error) {
	log.Debugf("Getting chapter %v of novel %v", chapterID, novelID)

	path := fmt.Sprintf("/novel/%s/chapter/%s", url.PathEscape(novelID), url.PathEscape(chapterID))
	body, err := l.fetch(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	page, err := extractor.Chapter(body)
	if err != nil {
		return nil, err
	}
	if page.Chapter.ID == "" {
		page.Chapter.ID = chapterID
	}
	if page.Novel.ID == "" {
		page.Novel.ID = novelID
	}
	return page, nil
}

func (l *LightNovelPub) listing(ctx context.Context, path string, query url.Values) ([]model.Novel, error) {
	body, err := l.fetch(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get novel list: %w", err)
	}
	return extractor.Listing(body)
}

// fetch returns the UTF-8 body of the page at path. Any transport failure or
// non-2xx status is reported as a *FetchError.
func (l *LightNovelPub) fetch(ctx context.Context, path string, query url.Values) (io.Reader, error) {
	if l.browser != nil {
		target := l.baseURL + path
		if len(query) > 0 {
			target += "?" + query.Encode()
		}
		html, status, err := l.browser.render(ctx, target)
		if err != nil {
			return nil, &FetchError{URL: target, StatusCode: status, Err: err}
		}
		if status >= http.StatusBadRequest {
			return nil, &FetchError{URL: target, StatusCode: status, Err: fmt.Errorf("%d %s", status, http.StatusText(status))}
		}
		return strings.NewReader(html), nil
	}

	req := l.restyClient.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, &FetchError{URL: l.baseURL + path, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &FetchError{URL: resp.Request.URL, StatusCode: resp.StatusCode(), Err: fmt.Errorf("%s", resp.Status())}
	}

	body, err := utils.DecodeHTML(resp.Body(), resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, &FetchError{URL: resp.Request.URL, StatusCode: resp.StatusCode(), Err: err}
	}
	return body, nil
}

// Image downloads an image such as a cover. Relative URLs resolve against the
// base URL.
func (l *LightNovelPub) Image(ctx context.Context, imgURL string) ([]byte, error) {
	log.Debugf("Getting img %v", imgURL)
	resp, err := l.restyClient.R().SetContext(ctx).SetHeader("Referer", l.baseURL).Get(imgURL)
	if err != nil {
		return nil, &FetchError{URL: imgURL, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &FetchError{URL: imgURL, StatusCode: resp.StatusCode(), Err: fmt.Errorf("%s", resp.Status())}
	}
	return resp.Body(), nil
}
