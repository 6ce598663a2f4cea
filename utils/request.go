package utils

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0"

type RestyOptions struct {
	BaseURL    string
	RetryCount int
	RetryWait  time.Duration
	Timeout    time.Duration
}

func NewRestyClient(opts RestyOptions) *resty.Client {
	if opts.RetryWait == 0 {
		opts.RetryWait = 3 * time.Second
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext(ctx, network, addr)
		},
		TLSHandshakeTimeout: 10 * time.Second,
	})
	client.SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetLogger(restyLogger{}).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Charset", "utf-8").
		SetHeader("User-Agent", userAgent)
	client.SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			if resp.StatusCode() == http.StatusTooManyRequests {
				if retryAfter := resp.Header().Get("Retry-After"); retryAfter != "" {
					if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
						return seconds, nil
					}
					if t, err := http.ParseTime(retryAfter); err == nil {
						return time.Until(t), nil
					}
				}
			}
			return opts.RetryWait, nil
		}).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})
	return client
}

// restyLogger routes resty's internal messages to logrus at debug level.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) { log.Debugf("resty: "+format, v...) }
func (restyLogger) Warnf(format string, v ...interface{})  { log.Debugf("resty: "+format, v...) }
func (restyLogger) Debugf(format string, v ...interface{}) { log.Debugf("resty: "+format, v...) }
