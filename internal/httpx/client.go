package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// ClientConfig describes one scrape session: headers and cookies that help
// get past basic bot checks on the campaign host.
type ClientConfig struct {
	UserAgent       string
	ClearanceCookie string
	// CookieString is a raw "k1=v1; k2=v2" cookie list.
	CookieString string
	Timeout      time.Duration
}

type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error (status %d)", e.Status)
	}
	return fmt.Sprintf("fetch error (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client wraps resty with polite request spacing. It is built once per sync
// run and passed down; there is no shared process-wide session.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = "donor-wall-bot/1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	client := resty.New()
	client.SetTimeout(cfg.Timeout)

	jar, err := cookiejar.New(nil)
	if err == nil {
		client.SetCookieJar(jar)
	}
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(
		client.GetClient().Transport,
		cloudflarebp.Options{
			AddMissingHeaders: true,
			Headers: map[string]string{
				"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
				"Accept-Language": "en-US,en;q=0.9",
				"User-Agent":      cfg.UserAgent,
			},
		},
	)
	client.SetHeader("User-Agent", cfg.UserAgent)

	if cfg.ClearanceCookie != "" {
		client.SetCookie(&http.Cookie{Name: "cf_clearance", Value: cfg.ClearanceCookie})
	}
	for name, value := range parseCookieString(cfg.CookieString) {
		client.SetCookie(&http.Cookie{Name: name, Value: value})
	}

	return &Client{
		http:    client,
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// Get fetches rawURL and returns the response body. Non-2xx responses and
// transport failures come back as a *FetchError.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	res, err := c.http.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, 0, &FetchError{Err: err}
	}
	if !res.IsSuccess() {
		return nil, res.StatusCode(), &FetchError{Status: res.StatusCode()}
	}
	return res.Body(), res.StatusCode(), nil
}

func parseCookieString(raw string) map[string]string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	cookies := make(map[string]string)
	for _, part := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || name == "" {
			continue
		}
		cookies[name] = value
	}
	return cookies
}
