package probe

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/khanhnv2901/r2s-cli/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/r2s-cli/internal/shared/errors"
)

// bodyCaptureLimit caps how much of a response body is inspected for
// framework fingerprints.
const bodyCaptureLimit = 10 << 20

// Options configure a Prober.
type Options struct {
	// Timeout bounds each outbound request; zero means the default.
	Timeout time.Duration
	// RequestsPerSecond paces multi-URL runs; zero means 1 rps.
	RequestsPerSecond int
	// AllowPrivate disables the SSRF guard against loopback and private
	// addresses. Meant for scanning hosts you own on an internal network.
	AllowPrivate bool
}

// Prober performs the passive URL check: a single redirect-free GET whose
// response is searched for React fingerprints. The verdict is a plain
// boolean; this is a heuristic classifier, not an exploit check.
type Prober struct {
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.SugaredLogger
	opts    Options
}

// New builds a Prober. A nil logger is replaced with a no-op one.
func New(log *zap.SugaredLogger, opts Options) *Prober {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = constants.ProbeTimeoutSecs * time.Second
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Prober{
		client: &http.Client{
			Timeout: opts.Timeout,
			// Redirects are not followed so a redirect cannot bounce the
			// probe into an internal address.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		log:     log,
		opts:    opts,
	}
}

// ValidateURL rejects malformed URLs and targets that would turn the probe
// into an SSRF primitive: localhost aliases and addresses resolving to
// private, loopback or link-local ranges. Hostnames that fail to resolve are
// allowed through; the request itself will surface the failure.
func ValidateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return sharedErrors.ErrInvalidURL
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return sharedErrors.ErrInvalidURL
	}
	if hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1" {
		return sharedErrors.ErrLocalhostBlocked
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return nil
	}
	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			return sharedErrors.ErrPrivateIPBlocked
		}
	}
	return nil
}

// Check probes a single URL and reports whether React fingerprints were
// found. Validation failures and unreachable targets both yield false; the
// probe never returns an error.
func (p *Prober) Check(ctx context.Context, rawURL string) bool {
	if !p.opts.AllowPrivate {
		if err := ValidateURL(rawURL); err != nil {
			p.log.Errorw("URL validation failed", "url", rawURL, "error", err)
			return false
		}
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		p.log.Errorw("cannot build probe request", "url", rawURL, "error", err)
		return false
	}
	req.Header.Set("User-Agent", probeUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "close")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Errorw("could not reach URL", "url", rawURL, "error", err)
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, bodyCaptureLimit))
	if err != nil {
		p.log.Warnw("error reading probe response", "url", rawURL, "error", err)
	}

	found := hasReactIndicators(resp.Header, body)
	if found {
		p.log.Infof("potential React application detected at: %s", rawURL)
	} else {
		p.log.Infof("no clear React indicators found at: %s", rawURL)
	}
	return found
}

// hasReactIndicators looks for the "react" marker in the body, content type
// or server header, case-insensitively.
func hasReactIndicators(headers http.Header, body []byte) bool {
	if strings.Contains(strings.ToLower(string(body)), "react") {
		return true
	}
	if strings.Contains(strings.ToLower(headers.Get("Content-Type")), "react") {
		return true
	}
	return strings.Contains(strings.ToLower(headers.Get("Server")), "react")
}

func probeUserAgent() string {
	if runtime.GOOS == "windows" {
		return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	}
	return fmt.Sprintf("Mozilla/5.0 (X11; %s x86_64; rv:91.0) Gecko/20100101 Firefox/91.0", runtime.GOOS)
}
