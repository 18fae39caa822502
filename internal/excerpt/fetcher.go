// Package excerpt fetches a candidate's website and reduces it to a short
// plaintext excerpt for the verification prompt. Fetch failures never fail
// the candidate; they degrade to a sentinel the verifier can reason about.
package excerpt

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Sentinels stand in for an excerpt when the website yields nothing usable.
// They are real prompt content: the verifier sees them verbatim.
const (
	SentinelNoWebsite   = "No website listed; skipped."
	SentinelUnreachable = "Website unreachable."
	SentinelNoContent   = "Website reachable but no usable content."
)

const (
	defaultTimeout  = 4 * time.Second
	defaultMaxChars = 1000
	maxBodyBytes    = 512 * 1024
	userAgent       = "Mozilla/5.0 (compatible; ZoneScoutBot/1.0)"
)

// Fetcher produces website excerpts.
type Fetcher struct {
	client   *http.Client
	maxChars int
}

// NewFetcher creates a Fetcher. A zero timeout or maxChars falls back to
// the defaults (4s, 1000 chars).
func NewFetcher(timeout time.Duration, maxChars int) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxChars: maxChars,
	}
}

// Excerpt fetches the website and returns plaintext capped at maxChars, or
// a sentinel. It never returns an error: a slow or hostile website costs
// one candidate its excerpt, not the run.
func (f *Fetcher) Excerpt(ctx context.Context, website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return SentinelNoWebsite
	}
	if u, err := url.Parse(website); err != nil || u.Scheme == "" || u.Host == "" {
		return SentinelNoWebsite
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, website, nil)
	if err != nil {
		return SentinelUnreachable
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		zap.L().Debug("excerpt fetch failed", zap.String("url", website), zap.Error(err))
		return SentinelUnreachable
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return SentinelUnreachable
	}

	// The server answered, so the site is reachable; blocks and error
	// statuses mean it just served nothing about the business.
	if blocked, kind := detectBlock(resp, body); blocked {
		zap.L().Debug("excerpt blocked", zap.String("url", website), zap.String("block", string(kind)))
		return SentinelNoContent
	}
	if resp.StatusCode >= 400 {
		return SentinelNoContent
	}

	html := decodeCharset(body, resp.Header.Get("Content-Type"))
	text := stripHTML(html)
	if text == "" {
		return SentinelNoContent
	}

	return truncate(text, f.maxChars)
}

// decodeCharset converts the body to UTF-8 using the charset declared in
// the Content-Type header. Unknown or missing charsets pass through as-is.
func decodeCharset(body []byte, contentType string) string {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return string(body)
	}
	name := params["charset"]
	if name == "" || strings.EqualFold(name, "utf-8") {
		return string(body)
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return string(body)
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}

var (
	blockTagRes = func() map[string]*regexp.Regexp {
		m := make(map[string]*regexp.Regexp)
		for _, tag := range []string{"script", "style", "nav", "footer"} {
			m[tag] = regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
		}
		return m
	}()
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// stripHTML removes scripts/styles/nav/footer, strips tags, decodes common
// entities, and collapses whitespace.
func stripHTML(html string) string {
	for _, re := range blockTagRes {
		html = re.ReplaceAllString(html, "")
	}

	html = tagRe.ReplaceAllString(html, " ")

	r := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	html = r.Replace(html)

	html = spaceRe.ReplaceAllString(html, " ")

	return strings.TrimSpace(html)
}

// truncate cuts text at max characters without splitting a rune.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
