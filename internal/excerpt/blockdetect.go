package excerpt

import (
	"net/http"
	"strings"
)

// blockType describes the kind of anti-bot block detected.
type blockType string

const (
	blockNone       blockType = ""
	blockCloudflare blockType = "cloudflare"
	blockCaptcha    blockType = "captcha"
	blockJSShell    blockType = "js_shell"
)

// detectBlock checks an HTTP response for signs of anti-bot protection. A
// blocked page is served HTML, but none of it describes the business.
func detectBlock(resp *http.Response, body []byte) (bool, blockType) {
	if resp == nil {
		return false, blockNone
	}

	// Cloudflare: 403/503 with cf-* headers.
	if resp.StatusCode == 403 || resp.StatusCode == 503 {
		if resp.Header.Get("cf-ray") != "" || resp.Header.Get("cf-cache-status") != "" {
			return true, blockCloudflare
		}
		if resp.Header.Get("server") == "cloudflare" {
			return true, blockCloudflare
		}
	}

	lower := strings.ToLower(string(body))

	// Cloudflare challenge page markers.
	if strings.Contains(lower, "checking your browser") ||
		strings.Contains(lower, "cf-browser-verification") ||
		strings.Contains(lower, "cloudflare") && strings.Contains(lower, "challenge") {
		return true, blockCloudflare
	}

	// Captcha markers.
	if strings.Contains(lower, "captcha") ||
		strings.Contains(lower, "recaptcha") ||
		strings.Contains(lower, "hcaptcha") {
		return true, blockCaptcha
	}

	// JS-only shell: very small body with noscript or meta refresh.
	if len(body) < 2000 {
		if strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript") {
			return true, blockJSShell
		}
		if strings.Contains(lower, "meta http-equiv=\"refresh\"") {
			return true, blockJSShell
		}
	}

	return false, blockNone
}
