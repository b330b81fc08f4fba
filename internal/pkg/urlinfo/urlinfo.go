// Package urlinfo classifies page paths into content categories and
// shortens referrer hostnames to brand names for display.
package urlinfo

import (
	"net/url"
	"strings"
)

// Page categories.
const (
	CategoryHome     = "home"
	CategoryBlog     = "blog"
	CategoryProduct  = "product"
	CategoryCategory = "category"
	CategoryDocs     = "docs"
	CategoryPricing  = "pricing"
	CategoryOther    = "other"
)

// Path prefixes checked in order; the first match wins.
var categoryPrefixes = []struct {
	prefix   string
	category string
}{
	{"/blog", CategoryBlog},
	{"/news", CategoryBlog},
	{"/articles", CategoryBlog},
	{"/post", CategoryBlog},
	{"/product", CategoryProduct},
	{"/products", CategoryProduct},
	{"/item", CategoryProduct},
	{"/shop", CategoryProduct},
	{"/category", CategoryCategory},
	{"/categories", CategoryCategory},
	{"/collections", CategoryCategory},
	{"/docs", CategoryDocs},
	{"/documentation", CategoryDocs},
	{"/guides", CategoryDocs},
	{"/help", CategoryDocs},
	{"/pricing", CategoryPricing},
	{"/plans", CategoryPricing},
}

// Well-known hostnames mapped to short brand names.
var knownBrands = map[string]string{
	"google.com":            "Google",
	"bing.com":              "Bing",
	"duckduckgo.com":        "DuckDuckGo",
	"yahoo.com":             "Yahoo",
	"baidu.com":             "Baidu",
	"yandex.ru":             "Yandex",
	"ecosia.org":            "Ecosia",
	"chatgpt.com":           "ChatGPT",
	"chat.openai.com":       "ChatGPT",
	"claude.ai":             "Claude",
	"gemini.google.com":     "Gemini",
	"perplexity.ai":         "Perplexity",
	"copilot.microsoft.com": "Copilot",
	"x.com":                 "X/Twitter",
	"twitter.com":           "X/Twitter",
	"t.co":                  "X/Twitter",
	"facebook.com":          "Facebook",
	"instagram.com":         "Instagram",
	"linkedin.com":          "LinkedIn",
	"tiktok.com":            "TikTok",
	"pinterest.com":         "Pinterest",
	"reddit.com":            "Reddit",
	"youtube.com":           "YouTube",
	"youtu.be":              "YouTube",
	"news.ycombinator.com":  "Hacker News",
	"producthunt.com":       "Product Hunt",
	"github.com":            "GitHub",
	"medium.com":            "Medium",
	"substack.com":          "Substack",
	"mail.google.com":       "Gmail",
	"outlook.live.com":      "Outlook",
}

// Classify maps a page path to its content category. The home page is
// "/" or an empty path; everything unmatched is "other".
func Classify(path string) string {
	path = strings.ToLower(strings.TrimSpace(path))
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	path = strings.TrimSuffix(path, "/")

	if path == "" {
		return CategoryHome
	}

	for _, entry := range categoryPrefixes {
		if path == entry.prefix || strings.HasPrefix(path, entry.prefix+"/") {
			return entry.category
		}
	}
	return CategoryOther
}

// BrandName returns a short display name for a referrer URL or hostname.
// Unknown hosts come back with "www." stripped and the first letter
// capitalized.
func BrandName(referrer string) string {
	hostname := hostnameOf(referrer)
	if hostname == "" {
		return ""
	}

	if name, ok := knownBrands[hostname]; ok {
		return name
	}

	if strings.HasPrefix(hostname, "www.") {
		withoutWWW := hostname[4:]
		if name, ok := knownBrands[withoutWWW]; ok {
			return name
		}
		hostname = withoutWWW
	}

	// Subdomains of a known brand keep the brand name.
	for domain, name := range knownBrands {
		if strings.HasSuffix(hostname, "."+domain) {
			return name
		}
	}

	return capitalizeFirst(hostname)
}

// hostnameOf extracts the lowercase hostname from a full URL or a bare
// host value.
func hostnameOf(referrer string) string {
	referrer = strings.ToLower(strings.TrimSpace(referrer))
	if referrer == "" {
		return ""
	}
	if strings.Contains(referrer, "://") {
		if parsed, err := url.Parse(referrer); err == nil && parsed.Hostname() != "" {
			return parsed.Hostname()
		}
	}
	if idx := strings.IndexAny(referrer, "/?#"); idx >= 0 {
		referrer = referrer[:idx]
	}
	return referrer
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
