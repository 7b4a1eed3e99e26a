package article

import (
	"net/url"
	"strings"
)

// IsTrusted reports whether rawURL starts with prefix and stays on the
// prefix's host. The host check stops prefixes without a trailing path from
// matching look-alike hosts (https://news.example.com.evil.io).
func IsTrusted(rawURL, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(rawURL, prefix) {
		return false
	}
	p, err := url.Parse(prefix)
	if err != nil {
		return false
	}
	return IsSameDomain(rawURL, p.Host)
}

// IsSameDomain checks if the given URL belongs to the specified domain.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == domain
}

// NormalizeURL strips the fragment, which never reaches the server.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.Fragment = ""
	return parsed.String()
}
