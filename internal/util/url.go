package util

import (
	"net/url"
	"strings"
)

// coupangDomains lists hosts where NormalizeURL applies Coupang-specific
// normalization. Deal IDs are derived from links, so normalization keeps
// them stable when tracking parameters change between crawls.
var coupangDomains = []string{
	"coupang.com",
	"www.coupang.com",
	"m.coupang.com",
}

func isCoupangDomain(host string) bool {
	for _, d := range coupangDomains {
		if host == d {
			return true
		}
	}
	return false
}

// trackingParams are query parameters that vary per crawl session and carry
// no product identity.
var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"q", "searchId", "rank", "traceid", "wPcid", "wRef", "wTime",
}

// NormalizeURL canonicalizes a Coupang product link: https scheme, the
// desktop host, no trailing slash, no tracking parameters. Non-Coupang URLs
// pass through untouched.
func NormalizeURL(rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, err
	}

	if !isCoupangDomain(parsedURL.Hostname()) {
		return rawURL, nil
	}

	parsedURL.Scheme = "https"
	parsedURL.Host = "www.coupang.com"
	if len(parsedURL.Path) > 1 && strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path = parsedURL.Path[:len(parsedURL.Path)-1]
		// Clear RawPath so String() regenerates the path without the slash
		parsedURL.RawPath = ""
	}

	queryParams := parsedURL.Query()
	for _, param := range trackingParams {
		queryParams.Del(param)
	}
	parsedURL.RawQuery = queryParams.Encode()
	return parsedURL.String(), nil
}
