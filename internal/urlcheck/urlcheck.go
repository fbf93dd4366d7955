// Package urlcheck holds the URL policy shared by the card parser,
// the Markdown renderer and the URL resolver.
package urlcheck

import (
	"net/url"
	"regexp"
	"strings"
)

// AllowedImageHosts lists the hosts images may be loaded from.
// Subdomains of each host are accepted too.
var AllowedImageHosts = []string{
	"raw.githubusercontent.com",
	"user-images.githubusercontent.com",
	"avatars.githubusercontent.com",
	"i.imgur.com",
}

// absolutePrefixes mark a value as an absolute reference rather than a repo path.
var absolutePrefixes = []string{"http://", "https://", "data:"}

// schemePattern matches any leading URL scheme ("javascript:", "ftp:", ...).
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// IsHTTPS reports whether s parses as an absolute URL with the https scheme and a host.
func IsHTTPS(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host != "" && u.Hostname() != ""
}

// IsAbsolute reports whether s starts with http://, https:// or data:
// (case-insensitive). Absolute values are never resolved against a repository.
func IsAbsolute(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range absolutePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// IsRelativePath reports whether s is a safe repository-relative path:
// not absolute, no other URL scheme, not protocol-relative and free of "..".
func IsRelativePath(s string) bool {
	if s == "" || IsAbsolute(s) {
		return false
	}
	if schemePattern.MatchString(s) {
		return false
	}
	if strings.HasPrefix(s, "//") || strings.HasPrefix(s, `\\`) {
		return false
	}
	return !strings.Contains(s, "..")
}

// IsAllowedImageHost reports whether host equals or is a subdomain of an allowed host.
func IsAllowedImageHost(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" {
		return false
	}
	for _, allowed := range AllowedImageHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

// IsAllowedImageURL reports whether s is an https URL on an allowed image host.
func IsAllowedImageURL(s string) bool {
	if !IsHTTPS(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return IsAllowedImageHost(u.Hostname())
}

// IsValidImageRef accepts either a safe relative path or an allowed absolute image URL.
func IsValidImageRef(s string) bool {
	if IsRelativePath(s) {
		return true
	}
	return IsAllowedImageURL(s)
}
