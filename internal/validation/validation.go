// Package validation checks request input and entry URLs.
package validation

import (
	"net"
	"net/url"
	"strings"
	"unicode/utf8"

	"fedspeak/internal/models"
)

// MaxTermLength bounds single acronym or name lookups.
const MaxTermLength = 200

// TooLong reports whether s has more than max characters. A non-positive
// max disables the check.
func TooLong(s string, max int) bool {
	return max > 0 && utf8.RuneCountInString(s) > max
}

// ValidateLookup checks the part of a request that will be resolved: the
// term of a single lookup or the text of a scan.
func ValidateLookup(q models.Query, maxText int) (bool, string) {
	switch q.Kind {
	case models.QuerySingle:
		if TooLong(q.Term, MaxTermLength) {
			return false, "Lookup term is too long"
		}
	case models.QueryScan:
		if TooLong(q.Term, maxText) {
			return false, "Text is too long to scan"
		}
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// blockedIPs are cloud metadata endpoints (AWS/GCP and Azure).
var blockedIPs = []net.IP{
	net.ParseIP("169.254.169.254"),
	net.ParseIP("168.63.129.16"),
}

// IsPrivateIP checks if an IP address is in a private/reserved range.
// Used to prevent SSRF attacks against internal networks.
func IsPrivateIP(ip net.IP) bool {
	if ip == nil {
		return false
	}

	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsPrivate() || ip.IsUnspecified() {
		return true
	}

	for _, blocked := range blockedIPs {
		if ip.Equal(blocked) {
			return true
		}
	}

	return false
}

// IsPrivateHost checks if a hostname resolves to a private IP address.
// Unresolvable hosts are treated as private.
func IsPrivateHost(host string) (bool, error) {
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return true, err
	}

	for _, ip := range ips {
		if IsPrivateIP(ip) {
			return true, nil
		}
	}

	return false, nil
}

// ValidateURLForHealthCheck validates a URL is safe to request from the server.
// Blocks private IPs, localhost, and cloud metadata endpoints.
func ValidateURLForHealthCheck(urlStr string) (bool, string) {
	valid, msg := ValidateURL(urlStr)
	if !valid {
		return false, msg
	}

	u, _ := url.Parse(urlStr)

	isPrivate, err := IsPrivateHost(u.Host)
	if err != nil {
		return false, "Cannot resolve hostname"
	}
	if isPrivate {
		return false, "URL points to a private or reserved IP address"
	}

	return true, ""
}
