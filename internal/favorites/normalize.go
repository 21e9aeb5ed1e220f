package favorites

import "net/url"

// Normalize returns the canonical form of u used as a favorites key.
// An "http" scheme becomes "https"; every other part of the URL, and every
// other scheme, is left as is. u itself is never modified.
func Normalize(u *url.URL) *url.URL {
	n := *u
	if n.Scheme == "http" {
		n.Scheme = "https"
	}
	return &n
}

// Usable reports whether u can be a favorite: an absolute URL with a host.
func Usable(u *url.URL) bool {
	return u.IsAbs() && u.Host != ""
}

// key returns the set key for an already normalized URL.
func key(u *url.URL) string {
	return u.String()
}
