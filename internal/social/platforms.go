// Package social canonicalizes per-platform profile links. Stored values are
// always absolute URLs; the UI shows bare handles.
package social

import (
	"net/url"
	"strings"
)

// Platform describes one supported social platform.
type Platform struct {
	ID          string
	Label       string
	BaseURL     string
	Placeholder string
}

// PlatformWebsite has no canonical base beyond the scheme.
const PlatformWebsite = "website"

// legacyTwitterDomain is still accepted alongside x.com.
const legacyTwitterDomain = "twitter.com"

var platforms = []Platform{
	{ID: "github", Label: "GitHub", BaseURL: "https://github.com/", Placeholder: "username"},
	{ID: "linkedin", Label: "LinkedIn", BaseURL: "https://linkedin.com/in/", Placeholder: "username"},
	{ID: "twitter", Label: "X (Twitter)", BaseURL: "https://x.com/", Placeholder: "username"},
	{ID: PlatformWebsite, Label: "Personal Website", BaseURL: "https://", Placeholder: "example.com"},
}

// Platforms returns the closed set of supported platforms.
func Platforms() []Platform {
	return platforms
}

// Lookup finds a platform by id.
func Lookup(id string) (Platform, bool) {
	for _, p := range platforms {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}

// Known reports whether id names a supported platform.
func Known(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Normalize converts raw user input into the canonical absolute URL for the
// platform. Unknown platforms return the input unchanged.
func Normalize(platformID, raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return value
	}

	platform, ok := Lookup(platformID)
	if !ok {
		return value
	}

	if platform.ID == PlatformWebsite {
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return "https://" + value
		}
		return value
	}

	// Already canonical.
	if strings.HasPrefix(value, platform.BaseURL) {
		return value
	}

	// Pasted without a scheme, e.g. "github.com/foo".
	if strings.HasPrefix(strings.ToLower(value), bareDomainPath(platform.BaseURL)) {
		return "https://" + value
	}

	// Bare handle.
	return platform.BaseURL + strings.TrimPrefix(value, "@")
}

// InputValue is the inverse of Normalize for display purposes: it strips the
// platform's base URL so only the handle/path remains. Website values are
// shown verbatim.
func InputValue(platformID, stored string) string {
	platform, ok := Lookup(platformID)
	if !ok || platform.ID == PlatformWebsite {
		return stored
	}
	if strings.HasPrefix(stored, platform.BaseURL) {
		return strings.TrimPrefix(stored, platform.BaseURL)
	}
	return stored
}

// IsValid reports whether a stored value is an acceptable link for the
// platform. A value equal to the bare base URL (empty handle) is invalid, as
// is any URL whose hostname does not contain the platform's domain.
func IsValid(platformID, value string) bool {
	if value == "" {
		return true
	}

	platform, ok := Lookup(platformID)
	if !ok {
		return false
	}

	if platform.ID != PlatformWebsite && value == platform.BaseURL {
		return false
	}

	toCheck := value
	if !strings.HasPrefix(toCheck, "http://") && !strings.HasPrefix(toCheck, "https://") {
		toCheck = "https://" + toCheck
	}

	parsed, err := url.Parse(toCheck)
	if err != nil || parsed.Hostname() == "" {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

	if platform.ID == PlatformWebsite {
		return true
	}

	required := bareDomain(platform.BaseURL)
	if strings.Contains(host, required) {
		return true
	}
	return platform.ID == "twitter" && strings.Contains(host, legacyTwitterDomain)
}

// bareDomainPath strips the scheme and leading www from a base URL, keeping
// the path ("linkedin.com/in/").
func bareDomainPath(baseURL string) string {
	s := strings.TrimPrefix(baseURL, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.TrimPrefix(s, "www.")
}

// bareDomain returns only the hostname part of a base URL.
func bareDomain(baseURL string) string {
	s := bareDomainPath(baseURL)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}
