// Package theme resolves the light/dark display preference.
//
// The preference is tri-state. Unset follows the operating system signal on
// every request; Light and Dark are explicit choices that stay in force until
// reset, so OS changes are not observed while one is stored.
package theme

import (
	"net/http"
	"strings"
)

const (
	// CookieName is the single slot the preference is persisted in.
	CookieName = "dark-mode"

	// HintHeader is the client hint carrying the OS colour scheme.
	HintHeader = "Sec-CH-Prefers-Color-Scheme"

	faviconBase = "https://github.githubassets.com/favicons/"

	// cookieMaxAge keeps an explicit choice for a year.
	cookieMaxAge = 365 * 24 * 60 * 60
)

// Preference is the stored choice.
type Preference int

const (
	Unset Preference = iota
	Light
	Dark
)

func (p Preference) String() string {
	switch p {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "unset"
	}
}

// ParsePreference decodes a stored value: "true" is Dark, "false" is Light,
// anything else Unset.
func ParsePreference(v string) Preference {
	switch strings.TrimSpace(v) {
	case "true":
		return Dark
	case "false":
		return Light
	default:
		return Unset
	}
}

// FromBool converts a resolved scheme into an explicit preference.
func FromBool(dark bool) Preference {
	if dark {
		return Dark
	}
	return Light
}

// Resolve returns whether dark mode is shown. osDark is consulted only when
// the preference is Unset.
func (p Preference) Resolve(osDark bool) bool {
	switch p {
	case Dark:
		return true
	case Light:
		return false
	default:
		return osDark
	}
}

// Display is everything the page needs to present the resolved scheme.
type Display struct {
	Dark       bool
	Preference Preference
	// Class goes on the root element; OtherClass is the one removed.
	Class      string
	OtherClass string
	FaviconURL string
	// LightFaviconURL and DarkFaviconURL let a page that follows the OS pick
	// the icon with a media query.
	LightFaviconURL string
	DarkFaviconURL  string
	// ToggleGlyph offers the opposite scheme.
	ToggleGlyph string
}

// Apply builds the Display for a resolved scheme.
func Apply(p Preference, osDark bool) Display {
	dark := p.Resolve(osDark)
	d := Display{
		Dark:            dark,
		Preference:      p,
		Class:           "light-mode",
		OtherClass:      "dark-mode",
		FaviconURL:      faviconBase + "favicon.svg",
		LightFaviconURL: faviconBase + "favicon.svg",
		DarkFaviconURL:  faviconBase + "favicon-dark.svg",
		ToggleGlyph:     "🌛",
	}
	if dark {
		d.Class, d.OtherClass = "dark-mode", "light-mode"
		d.FaviconURL = d.DarkFaviconURL
		d.ToggleGlyph = "🌞"
	}
	return d
}

// FromRequest reads the stored preference and the OS hint from r.
func FromRequest(r *http.Request) (Preference, bool) {
	p := Unset
	if c, err := r.Cookie(CookieName); err == nil {
		p = ParsePreference(c.Value)
	}
	return p, OSPrefersDark(r)
}

// OSPrefersDark reports the client hint, treating its absence as light.
func OSPrefersDark(r *http.Request) bool {
	v := strings.Trim(strings.TrimSpace(r.Header.Get(HintHeader)), `"`)
	return strings.EqualFold(v, "dark")
}

// AdvertiseHint asks the browser to send the colour scheme hint on later
// requests and marks responses as varying on it.
func AdvertiseHint(w http.ResponseWriter) {
	w.Header().Set("Accept-CH", HintHeader)
	w.Header().Add("Vary", HintHeader)
	w.Header().Add("Critical-CH", HintHeader)
}

// Toggle flips the currently displayed scheme and returns the explicit
// preference to store.
func Toggle(p Preference, osDark bool) Preference {
	return FromBool(!p.Resolve(osDark))
}

// Save persists an explicit choice. Unset deletes the cookie.
func Save(w http.ResponseWriter, r *http.Request, p Preference) {
	c := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	}
	switch p {
	case Dark:
		c.Value = "true"
		c.MaxAge = cookieMaxAge
	case Light:
		c.Value = "false"
		c.MaxAge = cookieMaxAge
	default:
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}
