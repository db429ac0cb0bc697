package activity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"activity-log/internal/github"
	"activity-log/internal/htmlsafe"
)

const (
	apiRepoPrefix = "https://api.github.com/repos/"
	webPrefix     = "https://github.com/"
)

// WebURL maps an API repository URL onto its github.com page. Other URLs
// are returned unchanged.
func WebURL(u string) string {
	return strings.Replace(u, apiRepoPrefix, webPrefix, 1)
}

// Link renders an anchor to url with escaped text. An empty class is omitted.
func Link(url, text, class string) htmlsafe.HTML {
	if class != "" {
		return htmlsafe.H(`<a href="%s" class="%s">%s</a>`, WebURL(url), class, text)
	}
	return htmlsafe.H(`<a href="%s">%s</a>`, WebURL(url), text)
}

// RepoLink links the event's repository. Secondary mentions are
// de-emphasized; a missing repository renders as plain text.
func RepoLink(repo *github.Repo, main bool) htmlsafe.HTML {
	if repo == nil {
		return htmlsafe.Escape("unknown repo")
	}
	class := "deemphasized"
	if main {
		class = ""
	}
	return Link(repo.URL, repo.Name, class)
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	// Casers keep state, so each call gets its own.
	r, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.English).String(string(r)) + cases.Lower(language.English).String(s[size:])
}

// SentenceCase splits a CamelCase identifier into capitalized words:
// "PullRequestEvent" becomes "Pull request event".
func SentenceCase(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		if prevLower && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r)
	}
	return Capitalize(b.String())
}

// action renders the capitalized action verb followed by a space, or
// nothing when the payload carries no action.
func action(a string) htmlsafe.HTML {
	if a == "" {
		return htmlsafe.HTML{}
	}
	return htmlsafe.H("%s ", Capitalize(a))
}

func code(s string) htmlsafe.HTML {
	return htmlsafe.H("<code>%s</code>", s)
}

// joinList joins fragments the way an English list reads: "a", "a and b",
// "a, b, and c".
func joinList(items []htmlsafe.HTML) htmlsafe.HTML {
	switch len(items) {
	case 0:
		return htmlsafe.HTML{}
	case 1:
		return items[0]
	case 2:
		return htmlsafe.H("%s and %s", items[0], items[1])
	}
	head := htmlsafe.Join(htmlsafe.Trusted(", "), items[:len(items)-1]...)
	return htmlsafe.H("%s, and %s", head, items[len(items)-1])
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimRight(line, "\r")
}
