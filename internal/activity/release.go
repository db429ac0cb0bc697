package activity

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"activity-log/internal/github"
	"activity-log/internal/htmlsafe"
)

type releaseRef struct {
	HTMLURL string `json:"html_url"`
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
}

// Release is a release being published.
type Release struct {
	Action  string
	Release releaseRef
	Repo    *github.Repo
}

func decodeRelease(e github.Event) (Activity, error) {
	var p struct {
		Action  string      `json:"action"`
		Release *releaseRef `json:"release"`
	}
	if err := payload(e, &p); err != nil {
		return nil, err
	}
	if p.Release == nil {
		return nil, missing(e, "payload.release")
	}
	return Release{Action: p.Action, Release: *p.Release, Repo: e.Repo}, nil
}

func (a Release) heading() htmlsafe.HTML {
	return htmlsafe.H("🎉 %sa %s for tag %s on %s",
		action(a.Action),
		Link(a.Release.HTMLURL, "release", ""),
		code(a.Release.TagName),
		RepoLink(a.Repo, false),
	)
}

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	ugc      = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Details renders extra content shown when an entry is expanded. Only
// releases with notes have any; everything else returns an empty fragment.
func Details(e github.Event) htmlsafe.HTML {
	if e.Type != "ReleaseEvent" {
		return htmlsafe.HTML{}
	}
	a, err := decodeRelease(e)
	if err != nil {
		return htmlsafe.HTML{}
	}
	body := strings.TrimSpace(a.(Release).Release.Body)
	if body == "" {
		return htmlsafe.HTML{}
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		slog.Debug("release notes did not render", "id", e.ID, "error", err)
		return htmlsafe.H(`<div class="release-notes"><pre>%s</pre></div>`, body)
	}
	// Sanitized output is trusted from here on.
	notes := htmlsafe.Trusted(string(ugc.SanitizeBytes(buf.Bytes())))
	return htmlsafe.H(`<div class="release-notes">%s</div>`, notes)
}
