package activity

import (
	"strings"

	"activity-log/internal/github"
	"activity-log/internal/htmlsafe"
)

type commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// Push is one or more commits pushed to a ref.
type Push struct {
	Ref     string
	Commits []commit
	Repo    *github.Repo
}

func decodePush(e github.Event) (Activity, error) {
	var p struct {
		Ref     string   `json:"ref"`
		Commits []commit `json:"commits"`
	}
	if err := payload(e, &p); err != nil {
		return nil, err
	}
	// Newer payloads drop the commit list; the ref is enough for a heading.
	if len(p.Commits) == 0 && p.Ref == "" {
		return nil, missing(e, "payload.commits")
	}
	return Push{Ref: p.Ref, Commits: p.Commits, Repo: e.Repo}, nil
}

func (a Push) heading() htmlsafe.HTML {
	if len(a.Commits) == 0 {
		return htmlsafe.H("➡️ Pushed to %s on %s",
			code(strings.TrimPrefix(a.Ref, "refs/heads/")),
			RepoLink(a.Repo, false),
		)
	}

	first := a.Commits[0]
	items := []htmlsafe.HTML{Link(first.URL, firstLine(first.Message), "")}
	if n := len(a.Commits) - 1; n > 0 {
		items = append(items, htmlsafe.Escape(sprintf(msgOtherCommits, n)))
	}

	return htmlsafe.H("➡️ Pushed %s to %s", joinList(items), RepoLink(a.Repo, false))
}
