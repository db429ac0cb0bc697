package activity

import (
	"activity-log/internal/github"
	"activity-log/internal/htmlsafe"
)

// Unknown is any event type without a dedicated heading.
type Unknown struct {
	Type string
	Repo *github.Repo
}

func (a Unknown) heading() htmlsafe.HTML {
	return htmlsafe.H("❓ %s on %s", SentenceCase(a.Type), RepoLink(a.Repo, true))
}
