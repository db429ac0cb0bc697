package activity

import (
	"activity-log/internal/github"
	"activity-log/internal/htmlsafe"
)

// Watch is a repository being starred.
type Watch struct {
	Action string
	Repo   *github.Repo
}

func decodeWatch(e github.Event) (Activity, error) {
	var p struct {
		Action string `json:"action"`
	}
	if err := payload(e, &p); err != nil {
		return nil, err
	}
	return Watch{Action: p.Action, Repo: e.Repo}, nil
}

func (a Watch) heading() htmlsafe.HTML {
	return htmlsafe.H("👀 %swatching %s", action(a.Action), RepoLink(a.Repo, true))
}

// Public is a private repository being made public.
type Public struct {
	Repo *github.Repo
}

func (a Public) heading() htmlsafe.HTML {
	return htmlsafe.H("🔓 Made %s public", RepoLink(a.Repo, true))
}
