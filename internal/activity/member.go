package activity

import (
	"activity-log/internal/github"
	"activity-log/internal/htmlsafe"
)

type memberRef struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// Member is a collaborator being added to a repository.
type Member struct {
	Action string
	Member memberRef
	Repo   *github.Repo
}

func decodeMember(e github.Event) (Activity, error) {
	var p struct {
		Action string     `json:"action"`
		Member *memberRef `json:"member"`
	}
	if err := payload(e, &p); err != nil {
		return nil, err
	}
	if p.Member == nil {
		return nil, missing(e, "payload.member")
	}
	return Member{Action: p.Action, Member: *p.Member, Repo: e.Repo}, nil
}

func (a Member) heading() htmlsafe.HTML {
	return htmlsafe.H("👥 %smember %s to %s",
		action(a.Action),
		Link(a.Member.HTMLURL, a.Member.Login, ""),
		RepoLink(a.Repo, false),
	)
}

type wikiPage struct {
	PageName string `json:"page_name"`
	Title    string `json:"title"`
	Action   string `json:"action"`
	HTMLURL  string `json:"html_url"`
}

// Gollum is one or more wiki pages being created or edited.
type Gollum struct {
	Pages []wikiPage
	Repo  *github.Repo
}

func decodeGollum(e github.Event) (Activity, error) {
	var p struct {
		Pages []wikiPage `json:"pages"`
	}
	if err := payload(e, &p); err != nil {
		return nil, err
	}
	if len(p.Pages) == 0 {
		return nil, missing(e, "payload.pages")
	}
	return Gollum{Pages: p.Pages, Repo: e.Repo}, nil
}

func (a Gollum) heading() htmlsafe.HTML {
	first := a.Pages[0]
	title := first.Title
	if title == "" {
		title = first.PageName
	}
	items := []htmlsafe.HTML{Link(first.HTMLURL, title, "")}
	if n := len(a.Pages) - 1; n > 0 {
		items = append(items, htmlsafe.Escape(sprintf(msgOtherPages, n)))
	}
	return htmlsafe.H("📖 %swiki page %s on %s",
		action(first.Action),
		joinList(items),
		RepoLink(a.Repo, false),
	)
}
