package activity

import (
	"activity-log/internal/github"
	"activity-log/internal/htmlsafe"
)

type issueRef struct {
	HTMLURL string `json:"html_url"`
	Title   string `json:"title"`
	Number  int    `json:"number"`
}

type commentRef struct {
	HTMLURL string `json:"html_url"`
	Body    string `json:"body"`
}

// Issue is an issue being opened, closed, reopened or otherwise changed.
type Issue struct {
	Action string
	Issue  issueRef
	Repo   *github.Repo
}

func decodeIssues(e github.Event) (Activity, error) {
	var p struct {
		Action string    `json:"action"`
		Issue  *issueRef `json:"issue"`
	}
	if err := payload(e, &p); err != nil {
		return nil, err
	}
	if p.Issue == nil {
		return nil, missing(e, "payload.issue")
	}
	return Issue{Action: p.Action, Issue: *p.Issue, Repo: e.Repo}, nil
}

func (a Issue) heading() htmlsafe.HTML {
	return htmlsafe.H("👾 %sissue %s on %s",
		action(a.Action),
		Link(a.Issue.HTMLURL, a.Issue.Title, ""),
		RepoLink(a.Repo, false),
	)
}

// IssueComment is a comment on an issue or pull request conversation.
type IssueComment struct {
	Action  string
	Issue   issueRef
	Comment commentRef
	Repo    *github.Repo
}

func decodeIssueComment(e github.Event) (Activity, error) {
	var p struct {
		Action  string      `json:"action"`
		Issue   *issueRef   `json:"issue"`
		Comment *commentRef `json:"comment"`
	}
	if err := payload(e, &p); err != nil {
		return nil, err
	}
	if p.Comment == nil {
		return nil, missing(e, "payload.comment")
	}
	if p.Issue == nil {
		return nil, missing(e, "payload.issue")
	}
	return IssueComment{Action: p.Action, Issue: *p.Issue, Comment: *p.Comment, Repo: e.Repo}, nil
}

func (a IssueComment) heading() htmlsafe.HTML {
	return htmlsafe.H("💬 %san issue comment in %s on %s",
		action(a.Action),
		Link(a.Comment.HTMLURL, a.Issue.Title, ""),
		RepoLink(a.Repo, false),
	)
}
