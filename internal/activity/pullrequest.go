package activity

import (
	"activity-log/internal/github"
	"activity-log/internal/htmlsafe"
)

type pullRequestRef struct {
	HTMLURL string `json:"html_url"`
	Title   string `json:"title"`
	Number  int    `json:"number"`
}

type reviewRef struct {
	HTMLURL string `json:"html_url"`
	State   string `json:"state"`
}

// PullRequest is a pull request being opened, closed, merged and so on.
type PullRequest struct {
	Action      string
	PullRequest pullRequestRef
	Repo        *github.Repo
}

func decodePullRequest(e github.Event) (Activity, error) {
	var p struct {
		Action      string          `json:"action"`
		PullRequest *pullRequestRef `json:"pull_request"`
	}
	if err := payload(e, &p); err != nil {
		return nil, err
	}
	if p.PullRequest == nil {
		return nil, missing(e, "payload.pull_request")
	}
	return PullRequest{Action: p.Action, PullRequest: *p.PullRequest, Repo: e.Repo}, nil
}

func (a PullRequest) heading() htmlsafe.HTML {
	return htmlsafe.H("⤴️ %spull request %s on %s",
		action(a.Action),
		Link(a.PullRequest.HTMLURL, a.PullRequest.Title, ""),
		RepoLink(a.Repo, false),
	)
}

// ReviewComment is a comment on a pull request diff.
type ReviewComment struct {
	Action      string
	PullRequest pullRequestRef
	Comment     commentRef
	Repo        *github.Repo
}

func decodeReviewComment(e github.Event) (Activity, error) {
	var p struct {
		Action      string          `json:"action"`
		PullRequest *pullRequestRef `json:"pull_request"`
		Comment     *commentRef     `json:"comment"`
	}
	if err := payload(e, &p); err != nil {
		return nil, err
	}
	if p.Comment == nil {
		return nil, missing(e, "payload.comment")
	}
	if p.PullRequest == nil {
		return nil, missing(e, "payload.pull_request")
	}
	return ReviewComment{Action: p.Action, PullRequest: *p.PullRequest, Comment: *p.Comment, Repo: e.Repo}, nil
}

func (a ReviewComment) heading() htmlsafe.HTML {
	return htmlsafe.H("💬 %sa pull request review comment in %s on %s",
		action(a.Action),
		Link(a.Comment.HTMLURL, a.PullRequest.Title, ""),
		RepoLink(a.Repo, false),
	)
}

// Review is a submitted pull request review.
type Review struct {
	Action      string
	PullRequest pullRequestRef
	Review      reviewRef
	Repo        *github.Repo
}

func decodeReview(e github.Event) (Activity, error) {
	var p struct {
		Action      string          `json:"action"`
		PullRequest *pullRequestRef `json:"pull_request"`
		Review      *reviewRef      `json:"review"`
	}
	if err := payload(e, &p); err != nil {
		return nil, err
	}
	if p.Review == nil {
		return nil, missing(e, "payload.review")
	}
	if p.PullRequest == nil {
		return nil, missing(e, "payload.pull_request")
	}
	return Review{Action: p.Action, PullRequest: *p.PullRequest, Review: *p.Review, Repo: e.Repo}, nil
}

func (a Review) heading() htmlsafe.HTML {
	return htmlsafe.H("💬 %sa pull request review in %s on %s",
		action(a.Action),
		Link(a.Review.HTMLURL, a.PullRequest.Title, ""),
		RepoLink(a.Repo, false),
	)
}
