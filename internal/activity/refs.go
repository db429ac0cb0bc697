package activity

import (
	"activity-log/internal/github"
	"activity-log/internal/htmlsafe"
)

type refPayload struct {
	Ref     string `json:"ref"`
	RefType string `json:"ref_type"`
}

func decodeRef(e github.Event) (refPayload, error) {
	var p refPayload
	if err := payload(e, &p); err != nil {
		return p, err
	}
	if p.RefType == "" {
		return p, missing(e, "payload.ref_type")
	}
	return p, nil
}

// Create is a repository, branch or tag being created.
type Create struct {
	Ref     string
	RefType string
	Repo    *github.Repo
}

func decodeCreate(e github.Event) (Activity, error) {
	p, err := decodeRef(e)
	if err != nil {
		return nil, err
	}
	return Create{Ref: p.Ref, RefType: p.RefType, Repo: e.Repo}, nil
}

func (a Create) heading() htmlsafe.HTML {
	if a.RefType == "repository" {
		return htmlsafe.H("🆕 Created repository %s", RepoLink(a.Repo, true))
	}
	return htmlsafe.H("🆕 Created %s %s on %s", a.RefType, code(a.Ref), RepoLink(a.Repo, true))
}

// Delete is a branch or tag being deleted.
type Delete struct {
	Ref     string
	RefType string
	Repo    *github.Repo
}

func decodeDelete(e github.Event) (Activity, error) {
	p, err := decodeRef(e)
	if err != nil {
		return nil, err
	}
	return Delete{Ref: p.Ref, RefType: p.RefType, Repo: e.Repo}, nil
}

func (a Delete) heading() htmlsafe.HTML {
	return htmlsafe.H("⛔ Deleted %s %s on %s", a.RefType, code(a.Ref), RepoLink(a.Repo, true))
}

type forkee struct {
	HTMLURL  string `json:"html_url"`
	FullName string `json:"full_name"`
}

// Fork is a repository being forked.
type Fork struct {
	Forkee forkee
	Repo   *github.Repo
}

func decodeFork(e github.Event) (Activity, error) {
	var p struct {
		Forkee *forkee `json:"forkee"`
	}
	if err := payload(e, &p); err != nil {
		return nil, err
	}
	if p.Forkee == nil {
		return nil, missing(e, "payload.forkee")
	}
	return Fork{Forkee: *p.Forkee, Repo: e.Repo}, nil
}

func (a Fork) heading() htmlsafe.HTML {
	return htmlsafe.H("🍴 Forked %s into %s",
		RepoLink(a.Repo, false),
		Link(a.Forkee.HTMLURL, a.Forkee.FullName, ""),
	)
}
