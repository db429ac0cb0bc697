// Package activity turns GitHub events into one-line HTML headings.
//
// Decoding is closed over the event types this package knows about; anything
// else becomes an Unknown activity that still renders. A malformed payload
// never escapes Heading: it is rendered as an inline error naming the field.
package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"activity-log/internal/github"
	"activity-log/internal/htmlsafe"
)

// Activity is a decoded event. The set of implementations is closed.
type Activity interface {
	heading() htmlsafe.HTML
}

// FieldError reports a required payload field that is missing or empty.
type FieldError struct {
	Type  string
	Field string
}

func (e *FieldError) Error() string {
	return e.Field + " is missing"
}

// DecodeError wraps a payload that is not the JSON shape its type promises.
type DecodeError struct {
	Type string
	Err  error
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PanicError is a recovered panic from a heading builder.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprint(e.Value)
}

// Decode maps an event onto its Activity variant.
func Decode(e github.Event) (Activity, error) {
	switch e.Type {
	case "IssuesEvent":
		return decodeIssues(e)
	case "WatchEvent":
		return decodeWatch(e)
	case "PullRequestEvent":
		return decodePullRequest(e)
	case "IssueCommentEvent":
		return decodeIssueComment(e)
	case "PushEvent":
		return decodePush(e)
	case "CreateEvent":
		return decodeCreate(e)
	case "ForkEvent":
		return decodeFork(e)
	case "DeleteEvent":
		return decodeDelete(e)
	case "PullRequestReviewCommentEvent":
		return decodeReviewComment(e)
	case "PullRequestReviewEvent":
		return decodeReview(e)
	case "ReleaseEvent":
		return decodeRelease(e)
	case "PublicEvent":
		return Public{Repo: e.Repo}, nil
	case "MemberEvent":
		return decodeMember(e)
	case "GollumEvent":
		return decodeGollum(e)
	default:
		return Unknown{Type: e.Type, Repo: e.Repo}, nil
	}
}

// Heading renders the summary line for e. It always returns markup; decode
// failures and panics become an inline error fragment.
func Heading(e github.Event) htmlsafe.HTML {
	h, _ := Render(e)
	return h
}

// Render is Heading that also reports whether the line is an error fragment.
func Render(e github.Event) (htmlsafe.HTML, bool) {
	if e.DecodeErr != nil {
		return errorFragment(typeName(e), &DecodeError{Type: typeName(e), Err: e.DecodeErr}), true
	}
	a, err := Decode(e)
	return render(e, a, err)
}

func render(e github.Event, a Activity, err error) (h htmlsafe.HTML, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("activity heading panicked", "type", e.Type, "id", e.ID, "panic", r)
			h, failed = errorFragment(typeName(e), &PanicError{Value: r}), true
		}
	}()

	if err != nil {
		return errorFragment(typeName(e), err), true
	}
	return a.heading(), false
}

func typeName(e github.Event) string {
	if e.Type == "" {
		return "Event"
	}
	return e.Type
}

func errorFragment(eventType string, err error) htmlsafe.HTML {
	return htmlsafe.H(`<span class="error">%s %s: %s</span>`, eventType, errorName(err), err.Error())
}

func errorName(err error) string {
	var fe *FieldError
	var de *DecodeError
	var pe *PanicError
	switch {
	case errors.As(err, &fe):
		return "FieldError"
	case errors.As(err, &de):
		return "DecodeError"
	case errors.As(err, &pe):
		return "Panic"
	default:
		return "Error"
	}
}

// payload unmarshals the event payload into dst.
func payload(e github.Event, dst any) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return &FieldError{Type: e.Type, Field: "payload"}
	}
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return &DecodeError{Type: e.Type, Err: err}
	}
	return nil
}

func missing(e github.Event, field string) error {
	return &FieldError{Type: e.Type, Field: field}
}
