// Package github fetches a user's public event feed from the GitHub REST API.
package github

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Event is one entry of a user's public event feed.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Actor     *Actor          `json:"actor,omitempty"`
	Repo      *Repo           `json:"repo,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Public    bool            `json:"public"`
	CreatedAt time.Time       `json:"created_at"`

	// Raw is the event object exactly as the API returned it.
	Raw json.RawMessage `json:"-"`

	// DecodeErr is set when the envelope did not match the model. Only ID,
	// Type and Raw are populated in that case.
	DecodeErr error `json:"-"`
}

// Actor is the account that performed an event.
type Actor struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	URL       string `json:"url"`
	AvatarURL string `json:"avatar_url"`
}

// Repo references the repository an event happened on.
type Repo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// UnmarshalJSON decodes the event and keeps a copy of the original bytes.
// A malformed envelope does not fail the surrounding feed: the error is kept
// in DecodeErr along with whatever ID and Type could be recovered.
func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*e = Event{DecodeErr: err}
		e.ID, e.Type = recoverIdentity(data)
		e.Raw = append(json.RawMessage(nil), data...)
		return nil
	}
	*e = Event(p)
	e.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func recoverIdentity(data []byte) (id, typ string) {
	var head struct {
		ID   any `json:"id"`
		Type any `json:"type"`
	}
	if json.Unmarshal(data, &head) != nil {
		return "", ""
	}
	if head.ID != nil {
		id = fmt.Sprint(head.ID)
	}
	typ, _ = head.Type.(string)
	return id, typ
}

// MarshalJSON emits the original bytes when available so a cached feed
// round-trips unchanged.
func (e Event) MarshalJSON() ([]byte, error) {
	if len(e.Raw) > 0 {
		return e.Raw, nil
	}
	type plain Event
	return json.Marshal(plain(e))
}

// IndentedJSON returns the raw event pretty-printed with tabs, or the raw
// bytes unchanged when they cannot be indented.
func (e Event) IndentedJSON() string {
	if len(e.Raw) == 0 {
		b, err := json.MarshalIndent(e, "", "\t")
		if err != nil {
			return ""
		}
		return string(b)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, e.Raw, "", "\t"); err != nil {
		return string(e.Raw)
	}
	return buf.String()
}

// Pages holds the pagination relations found in a Link header. A nil field
// means the relation was absent.
type Pages struct {
	First   *int `json:"first,omitempty"`
	Prev    *int `json:"prev,omitempty"`
	Next    *int `json:"next,omitempty"`
	Last    *int `json:"last,omitempty"`
	Current int  `json:"current"`
}

// Total returns the last page number, or the current one when the total is
// unknown.
func (p Pages) Total() int {
	if p.Last != nil {
		return *p.Last
	}
	return p.Current
}

// Feed is a successfully loaded page of events.
type Feed struct {
	Username string  `json:"username"`
	Events   []Event `json:"events"`
	Pages    Pages   `json:"pages"`
}
