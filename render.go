package main

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"activity-log/internal/activity"
	"activity-log/internal/github"
	"activity-log/internal/theme"
	"activity-log/internal/timefmt"
	"activity-log/internal/util"
	"activity-log/templates"
)

var (
	activityPage = util.MustCompileTemplate("activity", nil, templates.GetBaseTemplates()+templates.GetActivityTemplate())
	formPage     = util.MustCompileTemplate("form", nil, templates.GetBaseTemplates()+templates.GetFormTemplate())
)

// pageData is the view model shared by every page.
type pageData struct {
	Title string

	Theme theme.Display
	// FollowOS lets the stylesheet apply the browser's own scheme when no
	// choice is stored and no client hint arrived.
	FollowOS      bool
	ExplicitTheme bool
	ReturnPath    string

	Username   string
	UserURL    string
	Error      string
	Items      []activityItem
	Pagination []pageBlip
}

type activityItem struct {
	Heading template.HTML
	Stamp   timefmt.Stamp
	Details template.HTML
	Raw     string
	Failed  bool
}

// pageBlip is one pagination control. A blip without Href is a placeholder;
// Label marks the "Page X of Y" text.
type pageBlip struct {
	Text  string
	Page  int
	Href  string
	Label bool
}

func newPageData(r *http.Request, title string) pageData {
	pref, osDark := theme.FromRequest(r)
	return pageData{
		Title:         title,
		Theme:         theme.Apply(pref, osDark),
		FollowOS:      pref == theme.Unset && r.Header.Get(theme.HintHeader) == "",
		ExplicitTheme: pref != theme.Unset,
		ReturnPath:    r.URL.RequestURI(),
	}
}

func userURL(username string) string {
	return "https://github.com/" + url.PathEscape(username)
}

// paginationBlips renders first, prev, the page label, next and last.
func paginationBlips(query url.Values, pages github.Pages) []pageBlip {
	blip := func(page *int, text string) pageBlip {
		if page == nil {
			return pageBlip{Text: text}
		}
		return pageBlip{Text: text, Page: *page, Href: pageHref(query, *page)}
	}
	return []pageBlip{
		blip(pages.First, "«"),
		blip(pages.Prev, "‹"),
		{Text: fmt.Sprintf("Page %d of %d", pages.Current, pages.Total()), Label: true},
		blip(pages.Next, "›"),
		blip(pages.Last, "»"),
	}
}

// buildItems formats each event independently; a malformed event becomes an
// inline error line without affecting the others.
func buildItems(ctx context.Context, events []github.Event, f timefmt.Formatter) []activityItem {
	items := make([]activityItem, 0, len(events))
	for _, e := range events {
		heading, failed := activity.Render(e)
		if failed {
			recordHeadingFallback(e.Type)
			LoggerFromContext(ctx).Debug("event rendered as fallback", "id", e.ID, "type", e.Type)
		}
		var stamp timefmt.Stamp
		if !e.CreatedAt.IsZero() {
			stamp = f.Format(e.CreatedAt)
		}
		items = append(items, activityItem{
			Heading: heading.Template(),
			Stamp:   stamp,
			Details: activity.Details(e).Template(),
			Raw:     e.IndentedJSON(),
			Failed:  failed,
		})
	}
	return items
}

// renderPage executes tmpl fully before writing so a template failure can
// still produce a clean 500.
func renderPage(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data pageData, status int) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		LoggerFromContext(r.Context()).Error("template execution failed", "template", tmpl.Name(), "error", err)
		util.RespondInternalError(w, "Internal server error")
		return
	}
	util.SetHTMLHeaders(w, "0")
	w.WriteHeader(status)
	_ = util.WriteHTML(w, buf.Bytes())
}
