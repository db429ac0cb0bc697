package main

import (
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"activity-log/internal/github"
	"activity-log/internal/theme"
	"activity-log/internal/timefmt"
	"activity-log/internal/util"
)

// app carries the dependencies shared by the HTML handlers.
type app struct {
	feeds         feedFetcher
	hostingSuffix string
	timezone      string
}

// activityHandler renders a user's activity log, or the user selection form
// when no user can be resolved.
func (a *app) activityHandler(w http.ResponseWriter, r *http.Request) {
	theme.AdvertiseHint(w)

	query := r.URL.Query()
	username := resolveUsername(query, r.Host, a.hostingSuffix)
	if username == "" {
		renderPage(w, r, formPage, newPageData(r, "GitHub Activity Log"), http.StatusOK)
		return
	}

	ctx := r.Context()
	page := parsePage(query.Get("page"))

	// The date formatter and the feed load independently; render waits for
	// both and neither cancels the other.
	var (
		g         errgroup.Group
		formatter timefmt.Formatter
		feed      *github.Feed
		fetchErr  error
	)
	g.Go(func() error {
		formatter = timefmt.Load(ctx, a.timezone)
		return nil
	})
	g.Go(func() error {
		feed, fetchErr = a.feeds.Events(ctx, username, page)
		return nil
	})
	_ = g.Wait()

	data := newPageData(r, username+"’s GitHub Activity Log")
	data.Username = username
	data.UserURL = userURL(username)

	status := http.StatusOK
	var apiErr *github.APIError
	switch {
	case errors.As(fetchErr, &apiErr):
		log := LoggerFromContext(ctx).With("user", username, "page", page, "status", apiErr.StatusCode)
		if github.IsNotFound(fetchErr) {
			log.Info("no such GitHub user")
		} else {
			log.Warn("events API returned an error", "message", apiErr.Message)
		}
		data.Error = apiErr.Message
	case fetchErr != nil:
		LoggerFromContext(ctx).Error("events fetch failed", "user", username, "page", page, "error", fetchErr)
		data.Error = fetchErr.Error()
		status = http.StatusBadGateway
	default:
		data.Items = buildItems(ctx, feed.Events, formatter)
		data.Pagination = paginationBlips(query, feed.Pages)
	}

	renderPage(w, r, activityPage, data, status)
}

// themeHandler flips, sets or clears the stored display preference and sends
// the browser back to the page it came from. Explicit "light" and "dark"
// actions come from pages that follow the OS without knowing its scheme.
func themeHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		util.RespondBadRequest(w, "Invalid form data")
		return
	}

	pref, osDark := theme.FromRequest(r)
	var next theme.Preference
	switch r.PostForm.Get("action") {
	case "", "toggle":
		next = theme.Toggle(pref, osDark)
	case "light":
		next = theme.Light
	case "dark":
		next = theme.Dark
	case "reset":
		next = theme.Unset
	default:
		util.RespondBadRequest(w, "Unknown theme action")
		return
	}

	theme.Save(w, r, next)
	LoggerFromContext(r.Context()).Debug("theme preference saved", "from", pref.String(), "to", next.String())
	http.Redirect(w, r, safeReturnPath(r.PostForm.Get("return")), http.StatusSeeOther)
}
