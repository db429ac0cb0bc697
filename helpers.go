package main

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// resolveUsername picks the user whose feed is shown: the user query
// parameter when present, else the first label of a host ending in
// hostingSuffix. An empty result means no user was selected.
func resolveUsername(query url.Values, host, hostingSuffix string) string {
	if vals, ok := query["user"]; ok {
		return strings.TrimSpace(vals[0])
	}
	if hostingSuffix == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	if !strings.HasSuffix(host, strings.ToLower(hostingSuffix)) {
		return ""
	}
	label, _, _ := strings.Cut(host, ".")
	return label
}

// parsePage reads a page number, treating anything below 1 or unparsable
// as the first page.
func parsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// safeReturnPath accepts only same-origin paths; anything else becomes "/".
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, `/\`) {
		return "/"
	}
	u, err := url.Parse(p)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return u.RequestURI()
}

// pageHref links to another page of the current view, keeping every other
// query parameter.
func pageHref(query url.Values, page int) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))
	return "?" + q.Encode()
}
