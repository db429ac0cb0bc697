package github

import (
	"net/url"
	"regexp"
	"strconv"
)

// linkRelRegex matches one `<href>; rel="name"` entry of a Link header.
var linkRelRegex = regexp.MustCompile(`<([^>]+)>[^,]*\brel=["']?(\w+)[^,]*`)

// ParseLinkHeader extracts the first/prev/next/last page numbers from a Link
// header value. Relations whose href carries no integer page parameter are
// skipped. Current is left zero for the caller to fill in.
func ParseLinkHeader(header string) Pages {
	var pages Pages
	for _, m := range linkRelRegex.FindAllStringSubmatch(header, -1) {
		page, ok := pageParam(m[1])
		if !ok {
			continue
		}
		switch m[2] {
		case "first":
			pages.First = &page
		case "prev":
			pages.Prev = &page
		case "next":
			pages.Next = &page
		case "last":
			pages.Last = &page
		}
	}
	return pages
}

func pageParam(href string) (int, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil {
		return 0, false
	}
	return n, true
}
