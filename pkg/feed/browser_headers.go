package feed

import (
	"math/rand"
	"net/http"
)

// feedAccept lists feed formats first, some hosts serve html to clients not asking for xml
const feedAccept = "application/rss+xml,application/atom+xml,application/feed+json;q=0.9," +
	"application/xml;q=0.8,text/xml;q=0.8,*/*;q=0.5"

var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en;q=0.8,*;q=0.5",
}

// addBrowserHeaders sets the request headers expected from a regular feed reader
func addBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", feedAccept)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // header variation only
	req.Header.Set("Connection", "keep-alive")
}
