package normalize

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/idilsaglam/sheettracker/internal/model"
)

const (
	githubHost = "github.com"
	rawHost    = "raw.githubusercontent.com"
)

// First [title](url) on a line. No nesting.
var mdLink = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// RawURL rewrites a github.com file view to the raw content host so a GET
// returns file bytes instead of an HTML page. Other URLs pass through.
func RawURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	host := strings.ToLower(u.Hostname())
	if host != githubHost && host != "www."+githubHost {
		return raw
	}
	u.Host = rawHost
	u.Path = strings.Replace(u.Path, "/blob/", "/", 1)
	if u.RawPath != "" {
		u.RawPath = strings.Replace(u.RawPath, "/blob/", "/", 1)
	}
	return u.String()
}

// FromMarkdown extracts one question per line holding a bracket link.
// Only the first link of a line is used.
func FromMarkdown(content string) []model.Question {
	out := []model.Question{}
	for _, line := range strings.Split(content, "\n") {
		m := mdLink.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, model.Question{
			Title:    m[1],
			Link:     m[2],
			Category: model.CategoryGitHub,
		})
	}
	return out
}
