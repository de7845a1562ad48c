// Package listing extracts channel links and logos from the live TV listing page.
package listing

import "regexp"

var entryPattern = regexp.MustCompile(`<li><a href="(.+?)" target="_parent".+?src="(.+?)" .+?`)

// Entry is one channel advertised on the listing page.
type Entry struct {
	ChannelPath string
	LogoURL     string
}

// Parse returns the entries of html in document order. Duplicates are kept.
// An empty page yields an empty, non-nil slice.
func Parse(html string) []Entry {
	entries := []Entry{}
	if html == "" {
		return entries
	}

	for _, m := range entryPattern.FindAllStringSubmatch(html, -1) {
		if len(m) < 3 {
			continue
		}

		entries = append(entries, Entry{
			ChannelPath: m[1],
			LogoURL:     m[2],
		})
	}

	return entries
}
