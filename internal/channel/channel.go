// Package channel extracts stream sources from a channel page.
package channel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedURL is returned by DeriveName when a URL has no usable file name.
var ErrMalformedURL = errors.New("cannot derive channel name from url")

var videoSourcePattern = regexp.MustCompile(`.+? videosrc="(.+?)".+?`)

// Resolve returns every videosrc attribute value of html in document order.
func Resolve(html string) []string {
	urls := []string{}
	for _, m := range videoSourcePattern.FindAllStringSubmatch(html, -1) {
		if len(m) > 1 {
			urls = append(urls, m[1])
		}
	}

	return urls
}

// DeriveName turns a stream URL into a channel name: the last path segment
// up to its first dot, so "http://host/live/tv1.m3u8" becomes "tv1".
func DeriveName(videoURL string) (string, error) {
	slash := strings.LastIndex(videoURL, "/")
	if slash < 0 {
		return "", fmt.Errorf("%w: %q has no path separator", ErrMalformedURL, videoURL)
	}

	segment := videoURL[slash+1:]
	dot := strings.Index(segment, ".")
	if dot < 0 {
		return "", fmt.Errorf("%w: %q has no extension", ErrMalformedURL, videoURL)
	}

	name := segment[:dot]
	if name == "" {
		return "", fmt.Errorf("%w: %q has an empty file name", ErrMalformedURL, videoURL)
	}

	return name, nil
}
