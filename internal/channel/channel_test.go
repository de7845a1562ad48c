package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	html := `<html><body>
<div id="player" videosrc="http://stream.example.com/live/tv1.m3u8" class="p"></div>
<div id="backup" videosrc="http://backup.example.com/hls/tv1-hd.m3u8" class="p"></div>
<div id="other" data-src="http://ignored.example.com/x.m3u8"></div>
</body></html>`

	urls := Resolve(html)
	assert.Equal(t, []string{
		"http://stream.example.com/live/tv1.m3u8",
		"http://backup.example.com/hls/tv1-hd.m3u8",
	}, urls)
}

func TestResolveSameLine(t *testing.T) {
	html := `<p><span videosrc="http://a/1.m3u8"></span><span videosrc="http://a/2.m3u8"></span></p>`

	assert.Equal(t, []string{"http://a/1.m3u8", "http://a/2.m3u8"}, Resolve(html))
}

func TestResolveNone(t *testing.T) {
	urls := Resolve("<html><body>offline</body></html>")
	assert.NotNil(t, urls)
	assert.Empty(t, urls)

	assert.Empty(t, Resolve(""))
}

func TestDeriveName(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"http://stream.example.com/live/tv1.m3u8", "tv1"},
		{"http://x/s.m3u8", "s"},
		{"https://cdn.example.com/hls/manoto.stream.m3u8?token=abc", "manoto"},
		{"rtmp://media/live/gem-tv.flv", "gem-tv"},
	}

	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			got, err := DeriveName(tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			again, err := DeriveName(tc.url)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestDeriveNameMalformed(t *testing.T) {
	for _, url := range []string{
		"stream.m3u8",
		"http://x/live/playlist",
		"http://x/live/.m3u8",
		"http://x/live/",
	} {
		t.Run(url, func(t *testing.T) {
			_, err := DeriveName(url)
			assert.ErrorIs(t, err, ErrMalformedURL)
		})
	}
}
