package crawler

import (
	"context"
	"errors"
	"fmt"

	"github.com/coocood/freecache"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/dbytex91/tvcrawl/internal/channel"
	"github.com/dbytex91/tvcrawl/internal/config"
	"github.com/dbytex91/tvcrawl/internal/fetch"
	"github.com/dbytex91/tvcrawl/internal/icon"
	"github.com/dbytex91/tvcrawl/internal/listing"
	"github.com/dbytex91/tvcrawl/internal/pipe"
	"github.com/dbytex91/tvcrawl/internal/playlist"
)

const (
	nameCacheSize = 1 << 20 // 1MB, freecache's floor is 512KB
	unknownName   = "Unknown"
)

var (
	ErrIconsDir           = errors.New("icons directory unavailable")
	ErrPlaylistInit       = errors.New("playlist initialisation failed")
	ErrListingUnavailable = errors.New("listing page unavailable")
)

// Fetcher is what the crawler needs from an HTTP client.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
	icon.Opener
}

// Crawler turns the listing site into a playlist and a directory of icons.
type Crawler struct {
	cfg      *config.Config
	fetcher  Fetcher
	icons    *icon.Store
	playlist *playlist.Writer
	runID    string
}

type streamRecord struct {
	Index      int
	Entry      listing.Entry
	ChannelURL string
	Page       string
	VideoURL   string
	// Last marks the final stream of a channel.
	Last bool
}

// run holds the state of a single Run call.
type run struct {
	*Crawler
	ctx         context.Context
	summary     *Summary
	names       *freecache.Cache
	channelName string
}

func New(cfg *config.Config, opts ...Option) *Crawler {
	c := &Crawler{
		cfg:      cfg,
		playlist: playlist.New(cfg.PlaylistPath),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.fetcher == nil {
		c.fetcher = fetch.New(
			fetch.WithUserAgent(cfg.UserAgent),
			fetch.WithTimeout(cfg.Timeout()),
		)
	}

	if c.runID == "" {
		c.runID = uuid.NewString()
	}

	c.icons = icon.NewStore(cfg.IconsDir, c.fetcher)
	return c
}

// Run crawls the site once. The returned error is non-nil only when the run
// could not do its job at all: no icons directory, no playlist, no listing
// page, or ctx was cancelled.
func (c *Crawler) Run(ctx context.Context) (*Summary, error) {
	log.Infof("Starting crawl %s of %s", c.runID, c.cfg.BaseURL)

	if err := c.icons.EnsureDir(); err != nil {
		log.Errorf("CRITICAL: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrIconsDir, err)
	}

	// The lock file is left on disk after the run.
	lock := flock.New(c.playlist.Path() + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		log.Errorf("CRITICAL: could not lock playlist %s: %v", c.playlist.Path(), err)
		return nil, fmt.Errorf("%w: lock %s: %w", ErrPlaylistInit, lock.Path(), err)
	}
	if !ok {
		log.Errorf("CRITICAL: playlist %s is being written by another run", c.playlist.Path())
		return nil, fmt.Errorf("%w: %s is locked by another run", ErrPlaylistInit, lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warnf("Failed to release %s: %v", lock.Path(), err)
		}
	}()

	if err := c.playlist.Init(); err != nil {
		log.Errorf("CRITICAL: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrPlaylistInit, err)
	}

	r := &run{
		Crawler: c,
		ctx:     ctx,
		summary: &Summary{RunID: c.runID},
		names:   freecache.NewCache(nameCacheSize),
	}

	p := pipe.New(r.listChannels)
	p.Map(r.fetchChannel)
	p.FanOut(r.resolveStreams)

	if err := p.Sink(ctx, r.writeRecord); err != nil {
		return r.summary, err
	}

	if r.summary.Channels > 0 {
		log.Infof("Finished processing all channels (run %s): %d of %d channel(s), %d playlist entries.",
			c.runID, r.summary.Processed, r.summary.Channels, r.summary.Written())
	}

	return r.summary, nil
}

func (r *run) listChannels() ([]*streamRecord, error) {
	url := r.cfg.ListingURL()
	log.Infof("Fetching main page: %s", url)

	html, err := r.fetcher.Get(r.ctx, url)
	if err != nil {
		log.Errorf("%s: %v", Classify(err), err)
		log.Errorf("Critical error: could not fetch essential data from %s. Exiting.", url)
		return nil, fmt.Errorf("%w: %w", ErrListingUnavailable, err)
	}

	entries := listing.Parse(html)
	r.summary.Channels = len(entries)
	if len(entries) == 0 {
		log.Infof("No channels found on the main page. Exiting.")
		return nil, nil
	}

	log.Infof("Detected %d channel(s) on the main page.", len(entries))

	records := make([]*streamRecord, 0, len(entries))
	for i, entry := range entries {
		records = append(records, &streamRecord{
			Index:      i + 1,
			Entry:      entry,
			ChannelURL: r.cfg.ChannelURL(entry.ChannelPath),
		})
	}

	return records, nil
}

func (r *run) fetchChannel(rec *streamRecord) (*streamRecord, error) {
	log.Infof("Processing channel %d/%d: %s", rec.Index, r.summary.Channels, rec.ChannelURL)

	html, err := r.fetcher.Get(r.ctx, rec.ChannelURL)
	if err != nil {
		if ctxErr := r.ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		log.Errorf("%s: %v", Classify(err), err)
		log.Errorf("Skipping channel %s due to fetch error on its page.", rec.Entry.ChannelPath)
		return nil, nil
	}

	rec.Page = html
	return rec, nil
}

func (r *run) resolveStreams(rec *streamRecord) ([]*streamRecord, error) {
	urls := channel.Resolve(rec.Page)
	if len(urls) == 0 {
		log.Errorf("No video source found for channel %s. Skipping.", rec.Entry.ChannelPath)
		return nil, nil
	}

	out := make([]*streamRecord, 0, len(urls))
	for i, videoURL := range urls {
		out = append(out, &streamRecord{
			Index:      rec.Index,
			Entry:      rec.Entry,
			ChannelURL: rec.ChannelURL,
			VideoURL:   videoURL,
			Last:       i == len(urls)-1,
		})
	}

	return out, nil
}

func (r *run) writeRecord(rec *streamRecord) error {
	defer r.finishChannel(rec)

	result := RecordResult{
		ChannelPath: rec.Entry.ChannelPath,
		VideoURL:    rec.VideoURL,
		LogoURL:     rec.Entry.LogoURL,
	}

	name, err := channel.DeriveName(rec.VideoURL)
	if err != nil {
		log.Errorf("%s: %v. Skipping this video URL.", Classify(err), err)
		result.Err = err
		r.summary.Records = append(r.summary.Records, result)
		return nil
	}

	result.Name = name
	r.channelName = name

	log.Infof("  Channel Name: %s", name)
	log.Infof("  Video URL: %s", rec.VideoURL)
	log.Infof("  Logo URL: %s", rec.Entry.LogoURL)

	r.checkCollision(name, rec.Entry.ChannelPath)

	written, err := r.icons.Download(r.ctx, rec.Entry.LogoURL, name)
	if err != nil {
		log.Errorf("%s: could not download icon %s: %v", Classify(err), rec.Entry.LogoURL, err)
		result.IconErr = err
	} else {
		log.Infof("Saved icon: %s", r.icons.Path(name))
		result.IconBytes = written
	}

	if err := r.playlist.Append(name, rec.VideoURL); err != nil {
		log.Errorf("%s: %v", Classify(err), err)
		log.Errorf("Failed to write channel %s to M3U. Continuing...", name)
		result.PlaylistErr = err
	}

	r.summary.Records = append(r.summary.Records, result)
	return nil
}

func (r *run) finishChannel(rec *streamRecord) {
	if !rec.Last {
		return
	}

	name := r.channelName
	if name == "" {
		name = unknownName
	}

	r.summary.Processed++
	log.Infof("Processed channel %d/%d: %s", r.summary.Processed, r.summary.Channels, name)
	r.channelName = ""
}

// checkCollision warns when two different channels map to the same name. Both
// playlist entries are kept; the later icon replaces the earlier one.
func (r *run) checkCollision(name, channelPath string) {
	key := []byte(name)
	if prev, err := r.names.Get(key); err == nil && string(prev) != channelPath {
		log.Warnf("Channel name %s of %s was already used by %s; icon %s will be overwritten",
			name, channelPath, string(prev), r.icons.Path(name))
	}

	if err := r.names.Set(key, []byte(channelPath), 0); err != nil {
		log.Warnf("Failed to remember channel name %s: %v", name, err)
	}
}
