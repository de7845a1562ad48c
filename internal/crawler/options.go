package crawler

// Option customises a Crawler.
type Option func(*Crawler)

// WithFetcher replaces the default resty-backed fetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *Crawler) {
		c.fetcher = f
	}
}

func WithRunID(id string) Option {
	return func(c *Crawler) {
		c.runID = id
	}
}
