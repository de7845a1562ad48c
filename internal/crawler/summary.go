package crawler

// Summary describes what a run produced.
type Summary struct {
	RunID     string
	Channels  int
	Processed int
	Records   []RecordResult
}

// RecordResult is the outcome of one stream URL. Err is set when the record was
// skipped before any side effect; IconErr and PlaylistErr are independent.
type RecordResult struct {
	ChannelPath string
	Name        string
	VideoURL    string
	LogoURL     string
	IconBytes   int64
	Err         error
	IconErr     error
	PlaylistErr error
}

// Written counts the records that made it into the playlist.
func (s *Summary) Written() int {
	n := 0
	for _, r := range s.Records {
		if r.Err == nil && r.PlaylistErr == nil {
			n++
		}
	}

	return n
}

// Rows renders the records for a table: name, stream, icon, playlist.
func (s *Summary) Rows() [][]string {
	rows := make([][]string, 0, len(s.Records))
	for _, r := range s.Records {
		name := r.Name
		if name == "" {
			name = unknownName
		}

		iconCell := "failed"
		playlistCell := "failed"
		switch {
		case r.Err != nil:
			iconCell = "skipped"
			playlistCell = "skipped"
		default:
			if r.IconErr == nil {
				iconCell = bytesConvert(uint64(r.IconBytes))
			}
			if r.PlaylistErr == nil {
				playlistCell = "ok"
			}
		}

		rows = append(rows, []string{name, r.VideoURL, iconCell, playlistCell})
	}

	return rows
}
