package domain

import "time"

// IngestStats holds statistics about one ingestion run.
type IngestStats struct {
	ChannelUID    string
	Playlists     int
	PlaylistItems int
	Batches       int
	VideosNew     int
	VideosUpdated int
	Errors        int
	Published     int
	Duration      time.Duration
}
