package youtube

import (
	"encoding/json"
	"time"
)

// listEnvelope is the top-level structure of every upstream response.
// An error field anywhere in the envelope signals failure.
type listEnvelope struct {
	Error         *apiError         `json:"error"`
	Items         []json.RawMessage `json:"items"`
	NextPageToken string            `json:"nextPageToken"`
	PrevPageToken string            `json:"prevPageToken"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PagedResult wraps the items accumulated across a pagination loop plus
// the last-seen cursor tokens. An empty NextPageToken means the
// traversal is complete.
type PagedResult struct {
	Items         []json.RawMessage
	NextPageToken string
	PrevPageToken string
}

// Channel is the upstream channel resource (snippet + statistics parts).
type Channel struct {
	ID         string            `json:"id"`
	Snippet    ChannelSnippet    `json:"snippet"`
	Statistics ChannelStatistics `json:"statistics"`
}

type ChannelSnippet struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Counters arrive as JSON strings on the wire.
type ChannelStatistics struct {
	ViewCount       uint64 `json:"viewCount,string"`
	CommentCount    uint64 `json:"commentCount,string"`
	SubscriberCount uint64 `json:"subscriberCount,string"`
	VideoCount      uint64 `json:"videoCount,string"`
}

// Playlist is the upstream playlist resource. The pipeline only uses
// its ID to drive the playlist-items stage.
type Playlist struct {
	ID      string          `json:"id"`
	Snippet PlaylistSnippet `json:"snippet"`
}

type PlaylistSnippet struct {
	Title     string `json:"title"`
	ChannelID string `json:"channelId"`
}

// PlaylistItem is the upstream playlistItem resource; ContentDetails
// carries the referenced video identifier.
type PlaylistItem struct {
	ID             string                     `json:"id"`
	Snippet        PlaylistItemSnippet        `json:"snippet"`
	ContentDetails PlaylistItemContentDetails `json:"contentDetails"`
}

type PlaylistItemSnippet struct {
	Title      string `json:"title"`
	PlaylistID string `json:"playlistId"`
	Position   int    `json:"position"`
}

type PlaylistItemContentDetails struct {
	VideoID          string    `json:"videoId"`
	VideoPublishedAt time.Time `json:"videoPublishedAt"`
}

// Video is the upstream video resource (snippet + statistics parts).
type Video struct {
	ID         string          `json:"id"`
	Snippet    VideoSnippet    `json:"snippet"`
	Statistics VideoStatistics `json:"statistics"`
}

type VideoSnippet struct {
	ChannelID   string    `json:"channelId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"publishedAt"`
	Tags        []string  `json:"tags"`
}

type VideoStatistics struct {
	ViewCount     uint64 `json:"viewCount,string"`
	CommentCount  uint64 `json:"commentCount,string"`
	LikeCount     uint64 `json:"likeCount,string"`
	DislikeCount  uint64 `json:"dislikeCount,string"`
	FavoriteCount uint64 `json:"favoriteCount,string"`
}
