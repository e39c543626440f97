package domain

import "time"

// Channel is a YouTube channel as stored locally. ChannelUID is the
// upstream-assigned identifier and the natural key for upserts.
type Channel struct {
	ID              int64     `db:"id"`
	ChannelUID      string    `db:"channel_uid"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	ViewCount       uint64    `db:"view_count"`
	CommentCount    uint64    `db:"comment_count"`
	SubscriberCount uint64    `db:"subscriber_count"`
	VideoCount      uint64    `db:"video_count"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Video is a YouTube video as stored locally, keyed by VideoUID.
// ChannelID is nullable: a video may be ingested before its channel.
type Video struct {
	ID            int64     `db:"id"`
	ChannelID     *int64    `db:"channel_id"`
	VideoUID      string    `db:"video_uid"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	PublishedAt   time.Time `db:"published_at"`
	ViewCount     uint64    `db:"view_count"`
	CommentCount  uint64    `db:"comment_count"`
	LikeCount     uint64    `db:"like_count"`
	DislikeCount  uint64    `db:"dislike_count"`
	FavoriteCount uint64    `db:"favorite_count"`
	Tags          []string  `db:"-"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
