package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shawon922/utube-channel-scrapper/internal/domain"
	"github.com/shawon922/utube-channel-scrapper/internal/youtube"
)

// VideoSource is the upstream API surface the pipeline consumes.
type VideoSource interface {
	ChannelByID(ctx context.Context, ids youtube.IDList, parts ...string) ([]youtube.Channel, error)
	Playlists(ctx context.Context, channelID string, count int, parts ...string) ([]youtube.Playlist, error)
	PlaylistItems(ctx context.Context, playlistID string, count int, parts ...string) ([]youtube.PlaylistItem, error)
	VideosByID(ctx context.Context, ids youtube.IDList, parts ...string) ([]youtube.Video, error)
}

type ChannelStore interface {
	Upsert(ctx context.Context, channel *domain.Channel) (int64, error)
}

type VideoStore interface {
	Upsert(ctx context.Context, video *domain.Video) (int64, error)
	ExistingUIDs(ctx context.Context, uids []string) (map[string]int64, error)
}

type TagStore interface {
	ReplaceForVideo(ctx context.Context, videoID int64, names []string) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, video *domain.Video, isNew bool) error
	Close() error
}
