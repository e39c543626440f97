package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shawon922/utube-channel-scrapper/internal/domain"
	"github.com/shawon922/utube-channel-scrapper/internal/youtube"
)

// videoBatchSize is the upstream per-request maximum for video detail
// lookups. The pipeline never buffers more pending video IDs than this.
const videoBatchSize = 50

// IngestService walks a channel's playlists and playlist items, fetches
// the referenced videos in batches and upserts everything into the
// store. Re-running against the same channel converges to upstream's
// current state instead of duplicating records.
type IngestService struct {
	source    VideoSource
	channels  ChannelStore
	videos    VideoStore
	tags      TagStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
}

func NewIngestService(
	source VideoSource,
	channels ChannelStore,
	videos VideoStore,
	tags TagStore,
	txManager TransactionManager,
	publisher Publisher,
	logger *slog.Logger,
) *IngestService {
	return &IngestService{
		source:    source,
		channels:  channels,
		videos:    videos,
		tags:      tags,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("component", "ingest"),
	}
}

// Run executes one ingestion run for the channel with the given
// upstream identifier. A channel unknown upstream is not an error: the
// run ends with empty stats. Any fetch failure aborts the run; records
// upserted before the failure stay persisted.
func (s *IngestService) Run(ctx context.Context, channelUID string) (*domain.IngestStats, error) {
	startTime := time.Now()
	stats := &domain.IngestStats{ChannelUID: channelUID}

	s.logger.Info("starting ingestion run", "channel_uid", channelUID)

	upstreamChannels, err := s.source.ChannelByID(ctx, youtube.IDString(channelUID), "snippet", "statistics")
	if err != nil {
		return nil, fmt.Errorf("fetch channel: %w", err)
	}
	if len(upstreamChannels) == 0 {
		s.logger.Info("channel not found upstream, nothing to ingest", "channel_uid", channelUID)
		stats.Duration = time.Since(startTime)
		return stats, nil
	}

	ch := upstreamChannels[0]
	channelID, err := s.channels.Upsert(ctx, &domain.Channel{
		ChannelUID:      ch.ID,
		Title:           ch.Snippet.Title,
		Description:     ch.Snippet.Description,
		ViewCount:       ch.Statistics.ViewCount,
		CommentCount:    ch.Statistics.CommentCount,
		SubscriberCount: ch.Statistics.SubscriberCount,
		VideoCount:      ch.Statistics.VideoCount,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert channel: %w", err)
	}

	playlists, err := s.source.Playlists(ctx, ch.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch playlists: %w", err)
	}
	stats.Playlists = len(playlists)

	var batch []string
	for _, playlist := range playlists {
		items, err := s.source.PlaylistItems(ctx, playlist.ID, 0, "snippet", "contentDetails")
		if err != nil {
			return nil, fmt.Errorf("fetch playlist items %s: %w", playlist.ID, err)
		}
		stats.PlaylistItems += len(items)

		for _, item := range items {
			videoUID := item.ContentDetails.VideoID
			if videoUID == "" {
				continue
			}
			batch = append(batch, videoUID)
			if len(batch) == videoBatchSize {
				if err := s.flushVideos(ctx, channelID, batch, stats); err != nil {
					return nil, err
				}
				batch = nil
			}
		}
	}

	// Remainder below one full batch at end of traversal.
	if len(batch) > 0 {
		if err := s.flushVideos(ctx, channelID, batch, stats); err != nil {
			return nil, err
		}
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("ingestion run completed",
		"channel_uid", channelUID,
		"playlists", stats.Playlists,
		"playlist_items", stats.PlaylistItems,
		"batches", stats.Batches,
		"new", stats.VideosNew,
		"updated", stats.VideosUpdated,
		"errors", stats.Errors,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats, nil
}

// flushVideos fetches one batch of video details and upserts each
// record, replacing its tag set with whatever the response carries.
func (s *IngestService) flushVideos(ctx context.Context, channelID int64, uids []string, stats *domain.IngestStats) error {
	stats.Batches++

	videos, err := s.source.VideosByID(ctx, youtube.IDs(uids...), "snippet", "statistics")
	if err != nil {
		return fmt.Errorf("fetch videos: %w", err)
	}

	existing, err := s.videos.ExistingUIDs(ctx, uids)
	if err != nil {
		return fmt.Errorf("lookup existing videos: %w", err)
	}

	for i := range videos {
		v := &videos[i]
		record := &domain.Video{
			ChannelID:     &channelID,
			VideoUID:      v.ID,
			Title:         v.Snippet.Title,
			Description:   v.Snippet.Description,
			PublishedAt:   v.Snippet.PublishedAt,
			ViewCount:     v.Statistics.ViewCount,
			CommentCount:  v.Statistics.CommentCount,
			LikeCount:     v.Statistics.LikeCount,
			DislikeCount:  v.Statistics.DislikeCount,
			FavoriteCount: v.Statistics.FavoriteCount,
			Tags:          v.Snippet.Tags,
		}
		_, exists := existing[v.ID]

		err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			videoID, err := s.videos.Upsert(txCtx, record)
			if err != nil {
				return fmt.Errorf("upsert video: %w", err)
			}
			// Clear-then-add: no tags in the response leaves zero tags.
			if err := s.tags.ReplaceForVideo(txCtx, videoID, record.Tags); err != nil {
				return fmt.Errorf("replace tags: %w", err)
			}
			return nil
		})
		if err != nil {
			s.logger.Error("failed to save video", "video_uid", v.ID, "error", err)
			stats.Errors++
			continue
		}

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, record, !exists); err != nil {
				s.logger.Error("failed to publish video event", "video_uid", v.ID, "error", err)
				stats.Errors++
			} else {
				stats.Published++
			}
		}

		if exists {
			stats.VideosUpdated++
		} else {
			stats.VideosNew++
		}
	}

	return nil
}
