package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/shawon922/utube-channel-scrapper/internal/domain"
)

type ChannelStore struct {
	db *sqlx.DB
}

func NewChannelStore(db *sqlx.DB) *ChannelStore {
	return &ChannelStore{db: db}
}

// Upsert creates the channel on first sighting of its UID and updates
// it in place on every subsequent one.
func (s *ChannelStore) Upsert(ctx context.Context, channel *domain.Channel) (int64, error) {
	query := `
		INSERT INTO channels (
			channel_uid, title, description,
			view_count, comment_count, subscriber_count, video_count
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (channel_uid) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			view_count = EXCLUDED.view_count,
			comment_count = EXCLUDED.comment_count,
			subscriber_count = EXCLUDED.subscriber_count,
			video_count = EXCLUDED.video_count,
			updated_at = now()
		RETURNING id`

	var id int64
	err := getExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		channel.ChannelUID,
		channel.Title,
		channel.Description,
		channel.ViewCount,
		channel.CommentCount,
		channel.SubscriberCount,
		channel.VideoCount,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetByUID returns the stored channel for an upstream identifier, or
// nil when none exists.
func (s *ChannelStore) GetByUID(ctx context.Context, uid string) (*domain.Channel, error) {
	query := `
		SELECT id, channel_uid, title, description,
		       view_count, comment_count, subscriber_count, video_count,
		       created_at, updated_at
		FROM channels
		WHERE channel_uid = $1`

	var channel domain.Channel
	err := sqlx.GetContext(ctx, getExecutor(ctx, s.db), &channel, query, uid)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}
