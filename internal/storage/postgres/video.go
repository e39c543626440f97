package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/shawon922/utube-channel-scrapper/internal/domain"
)

type VideoStore struct {
	db *sqlx.DB
}

func NewVideoStore(db *sqlx.DB) *VideoStore {
	return &VideoStore{db: db}
}

// Upsert creates or updates the video keyed by its upstream UID.
func (s *VideoStore) Upsert(ctx context.Context, video *domain.Video) (int64, error) {
	query := `
		INSERT INTO videos (
			channel_id, video_uid, title, description, published_at,
			view_count, comment_count, like_count, dislike_count, favorite_count
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (video_uid) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			published_at = EXCLUDED.published_at,
			view_count = EXCLUDED.view_count,
			comment_count = EXCLUDED.comment_count,
			like_count = EXCLUDED.like_count,
			dislike_count = EXCLUDED.dislike_count,
			favorite_count = EXCLUDED.favorite_count,
			updated_at = now()
		RETURNING id`

	var id int64
	err := getExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		video.ChannelID,
		video.VideoUID,
		video.Title,
		video.Description,
		video.PublishedAt,
		video.ViewCount,
		video.CommentCount,
		video.LikeCount,
		video.DislikeCount,
		video.FavoriteCount,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ExistingUIDs maps the given upstream identifiers to the local IDs of
// videos already stored.
func (s *VideoStore) ExistingUIDs(ctx context.Context, uids []string) (map[string]int64, error) {
	result := make(map[string]int64, len(uids))
	if len(uids) == 0 {
		return result, nil
	}

	query := `SELECT id, video_uid FROM videos WHERE video_uid = ANY($1)`

	rows, err := getExecutor(ctx, s.db).QueryxContext(ctx, query, pq.Array(uids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var uid string
		if err := rows.Scan(&id, &uid); err != nil {
			return nil, err
		}
		result[uid] = id
	}

	return result, rows.Err()
}

type videoListRow struct {
	ID            int64          `db:"id"`
	ChannelID     *int64         `db:"channel_id"`
	VideoUID      string         `db:"video_uid"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	PublishedAt   time.Time      `db:"published_at"`
	ViewCount     uint64         `db:"view_count"`
	CommentCount  uint64         `db:"comment_count"`
	LikeCount     uint64         `db:"like_count"`
	DislikeCount  uint64         `db:"dislike_count"`
	FavoriteCount uint64         `db:"favorite_count"`
	ChannelName   string         `db:"channel_name"`
	Tags          pq.StringArray `db:"tags"`
}

// List returns one page of stored videos with channel title and tag
// names, filtered per params. Tag and search filters match by
// substring, case-insensitively; grouping keeps rows distinct even
// when a video matches through several tags.
func (s *VideoStore) List(ctx context.Context, params domain.VideoListParams) (*domain.VideoPage, error) {
	where := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	addFilter := func(clause string, value interface{}) {
		where = append(where, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(argPos)))
		args = append(args, value)
		argPos++
	}

	if params.Title != "" {
		addFilter("v.title ILIKE '%' || ? || '%'", params.Title)
	}
	if params.Tag != "" {
		addFilter(`EXISTS (
			SELECT 1 FROM video_tags vt
			JOIN tags t ON t.id = vt.tag_id
			WHERE vt.video_id = v.id AND t.name ILIKE '%' || ? || '%'
		)`, params.Tag)
	}
	if params.Search != "" {
		search := "$" + strconv.Itoa(argPos)
		where = append(where, fmt.Sprintf(
			"(v.title ILIKE '%%' || %s || '%%' OR v.description ILIKE '%%' || %s || '%%')",
			search, search,
		))
		args = append(args, params.Search)
		argPos++
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM videos v WHERE ` + whereClause
	if err := sqlx.GetContext(ctx, s.db, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("count videos: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	query := fmt.Sprintf(`
		SELECT v.id, v.channel_id, v.video_uid, v.title, v.description, v.published_at,
		       v.view_count, v.comment_count, v.like_count, v.dislike_count, v.favorite_count,
		       COALESCE(c.title, '') AS channel_name,
		       COALESCE(array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '{}') AS tags
		FROM videos v
		LEFT JOIN channels c ON c.id = v.channel_id
		LEFT JOIN video_tags vt ON vt.video_id = v.id
		LEFT JOIN tags t ON t.id = vt.tag_id
		WHERE %s
		GROUP BY v.id, c.title
		ORDER BY v.id
		LIMIT $%d OFFSET $%d`, whereClause, argPos, argPos+1)
	args = append(args, params.PageSize, offset)

	var rows []videoListRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	page := &domain.VideoPage{
		Videos:   make([]domain.VideoListItem, 0, len(rows)),
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
		HasMore:  offset+len(rows) < total,
	}
	for _, row := range rows {
		page.Videos = append(page.Videos, domain.VideoListItem{
			Video: domain.Video{
				ID:            row.ID,
				ChannelID:     row.ChannelID,
				VideoUID:      row.VideoUID,
				Title:         row.Title,
				Description:   row.Description,
				PublishedAt:   row.PublishedAt,
				ViewCount:     row.ViewCount,
				CommentCount:  row.CommentCount,
				LikeCount:     row.LikeCount,
				DislikeCount:  row.DislikeCount,
				FavoriteCount: row.FavoriteCount,
				Tags:          []string(row.Tags),
			},
			ChannelName: row.ChannelName,
		})
	}

	return page, nil
}
