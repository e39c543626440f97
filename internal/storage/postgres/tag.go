package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type TagStore struct {
	db *sqlx.DB
}

func NewTagStore(db *sqlx.DB) *TagStore {
	return &TagStore{db: db}
}

// ReplaceForVideo clears the video's tag associations and links it to
// the given names, creating tags that don't exist yet. An empty name
// list leaves the video with zero tags.
func (s *TagStore) ReplaceForVideo(ctx context.Context, videoID int64, names []string) error {
	exec := getExecutor(ctx, s.db)

	_, err := exec.ExecContext(ctx,
		"DELETE FROM video_tags WHERE video_id = $1",
		videoID,
	)
	if err != nil {
		return err
	}

	names = dedupe(names)
	if len(names) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO tags (name) VALUES ")
	valueArgs := make([]interface{}, 0, len(names))
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("($")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(")")
		valueArgs = append(valueArgs, name)
	}
	sb.WriteString(" ON CONFLICT (name) DO NOTHING")

	if _, err := exec.ExecContext(ctx, sb.String(), valueArgs...); err != nil {
		return err
	}

	_, err = exec.ExecContext(ctx, `
		INSERT INTO video_tags (video_id, tag_id)
		SELECT $1, id FROM tags WHERE name = ANY($2)
		ON CONFLICT DO NOTHING`,
		videoID, pq.Array(names),
	)
	return err
}

// GetByVideoID returns the video's tag names.
func (s *TagStore) GetByVideoID(ctx context.Context, videoID int64) ([]string, error) {
	query := `
		SELECT t.name
		FROM tags t
		INNER JOIN video_tags vt ON vt.tag_id = t.id
		WHERE vt.video_id = $1
		ORDER BY t.name`

	var names []string
	err := sqlx.SelectContext(ctx, getExecutor(ctx, s.db), &names, query, videoID)
	return names, err
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0:0]
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
