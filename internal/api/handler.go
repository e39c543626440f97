package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shawon922/utube-channel-scrapper/internal/domain"
)

// pageSize is the fixed page size of the video list endpoint.
const pageSize = 20

// VideoLister is the store surface the read API consumes.
type VideoLister interface {
	List(ctx context.Context, params domain.VideoListParams) (*domain.VideoPage, error)
}

type VideoHandler struct {
	videos VideoLister
	cache  *Cache
	logger *slog.Logger
}

// NewVideoHandler creates the video list handler. cache may be nil.
func NewVideoHandler(videos VideoLister, cache *Cache, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		videos: videos,
		cache:  cache,
		logger: logger.With("component", "api"),
	}
}

type videoJSON struct {
	ID            int64     `json:"id"`
	Channel       *int64    `json:"channel"`
	ChannelName   string    `json:"channel_name"`
	Tags          []string  `json:"tags"`
	VideoUID      string    `json:"video_uid"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PublishedAt   time.Time `json:"published_at"`
	ViewCount     uint64    `json:"view_count"`
	CommentCount  uint64    `json:"comment_count"`
	LikeCount     uint64    `json:"like_count"`
	DislikeCount  uint64    `json:"dislike_count"`
	FavoriteCount uint64    `json:"favorite_count"`
}

type videoPageJSON struct {
	Videos   []videoJSON `json:"videos"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Total    int         `json:"total"`
	HasMore  bool        `json:"has_more"`
}

// HandleListVideos serves GET /api/v1/videos with title, tags, search
// and page query parameters.
func (h *VideoHandler) HandleListVideos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if pageStr := q.Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 1 {
			h.logger.Warn("invalid page parameter", "page", pageStr)
			writeJSON(w, http.StatusBadRequest, envelope{"message": "Bad Request"})
			return
		}
		page = parsed
	}

	params := domain.VideoListParams{
		Title:    q.Get("title"),
		Tag:      q.Get("tags"),
		Search:   q.Get("search"),
		Page:     page,
		PageSize: pageSize,
	}

	// url.Values.Encode sorts keys, so equal filters share a key.
	cacheKey := "videos:" + q.Encode()
	if h.cache != nil {
		if cached, ok := h.cache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
	}

	result, err := h.videos.List(r.Context(), params)
	if err != nil {
		h.logger.Error("failed to list videos", "error", err)
		writeJSON(w, http.StatusInternalServerError, envelope{"message": "Internal Server Error"})
		return
	}

	response := videoPageJSON{
		Videos:   make([]videoJSON, 0, len(result.Videos)),
		Page:     result.Page,
		PageSize: result.PageSize,
		Total:    result.Total,
		HasMore:  result.HasMore,
	}
	for _, v := range result.Videos {
		tags := v.Tags
		if tags == nil {
			tags = []string{}
		}
		response.Videos = append(response.Videos, videoJSON{
			ID:            v.ID,
			Channel:       v.ChannelID,
			ChannelName:   v.ChannelName,
			Tags:          tags,
			VideoUID:      v.VideoUID,
			Title:         v.Title,
			Description:   v.Description,
			PublishedAt:   v.PublishedAt,
			ViewCount:     v.ViewCount,
			CommentCount:  v.CommentCount,
			LikeCount:     v.LikeCount,
			DislikeCount:  v.DislikeCount,
			FavoriteCount: v.FavoriteCount,
		})
	}

	body, err := json.Marshal(response)
	if err != nil {
		h.logger.Error("failed to marshal response", "error", err)
		writeJSON(w, http.StatusInternalServerError, envelope{"message": "Internal Server Error"})
		return
	}

	if h.cache != nil {
		h.cache.Set(r.Context(), cacheKey, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

type envelope map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, data envelope) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
