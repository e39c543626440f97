package youtube

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestIDListEncode_Absent(t *testing.T) {
	var ids IDList

	assert.True(t, ids.IsZero())

	encoded, err := ids.encode("channel_id", testLogger())
	require.NoError(t, err)
	assert.Equal(t, "", encoded)
}

func TestIDListEncode_SingleString(t *testing.T) {
	encoded, err := IDString("UChTsiSbpTuSrdOHpXkKlq6Q").encode("channel_id", testLogger())
	require.NoError(t, err)
	assert.Equal(t, "UChTsiSbpTuSrdOHpXkKlq6Q", encoded)
}

func TestIDListEncode_CommaJoinedStringPassesThrough(t *testing.T) {
	encoded, err := IDString("a,b,c").encode("video_id", testLogger())
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", encoded)
}

func TestIDListEncode_OrderedRespectsOrder(t *testing.T) {
	encoded, err := IDs("c", "a", "b").encode("video_id", testLogger())
	require.NoError(t, err)
	assert.Equal(t, "c,a,b", encoded)
}

func TestIDListEncode_UnorderedPreservesElements(t *testing.T) {
	ids := map[string]struct{}{"a": {}, "b": {}, "c": {}}

	encoded, err := IDSet(ids).encode("video_id", testLogger())
	require.NoError(t, err)

	got := strings.Split(encoded, ",")
	assert.ElementsMatch(t, []string{"a", "b", "c"}, got)
}

func TestEncodeParts_DefaultsToFullWhitelist(t *testing.T) {
	tests := []struct {
		resource Resource
		want     []string
	}{
		{ResourceChannels, []string{
			"id", "brandingSettings", "contentDetails", "localizations",
			"snippet", "statistics", "status", "topicDetails",
		}},
		{ResourcePlaylists, []string{
			"id", "contentDetails", "localizations", "player", "snippet", "status",
		}},
		{ResourcePlaylistItems, []string{
			"id", "contentDetails", "snippet", "status",
		}},
		{ResourceVideos, []string{
			"id", "contentDetails", "player", "snippet", "statistics",
			"status", "topicDetails",
		}},
	}

	for _, tt := range tests {
		encoded, err := encodeParts(tt.resource, nil)
		require.NoError(t, err, "resource %s", tt.resource)
		assert.ElementsMatch(t, tt.want, strings.Split(encoded, ","), "resource %s", tt.resource)
	}
}

func TestEncodeParts_SubsetUnchanged(t *testing.T) {
	encoded, err := encodeParts(ResourceChannels, []string{"snippet", "statistics"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"snippet", "statistics"}, strings.Split(encoded, ","))
}

func TestEncodeParts_AcceptsCommaJoined(t *testing.T) {
	encoded, err := encodeParts(ResourcePlaylistItems, []string{"snippet,contentDetails"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"snippet", "contentDetails"}, strings.Split(encoded, ","))
}

func TestEncodeParts_OrderInsensitive(t *testing.T) {
	a, err := encodeParts(ResourceVideos, []string{"statistics", "snippet"})
	require.NoError(t, err)
	b, err := encodeParts(ResourceVideos, []string{"snippet", "statistics"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodeParts_RejectsUnsupportedNamingAllOffenders(t *testing.T) {
	_, err := encodeParts(ResourcePlaylists, []string{"snippet", "statistics", "topicDetails"})
	require.Error(t, err)

	var partsErr *UnsupportedPartsError
	require.True(t, errors.As(err, &partsErr))
	assert.Equal(t, ResourcePlaylists, partsErr.Resource)
	assert.ElementsMatch(t, []string{"statistics", "topicDetails"}, partsErr.Parts)
}

func TestEncodeParts_UnknownResource(t *testing.T) {
	_, err := encodeParts(Resource("comments"), nil)
	require.Error(t, err)

	var paramErr *InvalidParameterError
	assert.True(t, errors.As(err, &paramErr))
}
