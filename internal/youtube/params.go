package youtube

import (
	"log/slog"
	"sort"
	"strings"
)

// Resource names an upstream resource collection.
type Resource string

const (
	ResourceChannels      Resource = "channels"
	ResourcePlaylists     Resource = "playlists"
	ResourcePlaylistItems Resource = "playlistItems"
	ResourceVideos        Resource = "videos"
)

// resourceParts maps each resource to the part names the upstream API
// accepts for it. Built once at init; never mutated.
var resourceParts = map[Resource]map[string]struct{}{
	ResourceChannels: partSet(
		"id", "brandingSettings", "contentDetails", "localizations",
		"snippet", "statistics", "status", "topicDetails",
	),
	ResourcePlaylists: partSet(
		"id", "contentDetails", "localizations", "player", "snippet", "status",
	),
	ResourcePlaylistItems: partSet(
		"id", "contentDetails", "snippet", "status",
	),
	ResourceVideos: partSet(
		"id", "contentDetails", "player", "snippet", "statistics",
		"status", "topicDetails",
	),
}

func partSet(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

type idListKind int

const (
	idListAbsent idListKind = iota
	idListString
	idListOrdered
	idListUnordered
)

// IDList carries upstream identifiers in one of three shapes: a single
// (possibly already comma-joined) string, an ordered sequence, or an
// unordered set. The zero value means "absent".
type IDList struct {
	kind idListKind
	str  string
	seq  []string
	set  map[string]struct{}
}

// IDString wraps a single identifier or an already comma-joined string.
func IDString(s string) IDList {
	return IDList{kind: idListString, str: s}
}

// IDs wraps an ordered sequence of identifiers. Join order is the
// sequence order.
func IDs(ids ...string) IDList {
	return IDList{kind: idListOrdered, seq: ids}
}

// IDSet wraps an unordered collection of identifiers. Join order is
// undefined across calls.
func IDSet(ids map[string]struct{}) IDList {
	return IDList{kind: idListUnordered, set: ids}
}

// IsZero reports whether the list is absent.
func (l IDList) IsZero() bool {
	return l.kind == idListAbsent
}

// encode serializes the list into the comma-joined wire form. Absent
// lists encode to the empty string. Unordered sets log a warning
// because the resulting order is not stable across calls.
func (l IDList) encode(field string, logger *slog.Logger) (string, error) {
	switch l.kind {
	case idListAbsent:
		return "", nil
	case idListString:
		return l.str, nil
	case idListOrdered:
		return strings.Join(l.seq, ","), nil
	case idListUnordered:
		if logger != nil {
			logger.Warn("unordered id set: join order is unreliable", "field", field)
		}
		ids := make([]string, 0, len(l.set))
		for id := range l.set {
			ids = append(ids, id)
		}
		return strings.Join(ids, ","), nil
	default:
		return "", &InvalidParameterError{
			Field:  field,
			Reason: "must be a single string, comma-joined string, ordered sequence or set",
		}
	}
}

// encodeParts validates the requested parts against the resource's
// whitelist and serializes them comma-joined. Each element of parts may
// itself be comma-joined. A nil or empty selection defaults to the full
// whitelist. Acceptance is set-based: order and duplicates are ignored.
func encodeParts(resource Resource, parts []string) (string, error) {
	allowed, ok := resourceParts[resource]
	if !ok {
		return "", &InvalidParameterError{
			Field:  "resource",
			Reason: "unknown resource " + string(resource),
		}
	}

	if len(parts) == 0 {
		names := make([]string, 0, len(allowed))
		for name := range allowed {
			names = append(names, name)
		}
		sort.Strings(names)
		return strings.Join(names, ","), nil
	}

	requested := make(map[string]struct{})
	for _, p := range parts {
		for _, name := range strings.Split(p, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				requested[name] = struct{}{}
			}
		}
	}

	var unsupported []string
	for name := range requested {
		if _, ok := allowed[name]; !ok {
			unsupported = append(unsupported, name)
		}
	}
	if len(unsupported) > 0 {
		sort.Strings(unsupported)
		return "", &UnsupportedPartsError{Resource: resource, Parts: unsupported}
	}

	names := make([]string, 0, len(requested))
	for name := range requested {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ","), nil
}
