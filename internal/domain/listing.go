package domain

// VideoListParams are the read API filters. Title and Tag match by
// substring; Search matches title or description and deduplicates.
type VideoListParams struct {
	Title    string
	Tag      string
	Search   string
	Page     int
	PageSize int
}

// VideoListItem is a stored video joined with its channel's display
// title and flattened tag names.
type VideoListItem struct {
	Video
	ChannelName string
}

// VideoPage is one page of list results.
type VideoPage struct {
	Videos   []VideoListItem
	Page     int
	PageSize int
	Total    int
	HasMore  bool
}
