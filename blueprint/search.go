package blueprint

// AlbumSearchResult represents a single candidate release from the metadata
// provider's fuzzy search, after the plausible-artist filter has run.
type AlbumSearchResult struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Artists   []string `json:"artists"`
	Cover     string   `json:"cover,omitempty"`
	Released  string   `json:"released,omitempty"`
	AlbumType string   `json:"album_type"`
	URL       string   `json:"url"`
}

// AlbumSearchResponse is the full response for a metadata search request. An
// empty Results slice is a valid, successful response.
type AlbumSearchResponse struct {
	Artist  string              `json:"artist"`
	Album   string              `json:"album,omitempty"`
	Results []AlbumSearchResult `json:"results"`
}

// ArtistSuggestion is a single autocomplete candidate.
type ArtistSuggestion struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}
