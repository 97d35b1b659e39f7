package blueprint

// SonglinkPlatformLink is a single storefront entry in the resolver's
// per-platform map.
type SonglinkPlatformLink struct {
	URL                 string `json:"url"`
	EntityUniqueID      string `json:"entityUniqueId"`
	NativeAppURIMobile  string `json:"nativeAppUriMobile,omitempty"`
	NativeAppURIDesktop string `json:"nativeAppUriDesktop,omitempty"`
}

// SonglinkEntity is the resolver's metadata record for a release on one
// particular provider.
type SonglinkEntity struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	Title           string   `json:"title,omitempty"`
	ArtistName      string   `json:"artistName,omitempty"`
	ThumbnailURL    string   `json:"thumbnailUrl,omitempty"`
	ThumbnailWidth  int      `json:"thumbnailWidth,omitempty"`
	ThumbnailHeight int      `json:"thumbnailHeight,omitempty"`
	APIProvider     string   `json:"apiProvider"`
	Platforms       []string `json:"platforms"`
}

// SonglinkResponse represents the raw payload returned by the cross-platform
// link resolution service for one release URL.
type SonglinkResponse struct {
	EntityUniqueID     string                          `json:"entityUniqueId"`
	UserCountry        string                          `json:"userCountry"`
	PageURL            string                          `json:"pageUrl"`
	LinksByPlatform    map[string]SonglinkPlatformLink `json:"linksByPlatform"`
	EntitiesByUniqueID map[string]SonglinkEntity       `json:"entitiesByUniqueId"`
}

// PlatformLink is one purchase link in the aggregated response. Category is
// always one of constants.CategoryDownload or constants.CategoryPhysical and
// is a pure function of Platform.
type PlatformLink struct {
	Platform    string `json:"platform"`
	DisplayName string `json:"displayName"`
	URL         string `json:"url"`
	Category    string `json:"category"`
}

// ResolvedMetadata is the release metadata shown alongside the links. The
// artwork may come from a different source than the title when the resolver
// has no thumbnail.
type ResolvedMetadata struct {
	Title      string `json:"title"`
	ArtistName string `json:"artistName"`
	Artwork    string `json:"artwork,omitempty"`
}

// AggregationResult is the final response for a link aggregation request. An
// empty Links slice is a valid result, distinct from "not fetched".
type AggregationResult struct {
	Artist   string            `json:"artist,omitempty"`
	Album    string            `json:"album,omitempty"`
	Links    []PlatformLink    `json:"links"`
	Metadata *ResolvedMetadata `json:"metadata,omitempty"`
}
