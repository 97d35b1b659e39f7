package platforms

import (
	"streamtoshelf/services/discogs"
	"streamtoshelf/services/songlink"
	"streamtoshelf/services/spotify"
)

// Platforms holds the provider clients the handlers orchestrate.
type Platforms struct {
	Spotify  *spotify.Service
	Songlink *songlink.Service
	Discogs  *discogs.Service
}

// NewPlatform creates the platform controllers with their provider clients.
func NewPlatform(spotifySvc *spotify.Service, songlinkSvc *songlink.Service, discogsSvc *discogs.Service) *Platforms {
	return &Platforms{
		Spotify:  spotifySvc,
		Songlink: songlinkSvc,
		Discogs:  discogsSvc,
	}
}
