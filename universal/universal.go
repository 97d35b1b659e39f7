// Package universal merges the resolver's per-platform link map with the
// storefront links we synthesize ourselves into one categorized, sorted list
// of purchase links.
package universal

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/samber/lo"

	"streamtoshelf/blueprint"
	"streamtoshelf/constants"
)

// BuildPlatformLinks is the aggregation step. Resolver-sourced links pass
// through the allow-list; keyword-search links for the marketplace and the
// hi-res storefront are synthesized whenever both artist and album text are
// present; catalogURL, when non-empty, becomes the physical catalog entry.
// It never fails: a nil resolver payload simply contributes nothing.
func BuildPlatformLinks(resolved *blueprint.SonglinkResponse, region, artist, album, catalogURL string) []blueprint.PlatformLink {
	links := make([]blueprint.PlatformLink, 0, 8)

	if resolved != nil {
		for platform, linkData := range resolved.LinksByPlatform {
			info, ok := constants.ResolverPlatforms[platform]
			if !ok {
				// streaming services and anything else we don't sell
				continue
			}
			// the resolver's amazon affiliate links 404 too often; the
			// synthesized search link below stands in for them
			if platform == constants.PlatformAmazonStore {
				continue
			}
			links = append(links, blueprint.PlatformLink{
				Platform:    platform,
				DisplayName: info.DisplayName,
				URL:         linkData.URL,
				Category:    info.Category,
			})
		}
	}

	if artist != "" && album != "" {
		domain := constants.AmazonDomains[region]
		if domain == "" {
			domain = constants.DefaultAmazonDomain
		}
		keyword := url.QueryEscape(artist + " " + album)

		links = append(links, synthesizedLink(constants.PlatformAmazonDigital,
			fmt.Sprintf("https://www.%s/s?k=%s&i=digital-music", domain, keyword)))
		links = append(links, synthesizedLink(constants.PlatformAmazonPhysical,
			fmt.Sprintf("https://www.%s/s?k=%s&i=popular", domain, keyword)))
		if catalogURL != "" {
			links = append(links, synthesizedLink(constants.PlatformDiscogs, catalogURL))
		}
		links = append(links, synthesizedLink(constants.PlatformHDtracks,
			fmt.Sprintf("https://www.hdtracks.com/#/search?q=%s", keyword)))
	}

	sort.SliceStable(links, func(i, j int) bool {
		if links[i].Category != links[j].Category {
			return links[i].Category == constants.CategoryDownload
		}
		return links[i].DisplayName < links[j].DisplayName
	})

	return links
}

func synthesizedLink(platform, linkURL string) blueprint.PlatformLink {
	info := constants.SynthesizedPlatforms[platform]
	return blueprint.PlatformLink{
		Platform:    platform,
		DisplayName: info.DisplayName,
		URL:         linkURL,
		Category:    info.Category,
	}
}

// FirstEntity picks the resolver entity used for metadata. The resolver's
// own entityUniqueId wins; otherwise the lowest unique id keeps the choice
// deterministic across map iteration order.
func FirstEntity(resolved *blueprint.SonglinkResponse) *blueprint.SonglinkEntity {
	if resolved == nil || len(resolved.EntitiesByUniqueID) == 0 {
		return nil
	}
	if entity, ok := resolved.EntitiesByUniqueID[resolved.EntityUniqueID]; ok {
		return &entity
	}
	keys := lo.Keys(resolved.EntitiesByUniqueID)
	sort.Strings(keys)
	entity := resolved.EntitiesByUniqueID[keys[0]]
	return &entity
}

// ResolveMetadata extracts the release metadata shown next to the links.
// Missing fields are merged in rather than replacing the record: the queried
// artist text backfills the artist name and fallbackArtwork backfills the
// thumbnail when the resolver has none.
func ResolveMetadata(resolved *blueprint.SonglinkResponse, artist, fallbackArtwork string) *blueprint.ResolvedMetadata {
	entity := FirstEntity(resolved)
	if entity == nil {
		return nil
	}

	metadata := &blueprint.ResolvedMetadata{
		Title:      entity.Title,
		ArtistName: entity.ArtistName,
		Artwork:    entity.ThumbnailURL,
	}
	if metadata.Title == "" {
		metadata.Title = "Unknown"
	}
	if metadata.ArtistName == "" {
		metadata.ArtistName = artist
	}
	if metadata.ArtistName == "" {
		metadata.ArtistName = "Unknown"
	}
	if metadata.Artwork == "" {
		metadata.Artwork = fallbackArtwork
	}
	return metadata
}
