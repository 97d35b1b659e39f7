package universal_test

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamtoshelf/blueprint"
	"streamtoshelf/constants"
	"streamtoshelf/universal"
)

func resolverFixture() *blueprint.SonglinkResponse {
	return &blueprint.SonglinkResponse{
		EntityUniqueID: "ITUNES_ALBUM::123",
		UserCountry:    "US",
		PageURL:        "https://album.link/us/i/123",
		LinksByPlatform: map[string]blueprint.SonglinkPlatformLink{
			"itunes":  {URL: "https://music.apple.com/us/album/ok-computer/123"},
			"spotify": {URL: "https://open.spotify.com/album/6dVIqQ8qmQ5GBnJ9shOYGE"},
		},
		EntitiesByUniqueID: map[string]blueprint.SonglinkEntity{
			"ITUNES_ALBUM::123": {
				ID:           "123",
				Type:         "album",
				Title:        "OK Computer",
				ArtistName:   "Radiohead",
				ThumbnailURL: "https://is1-ssl.mzstatic.com/image/thumb/ok-computer.jpg",
				APIProvider:  "itunes",
				Platforms:    []string{"itunes"},
			},
		},
	}
}

func categoryFor(t *testing.T, platform string) string {
	t.Helper()
	if info, ok := constants.ResolverPlatforms[platform]; ok {
		return info.Category
	}
	info, ok := constants.SynthesizedPlatforms[platform]
	require.True(t, ok, "platform %q missing from both category tables", platform)
	return info.Category
}

func TestCategoryIsFunctionOfPlatform(t *testing.T) {
	links := universal.BuildPlatformLinks(resolverFixture(), "US", "Radiohead", "OK Computer", "https://www.discogs.com/release/147682")

	require.NotEmpty(t, links)
	for _, link := range links {
		assert.Equal(t, categoryFor(t, link.Platform), link.Category, "category for %s must come from the fixed table", link.Platform)
	}
}

func TestDownloadLinksPrecedePhysical(t *testing.T) {
	links := universal.BuildPlatformLinks(resolverFixture(), "US", "Radiohead", "OK Computer", "https://www.discogs.com/release/147682")
	require.NotEmpty(t, links)

	sawPhysical := false
	for _, link := range links {
		if link.Category == constants.CategoryPhysical {
			sawPhysical = true
			continue
		}
		if sawPhysical {
			t.Fatalf("download link %q after a physical link:\n%s", link.Platform, spew.Sdump(links))
		}
	}

	// display names are non-decreasing inside each category
	for i := 1; i < len(links); i++ {
		if links[i].Category != links[i-1].Category {
			continue
		}
		if links[i].DisplayName < links[i-1].DisplayName {
			t.Fatalf("display names out of order at %d:\n%s", i, spew.Sdump(links))
		}
	}
}

func TestNoSynthesisWithoutKeywordText(t *testing.T) {
	links := universal.BuildPlatformLinks(resolverFixture(), "US", "", "", "")

	require.Len(t, links, 1)
	assert.Equal(t, constants.PlatformITunes, links[0].Platform)
}

func TestRegionSwapsOnlyMarketplaceDomain(t *testing.T) {
	us := universal.BuildPlatformLinks(resolverFixture(), "US", "Radiohead", "OK Computer", "")
	gb := universal.BuildPlatformLinks(resolverFixture(), "GB", "Radiohead", "OK Computer", "")

	require.Equal(t, len(us), len(gb))
	for i := range us {
		assert.Equal(t, us[i].Platform, gb[i].Platform)
		assert.Equal(t, us[i].DisplayName, gb[i].DisplayName)
		assert.Equal(t, us[i].Category, gb[i].Category)

		switch us[i].Platform {
		case constants.PlatformAmazonDigital, constants.PlatformAmazonPhysical:
			assert.Contains(t, us[i].URL, "www.amazon.com/")
			assert.Contains(t, gb[i].URL, "www.amazon.co.uk/")
			assert.Equal(t,
				strings.Replace(us[i].URL, "amazon.com", "amazon.co.uk", 1),
				gb[i].URL)
		default:
			assert.Equal(t, us[i].URL, gb[i].URL)
		}
	}
}

func TestUnmappedRegionFallsBackToDefaultDomain(t *testing.T) {
	links := universal.BuildPlatformLinks(nil, "XX", "Radiohead", "OK Computer", "")
	require.NotEmpty(t, links)
	for _, link := range links {
		if link.Platform == constants.PlatformAmazonDigital || link.Platform == constants.PlatformAmazonPhysical {
			assert.Contains(t, link.URL, "www."+constants.DefaultAmazonDomain+"/")
		}
	}
}

func TestResolverFailureStillSynthesizes(t *testing.T) {
	links := universal.BuildPlatformLinks(nil, "US", "Radiohead", "OK Computer", "")

	require.Len(t, links, 3)
	platforms := make([]string, 0, len(links))
	for _, link := range links {
		platforms = append(platforms, link.Platform)
	}
	assert.ElementsMatch(t, []string{
		constants.PlatformAmazonDigital,
		constants.PlatformAmazonPhysical,
		constants.PlatformHDtracks,
	}, platforms)
}

func TestScenarioResolverPlusSynthesized(t *testing.T) {
	links := universal.BuildPlatformLinks(resolverFixture(), "US", "Radiohead", "OK Computer", "https://www.discogs.com/release/147682")

	downloads, physicals := 0, 0
	for _, link := range links {
		switch link.Category {
		case constants.CategoryDownload:
			downloads++
		case constants.CategoryPhysical:
			physicals++
		}
		assert.NotEqual(t, "spotify", link.Platform, "streaming platforms must not pass the allow-list")
	}

	require.Len(t, links, 5)
	assert.GreaterOrEqual(t, downloads, 2)
	assert.GreaterOrEqual(t, physicals, 1)

	catalog, found := findPlatform(links, constants.PlatformDiscogs)
	require.True(t, found)
	assert.Equal(t, "https://www.discogs.com/release/147682", catalog.URL)
}

func TestAmazonStoreAffiliateLinkDiscarded(t *testing.T) {
	resolved := resolverFixture()
	resolved.LinksByPlatform[constants.PlatformAmazonStore] = blueprint.SonglinkPlatformLink{
		URL: "https://www.amazon.com/dp/B0000DD7LB?tag=affiliate-20",
	}

	links := universal.BuildPlatformLinks(resolved, "US", "Radiohead", "OK Computer", "")

	_, found := findPlatform(links, constants.PlatformAmazonStore)
	assert.False(t, found, "resolver amazon entry must never surface")

	digital, found := findPlatform(links, constants.PlatformAmazonDigital)
	require.True(t, found)
	assert.NotContains(t, digital.URL, "tag=affiliate", "synthesized search link must replace the affiliate link")
	assert.Contains(t, digital.URL, "i=digital-music")
}

func findPlatform(links []blueprint.PlatformLink, platform string) (blueprint.PlatformLink, bool) {
	for _, link := range links {
		if link.Platform == platform {
			return link, true
		}
	}
	return blueprint.PlatformLink{}, false
}

func TestResolveMetadata(t *testing.T) {
	t.Run("uses the resolver entity", func(t *testing.T) {
		metadata := universal.ResolveMetadata(resolverFixture(), "", "")
		require.NotNil(t, metadata)
		assert.Equal(t, "OK Computer", metadata.Title)
		assert.Equal(t, "Radiohead", metadata.ArtistName)
		assert.NotEmpty(t, metadata.Artwork)
	})

	t.Run("substitutes fallback artwork field-wise", func(t *testing.T) {
		resolved := resolverFixture()
		entity := resolved.EntitiesByUniqueID["ITUNES_ALBUM::123"]
		entity.ThumbnailURL = ""
		resolved.EntitiesByUniqueID["ITUNES_ALBUM::123"] = entity

		metadata := universal.ResolveMetadata(resolved, "", "https://example.com/cover.jpg")
		require.NotNil(t, metadata)
		assert.Equal(t, "OK Computer", metadata.Title)
		assert.Equal(t, "https://example.com/cover.jpg", metadata.Artwork)
	})

	t.Run("backfills the artist from the query text", func(t *testing.T) {
		resolved := resolverFixture()
		entity := resolved.EntitiesByUniqueID["ITUNES_ALBUM::123"]
		entity.ArtistName = ""
		resolved.EntitiesByUniqueID["ITUNES_ALBUM::123"] = entity

		metadata := universal.ResolveMetadata(resolved, "Radiohead", "")
		require.NotNil(t, metadata)
		assert.Equal(t, "Radiohead", metadata.ArtistName)
	})

	t.Run("nil without entities", func(t *testing.T) {
		assert.Nil(t, universal.ResolveMetadata(nil, "Radiohead", ""))
		assert.Nil(t, universal.ResolveMetadata(&blueprint.SonglinkResponse{}, "Radiohead", ""))
	})
}
