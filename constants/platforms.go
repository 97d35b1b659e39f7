package constants

import "strings"

const (
	CategoryDownload = "download"
	CategoryPhysical = "physical"
)

// Platform keys as they appear in the resolver's linksByPlatform map.
const (
	PlatformITunes      = "itunes"
	PlatformAmazonStore = "amazonStore"
	PlatformBandcamp    = "bandcamp"
	PlatformGoogleStore = "googleStore"
)

// Platform keys for the links we synthesize ourselves. Distinct from every
// resolver key, so the merged list never needs deduplication.
const (
	PlatformAmazonDigital  = "amazonDigital"
	PlatformAmazonPhysical = "amazonPhysical"
	PlatformDiscogs        = "discogs"
	PlatformHDtracks       = "hdtracks"
)

// PlatformInfo holds the presentation name and purchase category of a
// platform. The category is never inferred from link content.
type PlatformInfo struct {
	DisplayName string
	Category    string
}

// ResolverPlatforms is the allow-list for resolver-sourced links. Anything
// the resolver returns outside this map (streaming services, radio, lyrics
// sites) is dropped: the product is buy-don't-stream.
var ResolverPlatforms = map[string]PlatformInfo{
	PlatformITunes:      {DisplayName: "iTunes", Category: CategoryDownload},
	PlatformAmazonStore: {DisplayName: "Amazon Music", Category: CategoryDownload},
	PlatformBandcamp:    {DisplayName: "Bandcamp", Category: CategoryDownload},
	PlatformGoogleStore: {DisplayName: "Google Play", Category: CategoryDownload},
}

// SynthesizedPlatforms categorizes the links built from artist/album keyword
// text. Together with ResolverPlatforms this is the single source of truth
// for link categorization.
var SynthesizedPlatforms = map[string]PlatformInfo{
	PlatformAmazonDigital:  {DisplayName: "Amazon Music", Category: CategoryDownload},
	PlatformAmazonPhysical: {DisplayName: "Amazon", Category: CategoryPhysical},
	PlatformDiscogs:        {DisplayName: "Discogs", Category: CategoryPhysical},
	PlatformHDtracks:       {DisplayName: "HDtracks", Category: CategoryDownload},
}

const DefaultAmazonDomain = "amazon.com"

// AmazonDomains maps a region code to the marketplace domain used for
// synthesized search links. The key set doubles as the set of supported
// regions.
var AmazonDomains = map[string]string{
	"US": "amazon.com",
	"GB": "amazon.co.uk",
	"CA": "amazon.ca",
	"AU": "amazon.com.au",
	"DE": "amazon.de",
	"FR": "amazon.fr",
	"JP": "amazon.co.jp",
}

const DefaultRegion = "US"

// IsSupportedRegion reports whether the region code can be used for a lookup.
func IsSupportedRegion(region string) bool {
	_, ok := AmazonDomains[region]
	return ok
}

// localeRegions maps Accept-Language tags to supported regions.
var localeRegions = map[string]string{
	"en-US": "US",
	"en-GB": "GB",
	"en-CA": "CA",
	"en-AU": "AU",
	"de":    "DE",
	"de-DE": "DE",
	"de-AT": "DE",
	"de-CH": "DE",
	"fr":    "FR",
	"fr-FR": "FR",
	"fr-CA": "CA",
	"fr-BE": "FR",
	"fr-CH": "FR",
	"ja":    "JP",
	"ja-JP": "JP",
}

// RegionFromLocale derives a supported region from an Accept-Language header.
// Unmapped locales fall back to US.
func RegionFromLocale(header string) string {
	locale := strings.TrimSpace(strings.Split(header, ",")[0])
	if idx := strings.Index(locale, ";"); idx != -1 {
		locale = locale[:idx]
	}
	if locale == "" {
		return DefaultRegion
	}

	if region, ok := localeRegions[locale]; ok {
		return region
	}

	parts := strings.Split(locale, "-")
	if region, ok := localeRegions[parts[0]]; ok {
		return region
	}

	// english variants not in the table map by their country code
	if strings.EqualFold(parts[0], "en") && len(parts) > 1 {
		switch strings.ToUpper(parts[1]) {
		case "GB", "UK":
			return "GB"
		case "CA":
			return "CA"
		case "AU":
			return "AU"
		}
	}

	return DefaultRegion
}
