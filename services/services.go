package services

import (
	"log"
	"net/url"
	"strings"

	"github.com/badoux/goscraper"

	"streamtoshelf/blueprint"
	"streamtoshelf/constants"
	"streamtoshelf/util"
)

// ShortlinkHosts are share-link domains that redirect to a real storefront
// page. The resolver handles canonical URLs much better than these, so we
// expand them first.
var ShortlinkHosts = []string{
	"spotify.link",
	"deezer.page.link",
	"song.link",
	"album.link",
}

// ValidateStoreLink checks that the link the client wants resolved is an
// absolute http(s) URL with a host.
func ValidateStoreLink(link string) error {
	parsed, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		log.Printf("[services][ValidateStoreLink] warning - could not parse link: %v", err)
		return blueprint.EINVALIDLINK
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return blueprint.EINVALIDLINK
	}
	if parsed.Host == "" {
		return blueprint.EINVALIDLINK
	}
	return nil
}

// ValidateRegion checks that the region code maps to a marketplace domain.
func ValidateRegion(region string) error {
	if !constants.IsSupportedRegion(region) {
		return blueprint.EINVALIDREGION
	}
	return nil
}

// IsShortlink reports whether the link points at a known share-shortlink host.
func IsShortlink(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	return util.Find(ShortlinkHosts, parsed.Host) != ""
}

// ExpandStoreLink follows a share shortlink to the page it points at, using
// the page preview scraper. Anything that is not a known shortlink, or that
// fails to expand, comes back unchanged.
func ExpandStoreLink(link string) string {
	if !IsShortlink(link) {
		return link
	}

	preview, err := goscraper.Scrape(link, 5)
	if err != nil {
		log.Printf("[services][ExpandStoreLink] warning - could not expand shortlink %s: %v", link, err)
		return link
	}
	if preview.Preview.Link == "" {
		return link
	}
	return preview.Preview.Link
}
