package platforms

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"streamtoshelf/blueprint"
	"streamtoshelf/constants"
	"streamtoshelf/logger"
	"streamtoshelf/services"
	"streamtoshelf/services/songlink"
	"streamtoshelf/universal"
	"streamtoshelf/util"
)

// ResolveLinks aggregates every legitimate purchase link for one release:
// the resolver's storefront links merged with synthesized marketplace,
// catalog and hi-res search links.
func (p *Platforms) ResolveLinks(ctx *fiber.Ctx) error {
	link := strings.TrimSpace(ctx.Query("url"))
	if link == "" {
		return util.ErrorResponse(ctx, http.StatusBadRequest, "url parameter is required")
	}
	if err := services.ValidateStoreLink(link); err != nil {
		return util.ErrorResponse(ctx, http.StatusBadRequest, "invalid url format")
	}

	requestID, _ := ctx.Locals("requestID").(string)
	reqLogger := logger.NewZapSentryLogger(&blueprint.LoggerOptions{
		RequestID: requestID,
		Platform:  songlink.IDENTIFIER,
		Entity:    link,
		AddTrace:  true,
	})

	region := ctx.Query("region")
	if region == "" {
		region = constants.RegionFromLocale(ctx.Get(fiber.HeaderAcceptLanguage))
	}
	if err := services.ValidateRegion(region); err != nil {
		reqLogger.Warn("[platforms][ResolveLinks] warning - unsupported region", zap.String("region", region))
		return util.ErrorResponse(ctx, http.StatusBadRequest, "invalid region parameter")
	}

	artist := util.SanitizeText(ctx.Query("artist"))
	album := util.SanitizeText(ctx.Query("album"))

	reqCtx := ctx.UserContext()
	link = services.ExpandStoreLink(link)

	resolved, err := p.Songlink.Resolve(reqCtx, link, region)
	if err != nil {
		if errors.Is(err, blueprint.ECANCELLED) {
			// the client went away, nobody is waiting for an answer
			return nil
		}
		if errors.Is(err, blueprint.ETIMEOUT) {
			return util.ErrorResponse(ctx, http.StatusGatewayTimeout, "Request timeout - please try again")
		}
		reqLogger.Error("[platforms][ResolveLinks] error - could not resolve release links", zap.Error(err))
		return util.ErrorResponse(ctx, http.StatusInternalServerError, "internal error")
	}

	// the catalog lookup only makes sense once keyword text exists, and runs
	// after resolution because its result rides along into the same list
	catalogURL := ""
	if artist != "" && album != "" {
		catalogURL, err = p.Discogs.SearchRelease(reqCtx, artist, album)
		if err != nil {
			if errors.Is(err, blueprint.ECANCELLED) {
				return nil
			}
			// ENORESULT just means no catalog entry to append
			catalogURL = ""
		}
	}

	result := &blueprint.AggregationResult{
		Artist:   artist,
		Album:    album,
		Links:    universal.BuildPlatformLinks(resolved, region, artist, album, catalogURL),
		Metadata: universal.ResolveMetadata(resolved, artist, ""),
	}

	return util.SuccessResponse(ctx, http.StatusOK, result)
}
