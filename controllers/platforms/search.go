package platforms

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	spotifyv2 "github.com/zmb3/spotify/v2"
	"go.uber.org/zap"

	"streamtoshelf/blueprint"
	"streamtoshelf/logger"
	"streamtoshelf/services/spotify"
	"streamtoshelf/util"
)

// SearchAlbums looks up candidate releases on the metadata provider for an
// artist and optional album.
func (p *Platforms) SearchAlbums(ctx *fiber.Ctx) error {
	artist := util.SanitizeText(ctx.Query("artist"))
	if artist == "" {
		return util.ErrorResponse(ctx, http.StatusBadRequest, "artist parameter is required")
	}
	album := util.SanitizeText(ctx.Query("album"))

	requestID, _ := ctx.Locals("requestID").(string)
	reqLogger := logger.NewZapSentryLogger(&blueprint.LoggerOptions{
		RequestID: requestID,
		Platform:  spotify.IDENTIFIER,
		Entity:    artist,
	})

	results, err := p.Spotify.SearchAlbums(ctx.UserContext(), artist, album)
	if err != nil {
		switch {
		case errors.Is(err, blueprint.ECANCELLED):
			return nil
		case errors.Is(err, blueprint.EAUTHFAILED):
			reqLogger.Error("[platforms][SearchAlbums] error - could not authenticate with metadata provider", zap.Error(err))
			return util.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to authenticate with metadata provider")
		case errors.Is(err, blueprint.ETIMEOUT):
			return util.ErrorResponse(ctx, http.StatusGatewayTimeout, "Request timeout - please try again")
		}

		reqLogger.Error("[platforms][SearchAlbums] error - metadata search failed", zap.Error(err))
		var upstreamErr spotifyv2.Error
		if errors.As(err, &upstreamErr) && upstreamErr.Status == http.StatusTooManyRequests {
			return util.ErrorResponse(ctx, http.StatusTooManyRequests, "metadata search failed")
		}
		return util.ErrorResponse(ctx, http.StatusInternalServerError, "metadata search failed")
	}

	return util.SuccessResponse(ctx, http.StatusOK, &blueprint.AlbumSearchResponse{
		Artist:  artist,
		Album:   album,
		Results: results,
	})
}
