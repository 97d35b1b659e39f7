package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"streamtoshelf/blueprint"
)

// NewLogger returns a new zap logger
func NewLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			panic(err)
		}
	}(logger)

	return logger
}

// NewZapSentryLogger returns a new zap logger with sentry integration
func NewZapSentryLogger(opts *blueprint.LoggerOptions) *zap.Logger {
	if opts == nil {
		opts = &blueprint.LoggerOptions{RequestID: "not_set"}
	}
	if opts.RequestID == "" {
		opts.RequestID = "not_set"
	}

	cfg := zapsentry.Configuration{
		Level:             zapcore.WarnLevel,
		BreadcrumbLevel:   zapcore.WarnLevel,
		EnableBreadcrumbs: true,
		DisableStacktrace: !opts.AddTrace,
		Tags: map[string]string{
			"component":  "system",
			"when":       time.Now().String(),
			"request_id": opts.RequestID,
		},
	}

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	sentryClient, sErr := sentry.NewClient(sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		TracesSampleRate: 1.0,
		AttachStacktrace: opts.AddTrace,
	})
	if sErr != nil {
		fmt.Println("error creating sentry client")
		panic(sErr)
	}
	defer sentryClient.Flush(2)

	core, zErr := zapsentry.NewCore(cfg, zapsentry.NewSentryClientFromDSN(os.Getenv("SENTRY_DSN")))
	if zErr != nil {
		fmt.Println("error creating zap core")
	}

	log = zapsentry.AttachCoreToLogger(core, log)
	sentryScope := sentry.NewScope()

	sentryScope.AddBreadcrumb(&sentry.Breadcrumb{
		Category:  "Request ID",
		Data:      map[string]interface{}{"request_id": opts.RequestID},
		Timestamp: time.Time{},
	}, 1)

	if opts.Platform != "" {
		sentryScope.AddBreadcrumb(&sentry.Breadcrumb{
			Category:  "Platform",
			Message:   "Storefront platform involved in the request",
			Data:      map[string]interface{}{"platform": opts.Platform},
			Timestamp: time.Time{},
		}, 1)
	}

	if opts.Entity != "" {
		sentryScope.AddBreadcrumb(&sentry.Breadcrumb{
			Category:  "Entity",
			Message:   "Release the user is looking up",
			Data:      map[string]interface{}{"entity": opts.Entity},
			Timestamp: time.Time{},
		}, 1)
	}

	return log.With(zapsentry.NewScopeFromScope(sentryScope))
}
