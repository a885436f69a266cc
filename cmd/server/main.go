package main

import (
	"github.com/poslyzer/posture-backend-go/internal/api"
	"github.com/poslyzer/posture-backend-go/internal/config"
	"github.com/poslyzer/posture-backend-go/internal/handler"
	"github.com/poslyzer/posture-backend-go/internal/logging"
	"github.com/poslyzer/posture-backend-go/internal/pose"
	"github.com/poslyzer/posture-backend-go/internal/service"
	"github.com/poslyzer/posture-backend-go/internal/video"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.Debug)
	logger := logging.WithComponent("server")

	// Process-wide detector client, initialized once before the first
	// request. It serializes its own calls, so it is shared safely.
	detector := pose.NewClient(cfg.DetectorURL, cfg.DetectorTimeout)

	opener, err := video.NewFFmpeg()
	if err != nil {
		logger.Fatal().Err(err).Msg("video decoder unavailable")
	}

	svc := service.NewPostureService(detector, opener, cfg.MaxAnalyzedFrames)
	posture := handler.NewPostureHandler(svc, cfg)
	router := api.SetupRouter(cfg, posture)

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
