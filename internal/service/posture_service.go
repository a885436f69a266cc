package service

import (
	"context"

	"github.com/poslyzer/posture-backend-go/internal/analysis"
	"github.com/poslyzer/posture-backend-go/internal/models"
	"github.com/poslyzer/posture-backend-go/internal/pose"
	"github.com/poslyzer/posture-backend-go/internal/video"
)

// PostureService exposes frame and video posture analysis to the HTTP layer.
type PostureService struct {
	frames *analysis.Analyzer
	videos *analysis.VideoAnalyzer
}

// NewPostureService creates a posture service around the process-wide
// detector and video opener.
func NewPostureService(detector pose.Detector, opener video.Opener, maxAnalyzedFrames int) *PostureService {
	frames := analysis.NewAnalyzer(detector)
	return &PostureService{
		frames: frames,
		videos: analysis.NewVideoAnalyzer(frames, opener, maxAnalyzedFrames),
	}
}

// AnalyzeFrame evaluates a single encoded image in the given mode.
func (s *PostureService) AnalyzeFrame(ctx context.Context, frame []byte, mode models.Mode) models.FrameResult {
	return s.frames.AnalyzeFrame(ctx, frame, mode)
}

// AnalyzeVideo samples and evaluates the video at path, returning the
// aggregated report.
func (s *PostureService) AnalyzeVideo(ctx context.Context, path string, mode models.Mode, interval int) (*models.VideoReport, error) {
	return s.videos.AnalyzeVideo(ctx, path, mode, interval)
}
