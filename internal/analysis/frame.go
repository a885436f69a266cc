package analysis

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/poslyzer/posture-backend-go/internal/apperrors"
	"github.com/poslyzer/posture-backend-go/internal/logging"
	"github.com/poslyzer/posture-backend-go/internal/models"
	"github.com/poslyzer/posture-backend-go/internal/pose"
)

// Analyzer runs single-frame posture analysis against a detector.
type Analyzer struct {
	detector pose.Detector
	logger   zerolog.Logger
}

// NewAnalyzer creates a frame analyzer.
func NewAnalyzer(detector pose.Detector) *Analyzer {
	return &Analyzer{
		detector: detector,
		logger:   logging.WithComponent("analysis"),
	}
}

// AnalyzeFrame evaluates one encoded image in the given mode. Every failure
// is normalized into a FrameResult here: empty frames and detection misses
// become failed results with contract issue strings, and unexpected internal
// errors degrade to "Analysis failed: ..." instead of propagating.
func (a *Analyzer) AnalyzeFrame(ctx context.Context, frame []byte, mode models.Mode) (result models.FrameResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().Str("mode", string(mode)).Interface("panic", r).Msg("frame analysis panicked")
			result = failedResult(fmt.Sprintf("%v", r))
		}
	}()

	if len(frame) == 0 {
		return models.FrameResult{
			Success: false,
			Issues:  []string{"Empty frame - check camera input"},
		}
	}

	lm, err := a.detector.Detect(ctx, frame)
	if err != nil {
		a.logger.Error().Err(err).Str("mode", string(mode)).Msg("detection failed")
		return failedResult(apperrors.MessageOf(err))
	}

	switch mode {
	case models.ModeSitting:
		return EvaluateSitting(lm)
	case models.ModeSquat:
		return EvaluateSquat(lm)
	}
	return failedResult(fmt.Sprintf("unsupported analysis mode %q", mode))
}

func failedResult(message string) models.FrameResult {
	return models.FrameResult{
		Success: false,
		Issues:  []string{"Analysis failed: " + message},
	}
}
