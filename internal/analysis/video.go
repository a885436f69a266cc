package analysis

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/poslyzer/posture-backend-go/internal/apperrors"
	"github.com/poslyzer/posture-backend-go/internal/logging"
	"github.com/poslyzer/posture-backend-go/internal/models"
	"github.com/poslyzer/posture-backend-go/internal/video"
)

// DefaultFrameInterval is the default sampling stride: every nth frame of a
// video is analyzed. Trade-off between latency and temporal resolution of
// the timeline.
const DefaultFrameInterval = 30

// topIssueCount limits the most-common-issues ranking.
const topIssueCount = 5

// VideoAnalyzer samples frames from a video source and aggregates per-frame
// results into a scored report.
type VideoAnalyzer struct {
	frames      *Analyzer
	opener      video.Opener
	maxAnalyzed int
	logger      zerolog.Logger
}

// NewVideoAnalyzer creates a video aggregator. maxAnalyzed bounds how many
// sampled frames are evaluated on very long videos; 0 means unbounded.
func NewVideoAnalyzer(frames *Analyzer, opener video.Opener, maxAnalyzed int) *VideoAnalyzer {
	return &VideoAnalyzer{
		frames:      frames,
		opener:      opener,
		maxAnalyzed: maxAnalyzed,
		logger:      logging.WithComponent("video-analysis"),
	}
}

// AnalyzeVideo runs posture analysis over every interval-th frame of the
// video at path. An unopenable video fails the whole request; a single
// frame's failure is logged and skipped. The source is closed on every exit
// path.
func (v *VideoAnalyzer) AnalyzeVideo(ctx context.Context, path string, mode models.Mode, interval int) (*models.VideoReport, error) {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	src, err := v.opener.Open(ctx, path)
	if err != nil {
		return nil, apperrors.New(apperrors.KindVideoOpen, "Could not open video file", err)
	}
	defer src.Close()

	fps := src.FPS()
	totalFrames := src.FrameCount()
	duration := 0.0
	if fps > 0 {
		duration = float64(totalFrames) / fps
	}

	var (
		frameNumber   int
		analyzed      int
		allFeedback   []string
		frameAnalyses = []models.FrameAnalysis{}
	)

	for {
		frame, ok := src.Read()
		if !ok {
			break
		}
		if frameNumber%interval == 0 {
			if v.maxAnalyzed > 0 && analyzed >= v.maxAnalyzed {
				v.logger.Warn().Int("frame", frameNumber).Int("max", v.maxAnalyzed).Msg("sampling cap reached, stopping early")
				break
			}

			result := v.frames.AnalyzeFrame(ctx, frame, mode)
			if !result.Success {
				v.logger.Debug().Int("frame", frameNumber).Strs("issues", result.Issues).Msg("frame degraded")
			}

			timestamp := 0.0
			if fps > 0 {
				timestamp = float64(frameNumber) / fps
			}
			frameAnalyses = append(frameAnalyses, models.FrameAnalysis{
				Timestamp:   round2(timestamp),
				FrameNumber: frameNumber,
				Feedback:    result.Issues,
				IssuesCount: len(result.Issues),
			})
			allFeedback = append(allFeedback, result.Issues...)
			analyzed++
		}
		frameNumber++
	}

	averageIssues := 0.0
	if analyzed > 0 {
		averageIssues = float64(len(allFeedback)) / float64(analyzed)
	}

	timeline := make([]models.TimelinePoint, 0, len(frameAnalyses))
	for _, fa := range frameAnalyses {
		timeline = append(timeline, models.TimelinePoint{
			Timestamp:   fa.Timestamp,
			IssuesCount: fa.IssuesCount,
		})
	}

	return &models.VideoReport{
		OverallAnalysis: Summarize(dedupe(allFeedback), mode),
		VideoStats: models.VideoStats{
			Duration:              round2(duration),
			TotalFrames:           totalFrames,
			AnalyzedFrames:        analyzed,
			FPS:                   round2(fps),
			AverageIssuesPerFrame: round2(averageIssues),
		},
		FrameAnalyses:    frameAnalyses,
		MostCommonIssues: mostCommonIssues(allFeedback, topIssueCount),
		TimelineData:     timeline,
	}, nil
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	unique := []string{}
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			unique = append(unique, item)
		}
	}
	return unique
}

// mostCommonIssues ranks issues by descending count over the raw
// (non-deduplicated) feedback multiset, ties broken by first occurrence.
func mostCommonIssues(allFeedback []string, topN int) []models.IssueFrequency {
	counts := make(map[string]int, len(allFeedback))
	firstSeen := make(map[string]int, len(allFeedback))
	order := []string{}
	for i, issue := range allFeedback {
		if counts[issue] == 0 {
			firstSeen[issue] = i
			order = append(order, issue)
		}
		counts[issue]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > topN {
		order = order[:topN]
	}

	ranked := make([]models.IssueFrequency, 0, len(order))
	for _, issue := range order {
		ranked = append(ranked, models.IssueFrequency{Issue: issue, Count: counts[issue]})
	}
	return ranked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
