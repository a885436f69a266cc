package models

import "fmt"

// Mode selects which rule set a frame is evaluated against.
type Mode string

const (
	ModeSquat   Mode = "squat"
	ModeSitting Mode = "sitting"
)

// ParseMode validates a mode token from a request.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSquat, ModeSitting:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid analysis mode: %q", s)
}

// Posture status vocabulary. These strings are part of the API contract.
const (
	StatusGoodForm         = "Good Form"
	StatusGoodPosture      = "Good Posture"
	StatusMinorIssues      = "Minor Issues"
	StatusNeedsImprovement = "Needs Improvement"
	StatusError            = "Error"
)

// FrameResult is the outcome of analyzing one frame. Success is false when
// the frame could not be evaluated (empty frame, no body, missing keypoints);
// Issues carries the human-readable feedback either way.
type FrameResult struct {
	Success bool     `json:"success"`
	Issues  []string `json:"issues"`
}

// AnalysisSummary is the scored summary derived from a deduplicated issue set.
type AnalysisSummary struct {
	Status       string   `json:"status"`
	Feedback     []string `json:"feedback"`
	Details      []string `json:"details"`
	Score        int      `json:"score"`
	AnalysisType string   `json:"analysis_type"`
}

// VideoStats describes the sampled video, computed once after the sampling
// pass completes.
type VideoStats struct {
	Duration              float64 `json:"duration"`
	TotalFrames           int     `json:"total_frames"`
	AnalyzedFrames        int     `json:"analyzed_frames"`
	FPS                   float64 `json:"fps"`
	AverageIssuesPerFrame float64 `json:"average_issues_per_frame"`
}

// FrameAnalysis records the feedback for one sampled video frame.
type FrameAnalysis struct {
	Timestamp   float64  `json:"timestamp"`
	FrameNumber int      `json:"frame_number"`
	Feedback    []string `json:"feedback"`
	IssuesCount int      `json:"issues_count"`
}

// IssueFrequency counts how often one issue occurred across a video.
type IssueFrequency struct {
	Issue string `json:"issue"`
	Count int    `json:"count"`
}

// TimelinePoint projects a sampled frame onto the issues timeline.
type TimelinePoint struct {
	Timestamp   float64 `json:"timestamp"`
	IssuesCount int     `json:"issues_count"`
}

// VideoReport is the full video-analysis response.
type VideoReport struct {
	OverallAnalysis  AnalysisSummary  `json:"overall_analysis"`
	VideoStats       VideoStats       `json:"video_stats"`
	FrameAnalyses    []FrameAnalysis  `json:"frame_analyses"`
	MostCommonIssues []IssueFrequency `json:"most_common_issues"`
	TimelineData     []TimelinePoint  `json:"timeline_data"`
}
