package analysis

import "github.com/poslyzer/posture-backend-go/internal/models"

// Summarize folds a deduplicated issue list into a scored summary. It is
// total and deterministic: 0 issues scores 100 with the mode-specific good
// status, 1-2 issues score 80-10n, 3+ score max(50, 90-15n).
func Summarize(issues []string, mode models.Mode) models.AnalysisSummary {
	if issues == nil {
		issues = []string{}
	}

	var status string
	var score int

	count := len(issues)
	switch {
	case count == 0:
		if mode == models.ModeSquat {
			status = models.StatusGoodForm
		} else {
			status = models.StatusGoodPosture
		}
		score = 100
	case count <= 2:
		status = models.StatusMinorIssues
		score = 80 - count*10
	default:
		status = models.StatusNeedsImprovement
		score = 90 - count*15
		if score < 50 {
			score = 50
		}
	}

	return models.AnalysisSummary{
		Status:       status,
		Feedback:     issues,
		Details:      issues,
		Score:        score,
		AnalysisType: string(mode),
	}
}
