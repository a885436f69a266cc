package analysis

import (
	"fmt"

	"github.com/poslyzer/posture-backend-go/internal/geometry"
	"github.com/poslyzer/posture-backend-go/internal/models"
	"github.com/poslyzer/posture-backend-go/internal/pose"
)

// Desk-sitting thresholds in degrees, tuned against the arccosine angle
// formulation.
const (
	neckBendMaxAngle = 30.0
	uprightMaxAngle  = 15.0
)

// EvaluateSitting checks desk-sitting ergonomics on one frame's landmarks.
// Shoulder and hip are midpoints when both sides are visible.
func EvaluateSitting(lm pose.Landmarks) models.FrameResult {
	if lm == nil {
		return models.FrameResult{
			Success: false,
			Issues:  []string{"No body detected - ensure full visibility"},
		}
	}

	set := pose.ResolveSitting(lm)
	if !set.Has(pose.PartShoulder, pose.PartHip, pose.PartEar, pose.PartNose) {
		return models.FrameResult{
			Success: false,
			Issues:  []string{"Key body points not visible - adjust position"},
		}
	}

	issues := []string{}

	// Neck bend: angle at the ear between the neck vector (ear->shoulder)
	// and the head vector (ear->nose).
	neckBend := geometry.AngleAtVertex(
		set[pose.PartShoulder].Point(),
		set[pose.PartEar].Point(),
		set[pose.PartNose].Point(),
	)
	if neckBend > neckBendMaxAngle {
		issues = append(issues, fmt.Sprintf("Neck bending forward: %d° (exceeds 30° threshold)", int(neckBend)))
	}

	upright := geometry.TiltFromVertical(
		set[pose.PartShoulder].Point(),
		set[pose.PartHip].Point(),
	)
	if upright > uprightMaxAngle {
		issues = append(issues, fmt.Sprintf("Back is leaning: %d° from vertical", int(upright)))
	}

	return models.FrameResult{Success: true, Issues: issues}
}
