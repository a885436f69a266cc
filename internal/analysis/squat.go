package analysis

import (
	"fmt"

	"github.com/poslyzer/posture-backend-go/internal/geometry"
	"github.com/poslyzer/posture-backend-go/internal/models"
	"github.com/poslyzer/posture-backend-go/internal/pose"
)

// Squat form thresholds in degrees, tuned against the atan2 angle
// formulation.
const (
	kneeToeMinAngle = 150.0
	backMinAngle    = 150.0
)

// EvaluateSquat checks squat form on one frame's landmarks. Left-side
// landmarks are used by convention.
func EvaluateSquat(lm pose.Landmarks) models.FrameResult {
	if lm == nil {
		return models.FrameResult{
			Success: false,
			Issues:  []string{"Key body parts not detected"},
		}
	}

	set := pose.ResolveSquat(lm)
	if !set.Has(pose.PartKnee, pose.PartAnkle, pose.PartHip, pose.PartShoulder, pose.PartFoot) {
		return models.FrameResult{
			Success: false,
			Issues:  []string{"Ensure full body is visible in frame"},
		}
	}

	issues := []string{}

	kneeToe := geometry.AngleAtVertexAtan2(
		set[pose.PartAnkle].Point(),
		set[pose.PartKnee].Point(),
		set[pose.PartFoot].Point(),
	)
	if kneeToe < kneeToeMinAngle {
		issues = append(issues, fmt.Sprintf("Knee goes beyond toe: %d°", int(kneeToe)))
	}

	back := geometry.AngleAtVertexAtan2(
		set[pose.PartShoulder].Point(),
		set[pose.PartHip].Point(),
		set[pose.PartKnee].Point(),
	)
	if back < backMinAngle {
		issues = append(issues, fmt.Sprintf("Back too bent: %d°", int(back)))
	}

	return models.FrameResult{Success: true, Issues: issues}
}
