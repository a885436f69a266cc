package pose

import "math"

// Part is a semantic body role consumed by the rule evaluators.
type Part string

const (
	PartShoulder Part = "shoulder"
	PartHip      Part = "hip"
	PartEar      Part = "ear"
	PartNose     Part = "nose"
	PartKnee     Part = "knee"
	PartAnkle    Part = "ankle"
	PartFoot     Part = "foot"
)

// ResolvedSet maps semantic parts to trusted keypoints. A part is present
// only if its visibility passed the threshold; midpoints are synthesized only
// when both contributing sides are present. Resolution never fails, it just
// leaves unresolvable parts out, so callers must check Has before computing
// geometry.
type ResolvedSet map[Part]Keypoint

// Has reports whether every given part was resolved.
func (s ResolvedSet) Has(parts ...Part) bool {
	for _, p := range parts {
		if _, ok := s[p]; !ok {
			return false
		}
	}
	return true
}

// ResolveSquat extracts the single-side landmarks required by the squat
// evaluator. Left side by convention; sides are not averaged.
func ResolveSquat(lm Landmarks) ResolvedSet {
	set := ResolvedSet{}
	required := map[Part]Landmark{
		PartKnee:     LeftKnee,
		PartAnkle:    LeftAnkle,
		PartHip:      LeftHip,
		PartShoulder: LeftShoulder,
		PartFoot:     LeftFootIndex,
	}
	for part, name := range required {
		if kp, ok := lm.visible(name); ok {
			set[part] = kp
		}
	}
	return set
}

// ResolveSitting extracts the landmarks required by the sitting evaluator:
// shoulder and hip midpoints (falling back to a single visible side), the
// first available ear, and the nose.
func ResolveSitting(lm Landmarks) ResolvedSet {
	set := ResolvedSet{}
	if kp, ok := midpoint(lm, LeftShoulder, RightShoulder); ok {
		set[PartShoulder] = kp
	}
	if kp, ok := midpoint(lm, LeftHip, RightHip); ok {
		set[PartHip] = kp
	}
	if kp, ok := lm.visible(LeftEar); ok {
		set[PartEar] = kp
	} else if kp, ok := lm.visible(RightEar); ok {
		set[PartEar] = kp
	}
	if kp, ok := lm.visible(Nose); ok {
		set[PartNose] = kp
	}
	return set
}

// midpoint synthesizes the arithmetic mean of the left and right keypoints
// when both pass the visibility threshold, or falls back to whichever single
// side passes.
func midpoint(lm Landmarks, left, right Landmark) (Keypoint, bool) {
	l, lok := lm.visible(left)
	r, rok := lm.visible(right)
	switch {
	case lok && rok:
		return Keypoint{
			X:          (l.X + r.X) / 2,
			Y:          (l.Y + r.Y) / 2,
			Visibility: math.Min(l.Visibility, r.Visibility),
		}, true
	case lok:
		return l, true
	case rok:
		return r, true
	}
	return Keypoint{}, false
}
