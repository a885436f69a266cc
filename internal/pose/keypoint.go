package pose

import "github.com/golang/geo/r2"

// Keypoint is one named body landmark in normalized [0,1] image coordinates
// with a visibility/confidence score in [0,1].
type Keypoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Visibility float64 `json:"visibility"`
}

// Point returns the keypoint position as a planar vector.
func (kp Keypoint) Point() r2.Point {
	return r2.Point{X: kp.X, Y: kp.Y}
}

// Landmark names the detector's keypoints following the MediaPipe pose
// convention.
type Landmark string

const (
	Nose          Landmark = "nose"
	LeftEar       Landmark = "left_ear"
	RightEar      Landmark = "right_ear"
	LeftShoulder  Landmark = "left_shoulder"
	RightShoulder Landmark = "right_shoulder"
	LeftHip       Landmark = "left_hip"
	RightHip      Landmark = "right_hip"
	LeftKnee      Landmark = "left_knee"
	LeftAnkle     Landmark = "left_ankle"
	LeftFootIndex Landmark = "left_foot_index"
)

// Landmarks is the raw detector output for one frame, keyed by landmark name.
// A nil map means no body was detected.
type Landmarks map[Landmark]Keypoint

// VisibilityThreshold is the minimum confidence required to trust a keypoint.
const VisibilityThreshold = 0.5

// visible returns the named keypoint only if it passes the visibility
// threshold.
func (l Landmarks) visible(name Landmark) (Keypoint, bool) {
	kp, ok := l[name]
	if !ok || kp.Visibility <= VisibilityThreshold {
		return Keypoint{}, false
	}
	return kp, true
}
