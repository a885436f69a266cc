package pose

import "context"

// Detector turns a still image into named body landmarks.
//
// A nil Landmarks result with a nil error means no body was found in the
// image; that is an expected outcome, not an error. Implementations must be
// safe for use from sequential request handlers; if the underlying model is
// not reentrant the implementation is responsible for serializing calls.
type Detector interface {
	Detect(ctx context.Context, image []byte) (Landmarks, error)
}
