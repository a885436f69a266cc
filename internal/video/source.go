package video

import "context"

// Opener opens a video file for sequential frame reads.
type Opener interface {
	Open(ctx context.Context, path string) (Source, error)
}

// Source is an open video stream. Frames come back as encoded JPEG images in
// decode order. Close must be safe to call exactly once on every exit path.
type Source interface {
	// Read returns the next frame, or ok=false at end of stream.
	Read() (frame []byte, ok bool)
	// FPS returns the stream frame rate, 0 if unknown.
	FPS() float64
	// FrameCount returns the total number of frames, 0 if unknown.
	FrameCount() int
	// Close releases the underlying decoder.
	Close() error
}
