package analysis

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/poslyzer/posture-backend-go/internal/apperrors"
	"github.com/poslyzer/posture-backend-go/internal/models"
	"github.com/poslyzer/posture-backend-go/internal/pose"
	"github.com/poslyzer/posture-backend-go/internal/video"
)

// fakeSource serves a fixed number of dummy frames and counts Close calls.
type fakeSource struct {
	frames int
	fps    float64
	read   int
	closed int
}

func (s *fakeSource) Read() ([]byte, bool) {
	if s.read >= s.frames {
		return nil, false
	}
	s.read++
	return []byte{0x01}, true
}

func (s *fakeSource) FPS() float64    { return s.fps }
func (s *fakeSource) FrameCount() int { return s.frames }
func (s *fakeSource) Close() error {
	s.closed++
	return nil
}

type fakeOpener struct {
	src video.Source
	err error
}

func (o fakeOpener) Open(ctx context.Context, path string) (video.Source, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.src, nil
}

func newVideoAnalyzer(det pose.Detector, src video.Source, maxAnalyzed int) *VideoAnalyzer {
	return NewVideoAnalyzer(NewAnalyzer(det), fakeOpener{src: src}, maxAnalyzed)
}

func TestAnalyzeVideoSampling(t *testing.T) {
	src := &fakeSource{frames: 300, fps: 30}
	va := newVideoAnalyzer(&fakeDetector{landmarks: goodSquatLandmarks()}, src, 0)

	report, err := va.AnalyzeVideo(context.Background(), "clip.mp4", models.ModeSquat, 30)
	if err != nil {
		t.Fatalf("AnalyzeVideo failed: %v", err)
	}

	if got := report.VideoStats.AnalyzedFrames; got != 10 {
		t.Errorf("expected 10 analyzed frames, got %d", got)
	}
	if got := len(report.FrameAnalyses); got != 10 {
		t.Fatalf("expected 10 frame analyses, got %d", got)
	}
	for i, fa := range report.FrameAnalyses {
		if fa.FrameNumber != i*30 {
			t.Errorf("frame %d: expected frame_number %d, got %d", i, i*30, fa.FrameNumber)
		}
		if fa.Timestamp != float64(i) {
			t.Errorf("frame %d: expected timestamp %v, got %v", i, float64(i), fa.Timestamp)
		}
	}

	if report.OverallAnalysis.Status != models.StatusGoodForm || report.OverallAnalysis.Score != 100 {
		t.Errorf("expected Good Form/100, got %s/%d",
			report.OverallAnalysis.Status, report.OverallAnalysis.Score)
	}
	if report.VideoStats.TotalFrames != 300 || report.VideoStats.FPS != 30 || report.VideoStats.Duration != 10 {
		t.Errorf("unexpected video stats: %+v", report.VideoStats)
	}
	if report.VideoStats.AverageIssuesPerFrame != 0 {
		t.Errorf("expected 0 average issues, got %v", report.VideoStats.AverageIssuesPerFrame)
	}
	if len(report.TimelineData) != 10 {
		t.Errorf("expected 10 timeline points, got %d", len(report.TimelineData))
	}
	if src.closed != 1 {
		t.Errorf("source must be closed exactly once, got %d", src.closed)
	}
}

func TestAnalyzeVideoAggregatesIssues(t *testing.T) {
	// First three sampled frames hide the foot, the rest are clean.
	det := &fakeDetector{perCall: func(call int) pose.Landmarks {
		lm := goodSquatLandmarks()
		if call <= 3 {
			lm[pose.LeftFootIndex] = pose.Keypoint{X: 0.6, Y: 0.5, Visibility: 0.1}
		}
		return lm
	}}
	src := &fakeSource{frames: 300, fps: 30}
	va := newVideoAnalyzer(det, src, 0)

	report, err := va.AnalyzeVideo(context.Background(), "clip.mp4", models.ModeSquat, 30)
	if err != nil {
		t.Fatalf("AnalyzeVideo failed: %v", err)
	}

	wantIssue := "Ensure full body is visible in frame"
	if !reflect.DeepEqual(report.OverallAnalysis.Feedback, []string{wantIssue}) {
		t.Errorf("expected deduplicated feedback, got %v", report.OverallAnalysis.Feedback)
	}
	if report.OverallAnalysis.Status != models.StatusMinorIssues || report.OverallAnalysis.Score != 70 {
		t.Errorf("expected Minor Issues/70, got %s/%d",
			report.OverallAnalysis.Status, report.OverallAnalysis.Score)
	}

	if len(report.MostCommonIssues) != 1 {
		t.Fatalf("expected one ranked issue, got %v", report.MostCommonIssues)
	}
	if top := report.MostCommonIssues[0]; top.Issue != wantIssue || top.Count != 3 {
		t.Errorf("expected {%q 3}, got %+v", wantIssue, top)
	}

	if report.VideoStats.AverageIssuesPerFrame != 0.3 {
		t.Errorf("expected average 0.3, got %v", report.VideoStats.AverageIssuesPerFrame)
	}
}

func TestAnalyzeVideoOpenFailure(t *testing.T) {
	va := NewVideoAnalyzer(
		NewAnalyzer(&fakeDetector{}),
		fakeOpener{err: errors.New("no such file")},
		0,
	)

	report, err := va.AnalyzeVideo(context.Background(), "missing.mp4", models.ModeSquat, 30)
	if err == nil {
		t.Fatal("expected an error")
	}
	if report != nil {
		t.Error("no partial results may be returned on open failure")
	}
	if apperrors.KindOf(err) != apperrors.KindVideoOpen {
		t.Errorf("expected video-open kind, got %v", apperrors.KindOf(err))
	}
	if apperrors.MessageOf(err) != "Could not open video file" {
		t.Errorf("unexpected message: %q", apperrors.MessageOf(err))
	}
}

func TestAnalyzeVideoClosesSourceWhenEvaluatorPanics(t *testing.T) {
	src := &fakeSource{frames: 90, fps: 30}
	va := newVideoAnalyzer(&fakeDetector{panicMsg: "boom"}, src, 0)

	report, err := va.AnalyzeVideo(context.Background(), "clip.mp4", models.ModeSquat, 30)
	if err != nil {
		t.Fatalf("AnalyzeVideo failed: %v", err)
	}
	if src.closed != 1 {
		t.Errorf("source must be closed exactly once, got %d", src.closed)
	}
	// Panics degrade to per-frame issues rather than aborting the video.
	if len(report.FrameAnalyses) != 3 {
		t.Fatalf("expected 3 frame analyses, got %d", len(report.FrameAnalyses))
	}
	if report.FrameAnalyses[0].Feedback[0] != "Analysis failed: boom" {
		t.Errorf("unexpected feedback: %v", report.FrameAnalyses[0].Feedback)
	}
}

func TestAnalyzeVideoSamplingCap(t *testing.T) {
	src := &fakeSource{frames: 300, fps: 30}
	va := newVideoAnalyzer(&fakeDetector{landmarks: goodSquatLandmarks()}, src, 5)

	report, err := va.AnalyzeVideo(context.Background(), "clip.mp4", models.ModeSquat, 30)
	if err != nil {
		t.Fatalf("AnalyzeVideo failed: %v", err)
	}
	if report.VideoStats.AnalyzedFrames != 5 {
		t.Errorf("expected cap at 5 analyzed frames, got %d", report.VideoStats.AnalyzedFrames)
	}
	if report.VideoStats.TotalFrames != 300 {
		t.Errorf("probe total must be unaffected by the cap, got %d", report.VideoStats.TotalFrames)
	}
	if src.closed != 1 {
		t.Errorf("source must be closed exactly once, got %d", src.closed)
	}
}

func TestMostCommonIssuesStableTieBreak(t *testing.T) {
	all := []string{"b", "a", "b", "a", "c"}

	got := mostCommonIssues(all, 5)
	want := []models.IssueFrequency{
		{Issue: "b", Count: 2},
		{Issue: "a", Count: 2},
		{Issue: "c", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMostCommonIssuesTopN(t *testing.T) {
	all := []string{"a", "a", "a", "b", "b", "c", "c", "d", "e", "f"}

	got := mostCommonIssues(all, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
	if got[0].Issue != "a" || got[0].Count != 3 {
		t.Errorf("unexpected top issue: %+v", got[0])
	}
}

func TestDedupePreservesFirstSeenOrder(t *testing.T) {
	got := dedupe([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
