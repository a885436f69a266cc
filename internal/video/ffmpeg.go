package video

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/poslyzer/posture-backend-go/internal/logging"
)

// FFmpeg opens video files by decoding them to an MJPEG stream with the
// ffmpeg binary. Metadata comes from ffprobe.
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	logger      zerolog.Logger
}

// NewFFmpeg locates the ffmpeg and ffprobe binaries.
func NewFFmpeg() (*FFmpeg, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	ffprobePath, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, fmt.Errorf("ffprobe not found in PATH: %w", err)
	}

	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		logger:      logging.WithComponent("video"),
	}, nil
}

// Open probes the file and starts a decoder process streaming JPEG frames.
func (f *FFmpeg) Open(ctx context.Context, path string) (Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("video file not readable: %w", err)
	}

	meta, err := f.probe(ctx, path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-q:v", "2",
		"-",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	f.logger.Debug().Str("path", path).Float64("fps", meta.fps).Int("frames", meta.frameCount).Msg("video opened")

	return &ffmpegSource{
		cmd:        cmd,
		reader:     bufio.NewReaderSize(stdout, 1<<20),
		fps:        meta.fps,
		frameCount: meta.frameCount,
		logger:     f.logger,
	}, nil
}

type videoMeta struct {
	fps        float64
	frameCount int
}

// probeResult matches the ffprobe JSON output structure.
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		RFrameRate string `json:"r_frame_rate"`
		NbFrames   string `json:"nb_frames"`
	} `json:"streams"`
}

func (f *FFmpeg) probe(ctx context.Context, path string) (videoMeta, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return videoMeta{}, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeResult
	if err := json.Unmarshal(output, &probe); err != nil {
		return videoMeta{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var meta videoMeta
	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		meta.fps = parseFrameRate(stream.RFrameRate)
		if n, err := strconv.Atoi(stream.NbFrames); err == nil {
			meta.frameCount = n
		}
		break
	}

	// Containers without nb_frames: derive the count from duration.
	if meta.frameCount == 0 && meta.fps > 0 {
		if dur, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			meta.frameCount = int(dur * meta.fps)
		}
	}

	if meta.fps == 0 && meta.frameCount == 0 {
		return videoMeta{}, fmt.Errorf("no video stream found in %s", path)
	}
	return meta, nil
}

// parseFrameRate parses an ffprobe rational frame rate like "30/1".
func parseFrameRate(rate string) float64 {
	parts := strings.SplitN(rate, "/", 2)
	if len(parts) != 2 {
		v, _ := strconv.ParseFloat(rate, 64)
		return v
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}
