package video

import (
	"bufio"
	"bytes"
	"io"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"
)

// ffmpegSource reads sequential JPEG frames from a running ffmpeg process.
type ffmpegSource struct {
	cmd        *exec.Cmd
	reader     *bufio.Reader
	fps        float64
	frameCount int
	logger     zerolog.Logger

	closeOnce sync.Once
}

func (s *ffmpegSource) Read() ([]byte, bool) {
	frame, err := nextJPEGFrame(s.reader)
	if err != nil {
		if err != io.EOF {
			s.logger.Debug().Err(err).Msg("frame stream ended")
		}
		return nil, false
	}
	return frame, true
}

func (s *ffmpegSource) FPS() float64 {
	return s.fps
}

func (s *ffmpegSource) FrameCount() int {
	return s.frameCount
}

// Close kills the decoder process and reaps it. Safe to call more than once;
// only the first call does work.
func (s *ffmpegSource) Close() error {
	s.closeOnce.Do(func() {
		if s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		if err := s.cmd.Wait(); err != nil {
			// Expected when the process was killed mid-stream.
			s.logger.Debug().Err(err).Msg("ffmpeg exited")
		}
	})
	return nil
}

// nextJPEGFrame scans an MJPEG byte stream for the next complete JPEG image,
// delimited by the SOI (FFD8) and EOI (FFD9) markers. Byte stuffing
// guarantees FFD9 cannot occur inside entropy-coded data.
func nextJPEGFrame(r *bufio.Reader) ([]byte, error) {
	var buf bytes.Buffer
	var prev byte
	inFrame := false

	for {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}

		if !inFrame {
			if prev == 0xff && b == 0xd8 {
				inFrame = true
				buf.Write([]byte{0xff, 0xd8})
				prev = 0
				continue
			}
			prev = b
			continue
		}

		buf.WriteByte(b)
		if prev == 0xff && b == 0xd9 {
			return buf.Bytes(), nil
		}
		prev = b
	}
}
