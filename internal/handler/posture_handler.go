package handler

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/poslyzer/posture-backend-go/internal/analysis"
	"github.com/poslyzer/posture-backend-go/internal/config"
	"github.com/poslyzer/posture-backend-go/internal/logging"
	"github.com/poslyzer/posture-backend-go/internal/models"
	"github.com/poslyzer/posture-backend-go/internal/service"
	"github.com/poslyzer/posture-backend-go/pkg/response"
)

// allowedVideoExts whitelists the upload container formats.
var allowedVideoExts = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
}

// PostureHandler handles HTTP requests for posture analysis.
type PostureHandler struct {
	service         *service.PostureService
	defaultInterval int
	logger          zerolog.Logger
}

// NewPostureHandler creates a new posture handler.
func NewPostureHandler(svc *service.PostureService, cfg *config.Config) *PostureHandler {
	return &PostureHandler{
		service:         svc,
		defaultInterval: cfg.FrameInterval,
		logger:          logging.WithComponent("handler"),
	}
}

// AnalyzeVideo handles POST /api/video/analyze.
func (h *PostureHandler) AnalyzeVideo(c *gin.Context) {
	file, err := c.FormFile("video")
	if err != nil {
		response.BadRequest(c, "No video file provided")
		return
	}
	if file.Filename == "" {
		response.BadRequest(c, "No file selected")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedVideoExts[ext] {
		response.BadRequest(c, "Invalid file type. Allowed: mp4, avi, mov, mkv, webm")
		return
	}

	mode, err := models.ParseMode(c.DefaultPostForm("mode", string(models.ModeSquat)))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	interval := h.defaultInterval
	if raw := c.PostForm("interval"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.BadRequest(c, "Invalid interval parameter")
			return
		}
		interval = n
	}

	// The upload lives in a temp file only for the duration of the request.
	tmp, err := os.CreateTemp("", "posture-upload-*"+ext)
	if err != nil {
		h.logger.Error().Err(err).Msg("temp file creation failed")
		response.AnalysisError(c, "Video analysis failed: could not store upload")
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		h.logger.Error().Err(err).Msg("saving upload failed")
		response.AnalysisError(c, "Video analysis failed: could not store upload")
		return
	}

	report, err := h.service.AnalyzeVideo(c.Request.Context(), tmpPath, mode, interval)
	if err != nil {
		h.logger.Error().Err(err).Str("mode", string(mode)).Msg("video analysis failed")
		response.AnalysisError(c, "Video analysis failed: "+err.Error())
		return
	}

	c.JSON(200, report)
}

// AnalyzeFrame handles POST /api/video/frame.
func (h *PostureHandler) AnalyzeFrame(c *gin.Context) {
	mode, err := models.ParseMode(c.DefaultPostForm("mode", string(models.ModeSquat)))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.analyzeFrameUpload(c, mode)
}

// AnalyzeSquat handles POST /api/video/analyze-squat.
func (h *PostureHandler) AnalyzeSquat(c *gin.Context) {
	h.analyzeFrameUpload(c, models.ModeSquat)
}

// AnalyzeSitting handles POST /api/video/analyze-sit.
func (h *PostureHandler) AnalyzeSitting(c *gin.Context) {
	h.analyzeFrameUpload(c, models.ModeSitting)
}

func (h *PostureHandler) analyzeFrameUpload(c *gin.Context, mode models.Mode) {
	frame, ok := h.readFrameUpload(c)
	if !ok {
		return
	}

	result := h.service.AnalyzeFrame(c.Request.Context(), frame, mode)
	c.JSON(200, analysis.Summarize(result.Issues, mode))
}

// LegacySquat handles POST /analyze/squat, responding with feedback only.
func (h *PostureHandler) LegacySquat(c *gin.Context) {
	h.legacyFrame(c, models.ModeSquat)
}

// LegacySit handles POST /analyze/sit, responding with feedback only.
func (h *PostureHandler) LegacySit(c *gin.Context) {
	h.legacyFrame(c, models.ModeSitting)
}

func (h *PostureHandler) legacyFrame(c *gin.Context, mode models.Mode) {
	frame, ok := h.readFrameUpload(c)
	if !ok {
		return
	}

	result := h.service.AnalyzeFrame(c.Request.Context(), frame, mode)
	c.JSON(200, gin.H{"feedback": result.Issues})
}

// readFrameUpload validates and reads the "frame" multipart field. On
// failure it writes the error response and returns ok=false.
func (h *PostureHandler) readFrameUpload(c *gin.Context) ([]byte, bool) {
	file, err := c.FormFile("frame")
	if err != nil {
		response.BadRequest(c, "No frame file provided")
		return nil, false
	}
	if file.Filename == "" {
		response.BadRequest(c, "No file selected")
		return nil, false
	}

	f, err := file.Open()
	if err != nil {
		response.BadRequest(c, "Invalid image format")
		return nil, false
	}
	defer f.Close()

	frame, err := io.ReadAll(f)
	if err != nil {
		h.logger.Error().Err(err).Msg("reading frame upload failed")
		response.AnalysisError(c, "Image decoding failed: "+err.Error())
		return nil, false
	}
	return frame, true
}
