package httpserver

import (
	"context"
	"errors"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sharoon-shahzad/Frame2Action/internal/domain/entity"
	"github.com/sharoon-shahzad/Frame2Action/internal/domain/port"
	"github.com/sharoon-shahzad/Frame2Action/internal/usecase"
	"go.uber.org/zap"
)

// Recognizer is the slice of the usecase the HTTP layer needs.
type Recognizer interface {
	Execute(ctx context.Context, in usecase.Input) (*entity.Prediction, error)
}

type Handler struct {
	recognizer Recognizer
	predictor  port.Predictor
	logger     *zap.Logger
	tempDir    string
}

func NewHandler(recognizer Recognizer, predictor port.Predictor, tempDir string, logger *zap.Logger) *Handler {
	return &Handler{
		recognizer: recognizer,
		predictor:  predictor,
		logger:     logger,
		tempDir:    tempDir,
	}
}

// UploadVideo handles POST /upload_video: multipart field "file" plus an
// optional "num_frames" integer (default 5).
func (h *Handler) UploadVideo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "missing video file (form field 'file')")
		return
	}

	format, err := entity.ParseVideoFormat(fileHeader.Filename)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	numFrames := entity.DefaultNumFrames
	if raw := c.PostForm("num_frames"); raw != "" {
		numFrames, err = strconv.Atoi(raw)
		if err != nil || numFrames < 1 {
			fail(c, http.StatusBadRequest, "num_frames must be a positive integer")
			return
		}
	}

	// Stage the upload in a request-scoped temp dir, removed on every
	// exit path.
	workDir, err := os.MkdirTemp(h.tempDir, "upload-*")
	if err != nil {
		h.logger.Error("failed to create temp dir", zap.Error(err))
		fail(c, http.StatusInternalServerError, "could not store upload")
		return
	}
	defer os.RemoveAll(workDir)

	videoPath := filepath.Join(workDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, videoPath); err != nil {
		h.logger.Error("failed to save upload", zap.Error(err))
		fail(c, http.StatusInternalServerError, "could not store upload")
		return
	}

	p, err := h.recognizer.Execute(c.Request.Context(), usecase.Input{
		VideoPath: videoPath,
		Filename:  fileHeader.Filename,
		Format:    format,
		NumFrames: numFrames,
	})
	if err != nil {
		fail(c, statusFor(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "complete",
		"action":     p.Action,
		"caption":    p.Caption,
		"confidence": round4(p.Confidence),
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	if !h.predictor.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":       "unavailable",
			"model_loaded": false,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"model_loaded": true,
	})
}

func statusFor(err error) int {
	switch {
	case entity.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
