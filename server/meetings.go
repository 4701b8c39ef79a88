package server

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/meetingminds/errors"
	"github.com/skillsenselab/meetingminds/logger"
	"github.com/skillsenselab/meetingminds/meeting"
	"github.com/skillsenselab/meetingminds/util"
	"github.com/skillsenselab/meetingminds/validation"
)

// MeetingHandler exposes the processing pipeline over HTTP.
type MeetingHandler struct {
	pipeline  *meeting.Pipeline
	uploadDir string
	log       *logger.Logger
}

// NewMeetingHandler creates a handler that stores uploads under
// uploadDir while a pipeline run is in flight.
func NewMeetingHandler(p *meeting.Pipeline, uploadDir string) *MeetingHandler {
	return &MeetingHandler{
		pipeline:  p,
		uploadDir: uploadDir,
		log:       logger.Get("meetings-api"),
	}
}

// Register mounts the meeting routes on the engine.
func (h *MeetingHandler) Register(e *gin.Engine) {
	v1 := e.Group("/v1")
	v1.POST("/meetings", h.create)
}

// create accepts a multipart audio upload, runs the pipeline on it, and
// returns the full result. Form fields: audio (file, required),
// language, num_speakers, summarize.
func (h *MeetingHandler) create(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		RespondWithError(c, errors.MissingField("audio"))
		return
	}

	language := util.SanitizeString(c.PostForm("language"))
	numSpeakersRaw := c.PostForm("num_speakers")
	summarizeRaw := c.PostForm("summarize")

	v := validation.New().
		OneOf("language", language, "en", "es", "fr", "de", "it", "pt").
		MaxLength("num_speakers", numSpeakersRaw, 3)

	numSpeakers := 0
	if numSpeakersRaw != "" {
		n, convErr := strconv.Atoi(numSpeakersRaw)
		if convErr != nil || n < 0 {
			v.AddError("num_speakers", "must be a non-negative integer")
		} else {
			numSpeakers = n
		}
	}

	doSummarize := false
	if summarizeRaw != "" {
		b, convErr := strconv.ParseBool(summarizeRaw)
		if convErr != nil {
			v.AddError("summarize", "must be a boolean")
		} else {
			doSummarize = b
		}
	}

	if appErr := v.Validate(); appErr != nil {
		RespondWithError(c, appErr)
		return
	}

	audioPath, err := h.saveUpload(c, file)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	defer func() {
		if rmErr := os.Remove(audioPath); rmErr != nil {
			h.log.Warn("failed to remove upload", logger.Fields("path", audioPath, "error", rmErr.Error()))
		}
	}()

	res, err := h.pipeline.Run(c.Request.Context(), meeting.Request{
		AudioPath:   audioPath,
		Language:    language,
		NumSpeakers: numSpeakers,
		Summarize:   doSummarize,
	})
	if err != nil {
		RespondWithError(c, err)
		return
	}

	RespondCreated(c, res)
}

// saveUpload writes the multipart file under the upload directory with
// a unique name, keeping the original extension for the backends.
func (h *MeetingHandler) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", errors.Internal(err)
	}
	dst := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", errors.Internal(err)
	}
	return dst, nil
}
