package handlers

import (
	"errors"
	"os"

	"github.com/gin-gonic/gin"

	apierrors "github.com/maxfilov/shazam/internal/errors"
	"github.com/maxfilov/shazam/internal/logger"
	"github.com/maxfilov/shazam/internal/matcher"
	"github.com/maxfilov/shazam/internal/metrics"
	"github.com/maxfilov/shazam/internal/util"
	"github.com/maxfilov/shazam/internal/wavfile"
	"go.uber.org/zap"
)

// scoreEntry is one element of the /shazam response's "scores" array:
// [track_label, [offset, count]].
type scoreEntry [2]interface{}

// Shazam handles POST /shazam: it accepts a multipart "file" field holding
// a WAV recording, fingerprints it, and returns the ranked track scores.
func (h *Handlers) Shazam(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.RespondError(c, apierrors.NewEmptyAudio("missing form field \"file\""))
		return
	}

	path, err := util.SaveUploadedFile(h.TempAudioDir, fileHeader)
	if err != nil {
		util.RespondError(c, apierrors.NewTempFileIO(err.Error()))
		return
	}
	defer func() {
		if rmErr := util.RemoveTempFile(path); rmErr != nil {
			logger.WarnWithFields("failed to remove temp audio file", rmErr)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		util.RespondError(c, apierrors.NewTempFileIO(err.Error()))
		return
	}
	decoded, err := wavfile.Decode(f)
	f.Close()
	if err != nil {
		util.RespondError(c, apierrors.NewDecodeFailure(err.Error()))
		return
	}

	result, err := h.Pool.Submit(c.Request.Context(), func() (interface{}, error) {
		return h.Matcher.Query(decoded.Samples, decoded.Channels, decoded.SampleRate)
	})
	if err != nil {
		if errors.Is(err, matcher.ErrNotReady) {
			util.RespondError(c, apierrors.NewNotReady(err.Error()))
			return
		}
		util.RespondError(c, apierrors.NewInternalDSPError(err.Error()))
		return
	}

	scores := result.([]matcher.Score)

	m := metrics.Get()
	if len(scores) > 0 {
		m.QueryBestCount.Observe(float64(scores[0].Count))
	}

	entries := make([]scoreEntry, len(scores))
	for i, s := range scores {
		entries[i] = scoreEntry{s.TrackLabel, [2]int64{s.Offset, int64(s.Count)}}
	}

	logger.Log.Info("query scored",
		zap.Int("candidate_count", len(scores)),
		zap.String("request_id", c.GetString("request_id")),
	)

	c.JSON(200, gin.H{"scores": entries})
}

// Health handles GET /healthz.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
