package datasets

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/annotator/api/types"
	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/internal/services/catalog"
)

const createdMessage = "Data uploaded, created and assigned successfully"

// apiKey reads the project key from the Authorization header. A "Bearer "
// prefix is accepted.
func apiKey(c *gin.Context) string {
	key := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(key) > 7 && strings.EqualFold(key[:7], "bearer ") {
		key = strings.TrimSpace(key[7:])
	}
	return key
}

// Upload stores one audio clip sent as multipart form data together with
// optional segmentations (a JSON array in the "segmentations" field)
// @Summary      Upload clip
// @Description  Upload one audio clip with optional segmentations to the project owning the API key
// @Tags         datasets
// @Accept       multipart/form-data
// @Produce      json
// @Security     ApiKeyAuth
// @Param        audio_file formData file true "Audio clip"
// @Param        username formData string false "Uploader"
// @Param        reference_transcription formData string false "Reference transcription"
// @Param        is_marked_for_review formData bool false "Mark for review"
// @Param        youtube_start_time formData int false "Source video start (ms)"
// @Param        youtube_end_time formData int false "Source video end (ms)"
// @Param        segmentations formData string false "JSON array of {start_time,end_time,transcription,annotations}"
// @Success      201 {object} types.DataCreatedResponse "Clip created"
// @Failure      400 {object} types.ErrorResponse "Invalid form or missing API key"
// @Failure      404 {object} types.ErrorResponse "No project with this API key"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/data [post]
func Upload(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.DefaultPostForm("segmentations", "[]")
		var uploads []types.UploadSegmentation
		if err := json.Unmarshal([]byte(raw), &uploads); err != nil {
			types.SendBadRequest(c, "Segmentations could not be parsed")
			return
		}
		payloads := make([]models.SegmentationPayload, 0, len(uploads))
		for _, u := range uploads {
			p, ok := u.Payload()
			if !ok {
				types.SendBadRequest(c, "Segmentations have missing keys.")
				return
			}
			payloads = append(payloads, p)
		}

		start, err := optionalInt(c.PostForm("youtube_start_time"))
		if err != nil {
			types.SendBadRequest(c, "Invalid youtube_start_time")
			return
		}
		end, err := optionalInt(c.PostForm("youtube_end_time"))
		if err != nil {
			types.SendBadRequest(c, "Invalid youtube_end_time")
			return
		}

		req := catalog.AddDataRequest{
			Username:               c.PostForm("username"),
			ReferenceTranscription: c.PostForm("reference_transcription"),
			IsMarkedForReview:      truthy(c.PostForm("is_marked_for_review")),
			YoutubeStartTime:       start,
			YoutubeEndTime:         end,
			Segmentations:          payloads,
		}

		var audio io.Reader
		if file, header, err := c.Request.FormFile("audio_file"); err == nil {
			defer file.Close()
			audio = file
			req.Filename = header.Filename
		}

		id, err := deps.Catalog.AddData(c.Request.Context(), apiKey(c), req, audio)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendCreated(c, types.DataCreatedResponse{
			DataID:  id,
			Message: createdMessage,
			Type:    types.TypeDataCreated,
		})
	}
}

// Register records clips already placed in the audio directory. Every form
// list is parallel to audio_filenames.
// @Summary      Register clips
// @Description  Record clips already stored in the audio directory for the project owning the API key
// @Tags         datasets
// @Accept       multipart/form-data
// @Produce      json
// @Security     ApiKeyAuth
// @Param        audio_filenames formData []string true "Original filenames" collectionFormat(multi)
// @Param        uuid_filenames formData []string true "Stored filenames" collectionFormat(multi)
// @Param        youtube_start_times formData []int false "Source video starts (ms)" collectionFormat(multi)
// @Param        youtube_end_times formData []int false "Source video ends (ms)" collectionFormat(multi)
// @Param        reference_transcriptions formData []string false "Reference transcriptions" collectionFormat(multi)
// @Param        username formData string false "Uploader"
// @Success      201 {object} types.DataCreatedResponse "Clips registered"
// @Failure      400 {object} types.ErrorResponse "Invalid form or missing API key"
// @Failure      404 {object} types.ErrorResponse "No project with this API key"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/register-dataset [post]
func Register(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		starts, err := intList(c.PostFormArray("youtube_start_times"))
		if err != nil {
			types.SendBadRequest(c, "Invalid youtube_start_times: "+err.Error())
			return
		}
		ends, err := intList(c.PostFormArray("youtube_end_times"))
		if err != nil {
			types.SendBadRequest(c, "Invalid youtube_end_times: "+err.Error())
			return
		}

		req := catalog.RegisterRequest{
			Username:                c.PostForm("username"),
			AudioFilenames:          c.PostFormArray("audio_filenames"),
			UUIDFilenames:           c.PostFormArray("uuid_filenames"),
			YoutubeStartTimes:       starts,
			YoutubeEndTimes:         ends,
			ReferenceTranscriptions: c.PostFormArray("reference_transcriptions"),
		}

		id, err := deps.Catalog.RegisterDataset(c.Request.Context(), apiKey(c), req)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendCreated(c, types.DataCreatedResponse{
			DataID:  id,
			Message: createdMessage,
			Type:    types.TypeDataCreated,
		})
	}
}

func optionalInt(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func intList(raw []string) ([]int64, error) {
	out := make([]int64, 0, len(raw))
	for i, r := range raw {
		v, err := optionalInt(r)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func truthy(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}
