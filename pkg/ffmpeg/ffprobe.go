// Package ffmpeg reads clip metadata with ffprobe.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strconv"
	"time"
)

// Prober wraps the ffprobe binary
type Prober struct {
	ffprobePath string
	timeout     time.Duration
}

// New creates a prober. An empty path means "ffprobe" on $PATH.
func New(ffprobePath string, timeout time.Duration) *Prober {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Prober{ffprobePath: ffprobePath, timeout: timeout}
}

// ValidateBinary checks that ffprobe is available
func (p *Prober) ValidateBinary() error {
	if _, err := exec.LookPath(p.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, p.ffprobePath)
	}
	return nil
}

// ffprobeOutput represents the JSON structure returned by ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
		Duration   string `json:"duration"`
	} `json:"streams"`
}

// GetMetadata probes a local path or an http(s) URL
func (p *Prober) GetMetadata(ctx context.Context, source string) (*AudioMetadata, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := []string{
		"-v", "quiet",
		"-show_format",
		"-show_streams",
		"-select_streams", "a:0",
		"-of", "json",
		source,
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFFprobeNotFound, p.ffprobePath)
		}
		return nil, NewProcessingError("metadata_extraction", source, err, stderr.String())
	}

	return parseMetadata(stdout.Bytes(), source)
}

// Duration returns the clip length in seconds
func (p *Prober) Duration(ctx context.Context, source string) (float64, error) {
	meta, err := p.GetMetadata(ctx, source)
	if err != nil {
		return 0, err
	}
	return meta.Duration, nil
}

func parseMetadata(raw []byte, source string) (*AudioMetadata, error) {
	var output ffprobeOutput
	if err := json.Unmarshal(raw, &output); err != nil {
		return nil, NewProcessingError("metadata_parsing", source, err, "")
	}

	metadata := &AudioMetadata{Format: output.Format.FormatName}
	if d, err := strconv.ParseFloat(output.Format.Duration, 64); err == nil {
		metadata.Duration = d
	}

	for _, stream := range output.Streams {
		if stream.CodecType != "audio" {
			continue
		}
		metadata.Codec = stream.CodecName
		metadata.Channels = stream.Channels
		if rate, err := strconv.Atoi(stream.SampleRate); err == nil {
			metadata.SampleRate = rate
		}
		// Some containers only report duration on the stream
		if metadata.Duration == 0 {
			if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
				metadata.Duration = d
			}
		}
		break
	}

	if metadata.Duration <= 0 {
		return nil, NewProcessingError("metadata_validation", source, ErrInvalidAudioFile, "")
	}
	return metadata, nil
}
