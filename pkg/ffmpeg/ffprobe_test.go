package ffmpeg

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	p := New("", 10*time.Second)
	if p.ffprobePath != "ffprobe" {
		t.Errorf("Expected ffprobePath to default to 'ffprobe', got %s", p.ffprobePath)
	}
	if p.timeout != 10*time.Second {
		t.Errorf("Expected timeout to be 10s, got %v", p.timeout)
	}
}

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		duration float64
		rate     int
		wantErr  bool
	}{
		{
			name:     "format duration",
			raw:      `{"format":{"duration":"12.480000","format_name":"wav"},"streams":[{"codec_type":"audio","codec_name":"pcm_s16le","sample_rate":"16000","channels":1}]}`,
			duration: 12.48,
			rate:     16000,
		},
		{
			name:     "stream duration fallback",
			raw:      `{"format":{"format_name":"ogg"},"streams":[{"codec_type":"audio","codec_name":"vorbis","sample_rate":"44100","channels":2,"duration":"3.5"}]}`,
			duration: 3.5,
			rate:     44100,
		},
		{
			name:    "no duration",
			raw:     `{"format":{"format_name":"mp3"},"streams":[]}`,
			wantErr: true,
		},
		{
			name:    "not json",
			raw:     `garbage`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := parseMetadata([]byte(tt.raw), "clip.wav")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", meta)
				}
				var perr *ProcessingError
				if !errors.As(err, &perr) {
					t.Errorf("expected ProcessingError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if meta.Duration != tt.duration {
				t.Errorf("duration = %v, want %v", meta.Duration, tt.duration)
			}
			if meta.SampleRate != tt.rate {
				t.Errorf("sample rate = %d, want %d", meta.SampleRate, tt.rate)
			}
		})
	}
}

func TestNoDurationIsInvalidAudio(t *testing.T) {
	_, err := parseMetadata([]byte(`{"format":{}}`), "x.wav")
	if !errors.Is(err, ErrInvalidAudioFile) {
		t.Errorf("expected ErrInvalidAudioFile, got %v", err)
	}
}

func TestMissingBinary(t *testing.T) {
	p := New("/nonexistent/ffprobe", time.Second)

	if err := p.ValidateBinary(); !errors.Is(err, ErrFFprobeNotFound) {
		t.Errorf("expected ErrFFprobeNotFound, got %v", err)
	}
	if _, err := p.Duration(context.Background(), "clip.wav"); !errors.Is(err, ErrFFprobeNotFound) {
		t.Errorf("expected ErrFFprobeNotFound, got %v", err)
	}
}
