package assemblyai

import (
	"context"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	apperrors "github.com/aimalabs/meeting-review/errors"
	"github.com/aimalabs/meeting-review/pkg/config"
)

// Client wraps the official AssemblyAI SDK behind the pipeline's
// Transcriber boundary. TranscribeFromURL polls until the transcript
// reaches a terminal status, so Transcribe is synchronous.
type Client struct {
	sdk    *aai.Client
	logger *zap.Logger
}

// NewClient creates a transcription client from config
func NewClient(cfg *config.AssemblyAIConfig, logger *zap.Logger) *Client {
	return &Client{
		sdk:    aai.NewClient(cfg.APIKey),
		logger: logger,
	}
}

// Transcribe submits an audio URL and waits for the transcript text
func (c *Client) Transcribe(ctx context.Context, audioURL string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels:     aai.Bool(true),
		LanguageDetection: aai.Bool(true),
	}

	transcript, err := c.sdk.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return "", apperrors.ErrTranscriptionFailed(err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		if c.logger != nil {
			c.logger.Error("assemblyai reported error", zap.String("error", msg))
		}
		return "", apperrors.ErrTranscriptionFailed(nil).WithDetail("assemblyai_error", msg)
	}

	if transcript.Text == nil || *transcript.Text == "" {
		return "", apperrors.ErrTranscriptionFailed(nil).WithDetail("reason", "empty transcript")
	}

	if c.logger != nil {
		id := ""
		if transcript.ID != nil {
			id = *transcript.ID
		}
		c.logger.Info("transcript ready",
			zap.String("transcript_id", id),
			zap.Int("chars", len(*transcript.Text)),
		)
	}
	return *transcript.Text, nil
}
