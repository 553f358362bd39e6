package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	geminiGenerateURL = "https://generativelanguage.googleapis.com/v1beta/models"

	transcribePrompt = "Transcribe this audio accurately. Return only the transcribed text without any additional commentary."
)

// Transcriber turns a base64 voice recording into text via the Gemini
// generateContent endpoint. Failures map to the same typed categories as the
// recommendation client.
type Transcriber struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

func NewTranscriber(apiKey, model string) *Transcriber {
	return &Transcriber{
		APIKey:     apiKey,
		BaseURL:    geminiGenerateURL,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

func (t *Transcriber) Transcribe(ctx context.Context, audioBase64 string) (string, error) {
	if t.APIKey == "" {
		return "", fmt.Errorf("%w: api key not configured", ErrTransient)
	}

	reqBody := generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{
				{Text: transcribePrompt},
				{InlineData: &inlineData{MimeType: "audio/webm", Data: audioBase64}},
			},
		}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	url := t.BaseURL + "/" + t.Model + ":generateContent?key=" + t.APIKey
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ErrQuotaExhausted
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", fmt.Errorf("%w: status %d", ErrTransient, resp.StatusCode)
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTransient, err)
	}
	if len(gen.Candidates) == 0 || len(gen.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no transcription received", ErrTransient)
	}
	return strings.TrimSpace(gen.Candidates[0].Content.Parts[0].Text), nil
}
