package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"atelierapi/models"
)

const DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co/models"

type HuggingFaceConfig struct {
	Token            string
	Model            string
	BaseURL          string
	Timeout          time.Duration // hard per-call budget, distinct from transport timeouts
	MaxResponseBytes int64
}

// HuggingFaceClient is the primary provider. One instance per configured
// model, no shared package state.
type HuggingFaceClient struct {
	cfg        HuggingFaceConfig
	httpClient *http.Client
}

func NewHuggingFaceClient(cfg HuggingFaceConfig) *HuggingFaceClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultHuggingFaceBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.MaxResponseBytes == 0 {
		cfg.MaxResponseBytes = MaxImageResponseBytes
	}
	return &HuggingFaceClient{cfg: cfg, httpClient: &http.Client{}}
}

func (client *HuggingFaceClient) Name() models.Provider {
	return models.ProviderPrimary
}

type hfParameters struct {
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

// Generate posts the prompt to the inference endpoint and returns the raw
// image bytes. All failures come back as classified *models.ProviderError.
func (client *HuggingFaceClient) Generate(ctx context.Context, prompt string) (*RawImage, error) {
	ctx, cancel := context.WithTimeout(ctx, client.cfg.Timeout)
	defer cancel()

	payload, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			NumInferenceSteps: generationSteps,
			GuidanceScale:     generationGuidance,
			Width:             generationWidth,
			Height:            generationHeight,
		},
	})
	if err != nil {
		return nil, classifyTransportFailure(client.Name(), err)
	}

	url := fmt.Sprintf("%s/%s", client.cfg.BaseURL, client.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, classifyTransportFailure(client.Name(), err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", client.cfg.Token))
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportFailure(client.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, classifyHTTPFailure(client.Name(), resp.StatusCode, body, resp.Header)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &models.ProviderError{
			Provider:   client.Name(),
			Reason:     models.ReasonMalformedResponse,
			HTTPStatus: resp.StatusCode,
			Detail:     fmt.Sprintf("expected image content type, got %q: %s", contentType, truncateBody(body)),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, client.cfg.MaxResponseBytes+1))
	if err != nil {
		return nil, classifyTransportFailure(client.Name(), err)
	}
	if int64(len(data)) > client.cfg.MaxResponseBytes {
		return nil, oversizedResponseFailure(client.Name(), client.cfg.MaxResponseBytes)
	}

	return &RawImage{Data: data, ContentType: contentType}, nil
}
