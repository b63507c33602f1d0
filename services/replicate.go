package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"atelierapi/models"
)

const DefaultReplicateBaseURL = "https://api.replicate.com"

type ReplicateConfig struct {
	Token            string
	Version          string // model version hash on replicate
	BaseURL          string
	Timeout          time.Duration // covers create + polling + output download
	PollInterval     time.Duration
	MaxResponseBytes int64
}

// ReplicateClient is the backup provider. Predictions are asynchronous:
// create returns a handle, the result arrives after polling it.
type ReplicateClient struct {
	cfg        ReplicateConfig
	httpClient *http.Client
}

func NewReplicateClient(cfg ReplicateConfig) *ReplicateClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultReplicateBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 1500 * time.Millisecond
	}
	if cfg.MaxResponseBytes == 0 {
		cfg.MaxResponseBytes = MaxImageResponseBytes
	}
	return &ReplicateClient{cfg: cfg, httpClient: &http.Client{}}
}

func (client *ReplicateClient) Name() models.Provider {
	return models.ProviderBackup
}

type replicateInput struct {
	Prompt            string  `json:"prompt"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
}

type replicateCreateRequest struct {
	Version string         `json:"version"`
	Input   replicateInput `json:"input"`
}

type replicatePrediction struct {
	ID     string   `json:"id"`
	Status string   `json:"status"`
	Output []string `json:"output"`
	Error  string   `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

// Generate creates a prediction and polls it until a terminal status,
// then downloads the first output URL. The whole flow shares one deadline.
func (client *ReplicateClient) Generate(ctx context.Context, prompt string) (*RawImage, error) {
	ctx, cancel := context.WithTimeout(ctx, client.cfg.Timeout)
	defer cancel()

	prediction, err := client.createPrediction(ctx, prompt)
	if err != nil {
		return nil, err
	}
	fmt.Printf("[Replicate %s] Prediction created, status: %s\n", prediction.ID, prediction.Status)

	for prediction.Status == "starting" || prediction.Status == "processing" {
		select {
		case <-ctx.Done():
			return nil, classifyTransportFailure(client.Name(), ctx.Err())
		case <-time.After(client.cfg.PollInterval):
			prediction, err = client.getPrediction(ctx, prediction.URLs.Get)
			if err != nil {
				return nil, err
			}
		}
	}

	switch prediction.Status {
	case "succeeded":
		// carry on below
	case "failed", "canceled":
		return nil, &models.ProviderError{
			Provider: client.Name(),
			Reason:   models.ReasonAPIError,
			Detail:   fmt.Sprintf("prediction %s %s: %s", prediction.ID, prediction.Status, prediction.Error),
		}
	default:
		return nil, &models.ProviderError{
			Provider: client.Name(),
			Reason:   models.ReasonMalformedResponse,
			Detail:   fmt.Sprintf("prediction %s in unknown status %q", prediction.ID, prediction.Status),
		}
	}

	if len(prediction.Output) == 0 {
		return nil, &models.ProviderError{
			Provider: client.Name(),
			Reason:   models.ReasonMalformedResponse,
			Detail:   fmt.Sprintf("prediction %s succeeded with empty output", prediction.ID),
		}
	}

	fmt.Printf("[Replicate %s] Downloading output %s\n", prediction.ID, prediction.Output[0])
	data, contentType, err := ReadFileFromUrl(ctx, prediction.Output[0], client.cfg.MaxResponseBytes)
	if err != nil {
		return nil, classifyTransportFailure(client.Name(), err)
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return &RawImage{Data: data, ContentType: contentType}, nil
}

func (client *ReplicateClient) createPrediction(ctx context.Context, prompt string) (*replicatePrediction, error) {
	payload, err := json.Marshal(replicateCreateRequest{
		Version: client.cfg.Version,
		Input: replicateInput{
			Prompt:            prompt,
			Width:             generationWidth,
			Height:            generationHeight,
			NumInferenceSteps: generationSteps,
			GuidanceScale:     generationGuidance,
		},
	})
	if err != nil {
		return nil, classifyTransportFailure(client.Name(), err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/v1/predictions", client.cfg.BaseURL), bytes.NewReader(payload))
	if err != nil {
		return nil, classifyTransportFailure(client.Name(), err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Token %s", client.cfg.Token))
	req.Header.Set("Content-Type", "application/json")
	return client.doPredictionRequest(req)
}

func (client *ReplicateClient) getPrediction(ctx context.Context, url string) (*replicatePrediction, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, classifyTransportFailure(client.Name(), err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Token %s", client.cfg.Token))
	return client.doPredictionRequest(req)
}

func (client *ReplicateClient) doPredictionRequest(req *http.Request) (*replicatePrediction, error) {
	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportFailure(client.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, classifyTransportFailure(client.Name(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyHTTPFailure(client.Name(), resp.StatusCode, body, resp.Header)
	}

	var prediction replicatePrediction
	if err := json.Unmarshal(body, &prediction); err != nil {
		return nil, &models.ProviderError{
			Provider:   client.Name(),
			Reason:     models.ReasonMalformedResponse,
			HTTPStatus: resp.StatusCode,
			Detail:     fmt.Sprintf("invalid prediction payload: %v", err),
		}
	}
	if prediction.URLs.Get == "" {
		prediction.URLs.Get = fmt.Sprintf("%s/v1/predictions/%s", client.cfg.BaseURL, prediction.ID)
	}
	return &prediction, nil
}
