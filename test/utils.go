package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"atelierapi/models"
	"atelierapi/services"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

// ValidDesignRequest is a baseline payload the tests tweak per case.
func ValidDesignRequest() models.DesignRequestIn {
	return models.DesignRequestIn{
		Gender:   "women",
		Occasion: "party",
		Style:    "vintage",
		Colors:   []string{"#ff0000", "#000000"},
	}
}

// ImageProviderMock scripts provider behavior per attempt and counts calls.
type ImageProviderMock struct {
	Provider     models.Provider
	GenerateFunc func(ctx context.Context, prompt string) (*services.RawImage, error)
	Calls        int
	LastPrompt   string
}

func (m *ImageProviderMock) Name() models.Provider {
	return m.Provider
}

func (m *ImageProviderMock) Generate(ctx context.Context, prompt string) (*services.RawImage, error) {
	m.Calls++
	m.LastPrompt = prompt
	return m.GenerateFunc(ctx, prompt)
}

// FailingProvider always fails with the given classified error.
func FailingProvider(provider models.Provider, err *models.ProviderError) *ImageProviderMock {
	return &ImageProviderMock{
		Provider: provider,
		GenerateFunc: func(ctx context.Context, prompt string) (*services.RawImage, error) {
			return nil, err
		},
	}
}

// SucceedingProvider returns a tiny fake jpeg on every call.
func SucceedingProvider(provider models.Provider) *ImageProviderMock {
	return &ImageProviderMock{
		Provider: provider,
		GenerateFunc: func(ctx context.Context, prompt string) (*services.RawImage, error) {
			return &services.RawImage{Data: []byte("fake-jpeg-bytes"), ContentType: "image/jpeg"}, nil
		},
	}
}

type NotifierMock struct {
	Messages []string
}

func (n *NotifierMock) Notify(message string) {
	n.Messages = append(n.Messages, message)
}

type AWSProviderMock struct {
	Uploads map[string][]byte
}

func (awsService *AWSProviderMock) InitPresignClient(ctx context.Context) error {
	return nil
}

func (awsService *AWSProviderMock) PresignLink(ctx context.Context, bucketName string, fileName string) (string, error) {
	return fmt.Sprintf("https://fakebucketurl.com/%s", fileName), nil
}

func (awsService *AWSProviderMock) GetPresignedR2FileReadURL(ctx context.Context, bucketName, fileKey string) (string, error) {
	return fmt.Sprintf("https://fakebucketurl.com/read/%s", fileKey), nil
}

func (awsService *AWSProviderMock) UploadToPresignedURL(ctx context.Context, bucketName, url string, fileContent []byte) (string, int, error) {
	if awsService.Uploads == nil {
		awsService.Uploads = map[string][]byte{}
	}
	awsService.Uploads[url] = fileContent
	return "", 204, nil
}

type URLCacheMock struct {
	MockUrl string
}

func (c *URLCacheMock) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	if c.MockUrl != "" {
		return c.MockUrl, nil
	}
	return fmt.Sprintf("https://fakebucketurl.com/read/%s", objectKey), nil
}
