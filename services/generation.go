package services

import (
	"context"
	"fmt"
	"time"

	"atelierapi/models"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

type GenerationServiceProvider interface {
	GenerateDesign(ctx context.Context, in models.DesignRequestIn) (*models.GenerationResult, error)
}

// GenerationService is the inbound operation of the whole layer:
// validate -> build prompt -> orchestrate providers -> envelope. The only
// error it ever returns is *models.ValidationError, everything after
// validation resolves to a result.
type GenerationService struct {
	Orchestrator *FallbackOrchestrator
	Cache        DesignCacheServiceProvider // optional
	AWSService   AWSServiceProvider         // optional design archive
	URLCache     URLCacheServiceProvider    // optional share links
	BucketName   string
}

func (s *GenerationService) GenerateDesign(ctx context.Context, in models.DesignRequestIn) (*models.GenerationResult, error) {
	prefs, err := models.NewPreferenceSet(in)
	if err != nil {
		return nil, err
	}

	fingerprint := prefs.Fingerprint()
	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, fingerprint); ok {
			fmt.Printf("[Design %s] Serving cached result for fingerprint %.12s\n", cached.ID, fingerprint)
			return cached, nil
		}
	}

	designID := uuid.NewString()
	prompt := BuildPrompt(prefs)
	fmt.Printf("[Design %s] Prompt: %s\n", designID, prompt)

	started := time.Now()
	outcome := s.Orchestrator.Generate(ctx, prompt, prefs)
	elapsed := time.Since(started)
	fmt.Printf("[Design %s] Generated by %s in %vms, placeholder: %v\n",
		designID, outcome.Provider, elapsed.Milliseconds(), outcome.IsPlaceholder)

	var archiveKey, shareUrl *string
	if !outcome.IsPlaceholder {
		archiveKey, shareUrl = s.archiveDesign(ctx, designID, outcome.Image)
	}

	result := &models.GenerationResult{
		ID:               designID,
		ImageData:        EncodeImageDataURL(outcome.Image),
		Prompt:           prompt,
		ProviderUsed:     outcome.Provider,
		GenerationTimeMs: elapsed.Milliseconds(),
		IsPlaceholder:    outcome.IsPlaceholder,
		ArchiveKey:       archiveKey,
		ShareUrl:         shareUrl,
		CreatedAt:        time.Now().UTC(),
	}

	// Placeholders are never cached: a transient outage must not pin the
	// demo image to this fingerprint for the whole TTL.
	if s.Cache != nil && !result.IsPlaceholder {
		s.Cache.Set(ctx, fingerprint, result)
	}
	return result, nil
}

// archiveDesign uploads the generated image to the R2 archive through the
// presign PUT flow. Best effort: a failed archive never fails the request,
// the caller still gets the inline data URL.
func (s *GenerationService) archiveDesign(ctx context.Context, designID string, img *RawImage) (*string, *string) {
	if s.AWSService == nil || s.BucketName == "" {
		return nil, nil
	}

	ext := ".jpg"
	if img.ContentType == "image/png" {
		ext = ".png"
	}
	key := fmt.Sprintf("designs/%s%s", designID, ext)

	uploadUrl, err := s.AWSService.PresignLink(ctx, s.BucketName, key)
	if err != nil {
		fmt.Printf("[Design %s] Unable to presign archive upload: %v\n", designID, err)
		sentry.CaptureException(fmt.Errorf("[Design %s] presign archive upload: %w", designID, err))
		return nil, nil
	}
	_, status, err := s.AWSService.UploadToPresignedURL(ctx, s.BucketName, uploadUrl, img.Data)
	if err != nil || status < 200 || status > 299 {
		fmt.Printf("[Design %s] Archive upload failed with status %v: %v\n", designID, status, err)
		sentry.CaptureException(fmt.Errorf("[Design %s] archive upload status %v: %v", designID, status, err))
		return nil, nil
	}

	var shareUrl *string
	if s.URLCache != nil {
		url, err := s.URLCache.GetReadURL(ctx, key)
		if err != nil {
			fmt.Printf("[Design %s] Unable to presign share URL: %v\n", designID, err)
		} else if url != "" {
			shareUrl = &url
		}
	}
	return &key, shareUrl
}
