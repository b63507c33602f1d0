package services

import (
	"context"
	"fmt"
	"time"

	"atelierapi/models"

	"github.com/getsentry/sentry-go"
)

// AdminNotifier relays ops alerts (providers exhausted, user feedback) to
// the admin channel. Best effort, implementations must never block long.
type AdminNotifier interface {
	Notify(message string)
}

// GenerationOutcome is what the orchestrator resolves every request to.
// Exactly one provider attribution, placeholder included.
type GenerationOutcome struct {
	Image         *RawImage
	Provider      models.Provider
	IsPlaceholder bool
	Attempts      []models.ProviderAttempt
}

type orchestratorState int

const (
	stateTryPrimary orchestratorState = iota
	stateTryBackup
	stateUsePlaceholder
	stateDone
)

// FallbackOrchestrator runs the per-request state machine
// TryPrimary -> TryBackup -> UsePlaceholder -> Done. The defining
// guarantee: Generate always terminates with a usable image, provider
// errors never escape it.
type FallbackOrchestrator struct {
	Primary     ImageProvider
	Backup      ImageProvider
	Placeholder *PlaceholderService
	Notifier    AdminNotifier // optional

	RetryBudget   int
	ForceDemoMode bool

	// Classification-keyed backoff. Cold starts resolve in tens of
	// seconds, transient network blips in much less.
	ModelLoadingDelay time.Duration
	RateLimitDelay    time.Duration
	TransientDelay    time.Duration
}

func NewFallbackOrchestrator(primary, backup ImageProvider, placeholder *PlaceholderService) *FallbackOrchestrator {
	return &FallbackOrchestrator{
		Primary:           primary,
		Backup:            backup,
		Placeholder:       placeholder,
		RetryBudget:       3,
		ModelLoadingDelay: 8 * time.Second,
		RateLimitDelay:    5 * time.Second,
		TransientDelay:    time.Second,
	}
}

func (o *FallbackOrchestrator) Generate(ctx context.Context, prompt string, prefs *models.PreferenceSet) *GenerationOutcome {
	outcome := &GenerationOutcome{}
	state := stateTryPrimary
	if o.ForceDemoMode {
		fmt.Println("Demo mode forced, skipping providers")
		state = stateUsePlaceholder
	}
	providersFailed := false

	for state != stateDone {
		switch state {
		case stateTryPrimary:
			if img := o.tryProvider(ctx, o.Primary, prompt, o.RetryBudget, outcome); img != nil {
				outcome.Image = img
				outcome.Provider = o.Primary.Name()
				state = stateDone
				continue
			}
			state = stateTryBackup
		case stateTryBackup:
			// single attempt, no nested retry loop on the backup tier
			if img := o.tryProvider(ctx, o.Backup, prompt, 1, outcome); img != nil {
				outcome.Image = img
				outcome.Provider = o.Backup.Name()
				state = stateDone
				continue
			}
			providersFailed = true
			state = stateUsePlaceholder
		case stateUsePlaceholder:
			// A canceled request is a client hang-up, not a provider
			// outage, and must not page anyone.
			if providersFailed && ctx.Err() == nil {
				fmt.Printf("All providers exhausted after %v attempts, serving placeholder\n", len(outcome.Attempts))
				sentry.CaptureException(models.ErrAllProvidersExhausted)
				if o.Notifier != nil {
					o.Notifier.Notify(fmt.Sprintf("⚠️ All image providers exhausted after %v attempts, placeholder served", len(outcome.Attempts)))
				}
			}
			outcome.Image = &RawImage{
				Data:        o.Placeholder.RenderPlaceholder(prefs),
				ContentType: "image/svg+xml",
			}
			outcome.Provider = models.ProviderPlaceholder
			outcome.IsPlaceholder = true
			state = stateDone
		}
	}
	return outcome
}

// tryProvider runs up to budget attempts against one provider. Returns nil
// when the tier is spent: fatal classification, budget exhausted, or the
// inbound request got canceled (the placeholder tier needs no network, so
// the result contract still holds).
func (o *FallbackOrchestrator) tryProvider(ctx context.Context, provider ImageProvider, prompt string, budget int, outcome *GenerationOutcome) *RawImage {
	for attempt := 1; attempt <= budget; attempt++ {
		if ctx.Err() != nil {
			fmt.Printf("Request canceled before %s attempt %v, short-circuit to placeholder\n", provider.Name(), attempt)
			return nil
		}

		img, err := provider.Generate(ctx, prompt)
		if err == nil {
			outcome.Attempts = append(outcome.Attempts, models.ProviderAttempt{
				Provider:      provider.Name(),
				AttemptNumber: attempt,
				Outcome:       models.OutcomeSuccess,
			})
			fmt.Printf("Provider %s succeeded on attempt %v\n", provider.Name(), attempt)
			return img
		}

		perr, ok := err.(*models.ProviderError)
		if !ok {
			// Clients classify everything at their boundary, an unwrapped
			// error here is a bug worth reporting.
			sentry.CaptureException(fmt.Errorf("unclassified error from provider %s: %w", provider.Name(), err))
			perr = &models.ProviderError{Provider: provider.Name(), Reason: models.ReasonAPIError, Detail: err.Error()}
		}

		attemptRecord := models.ProviderAttempt{
			Provider:      provider.Name(),
			AttemptNumber: attempt,
			Outcome:       models.OutcomeFatal,
		}
		if perr.Retryable {
			attemptRecord.Outcome = models.OutcomeRetryable
		}
		if perr.HTTPStatus != 0 {
			status := perr.HTTPStatus
			attemptRecord.HTTPStatus = &status
		}
		outcome.Attempts = append(outcome.Attempts, attemptRecord)
		fmt.Printf("Provider %s attempt %v/%v failed (%s): %v\n", provider.Name(), attempt, budget, attemptRecord.Outcome, perr)

		if !perr.Retryable {
			sentry.CaptureException(perr)
			return nil
		}
		if attempt == budget {
			return nil
		}

		select {
		case <-ctx.Done():
			fmt.Printf("Request canceled during %s backoff, short-circuit to placeholder\n", provider.Name())
			return nil
		case <-time.After(o.backoffDelay(perr)):
		}
	}
	return nil
}

func (o *FallbackOrchestrator) backoffDelay(err *models.ProviderError) time.Duration {
	if err.RetryAfter > 0 {
		return err.RetryAfter
	}
	switch err.Reason {
	case models.ReasonModelLoading:
		return o.ModelLoadingDelay
	case models.ReasonRateLimited:
		return o.RateLimitDelay
	default:
		return o.TransientDelay
	}
}
