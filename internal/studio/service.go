package studio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"codeberg.org/quickai/server/internal/imaging"
	"codeberg.org/quickai/server/internal/llm"
	"codeberg.org/quickai/server/internal/logger"
	"codeberg.org/quickai/server/internal/metrics"
	"codeberg.org/quickai/server/internal/resume"
	"codeberg.org/quickai/server/internal/retry"
	"codeberg.org/quickai/server/internal/usage"
	"codeberg.org/quickai/server/quickai/creations"
)

// largest image accepted for background or object removal
const MaxImageSize = 10 * 1024 * 1024

// how much of a lost creation is written to the error log
const lostContentLogLimit = 512

func NewService(cfg Config) *Service {
	policy := retry.DefaultPolicy()
	if cfg.Retry != nil {
		policy = *cfg.Retry
	}

	return &Service{
		gate:      cfg.Gate,
		text:      cfg.Text,
		images:    cfg.Images,
		host:      cfg.Host,
		creations: cfg.Creations,
		retry:     policy,
	}
}

func (s *Service) GenerateArticle(ctx context.Context, who Requester, prompt string, length int) (*creations.Creation, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, invalidInput("prompt is required")
	}

	req := llm.TextGenerationRequest{
		Messages:    []llm.Message{{Role: "user", Content: buildArticlePrompt(prompt)}},
		MaxTokens:   TokenBudgetFor(length),
		Temperature: articleTemperature,
	}

	return s.execute(ctx, who, job{
		kind:   creations.TypeArticle,
		prompt: prompt,
		run:    s.complete(req),
	})
}

func (s *Service) GenerateBlogTitle(ctx context.Context, who Requester, prompt string) (*creations.Creation, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, invalidInput("prompt is required")
	}

	req := llm.TextGenerationRequest{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   blogTitleMaxTokens,
		Temperature: blogTitleTemperature,
	}

	return s.execute(ctx, who, job{
		kind:   creations.TypeBlogTitle,
		prompt: prompt,
		run:    s.complete(req),
	})
}

// renders the prompt, hosts the PNG and stores its URL
func (s *Service) GenerateImage(ctx context.Context, who Requester, prompt string, publish bool) (*creations.Creation, error) {
	if err := s.requirePremium(who, creations.TypeImage); err != nil {
		return nil, err
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, invalidInput("prompt is required")
	}

	if s.images == nil || s.host == nil {
		return nil, errors.New("image generation is not configured")
	}

	return s.execute(ctx, who, job{
		kind:    creations.TypeImage,
		prompt:  prompt,
		publish: publish,
		premium: true,
		run: func(ctx context.Context) (string, error) {
			png, err := s.images.TextToImage(ctx, prompt)
			if err != nil {
				return "", err
			}

			res, err := s.host.Upload(ctx, imaging.UploadRequest{
				Filename: "image.png",
				File:     bytes.NewReader(png),
			})
			if err != nil {
				return "", err
			}

			return res.SecureURL, nil
		},
	})
}

func (s *Service) RemoveBackground(ctx context.Context, who Requester, file Upload) (*creations.Creation, error) {
	if err := s.requirePremium(who, creations.TypeImage); err != nil {
		return nil, err
	}

	data, err := readImage(file)
	if err != nil {
		return nil, err
	}

	if s.host == nil {
		return nil, errors.New("image hosting is not configured")
	}

	return s.execute(ctx, who, job{
		kind:    creations.TypeImage,
		prompt:  promptRemoveBackground,
		premium: true,
		run: func(ctx context.Context) (string, error) {
			res, err := s.host.Upload(ctx, imaging.UploadRequest{
				Filename:       file.Filename,
				File:           bytes.NewReader(data),
				Transformation: imaging.TransformRemoveBackground,
			})
			if err != nil {
				return "", err
			}

			return res.SecureURL, nil
		},
	})
}

// uploads the original and stores a delivery URL that erases object
func (s *Service) RemoveObject(ctx context.Context, who Requester, file Upload, object string) (*creations.Creation, error) {
	if err := s.requirePremium(who, creations.TypeImage); err != nil {
		return nil, err
	}

	object = strings.TrimSpace(object)
	if object == "" {
		return nil, invalidInput("object is required")
	}

	data, err := readImage(file)
	if err != nil {
		return nil, err
	}

	if s.host == nil {
		return nil, errors.New("image hosting is not configured")
	}

	return s.execute(ctx, who, job{
		kind:    creations.TypeImage,
		prompt:  removedObjectPrompt(object),
		premium: true,
		run: func(ctx context.Context) (string, error) {
			res, err := s.host.Upload(ctx, imaging.UploadRequest{
				Filename: file.Filename,
				File:     bytes.NewReader(data),
			})
			if err != nil {
				return "", err
			}

			return s.host.URL(res.PublicID, imaging.RemoveObjectTransformation(object))
		},
	})
}

func (s *Service) ReviewResume(ctx context.Context, who Requester, file Upload) (*creations.Creation, error) {
	if err := s.requirePremium(who, creations.TypeResumeReview); err != nil {
		return nil, err
	}

	if file.File == nil {
		return nil, invalidInput("resume file is required")
	}

	if file.Size > resume.MaxFileSize {
		return nil, fileTooLarge(resume.ErrTooLarge.Error())
	}

	text, err := resume.ExtractText(file.File)
	if errors.Is(err, resume.ErrTooLarge) {
		return nil, fileTooLarge(err.Error())
	}

	if err != nil {
		return nil, invalidInput("%s", err.Error())
	}

	req := llm.TextGenerationRequest{
		Messages:    []llm.Message{{Role: "user", Content: buildResumePrompt(text)}},
		MaxTokens:   resumeMaxTokens,
		Temperature: resumeTemperature,
	}

	return s.execute(ctx, who, job{
		kind:    creations.TypeResumeReview,
		prompt:  promptReviewResume,
		premium: true,
		run:     s.complete(req),
	})
}

func (s *Service) complete(req llm.TextGenerationRequest) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		resp, err := s.text.GenerateText(ctx, req)
		if err != nil {
			return "", err
		}

		return resp.Text, nil
	}
}

// gate -> external call (retried on rate limits) -> persist -> record usage
func (s *Service) execute(ctx context.Context, who Requester, j job) (*creations.Creation, error) {
	log := logger.FromContext(ctx).With("user_id", who.UserID, "type", string(j.kind))
	kind := string(j.kind)

	var ticket *usage.Ticket

	if j.premium {
		if err := s.requirePremium(who, j.kind); err != nil {
			return nil, err
		}
	} else {
		t, err := s.gate.Admit(ctx, who.UserID, who.Usage)
		if errors.Is(err, usage.ErrQuotaExceeded) {
			metrics.GenerationsTotal.WithLabelValues(kind, "quota").Inc()
			return nil, err
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsageUnavailable, err)
		}

		ticket = t
	}

	start := time.Now()
	content, err := retry.Do(ctx, s.policyFor(kind, log), j.run)
	metrics.GenerationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	// the external side effect has happened; settle without the request's cancellation
	settleCtx := context.WithoutCancel(ctx)

	if err != nil {
		s.cancel(settleCtx, ticket, log)

		status := "external"
		if retry.IsRateLimited(err) {
			status = "rate_limited"
		}

		metrics.GenerationsTotal.WithLabelValues(kind, status).Inc()
		return nil, err
	}

	creation, err := s.creations.Create(settleCtx, creations.CreateRequest{
		UserID:  who.UserID,
		Prompt:  j.prompt,
		Content: content,
		Type:    j.kind,
		Publish: j.publish,
	})
	if err != nil {
		s.cancel(settleCtx, ticket, log)
		metrics.GenerationsTotal.WithLabelValues(kind, "persistence").Inc()

		log.Error("creation lost after successful generation",
			"error", err,
			"content_bytes", len(content),
			"content", truncate(content, lostContentLogLimit),
		)

		return nil, &PersistenceError{Type: j.kind, Content: content, Err: err}
	}

	if ticket != nil && !ticket.Plan().IsPremium() {
		if err := ticket.Commit(settleCtx); err != nil {
			// the user keeps the result; the counter is now one behind
			log.Error("failed to record free usage", "error", err, "creation_id", creation.ID)
		} else {
			metrics.FreeUsageRecordedTotal.Inc()
		}
	}

	metrics.GenerationsTotal.WithLabelValues(kind, "success").Inc()

	return creation, nil
}

func (s *Service) requirePremium(who Requester, kind creations.Type) error {
	if err := s.gate.RequirePremium(who.Usage); err != nil {
		metrics.GenerationsTotal.WithLabelValues(string(kind), "premium").Inc()
		return err
	}

	return nil
}

func (s *Service) policyFor(kind string, log *slog.Logger) retry.Policy {
	p := s.retry
	next := p.OnRetry

	p.OnRetry = func(attempt int, delay time.Duration, err error) {
		metrics.RetriesTotal.WithLabelValues(kind).Inc()
		log.Warn("rate limited, retrying", "attempt", attempt, "delay_ms", delay.Milliseconds(), "error", err)

		if next != nil {
			next(attempt, delay, err)
		}
	}

	return p
}

func (s *Service) cancel(ctx context.Context, ticket *usage.Ticket, log *slog.Logger) {
	if err := ticket.Cancel(ctx); err != nil {
		log.Error("failed to release usage reservation", "error", err)
	}
}

func readImage(file Upload) ([]byte, error) {
	if file.File == nil {
		return nil, invalidInput("image file is required")
	}

	if file.Size > MaxImageSize {
		return nil, fileTooLarge("Image file size exceeds allowed size (10MB).")
	}

	data, err := io.ReadAll(io.LimitReader(file.File, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	if len(data) > MaxImageSize {
		return nil, fileTooLarge("Image file size exceeds allowed size (10MB).")
	}

	if len(data) == 0 {
		return nil, invalidInput("image file is empty")
	}

	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
