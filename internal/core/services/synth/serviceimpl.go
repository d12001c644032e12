package synth

import (
	"context"
	"strings"

	"gitlab.com/pagetest.net/internal/config"
	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/ports/secondary"
	"gitlab.com/pagetest.net/internal/domain"
	"gitlab.com/pagetest.net/internal/static/errs"
)

var _ ISynthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	model  secondary.ModelProvider
	cfg    *config.ModelConfig
	logger primary.Logger
}

func NewSynthesizer(model secondary.ModelProvider, cfg *config.ModelConfig, logger primary.Logger) *Synthesizer {
	return &Synthesizer{
		model:  model,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Synthesizer) Synthesize(ctx context.Context, req domain.GenerationRequest) (*domain.Script, error) {
	snapshot := Snapshot(req.HTML, s.cfg.MaxElements, s.cfg.MaxHTMLBytes)
	prompt := BuildPrompt(req.URL, snapshot)

	s.logger.Info("Requesting test script",
		"url", req.URL,
		"provider", s.model.Name(),
		"htmlBytes", len(req.HTML),
		"promptBytes", len(prompt))

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	raw, err := s.model.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("Model call failed", "url", req.URL, "provider", s.model.Name(), "error", err)
		return nil, errs.GenerationError("complete via "+s.model.Name(), err)
	}

	source := StripFences(raw)
	declarations := CountDeclarations(source)
	if source == "" || declarations == 0 || strings.HasPrefix(source, fence) {
		s.logger.Warn("Model reply rejected", "url", req.URL, "replyBytes", len(raw), "declarations", declarations)
		return nil, nil
	}

	s.logger.Info("Test script accepted", "url", req.URL, "declarations", declarations, "bytes", len(source))
	return &domain.Script{Source: source, Declarations: declarations}, nil
}
