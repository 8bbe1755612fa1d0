package main

import (
	"fmt"

	"github.com/ternarybob/secbrief/internal/classifier"
	"github.com/ternarybob/secbrief/internal/interfaces"
	"github.com/ternarybob/secbrief/internal/reconcile"
	"github.com/ternarybob/secbrief/internal/services/generator"
	"github.com/ternarybob/secbrief/internal/services/llm"
	badgerstore "github.com/ternarybob/secbrief/internal/storage/badger"
)

// app holds the wired collaborators for one command invocation. It is the
// explicit context object handed to commands; no component reaches for
// ambient singletons.
type app struct {
	storage    interfaces.DocumentStorage
	llm        interfaces.LLMService
	classifier *classifier.Classifier
	summarizer *generator.Summarizer
	tipsGen    *generator.TipsGenerator
	engine     *reconcile.Engine
}

// newApp opens storage and wires the pipeline. withLLM controls whether a
// generation service is attempted; its failure is not fatal because every
// consumer has a heuristic fallback path.
func newApp(withLLM bool) (*app, error) {
	db, err := badgerstore.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	a := &app{
		storage: badgerstore.NewDocumentStorage(db, logger),
	}

	if config.Classifier.TemplatesFile != "" {
		a.classifier, err = classifier.NewFromFile(config.Classifier.TemplatesFile)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to load classifier templates: %w", err)
		}
		logger.Info().
			Str("file", config.Classifier.TemplatesFile).
			Msg("Loaded classifier template override")
	} else {
		a.classifier = classifier.New()
	}

	if withLLM {
		service, err := llm.NewLLMService(config, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Generation service unavailable, using heuristic fallbacks only")
		} else {
			a.llm = service
			a.summarizer = generator.NewSummarizer(service, logger)
		}
	}

	a.tipsGen = generator.NewTipsGenerator(a.llm, a.classifier, logger)
	a.engine = reconcile.NewEngine(
		a.storage,
		&config.Collections,
		a.summarizer,
		a.tipsGen,
		config.Reconcile.LiveRegeneration,
		logger,
	)

	return a, nil
}

// Close releases storage and the generation service.
func (a *app) Close() {
	if a.llm != nil {
		if err := a.llm.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close generation service")
		}
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}
}
