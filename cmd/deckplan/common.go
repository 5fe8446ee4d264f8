package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/deckplan/internal/allocate"
	"github.com/dgallion1/deckplan/internal/config"
	"github.com/dgallion1/deckplan/internal/content"
	"github.com/dgallion1/deckplan/internal/deck"
	"github.com/dgallion1/deckplan/internal/template"
	"github.com/dgallion1/deckplan/internal/textproc"
)

func analyzeTemplate(cfg config.Config, log *slog.Logger, path string) (*template.Structure, error) {
	var cache *template.Cache
	if !noCache {
		cache = template.NewCache(cfg.CacheDir)
	}
	return template.NewAnalyzer(path, cache, log).Analyze()
}

func loadContent(log *slog.Logger, path string) ([]deck.SlideRequest, error) {
	p, err := content.ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()

	requests, err := p.Parse(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return content.Validate(requests, log)
}

func buildPlan(cfg config.Config, log *slog.Logger, templatePath, contentPath string) (*allocate.Plan, error) {
	st, err := analyzeTemplate(cfg, log, templatePath)
	if err != nil {
		return nil, err
	}
	requests, err := loadContent(log, contentPath)
	if err != nil {
		return nil, err
	}

	var summarizer *textproc.Summarizer
	if cfg.UseSummarization {
		summarizer = textproc.NewSummarizer(textproc.TFIDFScorer{}, cfg.MinSentenceLength, log)
	}
	alloc := allocate.NewAllocator(st, allocate.Config{
		MaxBullets:         cfg.MaxBulletsPerSlide,
		MaxBulletLength:    cfg.MaxBulletLength,
		UseSummarization:   cfg.UseSummarization,
		SummarizeThreshold: cfg.SummarizeThreshold,
		Workers:            cfg.Workers,
	}, summarizer, log)

	return alloc.Allocate(context.Background(), requests)
}
