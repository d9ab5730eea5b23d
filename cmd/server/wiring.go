package main

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Teo107/farmer-assistant/config"
	"github.com/Teo107/farmer-assistant/database"
	"github.com/Teo107/farmer-assistant/pkg/ai"
)

// seed loads the JSON data files, merges the optional workbook on top and
// writes both into an empty database.
func seed(db *gorm.DB, cfg config.AppConfig, log *zap.Logger) error {
	ds, err := database.LoadJSON(cfg.DataDir)
	if err != nil {
		return err
	}
	if cfg.DataXLSX != "" {
		wb, err := database.ImportWorkbook(cfg.DataXLSX)
		if err != nil {
			return err
		}
		ds.Merge(wb)
	}
	seeded, err := database.Seed(db, ds)
	if err != nil {
		return err
	}
	log.Info("data",
		zap.Bool("seeded", seeded),
		zap.Int("farmers", len(ds.Farmers)),
		zap.Int("parcels", len(ds.Parcels)))
	return nil
}

// interpreter builds the configured AI client, or nil when delegation is off
// or cannot be set up.
func interpreter(ctx context.Context, cfg config.AppConfig, log *zap.Logger) ai.Client {
	if !cfg.UseAI {
		return nil
	}
	log = log.With(zap.String("provider", cfg.AIProvider))
	switch cfg.AIProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			log.Warn("GEMINI_API_KEY missing, AI interpreter disabled")
			return nil
		}
		c, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn("AI interpreter disabled", zap.Error(err))
			return nil
		}
		return c
	case "openai":
		if cfg.LLMEndpoint == "" || cfg.LLMAPIKey == "" {
			log.Warn("LLM_ENDPOINT/LLM_API_KEY missing, AI interpreter disabled")
			return nil
		}
		return ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	case "mock":
		// always fails, so every message exercises the rules fallback
		return ai.NewMock(ai.MockReply{Err: ai.ErrEmptyResponse})
	}
	log.Warn("unknown AI_PROVIDER, AI interpreter disabled")
	return nil
}
