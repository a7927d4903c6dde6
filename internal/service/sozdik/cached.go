package sozdik

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/domain"
	"github.com/yenbekbay/sozdik-bot/internal/service/cache"
)

// CachedTranslator decorates a Translator with a short-TTL Redis cache.
// Cache failures degrade to a fresh lookup; only found translations are
// cached.
type CachedTranslator struct {
	translator Translator
	cache      *cache.Service
	ttl        time.Duration
	logger     *zap.Logger
}

func NewCachedTranslator(translator Translator, cacheSvc *cache.Service, ttl time.Duration, logger *zap.Logger) *CachedTranslator {
	return &CachedTranslator{
		translator: translator,
		cache:      cacheSvc,
		ttl:        ttl,
		logger:     logger,
	}
}

func (t *CachedTranslator) GetTranslation(ctx context.Context, query string, fromLang, toLang domain.Language) (*domain.Translation, error) {
	key := fmt.Sprintf("sozdik:translation:%s:%s:%s", fromLang, toLang, query)

	var cached domain.Translation
	found, err := t.cache.Get(ctx, key, &cached)
	if err == nil && found {
		t.logger.Debug("Translation cache hit", zap.String("key", key))
		return &cached, nil
	}

	translation, err := t.translator.GetTranslation(ctx, query, fromLang, toLang)
	if err != nil {
		return nil, err
	}

	if translation != nil {
		if err := t.cache.Set(ctx, key, translation, t.ttl); err != nil {
			t.logger.Warn("Failed to cache translation", zap.String("key", key), zap.Error(err))
		}
	}

	return translation, nil
}
