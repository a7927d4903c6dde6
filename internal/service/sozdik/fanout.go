package sozdik

import (
	"context"
	"regexp"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/domain"
)

// Letters that only occur in the Kazakh alphabet. A query containing any of
// them is already Kazakh, so the ru->kk direction is skipped.
var kazakhScriptRe = regexp.MustCompile(`(?i)[әіңғүұқөһ]`)

// Direction is an ordered language pair for a lookup.
type Direction struct {
	From domain.Language
	To   domain.Language
}

// DirectionsForQuery computes the lookup directions to attempt, in result
// order. kk->ru is always attempted; ru->kk only when the query carries no
// Kazakh-specific letters.
func DirectionsForQuery(query string) []Direction {
	directions := []Direction{
		{From: domain.LanguageKazakh, To: domain.LanguageRussian},
	}
	if !kazakhScriptRe.MatchString(query) {
		directions = append(directions, Direction{
			From: domain.LanguageRussian,
			To:   domain.LanguageKazakh,
		})
	}
	return directions
}

// Service fans a query out over both language-pair directions and
// aggregates the non-nil results.
type Service struct {
	translator Translator
	logger     *zap.Logger
}

func NewService(translator Translator, logger *zap.Logger) *Service {
	return &Service{
		translator: translator,
		logger:     logger,
	}
}

// GetTranslationsForQuery looks the query up in every applicable direction
// concurrently. Directions run independently, but any transport failure
// fails the whole fan-out. Successful results keep direction order
// [kk->ru, ru->kk].
func (s *Service) GetTranslationsForQuery(ctx context.Context, query string) ([]*domain.Translation, error) {
	directions := DirectionsForQuery(query)

	results := make([]*domain.Translation, len(directions))
	var resultsMu sync.Mutex

	p := pool.New().WithErrors().WithContext(ctx)
	for idx, direction := range directions {
		idx, direction := idx, direction
		p.Go(func(ctx context.Context) error {
			translation, err := s.translator.GetTranslation(ctx, query, direction.From, direction.To)
			if err != nil {
				return err
			}
			resultsMu.Lock()
			results[idx] = translation
			resultsMu.Unlock()
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	translations := make([]*domain.Translation, 0, len(results))
	for _, translation := range results {
		if translation != nil {
			translations = append(translations, translation)
		}
	}

	if len(translations) == 0 {
		s.logger.Debug("No translations found", zap.String("query", query))
		return translations, nil
	}

	for _, translation := range translations {
		s.logger.Debug("Found a translation",
			zap.String("query", query),
			zap.String("to_lang", translation.ToLang.String()),
		)
	}

	return translations, nil
}
