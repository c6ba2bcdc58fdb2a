// Package classifier scores free text against the weighted keyword taxonomy
// and picks the winning intent.
package classifier

import (
	"context"
	"sort"
	"strings"

	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/models"
)

// Config tunes the scoring pass.
type Config struct {
	// MinConfidence is the global floor. An intent wins only when its
	// normalized score reaches max(MinConfidence, intent threshold).
	MinConfidence float64

	// ScoreDivisor normalizes the raw additive keyword score into [0, 1].
	ScoreDivisor float64
}

// DefaultConfig mirrors the taxonomy defaults.
func DefaultConfig() *Config {
	return &Config{
		MinConfidence: 0.7,
		ScoreDivisor:  5.0,
	}
}

// TaxonomySource supplies the intent/keyword join the classifier scores
// against. *store.Store satisfies it.
type TaxonomySource interface {
	IntentKeywordRows(ctx context.Context) ([]models.IntentKeywordRow, error)
}

// Result is the outcome of one classification pass.
type Result struct {
	Intent          string
	IntentID        int64
	Category        string
	Confidence      float64
	MatchedKeywords []string
}

// Classifier is safe for concurrent use; all state lives in the taxonomy.
type Classifier struct {
	config *Config
	source TaxonomySource
	logger logger.Logger
}

func New(config *Config, source TaxonomySource, log logger.Logger) *Classifier {
	if config == nil {
		config = DefaultConfig()
	}
	return &Classifier{
		config: config,
		source: source,
		logger: log,
	}
}

type intentScore struct {
	intentID  int64
	name      string
	category  string
	threshold float64
	raw       float64
	keywords  []string
}

// Classify scores the text against every active intent and returns the best
// one, or nil when nothing clears its threshold. Matching is case-insensitive
// substring containment; each matched keyword adds its weight.
func (c *Classifier) Classify(ctx context.Context, text string) (*Result, error) {
	rows, err := c.source.IntentKeywordRows(ctx)
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(text)

	scores := make(map[int64]*intentScore)
	for _, row := range rows {
		if !strings.Contains(lowered, strings.ToLower(row.Keyword)) {
			continue
		}
		sc, ok := scores[row.IntentID]
		if !ok {
			sc = &intentScore{
				intentID:  row.IntentID,
				name:      row.IntentName,
				category:  row.Category,
				threshold: row.Threshold,
			}
			scores[row.IntentID] = sc
		}
		sc.raw += row.Weight
		sc.keywords = append(sc.keywords, row.Keyword)
	}

	if len(scores) == 0 {
		return nil, nil
	}

	candidates := make([]*intentScore, 0, len(scores))
	for _, sc := range scores {
		candidates = append(candidates, sc)
	}
	// highest score wins; equal scores go to the lowest intent id so a
	// given utterance always classifies the same way
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].raw != candidates[j].raw {
			return candidates[i].raw > candidates[j].raw
		}
		return candidates[i].intentID < candidates[j].intentID
	})

	best := candidates[0]
	confidence := c.normalize(best.raw)

	required := c.config.MinConfidence
	if best.threshold > required {
		required = best.threshold
	}
	if confidence < required {
		c.logger.Debug("intent below threshold", map[string]interface{}{
			"intent":     best.name,
			"confidence": confidence,
			"required":   required,
		})
		return nil, nil
	}

	return &Result{
		Intent:          best.name,
		IntentID:        best.intentID,
		Category:        best.category,
		Confidence:      confidence,
		MatchedKeywords: best.keywords,
	}, nil
}

func (c *Classifier) normalize(raw float64) float64 {
	divisor := c.config.ScoreDivisor
	if divisor <= 0 {
		divisor = 5.0
	}
	confidence := raw / divisor
	if confidence > 1.0 {
		return 1.0
	}
	if confidence < 0 {
		return 0
	}
	return confidence
}
