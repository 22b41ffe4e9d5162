// Package search resolves Korean↔French queries against KRDict, falling back
// through several strategies for French queries, and ranks the results.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/at-ishikawa/hanfr/internal/krdict"
	"github.com/at-ishikawa/hanfr/internal/ranking"
)

const minQueryLength = 2

// Attribution credits the dictionary source. It is the same for every result.
type Attribution struct {
	Source     string `json:"source"`
	License    string `json:"license"`
	LicenseURL string `json:"licenseUrl"`
}

// KRDictAttribution is the attribution required by the KRDict license.
var KRDictAttribution = Attribution{
	Source:     "한국어기초사전 (KRDict) Open API",
	License:    "CC BY-SA 2.0 KR",
	LicenseURL: "http://ccl.cckorea.org",
}

// Result is the answer to one search.
type Result struct {
	Query       string           `json:"query"`
	Direction   krdict.Direction `json:"direction"`
	Count       int              `json:"count"`
	Entries     []krdict.Entry   `json:"entries"`
	Attribution Attribution      `json:"attribution"`
}

// Config is the configuration of a Searcher.
type Config struct {
	// APIKey is the KRDict credential sent with every lookup.
	APIKey string
}

type Searcher struct {
	config     Config
	lookuper   Lookuper
	translator Translator
}

func NewSearcher(config Config, lookuper Lookuper, translator Translator) *Searcher {
	return &Searcher{
		config:     config,
		lookuper:   lookuper,
		translator: translator,
	}
}

// Search looks query up in the given direction.
//
// It fails with *ValidationError for an empty or too short query, with
// *ConfigurationError when no API key is configured and with *UpstreamError
// when KRDict could not answer. No match at all is a successful empty result.
func (s *Searcher) Search(ctx context.Context, query string, direction krdict.Direction) (*Result, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, &ValidationError{Reason: "missing query"}
	}
	if utf8.RuneCountInString(q) < minQueryLength {
		return nil, &ValidationError{Reason: "query too short"}
	}
	if s.config.APIKey == "" {
		return nil, &ConfigurationError{Reason: "missing KRDict API key"}
	}

	var entries []krdict.Entry
	var err error
	switch direction {
	case krdict.KoreanToFrench:
		entries, err = s.searchKorean(ctx, q)
	case krdict.FrenchToKorean:
		entries, err = s.searchFrench(ctx, q)
	default:
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid direction %q", direction)}
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Query:       q,
		Direction:   direction,
		Count:       len(entries),
		Entries:     entries,
		Attribution: KRDictAttribution,
	}, nil
}

func (s *Searcher) searchKorean(ctx context.Context, q string) ([]krdict.Entry, error) {
	entries, err := s.lookup(ctx, "headword", q, krdict.FieldWord, krdict.MethodInclude)
	if err != nil {
		return nil, newUpstreamError(err)
	}
	return ranking.Rank(entries, q, krdict.KoreanToFrench), nil
}

// searchFrench tries each strategy only while the previous ones found nothing:
// translation words, translation definitions, then a machine translation of
// the query looked up as a Korean headword, first included then exact.
func (s *Searcher) searchFrench(ctx context.Context, q string) ([]krdict.Entry, error) {
	raw, lastErr := s.lookup(ctx, "translation word", q, krdict.FieldTranslationWord, krdict.MethodInclude)

	if len(raw) == 0 {
		raw, lastErr = s.lookup(ctx, "translation definition", q, krdict.FieldTranslationDefinition, krdict.MethodInclude)
	}

	if len(raw) == 0 {
		if korean, ok := s.translator.Translate(ctx, q); ok {
			slog.Default().Info("machine translation fallback",
				slog.String("query", q),
				slog.String("translated", korean),
			)
			raw, lastErr = s.lookup(ctx, "translated headword", korean, krdict.FieldWord, krdict.MethodInclude)
			if len(raw) == 0 {
				raw, lastErr = s.lookup(ctx, "translated exact headword", korean, krdict.FieldWord, krdict.MethodExact)
			}
		}
	}

	if len(raw) == 0 && lastErr != nil {
		return nil, newUpstreamError(lastErr)
	}

	entries := Dedupe(FilterSenses(raw, q))
	return ranking.Rank(entries, q, krdict.FrenchToKorean), nil
}

func (s *Searcher) lookup(
	ctx context.Context,
	strategy string,
	text string,
	field krdict.SearchField,
	method krdict.Method,
) ([]krdict.Entry, error) {
	entries, err := s.lookuper.Lookup(ctx, krdict.Query{
		Key:    s.config.APIKey,
		Text:   text,
		Field:  field,
		Method: method,
	})
	if err != nil {
		slog.Default().Warn("KRDict lookup failed",
			slog.String("strategy", strategy),
			slog.String("query", text),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("lookuper.Lookup(%s) > %w", strategy, err)
	}
	slog.Default().Debug("KRDict lookup",
		slog.String("strategy", strategy),
		slog.String("part", string(field)),
		slog.String("method", string(method)),
		slog.String("query", text),
		slog.Int("count", len(entries)),
	)
	return entries, nil
}
