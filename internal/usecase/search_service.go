package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/macrotrack/backend/internal/domain"
	"go.uber.org/zap"
)

// SearchMode selects which sources a search dispatches to
type SearchMode string

const (
	SearchAll     SearchMode = "all"
	SearchUSDA    SearchMode = "usda"
	SearchCurated SearchMode = "curated"
	SearchCustom  SearchMode = "custom"
)

// ParseSearchMode reads a mode from a query parameter. Empty means all;
// "indian" is accepted for curated
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return SearchAll, nil
	case "usda":
		return SearchUSDA, nil
	case "curated", "indian":
		return SearchCurated, nil
	case "custom":
		return SearchCustom, nil
	}
	return "", domain.Invalidf("mode must be one of [all usda curated custom]")
}

// sourcePriority is the merge order of a combined search
var sourcePriority = []domain.SourceTag{domain.SourceCustom, domain.SourceCurated, domain.SourceUSDA}

// SearchRequest is a unified food search
type SearchRequest struct {
	Query  string
	Mode   SearchMode
	UserID uint
}

// SearchOutcome carries the merged results. A failed source contributes no
// results and is listed in FailedSources; Error is set for single-source failures
type SearchOutcome struct {
	Results       []domain.FoodSearchResult `json:"results"`
	FailedSources []domain.SourceTag        `json:"failedSources,omitempty"`
	Error         string                    `json:"error,omitempty"`
}

// SearchConfig tunes the unifier
type SearchConfig struct {
	MinQueryLength int
	SourceTimeout  time.Duration
}

// SearchService fans a query out to the enabled food sources and merges the results
type SearchService struct {
	sources map[domain.SourceTag]FoodSource
	config  SearchConfig
	logger  *zap.Logger
}

// NewSearchService registers the enabled sources. A source left out is disabled
func NewSearchService(config SearchConfig, logger *zap.Logger, sources ...FoodSource) *SearchService {
	if config.MinQueryLength <= 0 {
		config.MinQueryLength = 2
	}
	if config.SourceTimeout <= 0 {
		config.SourceTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	registered := make(map[domain.SourceTag]FoodSource, len(sources))
	for _, src := range sources {
		if src != nil {
			registered[src.Tag()] = src
		}
	}

	return &SearchService{
		sources: registered,
		config:  config,
		logger:  logger,
	}
}

type sourceResult struct {
	tag     domain.SourceTag
	results []domain.FoodSearchResult
	err     error
}

// Search runs a unified search. Only an unknown mode is returned as an error;
// source failures are reported in the outcome
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*SearchOutcome, error) {
	mode, err := ParseSearchMode(string(req.Mode))
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(req.Query)
	if utf8.RuneCountInString(query) < s.config.MinQueryLength {
		return &SearchOutcome{Results: []domain.FoodSearchResult{}}, nil
	}

	if mode == SearchAll {
		return s.searchAll(ctx, query, req.UserID), nil
	}
	return s.searchOne(ctx, domain.SourceTag(mode), query, req.UserID), nil
}

func (s *SearchService) searchAll(ctx context.Context, query string, userID uint) *SearchOutcome {
	var targets []FoodSource
	for _, tag := range sourcePriority {
		src, ok := s.sources[tag]
		if !ok {
			continue
		}
		if tag == domain.SourceCustom && userID == 0 {
			continue
		}
		targets = append(targets, src)
	}

	collected := make([]sourceResult, len(targets))
	var wg sync.WaitGroup
	for i, src := range targets {
		wg.Add(1)
		go func(i int, src FoodSource) {
			defer wg.Done()
			results, err := s.runSource(ctx, src, query, userID)
			collected[i] = sourceResult{tag: src.Tag(), results: results, err: err}
		}(i, src)
	}
	wg.Wait()

	outcome := &SearchOutcome{Results: []domain.FoodSearchResult{}}
	seen := make(map[string]struct{})
	// targets are already in priority order
	for _, sr := range collected {
		if sr.err != nil {
			s.logger.Warn("food source failed",
				zap.String("source", string(sr.tag)),
				zap.String("query", query),
				zap.Error(sr.err))
			outcome.FailedSources = append(outcome.FailedSources, sr.tag)
			continue
		}
		for _, r := range sr.results {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			outcome.Results = append(outcome.Results, r)
		}
	}
	return outcome
}

func (s *SearchService) searchOne(ctx context.Context, tag domain.SourceTag, query string, userID uint) *SearchOutcome {
	outcome := &SearchOutcome{Results: []domain.FoodSearchResult{}}

	src, ok := s.sources[tag]
	if !ok {
		s.logger.Info("search on disabled source", zap.String("source", string(tag)))
		outcome.FailedSources = []domain.SourceTag{tag}
		outcome.Error = fmt.Sprintf("%s: %s", domain.ErrSourceDisabled, tag)
		return outcome
	}

	results, err := s.runSource(ctx, src, query, userID)
	if err != nil {
		s.logger.Warn("food source failed",
			zap.String("source", string(tag)),
			zap.String("query", query),
			zap.Error(err))
		outcome.FailedSources = []domain.SourceTag{tag}
		outcome.Error = sourceErrorMessage(tag, err)
		return outcome
	}
	if results != nil {
		outcome.Results = results
	}
	return outcome
}

// runSource calls one source under its own timeout. A panic becomes an error,
// and a source that ignores its context is abandoned once the timeout fires
func (s *SearchService) runSource(ctx context.Context, src FoodSource, query string, userID uint) ([]domain.FoodSearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.SourceTimeout)
	defer cancel()

	done := make(chan sourceResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("food source panicked",
					zap.String("source", string(src.Tag())),
					zap.Any("panic", r),
					zap.Stack("stack"))
				done <- sourceResult{err: fmt.Errorf("source %s panicked: %v", src.Tag(), r)}
			}
		}()
		results, err := src.Search(ctx, query, userID)
		done <- sourceResult{results: results, err: err}
	}()

	select {
	case res := <-done:
		return res.results, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("source %s: %w", src.Tag(), ctx.Err())
	}
}

// sourceErrorMessage is the message shown next to an empty single-source result
func sourceErrorMessage(tag domain.SourceTag, err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return strings.TrimPrefix(err.Error(), domain.ErrInvalidRequest.Error()+": ")
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("%s search timed out", tag)
	default:
		return fmt.Sprintf("failed to search %s foods", tag)
	}
}
