package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/macrotrack/backend/internal/domain"
	"go.uber.org/zap"
)

// NutritionServiceConfig holds configuration for the nutrition service
type NutritionServiceConfig struct {
	CacheTTL time.Duration
}

// NutritionService proxies USDA FoodData Central with a response cache.
// The cache is optional; a nil cache sends every call upstream
type NutritionService struct {
	cache      domain.CacheRepository
	usdaClient domain.USDAClient
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewNutritionService creates a new nutrition service with dependencies
func NewNutritionService(
	cache domain.CacheRepository,
	usdaClient domain.USDAClient,
	config NutritionServiceConfig,
	logger *zap.Logger,
) *NutritionService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NutritionService{
		cache:      cache,
		usdaClient: usdaClient,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// SearchFoods searches USDA for query.
// Flow: check cache -> search USDA -> cache -> return
func (s *NutritionService) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.Invalidf("query is required")
	}

	cacheKey := "usda:search:" + normalizeForCacheKey(query)

	var cached domain.USDASearchResponse
	if s.getFromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	resp, err := s.usdaClient.SearchFoods(ctx, query)
	if err != nil {
		return nil, upstreamError(err)
	}

	s.setInCache(ctx, cacheKey, resp)
	return resp, nil
}

// GetFood returns the details of one USDA food by FDC ID
func (s *NutritionService) GetFood(ctx context.Context, fdcID string) (*domain.USDAFood, error) {
	fdcID = strings.TrimSpace(fdcID)
	if n, err := strconv.Atoi(fdcID); err != nil || n <= 0 {
		return nil, domain.Invalidf("fdcId must be a positive integer")
	}

	cacheKey := "usda:food:" + fdcID

	var cached domain.USDAFood
	if s.getFromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	food, err := s.usdaClient.GetFoodDetails(ctx, fdcID)
	if err != nil {
		return nil, upstreamError(err)
	}

	s.setInCache(ctx, cacheKey, food)
	return food, nil
}

// upstreamError keeps known sentinels and marks anything else as an upstream failure
func upstreamError(err error) error {
	if errors.Is(err, domain.ErrUSDAAPIFailure) || errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
}

// normalizeForCacheKey lowercases s, strips punctuation from each word and
// collapses whitespace. Letters in every script are kept
func normalizeForCacheKey(s string) string {
	lower := strings.ToLower(s)

	words := make([]string, 0, 4)
	for _, field := range strings.Fields(lower) {
		word := strings.Map(keepWordRune, field)
		if word != "" {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		// Punctuation-only queries keep their raw form so they do not share a key
		return strings.Join(strings.Fields(lower), " ")
	}
	return strings.Join(words, " ")
}

// keepWordRune keeps letters, digits and combining marks in any script
func keepWordRune(r rune) rune {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
		return r
	}
	return -1
}

// getFromCache decodes a cached response into out. Any failure counts as a miss
func (s *NutritionService) getFromCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = s.cache.Delete(ctx, key)
		return false
	}
	return true
}

// setInCache stores a response; failures are logged, never returned
func (s *NutritionService) setInCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
