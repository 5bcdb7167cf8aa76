package translate

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// TranslateAll splits items into batches and runs them through up to
// concurrency workers. Results come back sorted by index. The first failing
// batch cancels the rest.
func TranslateAll(
	ctx context.Context,
	t Translator,
	items []TranslationItem,
	batchSize, concurrency int,
) ([]TranslationResult, error) {
	if len(items) == 0 {
		return []TranslationResult{}, nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var batches [][]TranslationItem
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		batches = append(batches, items[i:end])
	}

	if len(batches) == 1 {
		return t.TranslateBatch(ctx, batches[0])
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type batchResult struct {
		Index   int
		Results []TranslationResult
		Error   error
	}

	workChan := make(chan int)
	resultChan := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < concurrency && i < len(batches); i++ {
		wg.Go(func() {
			for batchIdx := range workChan {
				if ctx.Err() != nil {
					return
				}
				results, err := t.TranslateBatch(ctx, batches[batchIdx])
				if err != nil {
					cancel()
				}
				resultChan <- batchResult{
					Index:   batchIdx,
					Results: results,
					Error:   err,
				}
			}
		})
	}

	go func() {
		defer close(workChan)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var (
		all      []TranslationResult
		firstErr error
	)
	for result := range resultChan {
		if result.Error != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("batch %d failed: %w", result.Index, result.Error)
			}
			continue
		}
		all = append(all, result.Results...)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil && len(all) < len(items) {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Index < all[j].Index
	})

	return all, nil
}

// Service adapts a Translator to whole-document text translation
type Service struct {
	translator  Translator
	batchSize   int
	concurrency int
}

func NewService(t Translator, batchSize, concurrency int) *Service {
	return &Service{
		translator:  t,
		batchSize:   batchSize,
		concurrency: concurrency,
	}
}

// TranslateTexts returns texts translated in place. Blank texts are passed
// through without a request.
func (s *Service) TranslateTexts(ctx context.Context, texts []string) ([]string, error) {
	out := make([]string, len(texts))
	copy(out, texts)

	var items []TranslationItem
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		items = append(items, TranslationItem{Index: i, Text: text})
	}

	results, err := TranslateAll(ctx, s.translator, items, s.batchSize, s.concurrency)
	if err != nil {
		return nil, err
	}

	done := make(map[int]bool, len(results))
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(texts) {
			return nil, fmt.Errorf("translation returned unknown index %d", r.Index)
		}
		out[r.Index] = r.Text
		done[r.Index] = true
	}
	for _, item := range items {
		if !done[item.Index] {
			return nil, fmt.Errorf("translation missing for line %d", item.Index+1)
		}
	}

	return out, nil
}
