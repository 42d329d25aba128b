package source

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"mediasim/internal/logging"
	"mediasim/internal/media"
)

// Sampler selects bounded, reproducible subsets of a source. The random
// source is injected and seeded once per run; identical seed, source
// contents, and target produce identical selections.
type Sampler struct {
	rng *rand.Rand
	log *slog.Logger
}

// NewSampler constructs a sampler around an explicitly seeded source.
func NewSampler(seed int64, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Sampler{
		rng: rand.New(rand.NewSource(seed)),
		log: logger.With(logging.String("component", "sampler")),
	}
}

// Flat enumerates every allow-listed item under the source root without
// reduction.
func (s *Sampler) Flat(src *Local) ([]media.Item, error) {
	items, err := src.Items()
	if err != nil {
		return nil, err
	}
	s.log.Info("flat enumeration",
		logging.String("dataset", src.Dataset()),
		logging.Int("items", len(items)))
	return items, nil
}

// Grouped partitions the source by top-level subdirectory and samples up to
// target items from each group without replacement. Groups are visited in
// sorted order so output ordering is deterministic.
func (s *Sampler) Grouped(src *Local, target int) ([]media.Item, error) {
	groups, err := src.Groups()
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no model subdirectories under %q", src.Root())
	}

	var selected []media.Item
	for _, group := range groups {
		items, err := src.GroupItems(group)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			s.log.Warn("no images in group",
				logging.String("dataset", src.Dataset()),
				logging.String("group", group))
			continue
		}
		if len(items) <= target {
			s.log.Info("taking whole group",
				logging.String("group", group),
				logging.Int("items", len(items)),
				logging.Int("target", target))
			selected = append(selected, items...)
			continue
		}
		s.log.Info("sampling group",
			logging.String("group", group),
			logging.Int("items", len(items)),
			logging.Int("target", target))
		for _, idx := range s.pick(len(items), target) {
			selected = append(selected, items[idx])
		}
	}
	return selected, nil
}

// HubResult carries a hub sampling outcome. FilterFallback is set when
// class filtering failed or matched nothing and the full population was
// sampled instead.
type HubResult struct {
	Items          []media.Item
	FilterFallback bool
}

// Hub samples up to target items from a hub source. When class is
// non-empty, the population is first restricted to items whose label set
// contains class; a filter error or an empty match falls back to the full
// population with a warning rather than returning nothing.
func (s *Sampler) Hub(ctx context.Context, hub Hub, class string, target int) (HubResult, error) {
	total := hub.Len()
	if total == 0 {
		return HubResult{}, fmt.Errorf("hub dataset %q is empty", hub.Dataset())
	}

	population := make([]int, 0, total)
	fallback := false
	if class != "" {
		population, fallback = s.filterByClass(hub, class, total)
	}
	if class == "" || fallback {
		population = population[:0]
		for i := 0; i < total; i++ {
			population = append(population, i)
		}
	}

	var items []media.Item
	for _, pos := range s.pick(len(population), target) {
		index := population[pos]
		item, err := hub.Item(ctx, index)
		if err != nil {
			if ctx.Err() != nil {
				return HubResult{}, ctx.Err()
			}
			s.log.Warn("skipping hub item",
				logging.String("dataset", hub.Dataset()),
				logging.Int("index", index),
				logging.Error(err))
			continue
		}
		items = append(items, item)
	}
	return HubResult{Items: items, FilterFallback: fallback}, nil
}

// filterByClass returns the indices whose labels contain class, or the
// fallback signal when filtering is unusable.
func (s *Sampler) filterByClass(hub Hub, class string, total int) ([]int, bool) {
	matched := make([]int, 0, total)
	for i := 0; i < total; i++ {
		labels, err := hub.Labels(i)
		if err != nil {
			s.log.Warn("class filter failed, sampling full population",
				logging.String("dataset", hub.Dataset()),
				logging.String("class", class),
				logging.Error(err))
			return nil, true
		}
		for _, label := range labels {
			if label == class {
				matched = append(matched, i)
				break
			}
		}
	}
	if len(matched) == 0 {
		s.log.Warn("class filter matched nothing, sampling full population",
			logging.String("dataset", hub.Dataset()),
			logging.String("class", class))
		return nil, true
	}
	s.log.Info("class filter applied",
		logging.String("dataset", hub.Dataset()),
		logging.String("class", class),
		logging.Int("matched", len(matched)))
	return matched, false
}

// pick draws min(n, target) distinct indices from [0, n). The draw consumes
// the sampler's seeded source, so repeated runs with the same seed and the
// same call sequence select identically. Output is sorted for stable
// downstream ordering.
func (s *Sampler) pick(n, target int) []int {
	if n <= target {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}
	chosen := s.rng.Perm(n)[:target]
	sort.Ints(chosen)
	return chosen
}
