// Package catalog is the fixed list of practice topics in menu order.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/mathplay/internal/topic"
	"github.com/abhisek/mathplay/internal/topic/average"
	"github.com/abhisek/mathplay/internal/topic/commonden"
	"github.com/abhisek/mathplay/internal/topic/numberline"
	"github.com/abhisek/mathplay/internal/topic/reducefrac"
)

// ErrUnknownTopic is returned by Get for an id not in the catalog.
var ErrUnknownTopic = errors.New("unknown topic")

var engines = []topic.Engine{
	commonden.New(),
	reducefrac.New(),
	average.New(),
	numberline.New(),
}

var byID = func() map[topic.ID]topic.Engine {
	m := make(map[topic.ID]topic.Engine, len(engines))
	for _, e := range engines {
		m[e.Info().ID] = e
	}
	return m
}()

// All returns every engine in menu order.
func All() []topic.Engine {
	return slices.Clone(engines)
}

// Get returns the engine for id.
func Get(id topic.ID) (topic.Engine, error) {
	e, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, id)
	}
	return e, nil
}

// IDs returns every topic id in menu order.
func IDs() []topic.ID {
	ids := make([]topic.ID, len(engines))
	for i, e := range engines {
		ids[i] = e.Info().ID
	}
	return ids
}

// Known reports whether id is in the catalog.
func Known(id topic.ID) bool {
	_, ok := byID[id]
	return ok
}

// Validate checks the catalog for duplicate ids and empty titles.
func Validate() error {
	return validateEngines(engines)
}

func validateEngines(list []topic.Engine) error {
	var errs []string
	seen := make(map[topic.ID]bool, len(list))
	for _, e := range list {
		info := e.Info()
		if seen[info.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", info.ID))
		}
		seen[info.ID] = true
		if info.Title == "" {
			errs = append(errs, fmt.Sprintf("topic %q has no title", info.ID))
		}
		l := e.Ladder()
		if l.Level() != l.Min() {
			errs = append(errs, fmt.Sprintf("topic %q ladder starts at %d, not %d", info.ID, l.Level(), l.Min()))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
