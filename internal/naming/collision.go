package naming

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// CollisionResolver hands out destination paths so that no two sources end
// up at the same place. A taken path gets a " (N)" suffix before its
// extension, starting at 2. It is meant for sequential use within one plan.
type CollisionResolver struct {
	owners   map[string]string // destination -> source that owns it
	blocked  map[string]string // occupied path -> source sitting there
	counters map[string]int    // requested destination -> next suffix to try
}

func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		blocked:  make(map[string]string),
		counters: make(map[string]int),
	}
}

// Block marks path as occupied by source. Later reservations of path by any
// other source fail. Claims made before the block are kept.
func (cr *CollisionResolver) Block(source, path string) {
	cr.blocked[path] = source
}

// Reserve claims dest for source when nobody else owns or occupies it.
// It reports whether the claim succeeded.
func (cr *CollisionResolver) Reserve(source, dest string) bool {
	if owner, exists := cr.owners[dest]; exists {
		return owner == source
	}
	if occupant, exists := cr.blocked[dest]; exists && occupant != source {
		return false
	}
	cr.owners[dest] = source
	return true
}

// Resolve returns the final destination for source. requested is returned
// when it is free. Otherwise a source already sitting at a numbered variant
// of requested keeps its place, and anything else gets the next free number.
func (cr *CollisionResolver) Resolve(source, requested string) string {
	if cr.Reserve(source, requested) {
		return requested
	}
	if IsNumberedVariant(requested, source) && cr.Reserve(source, source) {
		return source
	}
	return cr.Numbered(source, requested)
}

// Numbered claims the lowest free numbered variant of requested for source.
func (cr *CollisionResolver) Numbered(source, requested string) string {
	counter := cr.counters[requested]
	if counter < 2 {
		counter = 2
	}
	for {
		candidate := numbered(requested, counter)
		counter++
		if cr.Reserve(source, candidate) {
			cr.counters[requested] = counter
			return candidate
		}
	}
}

// IsNumberedVariant reports whether path is requested with a " (N)" suffix,
// N >= 2, inserted before the extension.
func IsNumberedVariant(requested, path string) bool {
	if filepath.Dir(requested) != filepath.Dir(path) {
		return false
	}
	ext := filepath.Ext(requested)
	stem := strings.TrimSuffix(filepath.Base(requested), ext)
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ")"+ext) || !strings.HasPrefix(base, stem+" (") {
		return false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(base, stem+" ("), ")"+ext)
	n, err := strconv.Atoi(digits)
	return err == nil && n >= 2 && strconv.Itoa(n) == digits
}

func numbered(requested string, n int) string {
	ext := filepath.Ext(requested)
	stem := strings.TrimSuffix(filepath.Base(requested), ext)
	return filepath.Join(filepath.Dir(requested), fmt.Sprintf("%s (%d)%s", stem, n, ext))
}
