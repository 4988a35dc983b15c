package learner

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// IDSet is a set of category or job-type identifiers.
type IDSet map[uuid.UUID]struct{}

func NewIDSet(ids ...uuid.UUID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Contains(id uuid.UUID) bool {
	if s == nil || id == uuid.Nil {
		return false
	}
	_, ok := s[id]
	return ok
}

func (s IDSet) Len() int {
	return len(s)
}

// Slice returns the members in a stable order.
func (s IDSet) Slice() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// MarshalJSON encodes the set as a JSON array of id strings.
func (s IDSet) MarshalJSON() ([]byte, error) {
	ids := s.Slice()
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, id.String())
	}
	return json.Marshal(strs)
}

// ParseIDSet decodes a stored JSON array of identifiers. Anything that is not a
// JSON array yields an empty set; array entries that are not valid ids are skipped.
func ParseIDSet(raw string) IDSet {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return IDSet{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return IDSet{}
	}

	out := make(IDSet, len(items))
	for _, it := range items {
		var s string
		if err := json.Unmarshal(it, &s); err != nil {
			continue
		}
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil || id == uuid.Nil {
			continue
		}
		out[id] = struct{}{}
	}
	return out
}
