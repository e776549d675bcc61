package storage

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/aboiyar/AirBnB-clone/internal/model"
)

// mapping is the in-memory record collection shared by every engine. It
// remembers insertion order so listings are stable while the process runs.
type mapping struct {
	mu      sync.RWMutex
	objects map[string]*model.Record
	order   []string
}

// put stores rec, appending its key to the order when it is new.
// Callers hold mu.
func (m *mapping) put(rec *model.Record) {
	if m.objects == nil {
		m.objects = make(map[string]*model.Record)
	}
	key := rec.Key()
	if _, ok := m.objects[key]; !ok {
		m.order = append(m.order, key)
	}
	m.objects[key] = rec
}

// remove drops key. Callers hold mu.
func (m *mapping) remove(key string) bool {
	if _, ok := m.objects[key]; !ok {
		return false
	}
	delete(m.objects, key)
	if i := slices.Index(m.order, key); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return true
}

// restore puts rec back at position index of the order, as it was before
// a remove. Callers hold mu.
func (m *mapping) restore(rec *model.Record, index int) {
	if m.objects == nil {
		m.objects = make(map[string]*model.Record)
	}
	key := rec.Key()
	if _, ok := m.objects[key]; !ok {
		index = min(max(index, 0), len(m.order))
		m.order = slices.Insert(m.order, index, key)
	}
	m.objects[key] = rec
}

// snapshot returns the stored records in order. Callers hold mu.
func (m *mapping) snapshot() []*model.Record {
	out := make([]*model.Record, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.objects[key])
	}
	return out
}

// replace swaps the whole content for records, ordered by creation time
// then key. Callers hold mu.
func (m *mapping) replace(records []*model.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := time.Time(records[i].CreatedAt), time.Time(records[j].CreatedAt)
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return records[i].Key() < records[j].Key()
	})

	m.objects = make(map[string]*model.Record, len(records))
	m.order = m.order[:0]
	for _, rec := range records {
		m.put(rec)
	}
}
