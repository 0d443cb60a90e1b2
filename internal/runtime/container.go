package runtime

// List backs the LIST type: an ordered sequence of Values.
type List struct {
	Items []*Value
}

func (l *List) Copy() *List {
	items := make([]*Value, len(l.Items))
	copy(items, l.Items)
	return &List{Items: items}
}

func (l *List) Equal(other *List) bool {
	if len(l.Items) != len(other.Items) {
		return false
	}
	for i, v := range l.Items {
		if !v.Equal(other.Items[i]) {
			return false
		}
	}
	return true
}

// Set backs the SET type. Tea values are not comparable as Go map keys
// (lists/maps/sets nest arbitrarily), so membership is a linear scan by
// Value.Equal rather than a real hash set — matching a hash-set of
// Values in behavior, not in asymptotics.
type Set struct {
	Items []*Value
}

func NewSetFromList(l *List) *Set {
	s := &Set{}
	for _, v := range l.Items {
		s.Add(v)
	}
	return s
}

func (s *Set) Add(v *Value) {
	if !s.Contains(v) {
		s.Items = append(s.Items, v)
	}
}

func (s *Set) Contains(v *Value) bool {
	for _, item := range s.Items {
		if item.Equal(v) {
			return true
		}
	}
	return false
}

func (s *Set) Copy() *Set {
	items := make([]*Value, len(s.Items))
	copy(items, s.Items)
	return &Set{Items: items}
}

func (s *Set) Equal(other *Set) bool {
	if len(s.Items) != len(other.Items) {
		return false
	}
	for _, v := range s.Items {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// mapEntry is one Value->Value binding inside a Map.
type mapEntry struct {
	Key   *Value
	Value *Value
}

// Map backs the MAP type: a Value->Value mapping, kept as an
// insertion-ordered slice for the same reason Set is (see Set's doc).
type Map struct {
	entries []mapEntry
}

func NewMap() *Map {
	return &Map{}
}

func (m *Map) indexOf(key *Value) int {
	for i, e := range m.entries {
		if e.Key.Equal(key) {
			return i
		}
	}
	return -1
}

func (m *Map) Get(key *Value) (*Value, bool) {
	if i := m.indexOf(key); i >= 0 {
		return m.entries[i].Value, true
	}
	return nil, false
}

func (m *Map) Set(key, value *Value) {
	if i := m.indexOf(key); i >= 0 {
		m.entries[i].Value = value
		return
	}
	m.entries = append(m.entries, mapEntry{Key: key, Value: value})
}

func (m *Map) Keys() []*Value {
	keys := make([]*Value, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

func (m *Map) Values() []*Value {
	values := make([]*Value, len(m.entries))
	for i, e := range m.entries {
		values[i] = e.Value
	}
	return values
}

func (m *Map) Len() int { return len(m.entries) }

func (m *Map) Copy() *Map {
	out := &Map{entries: make([]mapEntry, len(m.entries))}
	copy(out.entries, m.entries)
	return out
}

func (m *Map) Equal(other *Map) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}
	for _, e := range m.entries {
		v, ok := other.Get(e.Key)
		if !ok || !v.Equal(e.Value) {
			return false
		}
	}
	return true
}
