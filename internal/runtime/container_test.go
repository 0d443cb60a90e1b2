package runtime

import "testing"

func TestSetAddDeduplicates(t *testing.T) {
	s := &Set{}
	s.Add(NewValue(Integer, int64(1)))
	s.Add(NewValue(Integer, int64(1)))
	s.Add(NewValue(Integer, int64(2)))

	if len(s.Items) != 2 {
		t.Errorf("Set should dedupe by value equality, got %d items", len(s.Items))
	}
}

func TestMapSetOverwritesExistingKey(t *testing.T) {
	m := NewMap()
	key := NewValue(String, "a")
	m.Set(key, NewValue(Integer, int64(1)))
	m.Set(NewValue(String, "a"), NewValue(Integer, int64(2)))

	if m.Len() != 1 {
		t.Fatalf("Map should have 1 entry after overwriting the same key, got %d", m.Len())
	}
	v, ok := m.Get(key)
	if !ok || v.Payload.(int64) != 2 {
		t.Errorf("Get(a) = %v, want 2", v)
	}
}

func TestMapKeysValuesPreserveInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set(NewValue(String, "first"), NewValue(Integer, int64(1)))
	m.Set(NewValue(String, "second"), NewValue(Integer, int64(2)))

	keys := m.Keys()
	if keys[0].Payload.(string) != "first" || keys[1].Payload.(string) != "second" {
		t.Errorf("Keys() = %v, want insertion order", keys)
	}
}

func TestListEqual(t *testing.T) {
	a := &List{Items: []*Value{NewValue(Integer, int64(1)), NewValue(Integer, int64(2))}}
	b := &List{Items: []*Value{NewValue(Integer, int64(1)), NewValue(Integer, int64(2))}}
	c := &List{Items: []*Value{NewValue(Integer, int64(2)), NewValue(Integer, int64(1))}}

	if !a.Equal(b) {
		t.Error("lists with equal items in the same order should be equal")
	}
	if a.Equal(c) {
		t.Error("lists are order-sensitive")
	}
}
