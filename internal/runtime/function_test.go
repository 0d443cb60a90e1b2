package runtime

import "testing"

func TestSignatureMatchAppliesDefaults(t *testing.T) {
	sig := &Signature{
		Params: []Param{
			{Name: "a", Type: Integer},
			{Name: "b", Type: Integer, Default: NewValue(Integer, int64(10))},
		},
	}

	matched, err := sig.Match([]*Value{NewValue(Integer, int64(1))})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("expected 2 matched args, got %d", len(matched))
	}
	if matched[1].Payload.(int64) != 10 {
		t.Errorf("unsupplied trailing param = %v, want default 10", matched[1].Payload)
	}
}

func TestSignatureMatchTooFewWithoutDefault(t *testing.T) {
	sig := &Signature{Params: []Param{{Name: "a", Type: Integer}}}
	if _, err := sig.Match(nil); err == nil {
		t.Fatal("expected an error for a missing required argument")
	}
}

func TestSignatureMatchTooMany(t *testing.T) {
	sig := &Signature{Params: []Param{{Name: "a", Type: Integer}}}
	args := []*Value{NewValue(Integer, int64(1)), NewValue(Integer, int64(2))}
	if _, err := sig.Match(args); err == nil {
		t.Fatal("expected an error for too many arguments")
	}
}

func TestSignatureMatchAnyAcceptsAnyKind(t *testing.T) {
	sig := &Signature{Params: []Param{{Name: "a", Type: Any}}}
	matched, err := sig.Match([]*Value{NewValue(ListT, &List{})})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if matched[0].Type != ListT {
		t.Errorf("Any param should pass a list through unchanged, got %s", matched[0].Type.Name)
	}
}

func TestSignatureMatchNumberAcceptsIntegerOrFloatUnchanged(t *testing.T) {
	sig := &Signature{Params: []Param{{Name: "a", Type: Number}}}

	matched, err := sig.Match([]*Value{NewValue(Integer, int64(7))})
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if matched[0].Type != Integer {
		t.Errorf("Number param must preserve an Integer argument's concrete type, got %s", matched[0].Type.Name)
	}
}

func TestSignatureMatchRejectsWrongKind(t *testing.T) {
	sig := &Signature{Params: []Param{{Name: "a", Type: Integer}}}
	if _, err := sig.Match([]*Value{NewValue(ListT, &List{})}); err == nil {
		t.Fatal("expected a kind_of mismatch error for a list argument")
	}
}
