package shape

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCache_InsertRejectsDuplicateHash(t *testing.T) {
	cache := NewCache()
	d := &Decl{ID: 0, Contexts: []string{"root"}, Type: ObjectType(nil)}

	if err := cache.insert("deadbeef", d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := cache.insert("deadbeef", d)
	if err == nil {
		t.Fatal("expected duplicate registration error")
	}
	var dup *DuplicateRegistrationError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateRegistrationError, got %T", err)
	}
	if dup.Hash != "deadbeef" {
		t.Errorf("expected hash deadbeef, got %q", dup.Hash)
	}
}

func TestCache_ForcedUniqueNeverCollides(t *testing.T) {
	cache := NewCache()
	marker := StructuralType{Ref: MarkerUnknownArray}

	ref1, err := cache.register(marker, "a:root", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ref2, err := cache.register(marker, "b:root", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ref1 == ref2 {
		t.Errorf("forced-unique registrations must not share an alias: %q", ref1)
	}
	if cache.Len() != 2 {
		t.Errorf("expected 2 declarations, got %d", cache.Len())
	}
}

func TestCache_LookupRoundTrip(t *testing.T) {
	cache := NewCache()
	st := ObjectType(map[string]string{"name": TagString})

	alias, err := cache.register(st, "root", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hash, err := hashStructuralType(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := cache.Lookup(hash)
	if !ok {
		t.Fatal("expected declaration under structural hash")
	}
	if d.Alias() != alias {
		t.Errorf("expected alias %q, got %q", alias, d.Alias())
	}
}

func TestCache_DeclsReturnsCopy(t *testing.T) {
	cache := NewCache()
	if _, err := cache.register(ObjectType(nil), "root", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decls := cache.Decls()
	decls[0] = nil
	if cache.Decls()[0] == nil {
		t.Error("Decls must not expose internal storage")
	}
}

func TestHashStructuralType_Stability(t *testing.T) {
	a := ObjectType(map[string]string{"x": TagNumber, "y": "T0"})
	b := ObjectType(map[string]string{"y": "T0", "x": TagNumber})

	ha, err := hashStructuralType(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hb, err := hashStructuralType(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ha != hb {
		t.Errorf("map construction order leaked into the hash: %s vs %s", ha, hb)
	}

	harr, err := hashStructuralType(ArrayType("T0"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if harr == ha {
		t.Error("distinct structural types merged to one hash")
	}
}

func TestStructuralType_JSONRoundTrip(t *testing.T) {
	obj := ObjectType(map[string]string{"a": TagString, "b": "T1"})
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"a":"string","b":"T1"}` {
		t.Errorf("unexpected canonical form: %s", data)
	}

	var back StructuralType
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.IsObject() || back.Object["b"] != "T1" {
		t.Errorf("round trip lost object shape: %+v", back)
	}

	arr := ArrayType("T3")
	data, err = json.Marshal(arr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"T3[]"` {
		t.Errorf("unexpected canonical form: %s", data)
	}
	var backArr StructuralType
	if err := json.Unmarshal(data, &backArr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !backArr.IsArray() || backArr.ElemRef() != "T3" {
		t.Errorf("round trip lost array shape: %+v", backArr)
	}
}

func TestWarnings_OnlyUnresolvedDecls(t *testing.T) {
	cache := NewCache()
	var v any
	if err := json.Unmarshal([]byte(`{"a": 1, "b": []}`), &v); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Normalize(v, "root"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	warnings := cache.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].Context != "root.b" {
		t.Errorf("expected context root.b, got %q", warnings[0].Context)
	}
}
