package ir

import "testing"

func TestObjectOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("b", FromInt(1))
	obj.Set("a", FromInt(2))
	obj.Set("c", FromInt(3))
	obj.Set("a", FromInt(4)) // replace in place

	wantKeys := []string{"b", "a", "c"}
	if len(obj.Keys) != len(wantKeys) {
		t.Fatalf("got %d keys, want %d", len(obj.Keys), len(wantKeys))
	}
	for i, k := range wantKeys {
		if obj.Keys[i] != k {
			t.Errorf("key %d: got %q, want %q", i, obj.Keys[i], k)
		}
	}
	if got := obj.Get("a"); got.Number != "4" {
		t.Errorf("a: got %s, want 4", got.Number)
	}
}

func TestDelete(t *testing.T) {
	obj := NewObject()
	obj.Set("a", FromInt(1))
	obj.Set("b", FromInt(2))
	obj.Set("c", FromInt(3))

	if !obj.Delete("b") {
		t.Fatal("delete b reported absent")
	}
	if obj.Delete("b") {
		t.Fatal("second delete b reported present")
	}
	if obj.Has("b") {
		t.Error("b still present after delete")
	}
	if obj.Keys[0] != "a" || obj.Keys[1] != "c" {
		t.Errorf("remaining keys %v, want [a c]", obj.Keys)
	}
}

func TestCloneIsDeep(t *testing.T) {
	obj := NewObject()
	inner := NewObject()
	inner.Set("x", FromString("y"))
	obj.Set("inner", inner)

	cp := obj.Clone()
	cp.Get("inner").Set("x", FromString("z"))

	if got := obj.Get("inner").Get("x").String; got != "y" {
		t.Errorf("original mutated through clone: %q", got)
	}
}

func TestStringVal(t *testing.T) {
	if got := FromString("hi").StringVal(); got != "hi" {
		t.Errorf("got %q, want hi", got)
	}
	if got := FromInt(3).StringVal(); got != "" {
		t.Errorf("got %q for number node, want empty", got)
	}
	var nilNode *Node
	if got := nilNode.StringVal(); got != "" {
		t.Errorf("got %q for nil node, want empty", got)
	}
}
