package util

import "testing"

func TestPtr(t *testing.T) {
	p := Ptr("hello")
	if p == nil || *p != "hello" {
		t.Errorf("Ptr() = %v", p)
	}
}

func TestDeref(t *testing.T) {
	if got := Deref(Ptr(42)); got != 42 {
		t.Errorf("Deref() = %d, want 42", got)
	}
	var nilInt *int
	if got := Deref(nilInt); got != 0 {
		t.Errorf("Deref(nil) = %d, want 0", got)
	}
}
