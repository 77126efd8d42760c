package util

import "testing"

func TestParseFloatLocaleDot(t *testing.T) {
	got, ok := ParseFloatLocale("1.0921")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got != 1.0921 {
		t.Fatalf("unexpected value %v", got)
	}
}

func TestParseFloatLocaleCommaDecimal(t *testing.T) {
	got, ok := ParseFloatLocale("1,89")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got != 1.89 {
		t.Fatalf("unexpected value %v", got)
	}
}

func TestParseFloatLocaleThousands(t *testing.T) {
	got, ok := ParseFloatLocale("17,890.5")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got != 17890.5 {
		t.Fatalf("unexpected value %v", got)
	}
}

func TestParseFloatDefaultInvalid(t *testing.T) {
	if got := ParseFloatDefault("abc", 0.01); got != 0.01 {
		t.Fatalf("expected default, got %v", got)
	}
	if got := ParseFloatDefault("", 0); got != 0 {
		t.Fatalf("expected default, got %v", got)
	}
}
