package langid

import "testing"

func TestDetect_English(t *testing.T) {
	d := New("en", "es")
	got, ok := d.Detect("the meeting covered the quarterly budget and the hiring plan for next year")
	if !ok {
		t.Fatal("expected a detection")
	}
	if got != "en" {
		t.Errorf("expected en, got %q", got)
	}
}

func TestDetect_Spanish(t *testing.T) {
	d := New("en", "es")
	got, ok := d.Detect("la reunión trató sobre el presupuesto trimestral y el plan de contratación para el próximo año")
	if !ok {
		t.Fatal("expected a detection")
	}
	if got != "es" {
		t.Errorf("expected es, got %q", got)
	}
}

func TestDetect_EmptyText(t *testing.T) {
	d := New()
	if _, ok := d.Detect("   "); ok {
		t.Error("expected no detection for blank text")
	}
}

func TestNew_UnknownCodesFallBack(t *testing.T) {
	d := New("xx", "zz")
	got, ok := d.Detect("hello there, this is clearly written in english")
	if !ok {
		t.Fatal("expected a detection with fallback languages")
	}
	if got != "en" {
		t.Errorf("expected en, got %q", got)
	}
}
