package materials

import (
	"errors"
	"testing"
)

func TestResolveKnownGrades(t *testing.T) {
	tests := []struct {
		kind, grade string
		check       func(Spec) bool
	}{
		{"steel", "S355", func(s Spec) bool { return s.YieldMPa == 355 && s.Kind == KindSteel }},
		{"steel", "s275", func(s Spec) bool { return s.YieldMPa == 275 }},
		{"concrete", "C32/40", func(s Spec) bool { return s.CylinderMPa == 32 && s.Kind == KindConcrete }},
		{"timber", "C24", func(s Spec) bool { return s.BendingMPa == 7.5 && s.ShearMPa == 0.71 }},
		{"Timber", "d40", func(s Spec) bool { return s.BendingMPa == 12.5 }},
	}
	for _, tt := range tests {
		spec, err := Resolve(tt.kind, tt.grade)
		if err != nil {
			t.Fatalf("Resolve(%q, %q): %v", tt.kind, tt.grade, err)
		}
		if !tt.check(spec) {
			t.Errorf("Resolve(%q, %q) = %+v", tt.kind, tt.grade, spec)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	tests := []struct{ kind, grade string }{
		{"granite", "G1"},
		{"steel", "S999"},
		{"concrete", "C24"},
		{"", ""},
	}
	for _, tt := range tests {
		_, err := Resolve(tt.kind, tt.grade)
		var unknown *UnknownMaterialError
		if !errors.As(err, &unknown) {
			t.Errorf("Resolve(%q, %q) err = %v, want UnknownMaterialError", tt.kind, tt.grade, err)
		}
	}
}

func TestGrades(t *testing.T) {
	if got := Grades("steel"); len(got) != 3 {
		t.Errorf("Grades(steel) = %v, want 3 entries", got)
	}
	if got := Grades("plastic"); got != nil {
		t.Errorf("Grades(plastic) = %v, want nil", got)
	}
}
