package ir

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func int32Member(name string) Member {
	return Member{
		Name:     name,
		Receiver: ReceiverPointer,
		Params:   []Param{{Index: 0, Name: "i", Type: "int32", Clone: CloneValue}},
		Results:  []string{"int32"},
		Source:   Source{File: "tester.go", Line: 10},
	}
}

func testerGroup(members ...Member) *Group {
	return &Group{
		Name:     "Tester",
		Exported: true,
		Members:  members,
		Source:   Source{File: "tester.go", Line: 3, Column: 6},
	}
}

func TestGroup_Validate(t *testing.T) {
	g := testerGroup(int32Member("F1"), int32Member("F2"), int32Member("F3"))
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !g.Bound() {
		t.Error("group of pointer methods should be bound")
	}
	if g.Baseline().Name != "F1" {
		t.Errorf("Baseline() = %s, want F1", g.Baseline().Name)
	}
}

func TestGroup_Validate_Empty(t *testing.T) {
	err := testerGroup().Validate()
	if !errors.Is(err, ErrEmptyGroup) {
		t.Fatalf("expected ErrEmptyGroup, got %v", err)
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigurationError, got %T", err)
	}
	if !strings.HasPrefix(err.Error(), "tester.go:3:6: type Tester") {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestGroup_Validate_SignatureMismatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Member)
		want   string
	}{
		{
			name:   "parameter type",
			mutate: func(m *Member) { m.Params[0].Type = "int64" },
			want:   "got:      F2 (*) func(int64) int32",
		},
		{
			name:   "result type",
			mutate: func(m *Member) { m.Results = []string{"string"} },
			want:   "got:      F2 (*) func(int32) string",
		},
		{
			name:   "void",
			mutate: func(m *Member) { m.Results = nil },
			want:   "got:      F2 (*) func(int32)",
		},
		{
			name:   "variadic",
			mutate: func(m *Member) { m.Params[0].Variadic = true },
			want:   "got:      F2 (*) func(...int32) int32",
		},
		{
			name: "extra parameter",
			mutate: func(m *Member) {
				m.Params = append(m.Params, Param{Index: 1, Name: "s", Type: "string"})
			},
			want: "got:      F2 (*) func(int32, string) int32",
		},
		{
			name:   "free function",
			mutate: func(m *Member) { m.Receiver = ReceiverNone },
			want:   "got:      F2 func(int32) int32",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f2 := int32Member("F2")
			tt.mutate(&f2)
			g := testerGroup(int32Member("F1"), f2, int32Member("F3"))

			err := g.Validate()
			var mismatch *SignatureMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("expected *SignatureMismatchError, got %v", err)
			}
			if mismatch.Baseline != "F1" || mismatch.Member != "F2" {
				t.Errorf("mismatch names = %s/%s, want F1/F2", mismatch.Baseline, mismatch.Member)
			}
			if !strings.Contains(err.Error(), "baseline: F1 (*) func(int32) int32") {
				t.Errorf("error should show the baseline shape:\n%s", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should contain %q:\n%s", tt.want, err)
			}
		})
	}
}

func TestGroup_Validate_IgnoresNamesAndDocs(t *testing.T) {
	f2 := int32Member("F2")
	f2.Params[0].Name = "other"
	f2.Documentation = Documentation{Summary: "F2 is different."}
	f2.Source = Source{File: "other.go", Line: 99}

	if err := testerGroup(int32Member("F1"), f2).Validate(); err != nil {
		t.Fatalf("names and docs are not part of the shape: %v", err)
	}
}

func TestGroup_Validate_ValueReceiver(t *testing.T) {
	f2 := int32Member("F2")
	f2.Receiver = ReceiverValue

	err := testerGroup(int32Member("F1"), f2).Validate()
	var recvErr *UnsupportedReceiverError
	if !errors.As(err, &recvErr) {
		t.Fatalf("expected *UnsupportedReceiverError, got %v", err)
	}
	if !strings.Contains(err.Error(), "func (*Tester) F2") {
		t.Errorf("error should suggest a pointer receiver: %s", err)
	}
}

func TestGroup_Validate_MultipleResults(t *testing.T) {
	f1 := int32Member("F1")
	f1.Results = []string{"int32", "error"}

	err := testerGroup(f1).Validate()
	if err == nil || !strings.Contains(err.Error(), "returns 2 values (int32, error)") {
		t.Fatalf("expected multiple results error, got %v", err)
	}
}

func TestGroup_Validate_DuplicateMember(t *testing.T) {
	err := testerGroup(int32Member("F1"), int32Member("F1")).Validate()
	if err == nil || !strings.Contains(err.Error(), "declared more than once") {
		t.Fatalf("expected duplicate member error, got %v", err)
	}
}

func TestGroup_Validate_GenericNames(t *testing.T) {
	generic := func(name, tp string) Member {
		return Member{
			Name:       name,
			TypeParams: []TypeParam{{Name: tp, Constraint: "any"}},
			Params:     []Param{{Name: "x", Type: tp}},
			Results:    []string{tp},
		}
	}

	if err := testerGroup(generic("f1", "T"), generic("f2", "T")).Validate(); err != nil {
		t.Fatalf("same type parameter names should validate: %v", err)
	}

	err := testerGroup(generic("f1", "T"), generic("f2", "U")).Validate()
	var mismatch *SignatureMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("differently named type parameters should not validate, got %v", err)
	}
	if !strings.Contains(err.Error(), "func[U any](U) U") {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestGroup_Validate_Clone(t *testing.T) {
	slice := func(name string) Member {
		return Member{
			Name: name,
			Params: []Param{
				{Index: 0, Name: "buf", Type: "[]byte", Clone: CloneSlice},
				{Index: 1, Name: "n", Type: "int", Clone: CloneValue},
				{Index: 2, Name: "ch", Type: "chan int", Clone: CloneUnsupported},
			},
		}
	}

	tests := []struct {
		name         string
		clone        []int
		wantErr      string
		wantWarnings int
	}{
		{name: "slice", clone: []int{0}},
		{name: "value", clone: []int{1}, wantWarnings: 1},
		{name: "out of range", clone: []int{3}, wantErr: "clone position 3 is out of range: Tester.f1 has 3 parameters"},
		{name: "negative", clone: []int{-1}, wantErr: "clone position -1 is out of range"},
		{name: "unsupported", clone: []int{2}, wantErr: "cannot duplicate values of type chan int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testerGroup(slice("f1"), slice("f2"))
			g.Options.Clone = tt.clone

			err := g.Validate()
			if tt.wantErr != "" {
				var cfgErr *ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected *ConfigurationError, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q should contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate failed: %v", err)
			}
			if len(g.Warnings) != tt.wantWarnings {
				t.Errorf("got %d warnings, want %d: %v", len(g.Warnings), tt.wantWarnings, g.Warnings)
			}
			for _, w := range g.Warnings {
				if w.Code != WarnCloneByValue || w.Group != "Tester" {
					t.Errorf("unexpected warning %+v", w)
				}
			}
		})
	}
}

func TestGroup_Validate_Repeated(t *testing.T) {
	value := func(name string) Member {
		return Member{Name: name, Params: []Param{{Index: 0, Name: "n", Type: "int", Clone: CloneValue}}}
	}
	g := testerGroup(value("f1"), value("f2"))
	g.Options.Clone = []int{0}
	g.AddWarning(Warning{Code: "OTHER", Message: "kept"})

	for range 3 {
		if err := g.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
	}
	var codes []string
	for _, w := range g.Warnings {
		codes = append(codes, w.Code)
	}
	if !slices.Equal(codes, []string{"OTHER", WarnCloneByValue}) {
		t.Errorf("warnings = %v, want [OTHER %s]", codes, WarnCloneByValue)
	}
}

func TestOptions_Clones(t *testing.T) {
	o := Options{Clone: []int{0, 2}}
	for i, want := range []bool{true, false, true, false} {
		if got := o.Clones(i); got != want {
			t.Errorf("Clones(%d) = %v, want %v", i, got, want)
		}
	}
}
