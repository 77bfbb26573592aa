package directive

import (
	"slices"
	"strings"
	"testing"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantName  string
		wantClone []int
		wantErr   string
	}{
		{name: "empty"},
		{name: "name", args: []string{"name=Batch"}, wantName: "Batch"},
		{name: "clone", args: []string{"clone=0,2"}, wantClone: []int{0, 2}},
		{name: "both", args: []string{"clone=1", "name=v2"}, wantName: "v2", wantClone: []int{1}},
		{name: "malformed", args: []string{"name"}, wantErr: `malformed option "name": want key=value`},
		{name: "missing key", args: []string{"=x"}, wantErr: "malformed option"},
		{name: "duplicate name", args: []string{"name=a", "name=b"}, wantErr: `option "name" given more than once`},
		{name: "duplicate clone", args: []string{"clone=0", "clone=1"}, wantErr: `option "clone" given more than once`},
		{name: "empty value", args: []string{"name="}, wantErr: `option "name" has no value`},
		{name: "empty list element", args: []string{"clone=0,,1"}, wantErr: "empty list element"},
		{name: "list name", args: []string{"name=a,b"}, wantErr: "takes a single value"},
		{name: "unknown key", args: []string{"prefix=x"}, wantErr: `unknown option "prefix"`},
		{name: "non-integer clone", args: []string{"clone=first"}, wantErr: `option "clone": cannot convert`},
		{name: "negative clone", args: []string{"clone=-1"}, wantErr: "clone[0]: must be at least 0"},
		{name: "name not alphanumeric", args: []string{"name=my_batch"}, wantErr: `name: "my_batch" must contain only ASCII letters and digits`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseOptions(tt.args)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %q", tt.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOptions failed: %v", err)
			}
			if opts.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", opts.Name, tt.wantName)
			}
			if !slices.Equal(opts.Clone, tt.wantClone) {
				t.Errorf("Clone = %v, want %v", opts.Clone, tt.wantClone)
			}
		})
	}
}

func TestOptions_String(t *testing.T) {
	args := []string{"name=Batch", "clone=0,2"}
	opts, err := ParseOptions(args)
	if err != nil {
		t.Fatalf("ParseOptions failed: %v", err)
	}
	if got, want := opts.String(), strings.Join(args, " "); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
