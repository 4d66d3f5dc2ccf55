package sexp

import (
	"testing"
)

// Helper to parse a single s-expression from a string
func parseSexp(t *testing.T, input string) Sexp {
	t.Helper()
	sexps, err := ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse s-expression %q: %v", input, err)
	}
	if len(sexps) == 0 {
		t.Fatalf("No s-expressions parsed from %q", input)
	}
	return sexps[0]
}

func TestParseString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "flat list",
			input: "(layer F.Cu)",
			want:  "(layer F.Cu)",
		},
		{
			name:  "nested lists",
			input: "(wire (pts (xy 100 50) (xy 150 50)))",
			want:  "(wire (pts (xy 100 50) (xy 150 50)))",
		},
		{
			name:  "quoted string with spaces",
			input: `(title "Example Board")`,
			want:  "(title Example Board)",
		},
		{
			name:  "comment skipped",
			input: "# header comment\n(version 20231120)",
			want:  "(version 20231120)",
		},
		{
			name:    "unbalanced paren",
			input:   "(wire (pts",
			wantErr: true,
		},
		{
			name:    "stray close paren",
			input:   "())",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sexps, err := ParseString(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseString() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("ParseString() unexpected error: %v", err)
				return
			}

			if len(sexps) != 1 {
				t.Fatalf("ParseString() parsed %d expressions, want 1", len(sexps))
			}

			if got := sexps[0].String(); got != tt.want {
				t.Errorf("ParseString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseEscapedString(t *testing.T) {
	s := parseSexp(t, `(comment "line1\nline2 \"quoted\"")`)

	got, err := GetString(s, 1)
	if err != nil {
		t.Fatalf("GetString() unexpected error: %v", err)
	}

	want := "line1\nline2 \"quoted\""
	if got != want {
		t.Errorf("GetString() = %q, want %q", got, want)
	}
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		index   int
		want    string
		wantErr bool
	}{
		{
			name:  "get first element",
			input: "(layer F.Cu)",
			index: 0,
			want:  "layer",
		},
		{
			name:  "get second element",
			input: "(layer F.Cu)",
			index: 1,
			want:  "F.Cu",
		},
		{
			name:  "get quoted element",
			input: `(label "VCC")`,
			index: 1,
			want:  "VCC",
		},
		{
			name:    "index out of bounds",
			input:   "(layer F.Cu)",
			index:   5,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parseSexp(t, tt.input)
			got, err := GetString(s, tt.index)

			if tt.wantErr {
				if err == nil {
					t.Errorf("GetString() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("GetString() unexpected error: %v", err)
				return
			}

			if got != tt.want {
				t.Errorf("GetString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		index   int
		want    float64
		wantErr bool
	}{
		{
			name:  "parse simple float",
			input: "(width 0.15)",
			index: 1,
			want:  0.15,
		},
		{
			name:  "parse integer as float",
			input: "(net 42)",
			index: 1,
			want:  42.0,
		},
		{
			name:  "parse negative coordinate",
			input: "(xy -25.4 -30.48)",
			index: 1,
			want:  -25.4,
		},
		{
			name:    "non-numeric string",
			input:   "(layer F.Cu)",
			index:   1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parseSexp(t, tt.input)
			got, err := GetFloat(s, tt.index)

			if tt.wantErr {
				if err == nil {
					t.Errorf("GetFloat() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("GetFloat() unexpected error: %v", err)
				return
			}

			if got != tt.want {
				t.Errorf("GetFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		index   int
		want    int
		wantErr bool
	}{
		{
			name:  "parse simple int",
			input: "(version 20231120)",
			index: 1,
			want:  20231120,
		},
		{
			name:    "non-integer float",
			input:   "(width 0.15)",
			index:   1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parseSexp(t, tt.input)
			got, err := GetInt(s, tt.index)

			if tt.wantErr {
				if err == nil {
					t.Errorf("GetInt() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("GetInt() unexpected error: %v", err)
				return
			}

			if got != tt.want {
				t.Errorf("GetInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindNode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		found bool
	}{
		{
			name:  "find at node",
			input: "(junction (at 150 50) (diameter 0))",
			key:   "at",
			found: true,
		},
		{
			name:  "find bare symbol",
			input: "(pin passive line hide)",
			key:   "hide",
			found: true,
		},
		{
			name:  "key not found",
			input: "(junction (at 150 50))",
			key:   "diameter",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parseSexp(t, tt.input)
			_, found := FindNode(s, tt.key)

			if found != tt.found {
				t.Errorf("FindNode() found = %v, want %v", found, tt.found)
			}
		})
	}
}

func TestFindAllNodes(t *testing.T) {
	s := parseSexp(t, "(pts (xy 100 50) (xy 150 50) (xy 150 100))")

	nodes := FindAllNodes(s, "xy")
	if len(nodes) != 3 {
		t.Fatalf("FindAllNodes() returned %d nodes, want 3", len(nodes))
	}

	x, err := GetFloat(nodes[2], 1)
	if err != nil {
		t.Fatalf("GetFloat() unexpected error: %v", err)
	}
	if x != 150 {
		t.Errorf("last xy X = %v, want 150", x)
	}
}

func TestHasSymbol(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		symbol string
		want   bool
	}{
		{
			name:   "symbol present",
			input:  "(pin passive line hide)",
			symbol: "hide",
			want:   true,
		},
		{
			name:   "symbol not present",
			input:  "(pin passive line)",
			symbol: "hide",
			want:   false,
		},
		{
			name:   "nested list not matched",
			input:  "(pin (hide yes))",
			symbol: "hide",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parseSexp(t, tt.input)
			if got := HasSymbol(s, tt.symbol); got != tt.want {
				t.Errorf("HasSymbol() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetNodeName(t *testing.T) {
	s := parseSexp(t, "(kicad_sch (version 20231120))")

	name, err := GetNodeName(s)
	if err != nil {
		t.Fatalf("GetNodeName() unexpected error: %v", err)
	}
	if name != "kicad_sch" {
		t.Errorf("GetNodeName() = %q, want %q", name, "kicad_sch")
	}
}

func TestGetUUID(t *testing.T) {
	s := parseSexp(t, `(uuid "862335ee-c981-4fe1-9eb9-84db19301dd4")`)

	uuid, err := GetUUID(s)
	if err != nil {
		t.Fatalf("GetUUID() unexpected error: %v", err)
	}
	if uuid != "862335ee-c981-4fe1-9eb9-84db19301dd4" {
		t.Errorf("GetUUID() = %q", uuid)
	}
}

func TestGetProperty(t *testing.T) {
	s := parseSexp(t, `(property "Reference" "R1" (at 100 45 0))`)

	prop, err := GetProperty(s)
	if err != nil {
		t.Fatalf("GetProperty() unexpected error: %v", err)
	}
	if prop.Key != "Reference" {
		t.Errorf("GetProperty().Key = %q, want %q", prop.Key, "Reference")
	}
	if prop.Value != "R1" {
		t.Errorf("GetProperty().Value = %q, want %q", prop.Value, "R1")
	}
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox()
	if !bb.IsEmpty() {
		t.Error("NewBoundingBox() should be empty")
	}

	bb.Expand(Position{X: 10, Y: 20})
	bb.Expand(Position{X: 30, Y: 5})

	if bb.Width() != 20 {
		t.Errorf("Width() = %v, want 20", bb.Width())
	}
	if bb.Height() != 15 {
		t.Errorf("Height() = %v, want 15", bb.Height())
	}

	if !bb.Contains(Position{X: 15, Y: 10}) {
		t.Error("Contains() should include interior point")
	}
	if bb.Contains(Position{X: 0, Y: 0}) {
		t.Error("Contains() should exclude exterior point")
	}

	other := Box(25, 0, 10, 10)
	if !bb.Intersects(other) {
		t.Error("Intersects() should overlap")
	}

	far := Box(100, 100, 5, 5)
	if bb.Intersects(far) {
		t.Error("Intersects() should not overlap distant box")
	}
}
