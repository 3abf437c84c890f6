package books

import "testing"

func TestCapitalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"gen 1,1", "Gen 1,1"},
		{"GEN 1,1", "Gen 1,1"},
		{"  3john", "  3John"},
		{"1cOr", "1Cor"},
		{"1 cor 13", "1 Cor 13"},
		{"-.,#x", "-.,#X"},
		{"éxodo 3", "Éxodo 3"},
		{"12 ,-", "12 ,-"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Capitalize(tt.input); got != tt.want {
				t.Errorf("Capitalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandAbbreviation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "gen 1,1", "Genesis 1,1"},
		{"case insensitive", "GEN 1,1", "Genesis 1,1"},
		{"digit follows", "gen1,1", "Genesis1,1"},
		{"numbered book", "1 cor 13,4-7", "1 Corinthians 13,4-7"},
		{"tail casing kept", "Rev 22,1-5 AB", "Revelation 22,1-5 AB"},
		{"letters follow", "genxyz 1,1", "genxyz 1,1"},
		{"longer key after shorter prefix", "philem 1,3", "Philemon 1,3"},
		{"no abbreviation", "Genesis 1,1", "Genesis 1,1"},
		{"abbreviation alone", "gen", "gen"},
		{"unknown", "Foo 1,1", "Foo 1,1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandAbbreviation(tt.input); got != tt.want {
				t.Errorf("ExpandAbbreviation(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAbbreviationTable(t *testing.T) {
	if got := len(abbreviations); got != 66 {
		t.Errorf("len(abbreviations) = %d, want 66", got)
	}

	seen := make(map[string]bool)
	for _, b := range abbreviations {
		if seen[b.abbrev] {
			t.Errorf("duplicate abbreviation %q", b.abbrev)
		}
		seen[b.abbrev] = true

		input := b.abbrev + " 1"
		if got, want := ExpandAbbreviation(input), b.name+" 1"; got != want {
			t.Errorf("ExpandAbbreviation(%q) = %q, want %q", input, got, want)
		}
	}
}
