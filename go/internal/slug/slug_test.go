package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Valur", want: "valur"},
		{name: "spaces become dashes", in: "Team Rocket", want: "team-rocket"},
		{name: "collapses runs", in: "  Team --  Rocket  ", want: "team-rocket"},
		{name: "folds diacritics", in: "Víkingur Ólafsvík", want: "vikingur-olafsvik"},
		{name: "icelandic letters", in: "Þór Akureyri", want: "thor-akureyri"},
		{name: "eth and ash", in: "Æðri", want: "aedri"},
		{name: "ampersand", in: "Tom & Jerry", want: "tom-and-jerry"},
		{name: "digits kept", in: "FH 1929", want: "fh-1929"},
		{name: "no letters", in: "!!!", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.in); got != tt.want {
				t.Fatalf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMakeIsDeterministic(t *testing.T) {
	const name = "Knattspyrnufélag Reykjavíkur"
	first := Make(name)
	for i := 0; i < 5; i++ {
		if got := Make(name); got != first {
			t.Fatalf("Make(%q) changed between calls: %q vs %q", name, first, got)
		}
	}
}
