package output

import "testing"

func TestResolveTargetsAppendsExtension(t *testing.T) {
	targets := ResolveTargets([]string{"csv"}, []string{"report"})
	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	if targets[0].Filename != "report.csv" {
		t.Errorf("Filename = %q, want %q", targets[0].Filename, "report.csv")
	}
}

func TestResolveTargetsKeepsExistingExtension(t *testing.T) {
	targets := ResolveTargets([]string{"json"}, []string{"report.json"})
	if targets[0].Filename != "report.json" {
		t.Errorf("Filename = %q, want unchanged %q", targets[0].Filename, "report.json")
	}
}

func TestResolveTargetsReusesLastFilename(t *testing.T) {
	targets := ResolveTargets([]string{"txt", "csv", "json"}, []string{"a"})
	want := []string{"a.txt", "a.csv", "a.json"}
	for i, w := range want {
		if targets[i].Filename != w {
			t.Errorf("targets[%d].Filename = %q, want %q", i, targets[i].Filename, w)
		}
	}
}

func TestResolveTargetsNoFilenames(t *testing.T) {
	targets := ResolveTargets([]string{"txt"}, nil)
	if targets[0].Filename != "" {
		t.Errorf("Filename = %q, want empty when no -o given", targets[0].Filename)
	}
}
