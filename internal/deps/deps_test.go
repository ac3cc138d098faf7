package deps

import "testing"

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "Nope", Command: "definitely-not-a-binary-on-path"},
		{Name: "Empty", Command: "  "},
	})
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if statuses[1].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", statuses[1].Detail)
	}
}

func TestMissingRequiredSkipsOptional(t *testing.T) {
	missing := MissingRequired([]Status{
		{Name: "A", Available: false, Optional: true},
		{Name: "B", Available: false},
		{Name: "C", Available: true},
	})
	if len(missing) != 1 || missing[0] != "B" {
		t.Fatalf("unexpected missing set: %v", missing)
	}
}

func TestRequiredNamesFFmpegTools(t *testing.T) {
	reqs := Required()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "ffmpeg" || reqs[1].Command != "ffprobe" {
		t.Fatalf("unexpected commands: %+v", reqs)
	}
}
