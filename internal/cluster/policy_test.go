package cluster

import "testing"

func TestRange(t *testing.T) {
	tests := []struct {
		subject  string
		min, max int
	}{
		{"Mathematics", 1, 8},
		{"English", 1, 7},
		{"Science", 1, 6}, // unknown subject falls back to the default ceiling
	}
	for _, tt := range tests {
		min, max := Range(tt.subject)
		if min != tt.min || max != tt.max {
			t.Errorf("Range(%q) = (%d, %d), want (%d, %d)", tt.subject, min, max, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp("Mathematics", 12); got != 8 {
		t.Errorf("Clamp above max = %d, want 8", got)
	}
	if got := Clamp("Mathematics", 0); got != 1 {
		t.Errorf("Clamp below min = %d, want 1", got)
	}
	if got := Clamp("English", 5); got != 5 {
		t.Errorf("Clamp in range = %d, want 5", got)
	}
}

func TestStartCluster(t *testing.T) {
	if got := StartCluster("Mathematics", nil); got != 4 {
		t.Errorf("normal start = %d, want midpoint 4", got)
	}
	if got := StartCluster("English", nil); got != 3 {
		t.Errorf("normal start = %d, want midpoint 3", got)
	}
	if got := StartCluster("Mathematics", []int{7, 2}); got != 7 {
		t.Errorf("weak start = %d, want first candidate 7", got)
	}
	if got := StartCluster("Mathematics", []int{}); got != 4 {
		t.Errorf("weak start without candidates = %d, want midpoint 4", got)
	}
}

func TestTopicLabel(t *testing.T) {
	if got := TopicLabel(5, "Mathematics"); got != "Simple Calculations" {
		t.Errorf("TopicLabel(5, Mathematics) = %q", got)
	}
	if got := TopicLabel(8, "English"); got != "Topic 8" {
		t.Errorf("unmapped pair = %q, want placeholder", got)
	}
	if got := TopicLabel(42, "Mathematics"); got != "Topic 42" {
		t.Errorf("unknown cluster = %q, want placeholder", got)
	}
}
