package models

import "testing"

func TestMoodValue(t *testing.T) {
	tests := []struct {
		mood Mood
		want int
	}{
		{MoodAwful, 1},
		{MoodBad, 2},
		{MoodOkay, 3},
		{MoodGood, 4},
		{MoodGreat, 5},
	}

	for _, tt := range tests {
		got, err := tt.mood.Value()
		if err != nil {
			t.Errorf("Value(%s) failed: %v", tt.mood, err)
		}
		if got != tt.want {
			t.Errorf("Value(%s) = %d, want %d", tt.mood, got, tt.want)
		}
	}

	if _, err := Mood("meh").Value(); err == nil {
		t.Error("Value(meh) succeeded, want error")
	}
}

func TestMoodsOrderedByRank(t *testing.T) {
	moods := Moods()
	if len(moods) != 5 {
		t.Fatalf("len(Moods()) = %d, want 5", len(moods))
	}
	for i, m := range moods {
		v, err := m.Value()
		if err != nil {
			t.Fatalf("Value(%s) failed: %v", m, err)
		}
		if v != i+1 {
			t.Errorf("Moods()[%d] = %s with value %d, want %d", i, m, v, i+1)
		}
	}
}
