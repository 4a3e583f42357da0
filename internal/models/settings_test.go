package models

import "testing"

func TestSettingsMapRoundTrip(t *testing.T) {
	want := DefaultSettings()
	want.BaseEase = 230
	want.UseInitialSchedule = true
	want.InitialIntervals = []int{1, 4, 9}
	want.DefaultAlgorithm = AlgorithmFSRS
	want.FSRSRequestRetention = 0.87
	want.FSRSWeights = []float64{0.5, 1.2, 3.0, 15.0}
	want.FSRSEnableShortTerm = false

	got, err := MapToSettings(SettingsToMap(want))
	if err != nil {
		t.Fatalf("MapToSettings: %v", err)
	}

	if got.BaseEase != want.BaseEase || got.MaximumInterval != want.MaximumInterval {
		t.Errorf("ints mismatch: %+v", got)
	}
	if !got.UseInitialSchedule || got.FSRSEnableShortTerm {
		t.Errorf("bools mismatch: %+v", got)
	}
	if got.DefaultAlgorithm != AlgorithmFSRS {
		t.Errorf("algorithm = %s, want fsrs", got.DefaultAlgorithm)
	}
	if got.FSRSRequestRetention != 0.87 {
		t.Errorf("retention = %v, want 0.87", got.FSRSRequestRetention)
	}
	if len(got.InitialIntervals) != 3 || got.InitialIntervals[2] != 9 {
		t.Errorf("initial intervals = %v, want [1 4 9]", got.InitialIntervals)
	}
	if len(got.FSRSWeights) != 4 || got.FSRSWeights[3] != 15.0 {
		t.Errorf("weights = %v", got.FSRSWeights)
	}
}

func TestMapToSettingsRejectsBadValues(t *testing.T) {
	if _, err := MapToSettings(map[string]string{"default_algorithm": "anki"}); err == nil {
		t.Error("expected error for unknown algorithm")
	}
	if _, err := MapToSettings(map[string]string{"base_ease": "often"}); err == nil {
		t.Error("expected error for non-numeric base_ease")
	}
	if _, err := MapToSettings(map[string]string{"initial_intervals": "1,2,3"}); err == nil {
		t.Error("expected error for non-JSON interval list")
	}
}

func TestMapToSettingsIgnoresUnknownKeys(t *testing.T) {
	got, err := MapToSettings(map[string]string{"future_knob": "42"})
	if err != nil {
		t.Fatalf("MapToSettings: %v", err)
	}
	if got.BaseEase != DefaultSettings().BaseEase {
		t.Error("unknown key disturbed the defaults")
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	var s Settings
	ApplyDefaultSettings(&s)

	d := DefaultSettings()
	if s.BaseEase != d.BaseEase || s.MaximumInterval != d.MaximumInterval {
		t.Errorf("numeric defaults not applied: %+v", s)
	}
	if !s.DefaultAlgorithm.IsValid() {
		t.Errorf("algorithm not defaulted: %q", s.DefaultAlgorithm)
	}
	if len(s.InitialIntervals) == 0 || len(s.FSRSLearningSteps) == 0 {
		t.Errorf("list defaults not applied: %+v", s)
	}

	// Explicit values survive.
	s = Settings{BaseEase: 200}
	ApplyDefaultSettings(&s)
	if s.BaseEase != 200 {
		t.Errorf("base ease = %d, want preserved 200", s.BaseEase)
	}
}
