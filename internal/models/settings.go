package models

// Settings represents application-wide scheduling settings
type Settings struct {
	BaseEase           int       `json:"base_ease"`            // default ease factor ×100
	MaximumInterval    int       `json:"maximum_interval"`     // SM-2 interval cap in days
	LoadBalance        bool      `json:"load_balance"`         // jitter long SM-2 intervals to spread review load
	UseInitialSchedule bool      `json:"use_initial_schedule"` // whether new SM-2 items walk the fixed initial intervals
	InitialIntervals   []int     `json:"initial_intervals"`    // fixed interval steps in days for the initial phase
	DefaultAlgorithm   Algorithm `json:"default_algorithm"`    // algorithm assigned to newly scheduled notes

	// FSRS parameter bundle
	FSRSRequestRetention float64   `json:"fsrs_request_retention"` // target recall probability, e.g. 0.9
	FSRSMaximumInterval  int       `json:"fsrs_maximum_interval"`  // FSRS interval cap in days
	FSRSWeights          []float64 `json:"fsrs_weights"`           // 17 or 19 model weights; short vectors are padded
	FSRSEnableFuzz       bool      `json:"fsrs_enable_fuzz"`       // randomize long intervals to avoid review clustering
	FSRSLearningSteps    []int     `json:"fsrs_learning_steps"`    // learning step durations in minutes
	FSRSRelearningSteps  []int     `json:"fsrs_relearning_steps"`  // relearning step durations in minutes
	FSRSEnableShortTerm  bool      `json:"fsrs_enable_short_term"` // whether sub-day learning steps are used at all
}
