package constants

const (
	// Scheduling settings
	SettingBaseEase           = "base_ease"
	SettingMaximumInterval    = "maximum_interval"
	SettingLoadBalance        = "load_balance"
	SettingUseInitialSchedule = "use_initial_schedule"
	SettingInitialIntervals   = "initial_intervals"
	SettingDefaultAlgorithm   = "default_algorithm"

	// FSRS settings
	SettingFSRSRequestRetention = "fsrs_request_retention"
	SettingFSRSMaximumInterval  = "fsrs_maximum_interval"
	SettingFSRSWeights          = "fsrs_weights"
	SettingFSRSEnableFuzz       = "fsrs_enable_fuzz"
	SettingFSRSLearningSteps    = "fsrs_learning_steps"
	SettingFSRSRelearningSteps  = "fsrs_relearning_steps"
	SettingFSRSEnableShortTerm  = "fsrs_enable_short_term"

	// Default Settings Values
	DefaultBaseEase             = 250  // ease factor 2.50, stored ×100
	DefaultMaximumInterval      = 36525 // days
	DefaultLoadBalance          = true
	DefaultUseInitialSchedule   = false
	DefaultAlgorithm            = "sm2"
	DefaultFSRSRequestRetention = 0.9
	DefaultFSRSMaximumInterval  = 36500
	DefaultFSRSEnableFuzz       = true
	DefaultFSRSEnableShortTerm  = true
)
