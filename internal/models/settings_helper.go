package models

import (
	"encoding/json"
	"fmt"

	"github.com/reciteapp/recite/internal/constants"
)

// DefaultSettings returns the full default settings bundle.
func DefaultSettings() Settings {
	return Settings{
		BaseEase:             constants.DefaultBaseEase,
		MaximumInterval:      constants.DefaultMaximumInterval,
		LoadBalance:          constants.DefaultLoadBalance,
		UseInitialSchedule:   constants.DefaultUseInitialSchedule,
		InitialIntervals:     []int{0, 3, 7, 14, 30},
		DefaultAlgorithm:     Algorithm(constants.DefaultAlgorithm),
		FSRSRequestRetention: constants.DefaultFSRSRequestRetention,
		FSRSMaximumInterval:  constants.DefaultFSRSMaximumInterval,
		FSRSWeights:          nil, // nil → engine defaults
		FSRSEnableFuzz:       constants.DefaultFSRSEnableFuzz,
		FSRSLearningSteps:    []int{1, 10},
		FSRSRelearningSteps:  []int{10},
		FSRSEnableShortTerm:  constants.DefaultFSRSEnableShortTerm,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingBaseEase:
			if _, err := fmt.Sscanf(value, "%d", &settings.BaseEase); err != nil {
				return Settings{}, fmt.Errorf("parsing base_ease: %w", err)
			}
		case constants.SettingMaximumInterval:
			if _, err := fmt.Sscanf(value, "%d", &settings.MaximumInterval); err != nil {
				return Settings{}, fmt.Errorf("parsing maximum_interval: %w", err)
			}
		case constants.SettingLoadBalance:
			settings.LoadBalance = value == "true"
		case constants.SettingUseInitialSchedule:
			settings.UseInitialSchedule = value == "true"
		case constants.SettingInitialIntervals:
			if err := json.Unmarshal([]byte(value), &settings.InitialIntervals); err != nil {
				return Settings{}, fmt.Errorf("parsing initial_intervals: %w", err)
			}
		case constants.SettingDefaultAlgorithm:
			alg := Algorithm(value)
			if !alg.IsValid() {
				return Settings{}, fmt.Errorf("unknown default_algorithm %q", value)
			}
			settings.DefaultAlgorithm = alg
		case constants.SettingFSRSRequestRetention:
			if _, err := fmt.Sscanf(value, "%f", &settings.FSRSRequestRetention); err != nil {
				return Settings{}, fmt.Errorf("parsing fsrs_request_retention: %w", err)
			}
		case constants.SettingFSRSMaximumInterval:
			if _, err := fmt.Sscanf(value, "%d", &settings.FSRSMaximumInterval); err != nil {
				return Settings{}, fmt.Errorf("parsing fsrs_maximum_interval: %w", err)
			}
		case constants.SettingFSRSWeights:
			if err := json.Unmarshal([]byte(value), &settings.FSRSWeights); err != nil {
				return Settings{}, fmt.Errorf("parsing fsrs_weights: %w", err)
			}
		case constants.SettingFSRSEnableFuzz:
			settings.FSRSEnableFuzz = value == "true"
		case constants.SettingFSRSLearningSteps:
			if err := json.Unmarshal([]byte(value), &settings.FSRSLearningSteps); err != nil {
				return Settings{}, fmt.Errorf("parsing fsrs_learning_steps: %w", err)
			}
		case constants.SettingFSRSRelearningSteps:
			if err := json.Unmarshal([]byte(value), &settings.FSRSRelearningSteps); err != nil {
				return Settings{}, fmt.Errorf("parsing fsrs_relearning_steps: %w", err)
			}
		case constants.SettingFSRSEnableShortTerm:
			settings.FSRSEnableShortTerm = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	initial, _ := json.Marshal(settings.InitialIntervals)
	weights, _ := json.Marshal(settings.FSRSWeights)
	learning, _ := json.Marshal(settings.FSRSLearningSteps)
	relearning, _ := json.Marshal(settings.FSRSRelearningSteps)

	return map[string]string{
		constants.SettingBaseEase:           fmt.Sprintf("%d", settings.BaseEase),
		constants.SettingMaximumInterval:    fmt.Sprintf("%d", settings.MaximumInterval),
		constants.SettingLoadBalance:        fmt.Sprintf("%v", settings.LoadBalance),
		constants.SettingUseInitialSchedule: fmt.Sprintf("%v", settings.UseInitialSchedule),
		constants.SettingInitialIntervals:   string(initial),
		constants.SettingDefaultAlgorithm:   string(settings.DefaultAlgorithm),

		constants.SettingFSRSRequestRetention: fmt.Sprintf("%g", settings.FSRSRequestRetention),
		constants.SettingFSRSMaximumInterval:  fmt.Sprintf("%d", settings.FSRSMaximumInterval),
		constants.SettingFSRSWeights:          string(weights),
		constants.SettingFSRSEnableFuzz:       fmt.Sprintf("%v", settings.FSRSEnableFuzz),
		constants.SettingFSRSLearningSteps:    string(learning),
		constants.SettingFSRSRelearningSteps:  string(relearning),
		constants.SettingFSRSEnableShortTerm:  fmt.Sprintf("%v", settings.FSRSEnableShortTerm),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	defaults := DefaultSettings()
	if settings.BaseEase == 0 {
		settings.BaseEase = defaults.BaseEase
	}
	if settings.MaximumInterval == 0 {
		settings.MaximumInterval = defaults.MaximumInterval
	}
	if len(settings.InitialIntervals) == 0 {
		settings.InitialIntervals = defaults.InitialIntervals
	}
	if !settings.DefaultAlgorithm.IsValid() {
		settings.DefaultAlgorithm = defaults.DefaultAlgorithm
	}
	if settings.FSRSRequestRetention == 0 {
		settings.FSRSRequestRetention = defaults.FSRSRequestRetention
	}
	if settings.FSRSMaximumInterval == 0 {
		settings.FSRSMaximumInterval = defaults.FSRSMaximumInterval
	}
	if len(settings.FSRSLearningSteps) == 0 {
		settings.FSRSLearningSteps = defaults.FSRSLearningSteps
	}
	if len(settings.FSRSRelearningSteps) == 0 {
		settings.FSRSRelearningSteps = defaults.FSRSRelearningSteps
	}
}
