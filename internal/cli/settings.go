package cli

import (
	"fmt"
	"strings"

	"github.com/reciteapp/recite/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	BaseEase           *int    `help:"Starting ease factor ×100 for new SM-2 notes (e.g. 250)."`
	MaximumInterval    *int    `help:"SM-2 interval cap in days."`
	LoadBalance        *bool   `help:"Jitter long SM-2 intervals to spread review load."`
	UseInitialSchedule *bool   `help:"Walk new SM-2 notes through the fixed initial intervals."`
	InitialIntervals   *string `help:"Comma-separated initial interval days (e.g. 0,3,7,14,30)."`
	DefaultAlgorithm   *string `help:"Algorithm for newly scheduled notes (sm2 or fsrs)."`

	FsrsRequestRetention *float64 `help:"FSRS target recall probability (0-1)."`
	FsrsMaximumInterval  *int     `help:"FSRS interval cap in days."`
	FsrsWeights          *string  `help:"Comma-separated FSRS model weights (17 or 19 values)."`
	FsrsEnableFuzz       *bool    `help:"Randomize long FSRS intervals."`
	FsrsLearningSteps    *string  `help:"Comma-separated learning step minutes (e.g. 1,10)."`
	FsrsRelearningSteps  *string  `help:"Comma-separated relearning step minutes (e.g. 10)."`
	FsrsEnableShortTerm  *bool    `help:"Use sub-day learning steps."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)

	if c.List {
		fmt.Println("Scheduling Settings:")
		fmt.Printf("  Default Algorithm:    %s\n", settings.DefaultAlgorithm)
		fmt.Printf("  Base Ease:            %.2f\n", float64(settings.BaseEase)/100)
		fmt.Printf("  Maximum Interval:     %d days\n", settings.MaximumInterval)
		fmt.Printf("  Load Balance:         %v\n", settings.LoadBalance)
		fmt.Printf("  Use Initial Schedule: %v\n", settings.UseInitialSchedule)
		fmt.Printf("  Initial Intervals:    %s\n", formatIntList(settings.InitialIntervals))
		fmt.Println("\nFSRS Settings:")
		fmt.Printf("  Request Retention:    %.2f\n", settings.FSRSRequestRetention)
		fmt.Printf("  Maximum Interval:     %d days\n", settings.FSRSMaximumInterval)
		fmt.Printf("  Enable Fuzz:          %v\n", settings.FSRSEnableFuzz)
		fmt.Printf("  Enable Short Term:    %v\n", settings.FSRSEnableShortTerm)
		fmt.Printf("  Learning Steps:       %s min\n", formatIntList(settings.FSRSLearningSteps))
		fmt.Printf("  Relearning Steps:     %s min\n", formatIntList(settings.FSRSRelearningSteps))
		fmt.Printf("  Weights:              %d configured\n", len(settings.FSRSWeights))
		return nil
	}

	updated := false
	if c.BaseEase != nil {
		if *c.BaseEase < 130 {
			return fmt.Errorf("base ease must be at least 130")
		}
		settings.BaseEase = *c.BaseEase
		updated = true
	}
	if c.MaximumInterval != nil {
		if *c.MaximumInterval < 1 {
			return fmt.Errorf("maximum interval must be at least 1")
		}
		settings.MaximumInterval = *c.MaximumInterval
		updated = true
	}
	if c.LoadBalance != nil {
		settings.LoadBalance = *c.LoadBalance
		updated = true
	}
	if c.UseInitialSchedule != nil {
		settings.UseInitialSchedule = *c.UseInitialSchedule
		updated = true
	}
	if c.InitialIntervals != nil {
		intervals, err := ParseIntList(*c.InitialIntervals)
		if err != nil {
			return fmt.Errorf("invalid initial intervals: %w", err)
		}
		settings.InitialIntervals = intervals
		updated = true
	}
	if c.DefaultAlgorithm != nil {
		algo := models.Algorithm(strings.ToLower(*c.DefaultAlgorithm))
		if !algo.IsValid() {
			return fmt.Errorf("default algorithm must be sm2 or fsrs")
		}
		settings.DefaultAlgorithm = algo
		updated = true
	}
	if c.FsrsRequestRetention != nil {
		if *c.FsrsRequestRetention <= 0 || *c.FsrsRequestRetention >= 1 {
			return fmt.Errorf("request retention must be between 0 and 1 exclusive")
		}
		settings.FSRSRequestRetention = *c.FsrsRequestRetention
		updated = true
	}
	if c.FsrsMaximumInterval != nil {
		if *c.FsrsMaximumInterval < 1 {
			return fmt.Errorf("FSRS maximum interval must be at least 1")
		}
		settings.FSRSMaximumInterval = *c.FsrsMaximumInterval
		updated = true
	}
	if c.FsrsWeights != nil {
		weights, err := ParseFloatList(*c.FsrsWeights)
		if err != nil {
			return fmt.Errorf("invalid FSRS weights: %w", err)
		}
		if len(weights) != 17 && len(weights) != 19 {
			return fmt.Errorf("FSRS weights must have 17 or 19 values, got %d", len(weights))
		}
		settings.FSRSWeights = weights
		updated = true
	}
	if c.FsrsEnableFuzz != nil {
		settings.FSRSEnableFuzz = *c.FsrsEnableFuzz
		updated = true
	}
	if c.FsrsLearningSteps != nil {
		steps, err := ParseIntList(*c.FsrsLearningSteps)
		if err != nil {
			return fmt.Errorf("invalid learning steps: %w", err)
		}
		settings.FSRSLearningSteps = steps
		updated = true
	}
	if c.FsrsRelearningSteps != nil {
		steps, err := ParseIntList(*c.FsrsRelearningSteps)
		if err != nil {
			return fmt.Errorf("invalid relearning steps: %w", err)
		}
		settings.FSRSRelearningSteps = steps
		updated = true
	}
	if c.FsrsEnableShortTerm != nil {
		settings.FSRSEnableShortTerm = *c.FsrsEnableShortTerm
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func formatIntList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}
