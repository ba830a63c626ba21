package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"rentalops-backend/internal/config"
	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/repository"
)

// Settings keys understood by the key/value configuration collaborator.
// Missing keys fall back to the config-file defaults; malformed values are
// a ConfigError, never silently ignored.
const (
	settingEnableReminders   = "enable_return_reminders"
	settingReminderIntervals = "return_reminder_intervals"
	settingReminderHours     = "return_reminder_hours_before" // legacy alias
	settingReminderLookback  = "return_reminder_lookback_hours"
	settingLateFeeAmount     = "late_fee.amount"
	settingLateFeeGrace      = "late_fee.grace_period_hours"
	settingExtFeeAmount      = "extension_fee.amount"
	settingExtFeeThreshold   = "extension_fee.threshold_hours"
)

// FeeSettings is the resolved fee policy for one operation.
type FeeSettings struct {
	LateFeeAmount      int64
	GracePeriod        time.Duration
	ExtensionFeeAmount int64
	ExtensionThreshold time.Duration
}

// ReminderSettings is the resolved reminder policy for one scheduler run.
type ReminderSettings struct {
	Enabled        bool
	IntervalsHours []int
	Lookback       time.Duration
	SendGap        time.Duration
}

func LoadFeeSettings(ctx context.Context, repo repository.SettingsRepository, defaults config.FeeConfig) (FeeSettings, error) {
	fs := FeeSettings{
		LateFeeAmount:      defaults.LateFeeAmount,
		GracePeriod:        time.Duration(defaults.LateFeeGraceHours) * time.Hour,
		ExtensionFeeAmount: defaults.ExtensionFeeAmount,
		ExtensionThreshold: time.Duration(defaults.ExtensionThresholdHours) * time.Hour,
	}

	if v, err := loadInt64(ctx, repo, settingLateFeeAmount); err != nil {
		return fs, err
	} else if v != nil {
		fs.LateFeeAmount = *v
	}
	if v, err := loadInt64(ctx, repo, settingLateFeeGrace); err != nil {
		return fs, err
	} else if v != nil {
		fs.GracePeriod = time.Duration(*v) * time.Hour
	}
	if v, err := loadInt64(ctx, repo, settingExtFeeAmount); err != nil {
		return fs, err
	} else if v != nil {
		fs.ExtensionFeeAmount = *v
	}
	if v, err := loadInt64(ctx, repo, settingExtFeeThreshold); err != nil {
		return fs, err
	} else if v != nil {
		fs.ExtensionThreshold = time.Duration(*v) * time.Hour
	}
	return fs, nil
}

func LoadReminderSettings(ctx context.Context, repo repository.SettingsRepository, defaults config.ReminderConfig) (ReminderSettings, error) {
	rs := ReminderSettings{
		Enabled:        defaults.RemindersEnabled(),
		IntervalsHours: defaults.IntervalsHours,
		Lookback:       time.Duration(defaults.LookbackHours) * time.Hour,
		SendGap:        time.Duration(defaults.SendGapSeconds) * time.Second,
	}

	if raw, ok, err := repo.Get(ctx, settingEnableReminders); err != nil {
		return rs, err
	} else if ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return rs, &domain.ConfigError{Key: settingEnableReminders, Reason: "expected a boolean, got " + raw}
		}
		rs.Enabled = enabled
	}

	raw, ok, err := repo.Get(ctx, settingReminderIntervals)
	if err != nil {
		return rs, err
	}
	if !ok {
		// older deployments stored the intervals under a different key
		raw, ok, err = repo.Get(ctx, settingReminderHours)
		if err != nil {
			return rs, err
		}
	}
	if ok {
		hours, err := config.ParseIntervals(raw)
		if err != nil {
			return rs, &domain.ConfigError{Key: settingReminderIntervals, Reason: err.Error()}
		}
		rs.IntervalsHours = hours
	}

	if v, err := loadInt64(ctx, repo, settingReminderLookback); err != nil {
		return rs, err
	} else if v != nil {
		rs.Lookback = time.Duration(*v) * time.Hour
	}
	return rs, nil
}

func loadInt64(ctx context.Context, repo repository.SettingsRepository, key string) (*int64, error) {
	raw, ok, err := repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v < 0 {
		return nil, &domain.ConfigError{Key: key, Reason: "expected a non-negative integer, got " + raw}
	}
	return &v, nil
}
