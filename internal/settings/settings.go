// Package settings loads provider configuration — timezone, per-weekday
// working hours and breaks, and the service list — from a YAML document
// and adapts it into the schedule engine's types.
package settings

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/slotforge/slotforge/internal/schedule"
)

// DaySchedule is one weekday's entry. Times are local wall-clock "HH:MM"
// strings; the break fields are optional and must come as a pair.
type DaySchedule struct {
	Open       string `yaml:"open"`
	Close      string `yaml:"close"`
	BreakStart string `yaml:"break_start,omitempty"`
	BreakEnd   string `yaml:"break_end,omitempty"`
}

// ServiceConfig declares one bookable service.
type ServiceConfig struct {
	ID              int64  `yaml:"id"`
	Name            string `yaml:"name"`
	DurationMinutes int    `yaml:"duration_minutes"`
}

// Settings is the top-level document. Weekdays absent from Hours are
// closed days.
type Settings struct {
	Timezone string                 `yaml:"timezone"`
	Hours    map[string]DaySchedule `yaml:"hours"`
	Services []ServiceConfig        `yaml:"services"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load reads and validates a settings file.
func Load(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML settings document.
func Parse(raw []byte) (*Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("settings: parse yaml: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("settings: unknown timezone %q: %w", s.Timezone, err)
		}
	}
	for name, day := range s.Hours {
		if _, ok := weekdayNames[strings.ToLower(name)]; !ok {
			return fmt.Errorf("settings: unknown weekday %q", name)
		}
		open, err := parseClock(day.Open)
		if err != nil {
			return fmt.Errorf("settings: %s open: %w", name, err)
		}
		closeAt, err := parseClock(day.Close)
		if err != nil {
			return fmt.Errorf("settings: %s close: %w", name, err)
		}
		if open >= closeAt {
			return fmt.Errorf("settings: %s opens at or after close", name)
		}
		if (day.BreakStart == "") != (day.BreakEnd == "") {
			return fmt.Errorf("settings: %s break needs both start and end", name)
		}
		if day.BreakStart != "" {
			bs, err := parseClock(day.BreakStart)
			if err != nil {
				return fmt.Errorf("settings: %s break_start: %w", name, err)
			}
			be, err := parseClock(day.BreakEnd)
			if err != nil {
				return fmt.Errorf("settings: %s break_end: %w", name, err)
			}
			if bs >= be {
				return fmt.Errorf("settings: %s break starts at or after its end", name)
			}
		}
	}
	seen := make(map[int64]bool, len(s.Services))
	for _, svc := range s.Services {
		if svc.DurationMinutes <= 0 {
			return fmt.Errorf("settings: service %q needs a positive duration", svc.Name)
		}
		if seen[svc.ID] {
			return fmt.Errorf("settings: duplicate service id %d", svc.ID)
		}
		seen[svc.ID] = true
	}
	return nil
}

// Zone resolves the configured timezone; empty means the host zone.
func (s *Settings) Zone() (schedule.Zone, error) {
	if s.Timezone == "" {
		return schedule.LocalZone(), nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return schedule.Zone{}, fmt.Errorf("settings: load timezone %q: %w", s.Timezone, err)
	}
	return schedule.NewZone(loc), nil
}

// BusinessHours converts the weekday table into the engine's model.
func (s *Settings) BusinessHours() (*schedule.BusinessHours, error) {
	var working, breaks []schedule.WeekdayRule
	for name, day := range s.Hours {
		wd := weekdayNames[strings.ToLower(name)]
		open, _ := parseClock(day.Open)
		closeAt, _ := parseClock(day.Close)
		working = append(working, schedule.WeekdayRule{Weekday: wd, Start: open, End: closeAt})
		if day.BreakStart != "" {
			bs, _ := parseClock(day.BreakStart)
			be, _ := parseClock(day.BreakEnd)
			breaks = append(breaks, schedule.WeekdayRule{Weekday: wd, Start: bs, End: be})
		}
	}
	return schedule.NewBusinessHours(working, breaks)
}

// ServiceByID looks up a configured service.
func (s *Settings) ServiceByID(id int64) (schedule.Service, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return schedule.Service{ID: svc.ID, Name: svc.Name, Duration: svc.DurationMinutes * 60}, true
		}
	}
	return schedule.Service{}, false
}

// ServiceList returns every configured service in declaration order.
func (s *Settings) ServiceList() []schedule.Service {
	out := make([]schedule.Service, 0, len(s.Services))
	for _, svc := range s.Services {
		out = append(out, schedule.Service{ID: svc.ID, Name: svc.Name, Duration: svc.DurationMinutes * 60})
	}
	return out
}

// parseClock converts an "HH:MM" wall-clock string into seconds from
// midnight.
func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (want HH:MM)", v)
	}
	return t.Hour()*3600 + t.Minute()*60, nil
}
