package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/slotforge/slotforge/internal/calendar"
	"github.com/slotforge/slotforge/internal/civil"
	appconfig "github.com/slotforge/slotforge/internal/config"
	"github.com/slotforge/slotforge/internal/ics"
	"github.com/slotforge/slotforge/internal/planner"
	"github.com/slotforge/slotforge/internal/schedule"
	"github.com/slotforge/slotforge/internal/settings"
	"github.com/slotforge/slotforge/pkg/logging"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	settingsPath string
	mode         string
	month        string // YYYY-MM for month mode
	date         string // anchor date for week/agenda modes
	serviceID    int64
	from         string
	to           string
	capacity     int
	icsPath      string
	publish      bool
}

func main() {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	flags := parseFlags(cfg)

	if err := run(cfg, flags, logger); err != nil {
		logger.Error("slotforge failed", "mode", flags.mode, "error", err)
		os.Exit(1)
	}
}

func parseFlags(cfg *appconfig.Config) flagConfig {
	var flags flagConfig
	flag.StringVar(&flags.settingsPath, "settings", cfg.SettingsPath, "path to the provider settings YAML")
	flag.StringVar(&flags.mode, "mode", "month", "month | week | slots | agenda")
	flag.StringVar(&flags.month, "month", "", "month to render, YYYY-MM (default: current)")
	flag.StringVar(&flags.date, "date", "", "anchor date, YYYY-MM-DD (default: today)")
	flag.Int64Var(&flags.serviceID, "service", 0, "service id to generate slots for")
	flag.StringVar(&flags.from, "from", "", "first date of the generation range, YYYY-MM-DD")
	flag.StringVar(&flags.to, "to", "", "last date of the generation range, YYYY-MM-DD")
	flag.IntVar(&flags.capacity, "capacity", cfg.DefaultCapacity, "simultaneous bookable units per start time")
	flag.StringVar(&flags.icsPath, "ics", "", "ICS file to import for agenda mode")
	flag.BoolVar(&flags.publish, "publish", false, "publish generated slots and report conflicts")
	flag.Parse()
	return flags
}

func run(cfg *appconfig.Config, flags flagConfig, logger *logging.Logger) error {
	sets, err := settings.Load(flags.settingsPath)
	if err != nil {
		return err
	}

	zone, err := resolveZone(cfg, sets)
	if err != nil {
		return err
	}

	switch flags.mode {
	case "month":
		return runMonth(flags, zone)
	case "week":
		return runWeek(flags, zone)
	case "slots":
		return runSlots(cfg, flags, sets, zone, logger)
	case "agenda":
		return runAgenda(flags, zone, logger)
	default:
		return fmt.Errorf("unknown mode %q", flags.mode)
	}
}

// resolveZone prefers the TIMEZONE env override, then the settings file,
// then the host zone.
func resolveZone(cfg *appconfig.Config, sets *settings.Settings) (schedule.Zone, error) {
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return schedule.Zone{}, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
		}
		return schedule.NewZone(loc), nil
	}
	return sets.Zone()
}

func runMonth(flags flagConfig, zone schedule.Zone) error {
	year, month, err := parseMonth(flags.month, zone)
	if err != nil {
		return err
	}

	grid := calendar.MonthGrid(year, month, nil)
	fmt.Printf("%s %d\n", month, year)
	fmt.Println("Su Mo Tu We Th Fr Sa")

	col := 0
	for _, cell := range grid.Cells() {
		if cell.Segment == calendar.SegmentCurrent {
			fmt.Printf("%2d ", cell.Day)
		} else {
			fmt.Printf(" . ")
		}
		col++
		if col%7 == 0 {
			fmt.Println()
		}
	}
	return nil
}

func runWeek(flags flagConfig, zone schedule.Zone) error {
	anchor, err := parseDateOrToday(flags.date, zone)
	if err != nil {
		return err
	}
	for i, d := range calendar.WeekOf(anchor) {
		fmt.Printf("%d  %s  %s\n", i, d.Weekday().String()[:3], d)
	}
	return nil
}

func runSlots(cfg *appconfig.Config, flags flagConfig, sets *settings.Settings, zone schedule.Zone, logger *logging.Logger) error {
	svc, ok := sets.ServiceByID(flags.serviceID)
	if !ok {
		return fmt.Errorf("service %d not found in settings", flags.serviceID)
	}
	from, err := parseDateOrToday(flags.from, zone)
	if err != nil {
		return err
	}
	to := from
	if flags.to != "" {
		if to, err = civil.ParseDate(flags.to); err != nil {
			return err
		}
	}
	if days := spanDays(from, to); days > cfg.MaxRangeDays {
		return fmt.Errorf("range of %d days exceeds the %d-day limit", days, cfg.MaxRangeDays)
	}

	hours, err := sets.BusinessHours()
	if err != nil {
		return err
	}

	p := planner.New(planner.NewMemoryStore(zone), hours, zone, logger, nil)
	slots := p.Stage(context.Background(), svc, from, to, flags.capacity)
	if len(slots) == 0 {
		fmt.Printf("no bookable slots for %s between %s and %s\n", svc.Name, from, to)
		return nil
	}

	printSlotsByLabel(slots, zone)

	if flags.publish {
		res, err := p.Publish(context.Background(), slots)
		if err != nil {
			return err
		}
		fmt.Printf("published %d slots", len(res.Created))
		if res.Partial() {
			fmt.Printf(" (%d not persisted)", len(res.Unpersisted))
		}
		fmt.Println()
	}
	return nil
}

func runAgenda(flags flagConfig, zone schedule.Zone, logger *logging.Logger) error {
	if flags.icsPath == "" {
		return fmt.Errorf("agenda mode needs -ics")
	}
	anchor, err := parseDateOrToday(flags.date, zone)
	if err != nil {
		return err
	}

	f, err := os.Open(flags.icsPath)
	if err != nil {
		return err
	}
	defer f.Close()

	week := calendar.WeekOf(anchor)
	importer := ics.NewImporter(zone, logger)
	events, err := importer.Import(f, week[0], week[6])
	if err != nil {
		return err
	}

	cells := calendar.BucketByHour(events, week[:])
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			evs := cells[calendar.Cell{Day: day, Hour: hour}]
			if len(evs) == 0 {
				continue
			}
			titles := make([]string, 0, len(evs))
			for _, ev := range evs {
				titles = append(titles, ev.Title)
			}
			fmt.Printf("%s %02d:00  %s\n", week[day], hour, strings.Join(titles, ", "))
		}
	}
	return nil
}

func printSlotsByLabel(slots []schedule.CandidateSlot, zone schedule.Zone) {
	lastLabel := ""
	for _, s := range slots {
		if s.Label != lastLabel {
			fmt.Printf("%s\n", s.Label)
			lastLabel = s.Label
		}
		fmt.Printf("  %s\n", s.Time.In(zone.Location()).Format("15:04"))
	}
}

func parseMonth(v string, zone schedule.Zone) (int, time.Month, error) {
	if v == "" {
		now := civil.Today(zone.Location())
		return now.Year, now.Month, nil
	}
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (want YYYY-MM)", v)
	}
	return t.Year(), t.Month(), nil
}

func parseDateOrToday(v string, zone schedule.Zone) (civil.Date, error) {
	if v == "" {
		return civil.Today(zone.Location()), nil
	}
	return civil.ParseDate(v)
}

// spanDays counts the inclusive number of civil days between two dates.
func spanDays(from, to civil.Date) int {
	a := from.At(0, time.UTC)
	b := to.At(0, time.UTC)
	return int(b.Sub(a).Hours()/24) + 1
}
