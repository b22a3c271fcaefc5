package exports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/traderecap/traderecap/pkg/errors"
	"github.com/traderecap/traderecap/pkg/logging"
)

// DateLayout is the calendar date format used by the exporter for daily file
// names and date fields.
const DateLayout = "2006-01-02"

// dailyFileName matches real daily export files and excludes position/cash
// side-files the exporter drops into the same directory.
var dailyFileName = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.json$`)

// Store reads export files from a base directory laid out as
// daily/YYYY-MM-DD.json, weekly/YYYY-W##.json, and monthly/YYYY-MM.json.
//
// Every accessor degrades failures (missing file, malformed JSON) to an
// absent record. The cause is recorded at debug level only; a blank report
// section is the intended worst case, not an error.
type Store struct {
	dir string
	log *zerolog.Logger
}

// StoreOption is a functional option for configuring the Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log *zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{
		dir: dir,
		log: logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the base export directory.
func (s *Store) Dir() string {
	return s.dir
}

// Daily returns the daily record for the given date, or nil when the file is
// missing or unreadable.
func (s *Store) Daily(date time.Time) *DailyRecord {
	name := date.Format(DateLayout)
	path := filepath.Join(s.dir, "daily", name+".json")

	var rec DailyRecord
	if err := s.load(path, &rec); err != nil {
		s.log.Debug().Err(err).Str("date", name).Msg("no daily record")
		return nil
	}
	if rec.Date == "" {
		rec.Date = name
	}
	return &rec
}

// Weekly returns the precomputed statistics for the given ISO week, or nil
// when no weekly file exists.
func (s *Store) Weekly(year, week int) *PeriodStats {
	path := filepath.Join(s.dir, "weekly", weeklyFileName(year, week))

	var rec PeriodRecord
	if err := s.load(path, &rec); err != nil {
		s.log.Debug().Err(err).Int("year", year).Int("week", week).Msg("no weekly record")
		return nil
	}
	return rec.Stats()
}

// Monthly returns the precomputed statistics for the given calendar month, or
// nil when no monthly file exists.
func (s *Store) Monthly(year int, month time.Month) *PeriodStats {
	path := filepath.Join(s.dir, "monthly", monthlyFileName(year, month))

	var rec PeriodRecord
	if err := s.load(path, &rec); err != nil {
		s.log.Debug().Err(err).Int("year", year).Stringer("month", month).Msg("no monthly record")
		return nil
	}
	return rec.Stats()
}

// WalkDaily calls fn for every daily record in date order. Side-files that do
// not follow the YYYY-MM-DD.json naming convention are skipped, as are files
// that fail to parse.
func (s *Store) WalkDaily(fn func(date time.Time, rec *DailyRecord)) {
	dir := filepath.Join(s.dir, "daily")
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Debug().Err(err).Str("dir", dir).Msg("no daily export directory")
		return
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !dailyFileName.MatchString(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	// Lexicographic order is chronological for YYYY-MM-DD names.
	sort.Strings(names)

	for _, name := range names {
		dateStr := name[:len(name)-len(".json")]
		date, err := time.Parse(DateLayout, dateStr)
		if err != nil {
			s.log.Debug().Err(err).Str("file", name).Msg("skipping daily file with invalid date")
			continue
		}

		var rec DailyRecord
		if err := s.load(filepath.Join(dir, name), &rec); err != nil {
			s.log.Debug().Err(err).Str("file", name).Msg("skipping unreadable daily file")
			continue
		}
		if rec.Date == "" {
			rec.Date = dateStr
		}
		fn(date, &rec)
	}
}

// load reads and unmarshals a single JSON file.
func (s *Store) load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapParse("json", path, err)
	}
	return nil
}

// weeklyFileName returns the export file name for an ISO week.
func weeklyFileName(year, week int) string {
	return WeekLabel(year, week) + ".json"
}

// monthlyFileName returns the export file name for a calendar month.
func monthlyFileName(year int, month time.Month) string {
	return MonthLabel(year, month) + ".json"
}

// WeekLabel renders an ISO week label, e.g. "2026-W35".
func WeekLabel(year, week int) string {
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// MonthLabel renders a calendar month label, e.g. "2026-08".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}
