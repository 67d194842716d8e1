package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ayliff/taskday/internal/policy"
)

// OverridesFile is the name of the JSON Lines day-override file
const OverridesFile = "overrides.jsonl"

// DayOverride pins a date's effective start and freezes the policy that
// was in force when the day was first scheduled. One record per date;
// once written, later configuration edits never touch it.
type DayOverride struct {
	Date           string          `json:"date"`
	EffectiveStart string          `json:"effective_start"`
	Policy         policy.Snapshot `json:"policy"`
}

// GetOverridesPath returns the path to the day-override file, creating
// the data directory if needed.
func GetOverridesPath() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, OverridesFile), nil
}

// ReadOverrides reads all day overrides. Returns an empty slice if the
// file doesn't exist. Skips malformed lines for fault tolerance.
func ReadOverrides(path string) ([]DayOverride, error) {
	overrides := []DayOverride{}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return overrides, nil
		}
		return overrides, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var o DayOverride
		if err := json.Unmarshal(scanner.Bytes(), &o); err != nil {
			continue
		}
		overrides = append(overrides, o)
	}

	if err := scanner.Err(); err != nil {
		return overrides, err
	}

	return overrides, nil
}

// FindOverride returns the override for a date, if one exists.
func FindOverride(path, date string) (DayOverride, bool, error) {
	overrides, err := ReadOverrides(path)
	if err != nil {
		return DayOverride{}, false, err
	}
	for _, o := range overrides {
		if o.Date == date {
			return o, true, nil
		}
	}
	return DayOverride{}, false, nil
}

// UpsertOverride writes an override, replacing any existing record for
// the same date. The write is an atomic temp-file rename, so a crash
// never leaves a half-written override file.
func UpsertOverride(path string, o DayOverride) error {
	overrides, err := ReadOverrides(path)
	if err != nil {
		return err
	}

	replaced := false
	for i := range overrides {
		if overrides[i].Date == o.Date {
			overrides[i] = o
			replaced = true
			break
		}
	}
	if !replaced {
		overrides = append(overrides, o)
	}

	return writeOverrides(path, overrides)
}

func writeOverrides(path string, overrides []DayOverride) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	for _, o := range overrides {
		line, err := json.Marshal(o)
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
		if _, err := file.WriteString(string(line) + "\n"); err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}
