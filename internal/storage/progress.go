package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
)

// ProgressFile is the name of the JSON Lines progress-record file
const ProgressFile = "progress.jsonl"

// ProgressRecord stores a task group's progress figures for one month.
// StartProgress is where the group stood when the month opened;
// FinalProgress is the user-entered end-of-month value, either a
// percentage or the recurring marker. Keyed uniquely by
// (month, project code, description).
type ProgressRecord struct {
	Month         string  `json:"month"` // "YYYY-MM"
	ProjectCode   string  `json:"project_code"`
	Description   string  `json:"description"`
	StartProgress float64 `json:"start_progress"`
	FinalProgress string  `json:"final_progress"`
}

// GetProgressPath returns the path to the progress-record file,
// creating the data directory if needed.
func GetProgressPath() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProgressFile), nil
}

// ReadProgressRecords reads all progress records. Returns an empty
// slice if the file doesn't exist. Skips malformed lines for fault
// tolerance.
func ReadProgressRecords(path string) ([]ProgressRecord, error) {
	records := []ProgressRecord{}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return records, nil
		}
		return records, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var r ProgressRecord
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		records = append(records, r)
	}

	if err := scanner.Err(); err != nil {
		return records, err
	}

	return records, nil
}

// FindProgress returns the record for a month and task group, if one
// exists.
func FindProgress(path, month, projectCode, description string) (ProgressRecord, bool, error) {
	records, err := ReadProgressRecords(path)
	if err != nil {
		return ProgressRecord{}, false, err
	}
	for _, r := range records {
		if r.Month == month && r.ProjectCode == projectCode && r.Description == description {
			return r, true, nil
		}
	}
	return ProgressRecord{}, false, nil
}

// UpsertProgress writes a progress record, replacing any existing
// record with the same key. Atomic temp-file rename.
func UpsertProgress(path string, rec ProgressRecord) error {
	records, err := ReadProgressRecords(path)
	if err != nil {
		return err
	}

	replaced := false
	for i, r := range records {
		if r.Month == rec.Month && r.ProjectCode == rec.ProjectCode && r.Description == rec.Description {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	for _, r := range records {
		line, err := json.Marshal(r)
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
