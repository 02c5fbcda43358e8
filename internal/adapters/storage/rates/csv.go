// Package rates loads the premium rate table from CSV files. The seed
// command and the in-memory store both consume it, so the two paths
// agree on the file format.
package rates

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/prmf/premium-api/internal/domain"
)

// Column order of a rate table CSV. A header row with these names is
// required; extra columns (such as payment_type from older exports)
// are ignored.
var requiredColumns = []string{"age", "family_size", "option_1", "option_2", "option_3", "option_4"}

// LoadFile reads a rate table CSV from disk.
func LoadFile(path string) ([]domain.RateRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rates file: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}

// Load parses a rate table CSV. Each data row becomes one
// domain.RateRecord keyed by (age, family_size); duplicate keys are
// rejected so a bad export cannot silently shadow rows.
func Load(r io.Reader) ([]domain.RateRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	type key struct {
		age        int
		familySize domain.FamilySize
	}

	seen := make(map[key]int)

	var records []domain.RateRecord

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		record, err := parseRow(row, columns)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		k := key{age: record.Age, familySize: record.FamilySize}
		if prior, ok := seen[k]; ok {
			return nil, fmt.Errorf("line %d: duplicate rate for age %d family size %q (first seen on line %d)",
				line, record.Age, record.FamilySize, prior)
		}

		seen[k] = line
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("rate table is empty")
	}

	return records, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}

	return columns, nil
}

func parseRow(row []string, columns map[string]int) (domain.RateRecord, error) {
	field := func(name string) (string, error) {
		idx := columns[name]
		if idx >= len(row) {
			return "", fmt.Errorf("missing value for %q", name)
		}

		return strings.TrimSpace(row[idx]), nil
	}

	var record domain.RateRecord

	ageValue, err := field("age")
	if err != nil {
		return record, err
	}

	age, err := strconv.Atoi(ageValue)
	if err != nil {
		return record, fmt.Errorf("invalid age %q", ageValue)
	}

	if age < domain.MinAge || age > domain.MaxAge {
		return record, fmt.Errorf("age %d outside supported range %d-%d", age, domain.MinAge, domain.MaxAge)
	}

	familyValue, err := field("family_size")
	if err != nil {
		return record, err
	}

	familySize := domain.FamilySize(familyValue)
	if familySize != domain.FamilySizeM && familySize != domain.FamilySizeMPlusOne {
		return record, fmt.Errorf("unknown family size %q", familyValue)
	}

	record.Age = age
	record.FamilySize = familySize

	amounts := []struct {
		name string
		dest *float64
	}{
		{"option_1", &record.Option1},
		{"option_2", &record.Option2},
		{"option_3", &record.Option3},
		{"option_4", &record.Option4},
	}

	for _, amount := range amounts {
		value, err := field(amount.name)
		if err != nil {
			return record, err
		}

		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return record, fmt.Errorf("invalid %s %q", amount.name, value)
		}

		if parsed <= 0 {
			return record, fmt.Errorf("%s must be positive, got %v", amount.name, parsed)
		}

		*amount.dest = parsed
	}

	return record, nil
}
