// Package loader reads the regional table from CSV or XLSX into the
// in-memory model. Any schema or data-quality problem aborts the load:
// defaulting a cell would silently corrupt every downstream ranking.
package loader

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/regiondev/internal/model"
)

// ErrSchema marks a structural problem with the input: a missing or
// duplicated column, a duplicate region, or an empty table.
var ErrSchema = eris.New("schema error")

// ErrDataQuality marks a missing or non-finite value in a required cell.
var ErrDataQuality = eris.New("data-quality error")

// requiredColumns is the exact header set the loader consumes, in no
// particular order. The region name column is "region".
var requiredColumns = []string{
	"region", "population",
	"income_per_capita", "mortality_rate", "life_expectancy",
	"income", "jobs", "housing", "health", "education", "environment",
	"safety", "civic_engagement", "accessibility", "community",
	"life_satisfaction",
}

// Options configures the load.
type Options struct {
	Sheet string // xlsx only; empty selects the first sheet
}

// Load reads the table at path, dispatching on the file extension.
func Load(path string, opts Options) (*model.Table, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		header, rows, err = readCSV(path)
	case ".xlsx":
		header, rows, err = readXLSX(path, opts.Sheet)
	default:
		return nil, eris.Wrapf(ErrSchema, "loader: unsupported input format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	table, err := buildTable(header, rows)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("loader: table loaded",
		zap.String("path", path),
		zap.Int("regions", table.Len()),
	)
	return table, nil
}

// buildTable validates the header, parses every row, and assembles the
// table. Row numbers in errors are 1-based including the header row.
func buildTable(header []string, rows [][]string) (*model.Table, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := cols[name]; dup {
			return nil, eris.Wrapf(ErrSchema, "loader: duplicate column %q", name)
		}
		cols[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, eris.Wrapf(ErrSchema, "loader: missing column %q", name)
		}
	}

	if len(rows) == 0 {
		return nil, eris.Wrap(ErrSchema, "loader: table has no data rows")
	}

	table := &model.Table{Regions: make([]model.Region, 0, len(rows))}
	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		rowNum := i + 2 // header is row 1

		name := strings.TrimSpace(cell(row, cols["region"]))
		if name == "" {
			return nil, eris.Wrapf(ErrDataQuality, "loader: row %d: empty region name", rowNum)
		}
		if seen[name] {
			return nil, eris.Wrapf(ErrSchema, "loader: duplicate region %q (row %d)", name, rowNum)
		}
		seen[name] = true

		r := model.Region{Name: name}
		fields := []struct {
			col string
			dst *float64
		}{
			{"population", &r.Population},
			{"income_per_capita", &r.IncomePerCapita},
			{"mortality_rate", &r.MortalityRate},
			{"life_expectancy", &r.LifeExpectancy},
			{"income", &r.Income},
			{"jobs", &r.Jobs},
			{"housing", &r.Housing},
			{"health", &r.Health},
			{"education", &r.Education},
			{"environment", &r.Environment},
			{"safety", &r.Safety},
			{"civic_engagement", &r.CivicEngagement},
			{"accessibility", &r.Accessibility},
			{"community", &r.Community},
			{"life_satisfaction", &r.LifeSatisfaction},
		}
		for _, f := range fields {
			v, err := parseCell(cell(row, cols[f.col]))
			if err != nil {
				return nil, eris.Wrapf(ErrDataQuality,
					"loader: region %q (row %d): column %q: %v", name, rowNum, f.col, err)
			}
			*f.dst = v
		}

		table.Regions = append(table.Regions, r)
	}

	return table, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, eris.New("missing value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, eris.Errorf("non-finite value: %q", s)
	}
	return v, nil
}
