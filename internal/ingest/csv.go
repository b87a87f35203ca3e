package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/crease/internal/domain/model"
)

// Column names written by WriteCSV. ReadCSV also accepts the aliases in
// columnAliases.
const (
	ColFixture       = "fixture_id"
	ColInnings       = "innings"
	ColOver          = "over"
	ColBall          = "ball"
	ColBatter        = "batter"
	ColBatterHand    = "batter_hand"
	ColBowler        = "bowler"
	ColRunsScored    = "runs_scored"
	ColShotAngle     = "shot_angle"
	ColShotMagnitude = "shot_magnitude"
	ColDismissalType = "dismissal_type"
	ColIsOut         = "is_out"
)

// Header is the column order written by WriteCSV.
var Header = []string{
	ColFixture, ColInnings, ColOver, ColBall, ColBatter, ColBatterHand, ColBowler,
	ColRunsScored, ColShotAngle, ColShotMagnitude, ColDismissalType, ColIsOut,
}

var columnAliases = map[string]string{
	"fixtureid":     ColFixture,
	"fixture":       ColFixture,
	"over_number":   ColOver,
	"ball_number":   ColBall,
	"battinghand":   ColBatterHand,
	"batterhand":    ColBatterHand,
	"runs":          ColRunsScored,
	"runsscored":    ColRunsScored,
	"shotangle":     ColShotAngle,
	"shotmagnitude": ColShotMagnitude,
	"dismissaltype": ColDismissalType,
	"isout":         ColIsOut,
}

var requiredColumns = []string{ColBatter, ColBatterHand, ColRunsScored}

// ReadCSV parses ball-by-ball rows with a header line. Column order is free
// and unknown columns are ignored. Empty cells leave optional fields unset.
func ReadCSV(r io.Reader) ([]model.Delivery, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := indexColumns(head)
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	var out []model.Delivery
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}
		d, err := parseRow(cols, rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidRow, line, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func indexColumns(head []string) map[string]int {
	cols := make(map[string]int, len(head))
	for i, h := range head {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if alias, ok := columnAliases[name]; ok {
			name = alias
		}
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

type row struct {
	cols map[string]int
	rec  []string
}

func (r row) get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r row) integer(col string) (int, error) {
	v := r.get(col)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// feeds export whole numbers as 4.0
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("%s: %q is not an integer", col, v)
		}
		n = int(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: %d is negative", col, n)
	}
	return n, nil
}

func (r row) number(col string) (*float64, error) {
	v := r.get(col)
	if v == "" || strings.EqualFold(v, "nan") {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a number", col, v)
	}
	return &f, nil
}

func (r row) flag(col string) (*bool, error) {
	v := r.get(col)
	if v == "" {
		return nil, nil
	}
	switch strings.ToLower(v) {
	case "1", "true", "t", "yes", "y", "1.0":
		return model.Bool(true), nil
	case "0", "false", "f", "no", "n", "0.0":
		return model.Bool(false), nil
	}
	return nil, fmt.Errorf("%s: %q is not a boolean", col, v)
}

func parseRow(cols map[string]int, rec []string) (model.Delivery, error) {
	r := row{cols: cols, rec: rec}
	d := model.Delivery{
		FixtureID: r.get(ColFixture),
		Batter:    r.get(ColBatter),
		Bowler:    r.get(ColBowler),
	}
	if d.Batter == "" {
		return d, errors.New("batter is empty")
	}

	hand, err := model.ParseHandedness(r.get(ColBatterHand))
	if err != nil {
		return d, err
	}
	d.Hand = hand

	if d.Innings, err = r.integer(ColInnings); err != nil {
		return d, err
	}
	if d.Over, err = r.integer(ColOver); err != nil {
		return d, err
	}
	if d.Ball, err = r.integer(ColBall); err != nil {
		return d, err
	}
	if d.RunsScored, err = r.integer(ColRunsScored); err != nil {
		return d, err
	}
	if d.ShotAngle, err = r.number(ColShotAngle); err != nil {
		return d, err
	}
	if d.ShotMagnitude, err = r.number(ColShotMagnitude); err != nil {
		return d, err
	}
	if dt := r.get(ColDismissalType); dt != "" {
		d.DismissalType = model.String(dt)
	}
	if d.IsOut, err = r.flag(ColIsOut); err != nil {
		return d, err
	}
	return d, nil
}

// WriteCSV writes deliveries with Header as the first line.
func WriteCSV(w io.Writer, deliveries []model.Delivery) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range deliveries {
		if err := cw.Write(record(&deliveries[i])); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(d *model.Delivery) []string {
	rec := []string{
		d.FixtureID,
		strconv.Itoa(d.Innings),
		strconv.Itoa(d.Over),
		strconv.Itoa(d.Ball),
		d.Batter,
		d.Hand.String(),
		d.Bowler,
		strconv.Itoa(d.RunsScored),
		"", "", "", "",
	}
	if d.ShotAngle != nil {
		rec[8] = strconv.FormatFloat(*d.ShotAngle, 'f', -1, 64)
	}
	if d.ShotMagnitude != nil {
		rec[9] = strconv.FormatFloat(*d.ShotMagnitude, 'f', -1, 64)
	}
	if d.DismissalType != nil {
		rec[10] = *d.DismissalType
	}
	if d.IsOut != nil {
		rec[11] = strconv.FormatBool(*d.IsOut)
	}
	return rec
}
