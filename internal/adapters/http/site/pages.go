package site

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/crease/internal/domain/batting"
	"github.com/okian/crease/internal/domain/types"
	"github.com/okian/crease/internal/domain/wheel"
)

//go:generate templ generate

// BatterPageData is everything the batter page renders.
type BatterPageData struct {
	Summary     types.BatterSummary
	Wheels      types.WheelSet
	Progression types.Progression
	Query       url.Values
}

const paramFixture = "fixture"

type filterField struct {
	name, label string
}

// filterFields are the numeric inputs of the filter form, in display order.
var filterFields = []filterField{
	{"innings", "Innings"},
	{"over_from", "Overs from"},
	{"over_to", "to"},
	{"balls_from", "Balls faced from"},
	{"balls_to", "to"},
}

func isSelected(q url.Values, key, value string) bool {
	return slices.Contains(q[key], value)
}

type infoCell struct {
	label, value string
}

func infoCells(s types.BatterSummary) []infoCell {
	return []infoCell{
		{"Hand", s.Hand.String()},
		{"Runs", strconv.Itoa(s.Runs)},
		{"Balls", strconv.Itoa(s.Balls)},
		{"Outs", strconv.Itoa(s.Outs)},
		{"Average", average(s.Average)},
		{"Strike rate", fmt.Sprintf("%.2f", s.StrikeRate)},
		{"Boundary %", fmt.Sprintf("%.1f", s.BoundaryPct)},
		{"Dot ball %", fmt.Sprintf("%.1f", s.DotBallPct)},
	}
}

// average renders an undefined average as "-".
func average(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// progressionHeaders follow the key column of every progression table.
var progressionHeaders = []string{"Runs", "Balls", "Outs", "Average", "Strike rate", "Boundary %", "Dot ball %"}

func progressionRow(g batting.Group) []string {
	return []string{
		strconv.Itoa(g.Key),
		strconv.Itoa(g.Runs),
		strconv.Itoa(g.Balls),
		strconv.Itoa(g.Outs),
		average(g.Average),
		fmt.Sprintf("%.2f", g.StrikeRate),
		fmt.Sprintf("%.1f", g.BoundaryPct),
		fmt.Sprintf("%.1f", g.DotBallPct),
	}
}

func ballsFacedTitle(w batting.Window) string {
	return fmt.Sprintf("Progression by Balls Faced (%d to %d)", w.From, w.To)
}

func figureClass(kind wheel.Kind) string {
	if kind == wheel.KindScoringAreas {
		return "wheel scoring"
	}
	return "wheel"
}

func caption(kind wheel.Kind) string {
	switch kind {
	case wheel.KindBoundaries:
		return "Boundaries"
	case wheel.KindCaughtOut:
		return "Caught Out"
	default:
		return "Scoring Areas"
	}
}

// inlineSVG drops the XML prolog so the document can sit inside HTML.
func inlineSVG(doc string) string {
	if i := strings.Index(doc, "<svg"); i > 0 {
		return doc[i:]
	}
	return doc
}

func batterURL(name string) string {
	return "/batter/" + url.PathEscape(name)
}
