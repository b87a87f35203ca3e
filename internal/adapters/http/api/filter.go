package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	repository "github.com/okian/crease/internal/adapters/repository"
	"github.com/okian/crease/internal/domain/batting"
)

// Query parameter names accepted by the batter routes.
const (
	paramFixture  = "fixture"
	paramInnings  = "innings"
	paramOverFrom = "over_from"
	paramOverTo   = "over_to"
	paramBallFrom = "balls_from"
	paramBallTo   = "balls_to"
)

// ParseFilter reads the batter path value and the optional query filters.
// Fixture may be repeated; empty values are ignored.
func ParseFilter(r *http.Request) (repository.Filter, error) {
	f := repository.Filter{Batter: strings.TrimSpace(r.PathValue("batter"))}
	if f.Batter == "" {
		return f, errors.New("missing batter")
	}
	q := r.URL.Query()
	for _, id := range q[paramFixture] {
		if id = strings.TrimSpace(id); id != "" {
			f.FixtureIDs = append(f.FixtureIDs, id)
		}
	}
	var err error
	if f.Innings, err = nonNegative(q, paramInnings); err != nil {
		return f, err
	}
	if f.OverFrom, err = nonNegative(q, paramOverFrom); err != nil {
		return f, err
	}
	if f.OverTo, err = nonNegative(q, paramOverTo); err != nil {
		return f, err
	}
	if f.OverTo > 0 && f.OverFrom > f.OverTo {
		return f, fmt.Errorf("%s must not exceed %s", paramOverFrom, paramOverTo)
	}
	return f, nil
}

// ParseWindow reads the balls-faced window. Unset bounds are filled by
// batting.Window.Normalize downstream.
func ParseWindow(r *http.Request) (batting.Window, error) {
	q := r.URL.Query()
	var (
		w   batting.Window
		err error
	)
	if w.From, err = nonNegative(q, paramBallFrom); err != nil {
		return w, err
	}
	if w.To, err = nonNegative(q, paramBallTo); err != nil {
		return w, err
	}
	if w.To > 0 && w.From > w.To {
		return w, fmt.Errorf("%s must not exceed %s", paramBallFrom, paramBallTo)
	}
	return w, nil
}

func nonNegative(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q; must be a non-negative integer", key, raw)
	}
	return n, nil
}
