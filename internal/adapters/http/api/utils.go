// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/zhuangxuhong/marathon-shoe-analysis/internal/domain/types"
)

// parseRecordQuery reads the browse filter parameters shared by the
// records and export endpoints. String-list parameters accept repeated
// keys and comma-separated values; blank values are ignored, and a
// parameter that ends up empty leaves its dimension unrestricted.
func parseRecordQuery(values url.Values) (types.RecordQuery, error) {
	var q types.RecordQuery
	var err error

	if q.YearFrom, err = intParam(values, "year_from"); err != nil {
		return q, err
	}
	if q.YearTo, err = intParam(values, "year_to"); err != nil {
		return q, err
	}
	if q.MaxRank, err = intParam(values, "max_rank"); err != nil {
		return q, err
	}
	if q.Limit, err = intParam(values, "limit"); err != nil {
		return q, err
	}

	years := listParam(values, "years")
	if len(years) > 0 {
		q.Years = make([]int, len(years))
		for i, y := range years {
			q.Years[i], err = strconv.Atoi(y)
			if err != nil {
				return q, fmt.Errorf("%w: years value %q is not a number", ErrBadRequest, y)
			}
		}
	}

	if events := listParam(values, "events"); len(events) > 0 {
		q.Events = events
	}
	if cohorts := listParam(values, "cohorts"); len(cohorts) > 0 {
		q.Cohorts = cohorts
	}
	if brands := listParam(values, "brands"); len(brands) > 0 {
		q.Brands = brands
	}
	if brandTypes := listParam(values, "types"); len(brandTypes) > 0 {
		q.Types = brandTypes
	}
	q.Query = strings.TrimSpace(values.Get("q"))

	return q, nil
}

// intParam parses an optional non-negative integer parameter; absent or
// blank reads as zero.
func intParam(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s value %q is not a non-negative number", ErrBadRequest, name, raw)
	}
	return n, nil
}

// listParam collects a string-list parameter from repeated keys and
// comma-separated values, dropping blanks.
func listParam(values url.Values, name string) []string {
	var out []string
	for _, v := range values[name] {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
