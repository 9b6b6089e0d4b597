package gemini

import (
	"fmt"
	"strconv"
	"strings"

	"uncharted_escape/internal/domain"
)

// The model honours the response schema most of the time; these helpers
// accept the common drifts (numbers as strings, "$1,800", missing day numbers).

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the first non-empty string among paths, or "".
func lookupStr(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s, ok := lookupAny(m, p).(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// floatFlexible: number from several paths (float64/int/string like "$1,800").
func floatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.NewReplacer("$", "", "USD", "", ",", "", " ", "").Replace(v)
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func intFlexible(m map[string]any, paths ...string) *int {
	if f := floatFlexible(m, paths...); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

// stringsOf keeps non-empty strings from a JSON array, accepting {name} objects too.
func stringsOf(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, it := range raw {
		switch t := it.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			if n := lookupStr(t, "name", "title"); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

func mapDetails(p map[string]any) (domain.GeneratedDetails, error) {
	desc := lookupStr(p, "description")
	if desc == "" {
		return domain.GeneratedDetails{}, fmt.Errorf("%w: missing description", domain.ErrMalformed)
	}
	price := floatFlexible(p, "priceEstimate", "price_estimate", "price")
	if price == nil || *price < 0 {
		return domain.GeneratedDetails{}, fmt.Errorf("%w: missing priceEstimate", domain.ErrMalformed)
	}

	raw, _ := lookupAny(p, "itinerary").([]any)
	days := make([]domain.DayPlan, 0, len(raw))
	for i, it := range raw {
		d, ok := it.(map[string]any)
		if !ok {
			continue
		}
		plan := domain.DayPlan{Day: i + 1, Title: lookupStr(d, "title")}
		if n := intFlexible(d, "day"); n != nil && *n > 0 {
			plan.Day = *n
		}
		if acts, ok := d["activities"].([]any); ok {
			plan.Activities = stringsOf(acts)
		}
		if plan.Activities == nil {
			plan.Activities = []string{}
		}
		days = append(days, plan)
	}

	return domain.GeneratedDetails{Description: desc, PriceEstimate: *price, Itinerary: days}, nil
}
