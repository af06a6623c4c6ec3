// Package regions maps station state codes to named snow regions and
// averages regional conditions. The mapping is a priority-ordered rule list:
// the first rule containing a state wins. Rules are required to be disjoint;
// Validate enforces that at startup so region assignment never depends on
// iteration order.
package regions

import (
	"fmt"

	"github.com/chrissnell/snowtracker/internal/analytics"
	"github.com/chrissnell/snowtracker/internal/stats"
)

// DefaultRegionName is reported for stations whose state matches no rule.
const DefaultRegionName = "Western U.S."

// Rule names a region and the state codes it covers.
type Rule struct {
	Name   string
	States []string
}

// DefaultRules is the standard region table for the mountain West.
var DefaultRules = []Rule{
	{Name: "Pacific Northwest", States: []string{"WA", "OR"}},
	{Name: "Sierra Nevada", States: []string{"CA", "NV"}},
	{Name: "Northern Rockies", States: []string{"ID", "MT"}},
	{Name: "Central Rockies", States: []string{"WY", "CO", "UT"}},
	{Name: "Southwest", States: []string{"AZ", "NM"}},
	{Name: "Alaska", States: []string{"AK"}},
}

// Validate returns an error if any state code appears in more than one rule.
func Validate(rules []Rule) error {
	seen := make(map[string]string)
	for _, r := range rules {
		for _, st := range r.States {
			if prev, ok := seen[st]; ok {
				return fmt.Errorf("state %s appears in regions %q and %q", st, prev, r.Name)
			}
			seen[st] = r.Name
		}
	}
	return nil
}

// Lookup returns the region name for a state code, or DefaultRegionName when
// no rule matches.
func Lookup(rules []Rule, state string) string {
	for _, r := range rules {
		for _, st := range r.States {
			if st == state {
				return r.Name
			}
		}
	}
	return DefaultRegionName
}

// Average returns the mean percent-of-median across all roster stations in
// the named region with a known value, or 0 when none have one.
func Average(rules []Rule, region string, roster []analytics.StationMeta) float64 {
	var vals []float64
	for _, s := range roster {
		if Lookup(rules, s.StateCode) != region {
			continue
		}
		if s.PctOfMedian == nil {
			continue
		}
		vals = append(vals, *s.PctOfMedian)
	}
	return stats.Mean(vals)
}
