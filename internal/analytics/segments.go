// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package analytics

// In this file: customer segment catalogue.

import (
	"slices"
)

// Segment describes a customer segment: its membership criteria and
// aggregate characteristics.
type Segment struct {
	Name             string   `json:"name"`
	Criteria         string   `json:"criteria"`
	CustomerCount    int      `json:"customer_count"`
	AvgLifetimeValue float64  `json:"avg_lifetime_value"`
	AvgRiskScore     float64  `json:"avg_risk_score"`
	Characteristics  []string `json:"characteristics"`
}

// segments is the static segment catalogue.
var segments = map[string]Segment{
	"high_value": {
		Name:             "High Value Customers",
		Criteria:         "Total spent > $3000 OR Customer tier = platinum",
		CustomerCount:    1,
		AvgLifetimeValue: 5670.25,
		AvgRiskScore:     0.05,
		Characteristics: []string{
			"High purchase frequency",
			"Multiple category preferences",
			"Low churn risk",
			"High engagement scores",
		},
	},
	"at_risk": {
		Name:             "At-Risk Customers",
		Criteria:         "Risk score > 0.2 OR Days since last purchase > 60",
		CustomerCount:    1,
		AvgLifetimeValue: 1200.50,
		AvgRiskScore:     0.25,
		Characteristics: []string{
			"Declining purchase frequency",
			"Limited category engagement",
			"Higher price sensitivity",
			"Lower response rates",
		},
	},
	"new_customers": {
		Name:             "New Customers",
		Criteria:         "Join date within last 6 months",
		CustomerCount:    1,
		AvgLifetimeValue: 1200.50,
		AvgRiskScore:     0.25,
		Characteristics: []string{
			"Still exploring preferences",
			"Higher engagement potential",
			"Price conscious",
			"Responsive to onboarding",
		},
	},
	"loyal": {
		Name:             "Loyal Customers",
		Criteria:         "Customer for > 2 years AND Total purchases > 20",
		CustomerCount:    1,
		AvgLifetimeValue: 5670.25,
		AvgRiskScore:     0.05,
		Characteristics: []string{
			"Consistent purchase patterns",
			"Brand advocates",
			"Low price sensitivity",
			"High retention rate",
		},
	},
}

// LookupSegment returns the segment with the given name.
func LookupSegment(name string) (Segment, bool) {
	s, ok := segments[name]
	return s, ok
}

// SegmentNames returns the sorted list of known segment names.
func SegmentNames() []string {
	names := make([]string, 0, len(segments))
	for name := range segments {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
