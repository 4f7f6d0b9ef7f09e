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

// In this file: rule-based customer insight generation.

import (
	"fmt"
	"time"
)

// KeyMetrics are the derived metrics reported with insights.
type KeyMetrics struct {
	CustomerLifetimeDays     int     `json:"customer_lifetime_days"`
	AverageOrderValue        float64 `json:"average_order_value"`
	MonthlyPurchaseFrequency float64 `json:"monthly_purchase_frequency"`
	TotalCLV                 float64 `json:"total_clv"`
}

// Insights is the combined behavioural analysis for a customer.
type Insights struct {
	CustomerID         string     `json:"customer_id"`
	CustomerName       string     `json:"customer_name"`
	AnalysisDate       time.Time  `json:"analysis_date"`
	KeyMetrics         KeyMetrics `json:"key_metrics"`
	BehavioralInsights []string   `json:"behavioral_insights"`
	Opportunities      []string   `json:"opportunities"`
	RiskFactors        []string   `json:"risk_factors"`
	Recommendations    []string   `json:"recommendations"`
}

// daypart names for the contact time recommendation.
var dayparts = []string{"Morning", "Afternoon", "Evening"}

// Analyze generates rule-based insights for the customer as of now.
func Analyze(c Customer, now time.Time) Insights {
	aov := c.AverageOrderValue()
	freq := c.MonthlyPurchaseFrequency(now)
	daysSinceLast := c.DaysSinceLastPurchase(now)

	ins := Insights{
		CustomerID:   c.ID,
		CustomerName: c.Name,
		AnalysisDate: now,
		KeyMetrics: KeyMetrics{
			CustomerLifetimeDays:     c.LifetimeDays(now),
			AverageOrderValue:        aov,
			MonthlyPurchaseFrequency: freq,
			TotalCLV:                 c.TotalSpent,
		},
		BehavioralInsights: []string{},
		Opportunities:      []string{},
		RiskFactors:        []string{},
		Recommendations:    []string{},
	}

	// behavioural insights
	if aov > 150 {
		ins.BehavioralInsights = append(ins.BehavioralInsights,
			"High-value purchaser - prefers quality over quantity")
	}
	if len(c.PreferredCategories) > 2 {
		ins.BehavioralInsights = append(ins.BehavioralInsights,
			"Diverse interests - good cross-sell candidate")
	}
	if c.CustomerTier == TierGold || c.CustomerTier == TierPlatinum {
		ins.BehavioralInsights = append(ins.BehavioralInsights,
			"Loyal customer with strong brand affinity")
	}

	// opportunities
	if freq < 1 {
		ins.Opportunities = append(ins.Opportunities,
			"Increase purchase frequency through targeted campaigns")
	}
	if c.CustomerTier == TierSilver && c.TotalSpent > 2000 {
		ins.Opportunities = append(ins.Opportunities,
			"Eligible for tier upgrade to Gold")
	}

	// risk factors
	if daysSinceLast > 30 {
		ins.RiskFactors = append(ins.RiskFactors,
			fmt.Sprintf("No purchase in %d days - churn risk", daysSinceLast))
	}
	if c.RiskScore > 0.2 {
		ins.RiskFactors = append(ins.RiskFactors,
			"High churn risk score - needs attention")
	}

	// recommendations
	if len(c.PreferredCategories) > 0 {
		ins.Recommendations = append(ins.Recommendations,
			fmt.Sprintf("Target with %s category promotions", c.PreferredCategories[0]))
	}
	ins.Recommendations = append(ins.Recommendations,
		"Send personalized product recommendations",
		fmt.Sprintf("Optimal contact time: %s", dayparts[idHash(c.ID)%uint64(len(dayparts))]),
	)

	return ins
}
