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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_keyMetrics(t *testing.T) {
	ins := Analyze(alice, testNow)

	assert.Equal(t, "1001", ins.CustomerID)
	assert.Equal(t, "Alice Johnson", ins.CustomerName)
	assert.Equal(t, testNow, ins.AnalysisDate)
	assert.Equal(t, 688, ins.KeyMetrics.CustomerLifetimeDays)
	assert.InDelta(t, 163.38, ins.KeyMetrics.AverageOrderValue, 0.01)
	assert.InDelta(t, 2450.75, ins.KeyMetrics.TotalCLV, 0.01)
}

func TestAnalyze_rules(t *testing.T) {
	t.Run("gold customer with high AOV", func(t *testing.T) {
		ins := Analyze(alice, testNow)
		assert.Contains(t, ins.BehavioralInsights, "High-value purchaser - prefers quality over quantity")
		assert.Contains(t, ins.BehavioralInsights, "Loyal customer with strong brand affinity")
		// alice has two preferred categories, not "diverse".
		assert.NotContains(t, ins.BehavioralInsights, "Diverse interests - good cross-sell candidate")
		// monthly frequency < 1
		assert.Contains(t, ins.Opportunities, "Increase purchase frequency through targeted campaigns")
	})

	t.Run("silver big spender is upgrade eligible", func(t *testing.T) {
		c := alice
		c.CustomerTier = TierSilver
		ins := Analyze(c, testNow)
		assert.Contains(t, ins.Opportunities, "Eligible for tier upgrade to Gold")
	})

	t.Run("stale purchaser flagged as churn risk", func(t *testing.T) {
		c := alice
		c.LastPurchase = "2023-11-01"
		ins := Analyze(c, testNow)
		assert.Contains(t, ins.RiskFactors, "No purchase in 92 days - churn risk")
	})

	t.Run("high risk score flagged", func(t *testing.T) {
		c := alice
		c.RiskScore = 0.25
		ins := Analyze(c, testNow)
		assert.Contains(t, ins.RiskFactors, "High churn risk score - needs attention")
	})

	t.Run("category promotion targets first preference", func(t *testing.T) {
		ins := Analyze(alice, testNow)
		assert.Contains(t, ins.Recommendations, "Target with electronics category promotions")
	})

	t.Run("no categories still yields recommendations", func(t *testing.T) {
		c := alice
		c.PreferredCategories = nil
		ins := Analyze(c, testNow)
		assert.NotEmpty(t, ins.Recommendations)
		for _, r := range ins.Recommendations {
			assert.NotContains(t, r, "category promotions")
		}
	})
}

func TestAnalyze_deterministic(t *testing.T) {
	assert.Equal(t, Analyze(alice, testNow), Analyze(alice, testNow))
}
