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

// In this file: customer score calculation.

import "strings"

// Score components:
//   - spending: up to 40 points, one point per $100 spent;
//   - frequency: up to 30 points, two points per purchase;
//   - recency: up to 20 points, decaying one point per five idle days;
//   - tier: up to 10 bonus points.
const (
	maxSpendingScore  = 40
	maxFrequencyScore = 30
	maxRecencyScore   = 20
)

// tierBonuses maps a customer tier to its score bonus.
var tierBonuses = map[string]float64{
	TierBronze:   0,
	TierSilver:   3,
	TierGold:     6,
	TierPlatinum: 10,
}

// Breakdown is the per-component score contribution.
type Breakdown struct {
	Spending  float64 `json:"spending_score"`
	Frequency float64 `json:"frequency_score"`
	Recency   float64 `json:"recency_score"`
	Tier      float64 `json:"tier_score"`
}

// Score is the composite customer score with its component breakdown and
// score-band recommendations.
type Score struct {
	Total           float64   `json:"total_score"`
	Grade           string    `json:"grade"`
	Breakdown       Breakdown `json:"breakdown"`
	Recommendations []string  `json:"recommendations"`
}

// CalculateScore computes the composite score from spend, purchase count,
// purchase recency and tier.  Unknown tiers contribute no bonus.
func CalculateScore(totalSpent float64, totalPurchases, daysSinceLastPurchase int, tier string) Score {
	b := Breakdown{
		Spending:  round1(min(totalSpent/100, maxSpendingScore)),
		Frequency: round1(min(float64(totalPurchases)*2, maxFrequencyScore)),
		Recency:   round1(max(maxRecencyScore-float64(daysSinceLastPurchase)/5, 0)),
		Tier:      tierBonuses[strings.ToLower(tier)],
	}
	total := round1(b.Spending + b.Frequency + b.Recency + b.Tier)

	return Score{
		Total:           total,
		Grade:           grade(total),
		Breakdown:       b,
		Recommendations: scoreRecommendations(total),
	}
}

func grade(total float64) string {
	switch {
	case total >= 80:
		return "A+"
	case total >= 70:
		return "A"
	case total >= 60:
		return "B"
	case total >= 50:
		return "C"
	default:
		return "D"
	}
}

func scoreRecommendations(total float64) []string {
	switch {
	case total < 50:
		return []string{
			"Consider re-engagement campaign",
			"Offer personalized discounts",
			"Review customer satisfaction",
		}
	case total < 70:
		return []string{
			"Upsell opportunities available",
			"Encourage more frequent purchases",
			"Consider tier upgrade incentives",
		}
	default:
		return []string{
			"Excellent customer - maintain relationship",
			"Consider VIP treatment",
			"Leverage for referrals",
		}
	}
}
