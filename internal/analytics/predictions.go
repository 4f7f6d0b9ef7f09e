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

// In this file: predictive analytics.  The predictions are derived
// deterministically from the customer record, so repeated reads of the same
// record return the same values.

import (
	"hash/fnv"
	"time"
)

// model versions reported in prediction output.
var modelVersions = map[string]string{
	"churn":          "v1.2",
	"ltv":            "v2.1",
	"recommendation": "v1.8",
}

// categoryCatalogue is the full set of categories the recommendation model
// draws from.
var categoryCatalogue = []string{
	"electronics", "books", "clothing", "home", "sports", "beauty",
}

var (
	contactChannels = []string{"email", "sms", "push_notification"}
	contactSlots    = []string{
		"Monday 10-12 AM",
		"Tuesday 2-4 PM",
		"Wednesday 6-8 PM",
		"Thursday 11-1 PM",
		"Friday 3-5 PM",
	}
)

// recommendedCategoryCount is how many categories the model recommends.
const recommendedCategoryCount = 3

// Predictions is the model output for a single customer.
type Predictions struct {
	CustomerID                    string            `json:"customer_id"`
	GeneratedAt                   time.Time         `json:"generated_at"`
	ChurnProbability              float64           `json:"churn_probability"`
	PredictedLifetimeValue        float64           `json:"predicted_lifetime_value"`
	NextPurchaseProbability30Days float64           `json:"next_purchase_probability_30_days"`
	RecommendedCategories         []string          `json:"recommended_categories"`
	OptimalContactTime            string            `json:"optimal_contact_time"`
	PreferredChannel              string            `json:"preferred_channel"`
	ModelVersions                 map[string]string `json:"model_versions"`
}

// Predict generates predictions for the customer as of now.
func Predict(c Customer, now time.Time) Predictions {
	h := idHash(c.ID)

	return Predictions{
		CustomerID:                    c.ID,
		GeneratedAt:                   now,
		ChurnProbability:              churnProbability(c),
		PredictedLifetimeValue:        predictedLTV(c),
		NextPurchaseProbability30Days: nextPurchaseProbability(c, now),
		RecommendedCategories:         recommendCategories(c, h),
		OptimalContactTime:            contactSlots[h%uint64(len(contactSlots))],
		PreferredChannel:              contactChannels[h%uint64(len(contactChannels))],
		ModelVersions:                 modelVersions,
	}
}

// churnProbability scales the stored risk score into the churn probability
// band [0.05, 0.45].
func churnProbability(c Customer) float64 {
	p := c.RiskScore * 1.5
	return round3(min(max(p, 0.05), 0.45))
}

// predictedLTV projects lifetime value from spend to date, boosted by tier.
func predictedLTV(c Customer) float64 {
	mult := map[string]float64{
		TierBronze:   1.5,
		TierSilver:   2.0,
		TierGold:     2.5,
		TierPlatinum: 3.0,
	}[c.CustomerTier]
	if mult == 0 {
		mult = 1.5
	}
	return round2(min(max(c.TotalSpent*mult, 1000), 10000))
}

// nextPurchaseProbability decays with purchase recency: a purchase
// yesterday puts it near the top of the [0.1, 0.8] band, half a year of
// silence near the bottom.
func nextPurchaseProbability(c Customer, now time.Time) float64 {
	days := c.DaysSinceLastPurchase(now)
	p := 0.8 - float64(days)/180*0.7
	return round3(min(max(p, 0.1), 0.8))
}

// recommendCategories returns the customer's preferred categories padded
// from the catalogue up to recommendedCategoryCount, starting at a
// hash-chosen offset.
func recommendCategories(c Customer, h uint64) []string {
	out := make([]string, 0, recommendedCategoryCount)
	seen := make(map[string]bool)
	for _, cat := range c.PreferredCategories {
		if len(out) == recommendedCategoryCount {
			return out
		}
		if !seen[cat] {
			out = append(out, cat)
			seen[cat] = true
		}
	}
	for i := range categoryCatalogue {
		if len(out) == recommendedCategoryCount {
			break
		}
		cat := categoryCatalogue[(int(h%uint64(len(categoryCatalogue)))+i)%len(categoryCatalogue)]
		if !seen[cat] {
			out = append(out, cat)
			seen[cat] = true
		}
	}
	return out
}

func idHash(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}
