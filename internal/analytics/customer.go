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

// Package analytics implements the customer analytics computations:
// scoring, predictions, segmentation and insight generation.  All functions
// are pure: given the same customer record and reference time they produce
// the same output.
package analytics

import (
	"math"
	"time"
)

// DateLayout is the date format used in customer records.
const DateLayout = "2006-01-02"

// Customer tiers, lowest to highest.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// Customer is a customer record as served by the customer API.
type Customer struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Age                 int      `json:"age"`
	Location            string   `json:"location"`
	JoinDate            string   `json:"join_date"`
	TotalPurchases      int      `json:"total_purchases"`
	TotalSpent          float64  `json:"total_spent"`
	LastPurchase        string   `json:"last_purchase"`
	PreferredCategories []string `json:"preferred_categories"`
	CustomerTier        string   `json:"customer_tier"`
	RiskScore           float64  `json:"risk_score"`
}

// DaysSinceLastPurchase returns the number of whole days between the last
// purchase and now.  Returns 0 if the last purchase date is absent or
// unparsable.
func (c Customer) DaysSinceLastPurchase(now time.Time) int {
	return daysSince(c.LastPurchase, now)
}

// LifetimeDays returns the number of whole days the customer has been with
// us, i.e. since the join date.
func (c Customer) LifetimeDays(now time.Time) int {
	return daysSince(c.JoinDate, now)
}

// AverageOrderValue returns total spend divided by the number of purchases,
// rounded to cents.  Returns 0 for customers with no purchases.
func (c Customer) AverageOrderValue() float64 {
	if c.TotalPurchases == 0 {
		return 0
	}
	return round2(c.TotalSpent / float64(c.TotalPurchases))
}

// MonthlyPurchaseFrequency returns the average number of purchases per
// 30-day period of the customer's lifetime.
func (c Customer) MonthlyPurchaseFrequency(now time.Time) float64 {
	days := c.LifetimeDays(now)
	if days <= 0 {
		return 0
	}
	return round2(float64(c.TotalPurchases) / (float64(days) / 30))
}

func daysSince(date string, now time.Time) int {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0
	}
	d := int(now.Sub(t).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
