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
	"github.com/stretchr/testify/require"
)

func TestLookupSegment(t *testing.T) {
	t.Run("high_value", func(t *testing.T) {
		s, ok := LookupSegment("high_value")
		require.True(t, ok)
		assert.Equal(t, "High Value Customers", s.Name)
		assert.Equal(t, "Total spent > $3000 OR Customer tier = platinum", s.Criteria)
		assert.NotEmpty(t, s.Characteristics)
	})
	t.Run("unknown", func(t *testing.T) {
		_, ok := LookupSegment("whales")
		assert.False(t, ok)
	})
	t.Run("name is case sensitive", func(t *testing.T) {
		_, ok := LookupSegment("LOYAL")
		assert.False(t, ok)
	})
}

func TestSegmentNames(t *testing.T) {
	assert.Equal(t, []string{"at_risk", "high_value", "loyal", "new_customers"}, SegmentNames())
}
