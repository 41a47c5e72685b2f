// Conspiracy detection — transitive grouping over the relationship ledger.
package engine

import (
	"sort"

	"github.com/talgya/crownfall/internal/advisors"
)

// DetectedGroup is a cluster of advisors bound by established complicity.
type DetectedGroup struct {
	Members       []advisors.AdvisorID
	Strength      float64 // mean complicity across the group's qualifying edges
	AvgMotivation float64 // mean coup motivation of the members
}

// Score ranks a group by how dangerous it is right now.
func (g *DetectedGroup) Score() float64 {
	return g.Strength * g.AvgMotivation
}

// DetectConspiracies groups advisors transitively by complicity edges above
// the detection threshold and ranks the groups by strength × motivation.
// Imprisoned advisors can't plot and are excluded.
func (c *Court) DetectConspiracies() []*DetectedGroup {
	threshold := c.Tuning.DetectionEdgeThreshold

	// Undirected complicity between a pair: the stronger of the two edges.
	complicity := func(a, b advisors.AdvisorID) float64 {
		level := 0.0
		if r, ok := c.Relationships[RelKey{Source: a, Target: b}]; ok {
			level = r.ConspiracyLevel
		}
		if r, ok := c.Relationships[RelKey{Source: b, Target: a}]; ok && r.ConspiracyLevel > level {
			level = r.ConspiracyLevel
		}
		return level
	}

	var eligible []advisors.AdvisorID
	for _, a := range c.Advisors {
		if !a.Imprisoned {
			eligible = append(eligible, a.ID)
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i] < eligible[j] })

	// Union-find over qualifying edges.
	parent := make(map[advisors.AdvisorID]advisors.AdvisorID, len(eligible))
	var find func(advisors.AdvisorID) advisors.AdvisorID
	find = func(id advisors.AdvisorID) advisors.AdvisorID {
		if parent[id] != id {
			parent[id] = find(parent[id])
		}
		return parent[id]
	}
	for _, id := range eligible {
		parent[id] = id
	}
	for i, a := range eligible {
		for _, b := range eligible[i+1:] {
			if complicity(a, b) > threshold {
				parent[find(a)] = find(b)
			}
		}
	}

	clusters := make(map[advisors.AdvisorID][]advisors.AdvisorID)
	for _, id := range eligible {
		root := find(id)
		clusters[root] = append(clusters[root], id)
	}

	var groups []*DetectedGroup
	for _, members := range clusters {
		if len(members) < 2 {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })

		edgeSum, edgeCount := 0.0, 0
		motivationSum := 0.0
		for i, a := range members {
			motivationSum += advisors.CoupMotivation(c.AdvisorIndex[a])
			for _, b := range members[i+1:] {
				if level := complicity(a, b); level > threshold {
					edgeSum += level
					edgeCount++
				}
			}
		}
		strength := 0.0
		if edgeCount > 0 {
			strength = edgeSum / float64(edgeCount)
		}
		groups = append(groups, &DetectedGroup{
			Members:       members,
			Strength:      strength,
			AvgMotivation: motivationSum / float64(len(members)),
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Score() != groups[j].Score() {
			return groups[i].Score() > groups[j].Score()
		}
		return groups[i].Members[0] < groups[j].Members[0]
	})
	return groups
}
