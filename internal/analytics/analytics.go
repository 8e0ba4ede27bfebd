// Package analytics derives dashboard statistics from a goal collection.
// Every function is pure: results depend only on the goals passed in, and
// nothing is cached between calls.
package analytics

import (
	"math"

	"github.com/templui/goalpost/internal/model"
)

// Bucket is one bar of the progress distribution histogram.
type Bucket struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"` // Inclusive
	Count int    `json:"count"`
}

// Contains reports whether progress lies within the bucket's inclusive range.
func (b Bucket) Contains(progress int) bool {
	return progress >= b.Min && progress <= b.Max
}

type MilestoneStatus struct {
	Completed int `json:"completed"`
	Remaining int `json:"remaining"`
}

func (m MilestoneStatus) Total() int {
	return m.Completed + m.Remaining
}

type GoalTypes struct {
	Personal int `json:"personal"`
	Team     int `json:"team"`
}

// Report bundles every derived statistic for one goal collection.
type Report struct {
	TotalGoals      int             `json:"totalGoals"`
	OverallProgress int             `json:"overallProgress"`
	Buckets         []Bucket        `json:"buckets"`
	Milestones      MilestoneStatus `json:"milestones"`
	GoalTypes       GoalTypes       `json:"goalTypes"`
}

// ProgressBuckets returns the fixed, ordered histogram ranges with zero
// counts. The ranges are contiguous and cover 0 through 100.
func ProgressBuckets() []Bucket {
	return []Bucket{
		{Label: "Not Started", Min: 0, Max: 10},
		{Label: "Early Stage", Min: 11, Max: 30},
		{Label: "In Progress", Min: 31, Max: 60},
		{Label: "Advanced", Min: 61, Max: 90},
		{Label: "Completed", Min: 91, Max: 100},
	}
}

// BucketByProgress counts each goal in the first bucket containing its
// progress. Progress outside 0..100 is not counted anywhere.
func BucketByProgress(goals []model.Goal) []Bucket {
	buckets := ProgressBuckets()
	for _, g := range goals {
		for i := range buckets {
			if buckets[i].Contains(g.Progress) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// MilestoneStatusSummary totals completed and remaining milestones nested in
// the goals. Goals whose milestones were not loaded contribute nothing.
func MilestoneStatusSummary(goals []model.Goal) MilestoneStatus {
	var status MilestoneStatus
	for _, g := range goals {
		for _, m := range g.Milestones {
			if m.IsCompleted {
				status.Completed++
			} else {
				status.Remaining++
			}
		}
	}
	return status
}

func GoalTypeSummary(goals []model.Goal) GoalTypes {
	var types GoalTypes
	for _, g := range goals {
		if g.IsTeam() {
			types.Team++
		} else {
			types.Personal++
		}
	}
	return types
}

// OverallProgress is the mean progress rounded half up, or 0 for no goals.
func OverallProgress(goals []model.Goal) int {
	if len(goals) == 0 {
		return 0
	}

	sum := 0
	for _, g := range goals {
		sum += g.Progress
	}

	mean := float64(sum) / float64(len(goals))
	return int(math.Floor(mean + 0.5))
}

// Percent returns part as a rounded percentage of whole, or 0 if whole is 0.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(whole) + 0.5))
}

func Summarize(goals []model.Goal) Report {
	return Report{
		TotalGoals:      len(goals),
		OverallProgress: OverallProgress(goals),
		Buckets:         BucketByProgress(goals),
		Milestones:      MilestoneStatusSummary(goals),
		GoalTypes:       GoalTypeSummary(goals),
	}
}
