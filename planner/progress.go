package planner

import (
	"sync"

	"roamio/models"
)

// Generation stages, strictly forward-only.
const (
	StageAnalyzing  = "analyzing"
	StageSearching  = "searching"
	StageOptimizing = "optimizing"
	StageFinalizing = "finalizing"
	StageComplete   = "complete"
	StageError      = "error"
)

var stageRank = map[string]int{
	StageAnalyzing:  0,
	StageSearching:  1,
	StageOptimizing: 2,
	StageFinalizing: 3,
	StageComplete:   4,
	StageError:      4,
}

// Reporter receives progress updates during generation. May be nil.
type Reporter func(models.GenerationProgress)

// tracker enforces the forward-only stage order; late or out-of-order
// updates are dropped instead of rewinding the UI.
type tracker struct {
	mu     sync.Mutex
	rank   int
	report Reporter
}

func newTracker(report Reporter) *tracker {
	return &tracker{rank: -1, report: report}
}

func (t *tracker) advance(stage string, percent int, message string) {
	if t.report == nil {
		return
	}
	t.mu.Lock()
	rank, ok := stageRank[stage]
	if !ok || rank <= t.rank {
		t.mu.Unlock()
		return
	}
	t.rank = rank
	t.mu.Unlock()

	t.report(models.GenerationProgress{Stage: stage, Percent: percent, Message: message})
}
