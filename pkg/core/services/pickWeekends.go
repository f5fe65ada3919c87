package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duartecruz/weekend-picker/pkg/core/candidates"
	"github.com/duartecruz/weekend-picker/pkg/core/model"
	"github.com/duartecruz/weekend-picker/pkg/core/ranking"
	"github.com/duartecruz/weekend-picker/pkg/report"
)

// PickResult holds everything produced by one picking run.
type PickResult struct {
	RunID      string
	Candidates []candidates.WeekendCandidate
	Ranked     []ranking.WeekendEvaluation
	Payload    report.ResultPayload
}

// PickWeekends generates weekend candidates for the input window, ranks
// them under the two-phase hard/soft constraint policy, and assembles the
// result payload. An empty window or an unsatisfiable set of constraints is
// a valid outcome, never an error.
func PickWeekends(ctx context.Context, in model.InputData, topN int, logger *zap.Logger) (*PickResult, error) {
	runID := uuid.New().String()
	logger.Info("Picking weekends",
		zap.String("run_id", runID),
		zap.String("min_date", in.MinDate.Format(model.ISODate)),
		zap.String("max_date", in.MaxDate.Format(model.ISODate)),
		zap.Int("people", len(in.People)),
		zap.Int("top_n", topN))

	weekends := candidates.Generate(in.MinDate, in.MaxDate)
	logger.Debug("Generated weekend candidates", zap.Int("count", len(weekends)))

	ranked := ranking.RankWeekends(in, weekends, topN)
	if len(ranked) > 0 {
		logger.Info("Ranking complete",
			zap.Int("results", len(ranked)),
			zap.String("selection_mode", string(ranked[0].SelectionMode)),
			zap.String("best_start", ranked[0].Weekend.StartDate.Format(model.ISODate)))
	} else {
		logger.Info("Ranking complete", zap.Int("results", 0))
	}

	payload := report.BuildResultPayload(in, runID, ranked)

	return &PickResult{
		RunID:      runID,
		Candidates: weekends,
		Ranked:     ranked,
		Payload:    payload,
	}, nil
}
