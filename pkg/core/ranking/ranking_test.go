package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duartecruz/weekend-picker/pkg/core/candidates"
	"github.com/duartecruz/weekend-picker/pkg/core/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func singleDate(d time.Time) model.DateConstraint {
	return model.DateConstraint{Kind: model.ConstraintDate, Date: d}
}

func interval(start, end time.Time) model.DateConstraint {
	return model.DateConstraint{Kind: model.ConstraintInterval, Start: start, End: end}
}

// juneWeekend is the 2024-06-07..2024-06-09 candidate used across tests.
func juneWeekend() candidates.WeekendCandidate {
	return candidates.WeekendCandidate{
		StartDate: date(2024, time.June, 7),
		EndDate:   date(2024, time.June, 9),
		Days: [3]time.Time{
			date(2024, time.June, 7),
			date(2024, time.June, 8),
			date(2024, time.June, 9),
		},
	}
}

func TestEvaluatePersonSoftImpact_NoConstraints(t *testing.T) {
	person := model.PersonConstraints{Name: "Ana"}

	impact := EvaluatePersonSoftImpact(person, juneWeekend().Days)

	assert.Nil(t, impact, "no overlap must be signalled by absence, not an empty record")
}

func TestEvaluatePersonSoftImpact_IntervalOverlap(t *testing.T) {
	person := model.PersonConstraints{
		Name: "Ana",
		SoftConstraints: []model.DateConstraint{
			interval(date(2024, time.June, 7), date(2024, time.June, 8)),
		},
	}

	impact := EvaluatePersonSoftImpact(person, juneWeekend().Days)

	require.NotNil(t, impact)
	assert.Equal(t, "Ana", impact.PersonName)
	assert.Equal(t, []time.Time{date(2024, time.June, 7), date(2024, time.June, 8)}, impact.OverlappedDates)
	assert.Equal(t, []string{"interval:2024-06-07..2024-06-08"}, impact.MatchedConstraints)
}

func TestEvaluatePersonSoftImpact_OverlappedDatesDeduplicated(t *testing.T) {
	// Two constraints covering the same Saturday: the day appears once,
	// but both constraints are recorded in declaration order.
	person := model.PersonConstraints{
		Name: "Ana",
		SoftConstraints: []model.DateConstraint{
			interval(date(2024, time.June, 8), date(2024, time.June, 9)),
			singleDate(date(2024, time.June, 8)),
		},
	}

	impact := EvaluatePersonSoftImpact(person, juneWeekend().Days)

	require.NotNil(t, impact)
	assert.Equal(t, []time.Time{date(2024, time.June, 8), date(2024, time.June, 9)}, impact.OverlappedDates)
	assert.Equal(t, []string{
		"interval:2024-06-08..2024-06-09",
		"date:2024-06-08",
	}, impact.MatchedConstraints)
}

func TestEvaluatePersonHardImpact_ConstraintOutsideWeekend(t *testing.T) {
	person := model.PersonConstraints{
		Name:            "Rui",
		HardConstraints: []model.DateConstraint{singleDate(date(2024, time.June, 10))},
	}

	assert.Nil(t, EvaluatePersonHardImpact(person, juneWeekend().Days))
}

func TestEvaluateWeekendRelaxed_HardAndSoftAreIndependentAxes(t *testing.T) {
	// Rui is hit by a hard and a soft constraint on the same Saturday: the
	// day counts toward both the hard impact set and the soft overlap total.
	in := model.InputData{
		MinDate: date(2024, time.June, 7),
		MaxDate: date(2024, time.June, 9),
		People: []model.PersonConstraints{
			{
				Name:            "Rui",
				HardConstraints: []model.DateConstraint{singleDate(date(2024, time.June, 8))},
				SoftConstraints: []model.DateConstraint{singleDate(date(2024, time.June, 8))},
			},
			{Name: "Ana"},
		},
	}

	evaluation := EvaluateWeekendRelaxed(in, juneWeekend())

	assert.Equal(t, SelectionFallbackHard, evaluation.SelectionMode)
	assert.Equal(t, 1, evaluation.HardAffectedPeopleCount)
	assert.Equal(t, 1, evaluation.AffectedPeopleCount)
	assert.Equal(t, 1, evaluation.TotalSoftOverlapDays)
	assert.Equal(t, 1, evaluation.FullyFeasiblePeopleCount)

	require.Len(t, evaluation.HardAffectedPeople, 1)
	require.Len(t, evaluation.AffectedPeople, 1)
	assert.Equal(t, "Rui", evaluation.HardAffectedPeople[0].PersonName)
	assert.Equal(t, "Rui", evaluation.AffectedPeople[0].PersonName)
}

func TestEvaluateWeekendRelaxed_HardOnlyPersonStaysFullyFeasible(t *testing.T) {
	// Fully feasible is a soft-axis metric: a person blocked only by a hard
	// constraint still counts as fully feasible.
	in := model.InputData{
		People: []model.PersonConstraints{
			{
				Name:            "Rui",
				HardConstraints: []model.DateConstraint{singleDate(date(2024, time.June, 8))},
			},
		},
	}

	evaluation := EvaluateWeekendRelaxed(in, juneWeekend())

	assert.Equal(t, 1, evaluation.HardAffectedPeopleCount)
	assert.Equal(t, 0, evaluation.AffectedPeopleCount)
	assert.Equal(t, 1, evaluation.FullyFeasiblePeopleCount)
	assert.Equal(t, 0, evaluation.TotalSoftOverlapDays)
}

func TestEvaluateWeekend_StrictRejectsHardOverlap(t *testing.T) {
	in := model.InputData{
		People: []model.PersonConstraints{
			{
				Name:            "Rui",
				HardConstraints: []model.DateConstraint{singleDate(date(2024, time.June, 8))},
			},
		},
	}

	assert.Nil(t, EvaluateWeekend(in, juneWeekend()))
}

func TestEvaluateWeekend_StrictForcesHardImpactsAbsent(t *testing.T) {
	in := model.InputData{
		People: []model.PersonConstraints{
			{
				Name:            "Ana",
				SoftConstraints: []model.DateConstraint{singleDate(date(2024, time.June, 9))},
			},
		},
	}

	evaluation := EvaluateWeekend(in, juneWeekend())

	require.NotNil(t, evaluation)
	assert.Equal(t, SelectionStrictHard, evaluation.SelectionMode)
	assert.Equal(t, 0, evaluation.HardAffectedPeopleCount)
	assert.Empty(t, evaluation.HardAffectedPeople)
	assert.Equal(t, 1, evaluation.AffectedPeopleCount)
	assert.Equal(t, 1, evaluation.TotalSoftOverlapDays)
}

func TestRankWeekends_NonPositiveTopN(t *testing.T) {
	in := model.InputData{People: []model.PersonConstraints{{Name: "Ana"}}}
	weekends := candidates.Generate(date(2024, time.June, 1), date(2024, time.June, 30))

	assert.Empty(t, RankWeekends(in, weekends, 0))
	assert.Empty(t, RankWeekends(in, weekends, -3))
}

func TestRankWeekends_NoCandidates(t *testing.T) {
	in := model.InputData{People: []model.PersonConstraints{{Name: "Ana"}}}

	ranked := RankWeekends(in, []candidates.WeekendCandidate{}, 3)

	assert.Empty(t, ranked)
}

// Scenario: one person with no constraints over June 2024. Every weekend is
// strictly feasible and ties on all counters, so the earliest Friday wins.
func TestRankWeekends_UnconstrainedJuneWindow(t *testing.T) {
	in := model.InputData{
		MinDate: date(2024, time.June, 1),
		MaxDate: date(2024, time.June, 30),
		People:  []model.PersonConstraints{{Name: "Ana"}},
	}
	weekends := candidates.Generate(in.MinDate, in.MaxDate)

	ranked := RankWeekends(in, weekends, 3)

	require.Len(t, ranked, 3)
	assert.Equal(t, date(2024, time.June, 7), ranked[0].Weekend.StartDate)
	assert.Equal(t, date(2024, time.June, 14), ranked[1].Weekend.StartDate)
	assert.Equal(t, date(2024, time.June, 21), ranked[2].Weekend.StartDate)

	for _, evaluation := range ranked {
		assert.Equal(t, SelectionStrictHard, evaluation.SelectionMode)
		assert.Equal(t, 1, evaluation.FullyFeasiblePeopleCount)
		assert.Equal(t, 0, evaluation.AffectedPeopleCount)
		assert.Equal(t, 0, evaluation.TotalSoftOverlapDays)
	}
}

// Scenario: a single weekend whose Saturday is hard-blocked. Strict
// evaluation passes nothing, so the fallback still returns that weekend.
func TestRankWeekends_FallbackWhenNoStrictCandidate(t *testing.T) {
	in := model.InputData{
		MinDate: date(2024, time.June, 7),
		MaxDate: date(2024, time.June, 9),
		People: []model.PersonConstraints{
			{
				Name:            "Rui",
				HardConstraints: []model.DateConstraint{singleDate(date(2024, time.June, 8))},
			},
		},
	}
	weekends := candidates.Generate(in.MinDate, in.MaxDate)
	require.Len(t, weekends, 1)

	ranked := RankWeekends(in, weekends, 3)

	require.Len(t, ranked, 1)
	assert.Equal(t, SelectionFallbackHard, ranked[0].SelectionMode)
	assert.Equal(t, 1, ranked[0].HardAffectedPeopleCount)
	require.Len(t, ranked[0].HardAffectedPeople, 1)
	assert.Equal(t, "Rui", ranked[0].HardAffectedPeople[0].PersonName)
	assert.Equal(t, []time.Time{date(2024, time.June, 8)}, ranked[0].HardAffectedPeople[0].OverlappedDates)
}

func TestRankWeekends_ModesNeverMix(t *testing.T) {
	// Two weekends in the window, the second one hard-blocked: the result
	// must contain only the strict weekend even though topN allows more.
	in := model.InputData{
		MinDate: date(2024, time.June, 1),
		MaxDate: date(2024, time.June, 16),
		People: []model.PersonConstraints{
			{
				Name:            "Rui",
				HardConstraints: []model.DateConstraint{singleDate(date(2024, time.June, 15))},
			},
		},
	}
	weekends := candidates.Generate(in.MinDate, in.MaxDate)
	require.Len(t, weekends, 2)

	ranked := RankWeekends(in, weekends, 5)

	require.Len(t, ranked, 1)
	assert.Equal(t, SelectionStrictHard, ranked[0].SelectionMode)
	assert.Equal(t, date(2024, time.June, 7), ranked[0].Weekend.StartDate)
}

func TestRankWeekends_SoftConstraintsOrderStrictResults(t *testing.T) {
	// Ana penalizes the first weekend with two soft days: the clean second
	// weekend must rank above the earlier but penalized one.
	in := model.InputData{
		MinDate: date(2024, time.June, 1),
		MaxDate: date(2024, time.June, 16),
		People: []model.PersonConstraints{
			{
				Name: "Ana",
				SoftConstraints: []model.DateConstraint{
					interval(date(2024, time.June, 7), date(2024, time.June, 8)),
				},
			},
			{Name: "Rui"},
		},
	}
	weekends := candidates.Generate(in.MinDate, in.MaxDate)

	ranked := RankWeekends(in, weekends, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, date(2024, time.June, 14), ranked[0].Weekend.StartDate)
	assert.Equal(t, 2, ranked[0].FullyFeasiblePeopleCount)

	assert.Equal(t, date(2024, time.June, 7), ranked[1].Weekend.StartDate)
	assert.Equal(t, 1, ranked[1].FullyFeasiblePeopleCount)
	assert.Equal(t, 1, ranked[1].AffectedPeopleCount)
	assert.Equal(t, 2, ranked[1].TotalSoftOverlapDays)
	require.Len(t, ranked[1].AffectedPeople, 1)
	assert.Equal(t, []string{"interval:2024-06-07..2024-06-08"}, ranked[1].AffectedPeople[0].MatchedConstraints)
}

func TestRankWeekends_FallbackMinimizesHardAffectedPeople(t *testing.T) {
	// Both weekends are hard-blocked, but the second blocks one person and
	// the first blocks two: the second must rank first despite being later.
	in := model.InputData{
		MinDate: date(2024, time.June, 1),
		MaxDate: date(2024, time.June, 16),
		People: []model.PersonConstraints{
			{
				Name: "Ana",
				HardConstraints: []model.DateConstraint{
					singleDate(date(2024, time.June, 7)),
				},
			},
			{
				Name: "Rui",
				HardConstraints: []model.DateConstraint{
					singleDate(date(2024, time.June, 8)),
					singleDate(date(2024, time.June, 15)),
				},
			},
		},
	}
	weekends := candidates.Generate(in.MinDate, in.MaxDate)
	require.Len(t, weekends, 2)

	ranked := RankWeekends(in, weekends, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, SelectionFallbackHard, ranked[0].SelectionMode)
	assert.Equal(t, date(2024, time.June, 14), ranked[0].Weekend.StartDate)
	assert.Equal(t, 1, ranked[0].HardAffectedPeopleCount)
	assert.Equal(t, date(2024, time.June, 7), ranked[1].Weekend.StartDate)
	assert.Equal(t, 2, ranked[1].HardAffectedPeopleCount)
}

func TestRankWeekends_EarlierStartBreaksTies(t *testing.T) {
	in := model.InputData{
		MinDate: date(2024, time.June, 1),
		MaxDate: date(2024, time.June, 30),
		People:  []model.PersonConstraints{{Name: "Ana"}, {Name: "Rui"}},
	}
	weekends := candidates.Generate(in.MinDate, in.MaxDate)

	ranked := RankWeekends(in, weekends, len(weekends))

	require.Len(t, ranked, len(weekends))
	for i := 1; i < len(ranked); i++ {
		assert.True(t, ranked[i-1].Weekend.StartDate.Before(ranked[i].Weekend.StartDate),
			"tied evaluations must be ordered by earliest start date")
	}
}

func TestRankWeekends_TruncatesToTopN(t *testing.T) {
	in := model.InputData{People: []model.PersonConstraints{{Name: "Ana"}}}
	weekends := candidates.Generate(date(2024, time.June, 1), date(2024, time.August, 31))
	require.Greater(t, len(weekends), 2)

	ranked := RankWeekends(in, weekends, 2)

	assert.Len(t, ranked, 2)
}
