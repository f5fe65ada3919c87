package ranking

import (
	"sort"
	"time"

	"github.com/duartecruz/weekend-picker/pkg/core/candidates"
	"github.com/duartecruz/weekend-picker/pkg/core/model"
)

// SelectionMode identifies which ranking phase produced an evaluation.
type SelectionMode string

const (
	// SelectionStrictHard marks candidates with zero hard-constraint
	// overlaps across all people.
	SelectionStrictHard SelectionMode = "strict_hard"

	// SelectionFallbackHard marks candidates ranked while minimizing,
	// rather than forbidding, hard-constraint overlaps.
	SelectionFallbackHard SelectionMode = "fallback_hard"
)

// PersonImpact describes how one person's constraints of a single severity
// overlap a weekend. OverlappedDates is the ascending, de-duplicated set of
// weekend days hit by at least one constraint; MatchedConstraints lists the
// description of each matching constraint in declaration order, once per
// constraint regardless of how many days it covers.
type PersonImpact struct {
	PersonName         string
	OverlappedDates    []time.Time
	MatchedConstraints []string
}

// WeekendEvaluation is the scoring detail for one candidate weekend.
type WeekendEvaluation struct {
	Weekend                  candidates.WeekendCandidate
	SelectionMode            SelectionMode
	HardAffectedPeopleCount  int
	FullyFeasiblePeopleCount int
	AffectedPeopleCount      int
	TotalSoftOverlapDays     int
	AffectedPeople           []PersonImpact
	HardAffectedPeople       []PersonImpact
}

// evaluatePersonImpact scans one severity's constraint list against the
// weekend days. It returns nil when no constraint covers any day: absence,
// not an empty record, is how "unaffected" is signalled to callers.
func evaluatePersonImpact(name string, constraintList []model.DateConstraint, days [3]time.Time) *PersonImpact {
	overlapped := map[time.Time]struct{}{}
	matched := []string{}

	for _, constraint := range constraintList {
		covered := false
		for _, day := range days {
			if constraint.Covers(day) {
				overlapped[day] = struct{}{}
				covered = true
			}
		}
		if covered {
			matched = append(matched, constraint.Describe())
		}
	}

	if len(overlapped) == 0 {
		return nil
	}

	dates := make([]time.Time, 0, len(overlapped))
	for day := range overlapped {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return &PersonImpact{
		PersonName:         name,
		OverlappedDates:    dates,
		MatchedConstraints: matched,
	}
}

// EvaluatePersonHardImpact evaluates one person's hard-constraint overlap
// with a weekend. Nil means the person is unaffected.
func EvaluatePersonHardImpact(person model.PersonConstraints, days [3]time.Time) *PersonImpact {
	return evaluatePersonImpact(person.Name, person.HardConstraints, days)
}

// EvaluatePersonSoftImpact evaluates one person's soft-constraint overlap
// with a weekend. Nil means the person is unaffected.
func EvaluatePersonSoftImpact(person model.PersonConstraints, days [3]time.Time) *PersonImpact {
	return evaluatePersonImpact(person.Name, person.SoftConstraints, days)
}

// EvaluateWeekendRelaxed evaluates a candidate allowing hard overlaps. Hard
// and soft constraints are independent axes: a person can appear in both
// impact lists for the same weekend. FullyFeasiblePeopleCount counts people
// with zero soft overlap, regardless of hard overlap.
func EvaluateWeekendRelaxed(in model.InputData, weekend candidates.WeekendCandidate) WeekendEvaluation {
	hardAffected := []PersonImpact{}
	for _, person := range in.People {
		if impact := EvaluatePersonHardImpact(person, weekend.Days); impact != nil {
			hardAffected = append(hardAffected, *impact)
		}
	}

	softAffected := []PersonImpact{}
	totalSoftOverlapDays := 0
	for _, person := range in.People {
		impact := EvaluatePersonSoftImpact(person, weekend.Days)
		if impact == nil {
			continue
		}
		softAffected = append(softAffected, *impact)
		totalSoftOverlapDays += len(impact.OverlappedDates)
	}

	return WeekendEvaluation{
		Weekend:                  weekend,
		SelectionMode:            SelectionFallbackHard,
		HardAffectedPeopleCount:  len(hardAffected),
		FullyFeasiblePeopleCount: len(in.People) - len(softAffected),
		AffectedPeopleCount:      len(softAffected),
		TotalSoftOverlapDays:     totalSoftOverlapDays,
		AffectedPeople:           softAffected,
		HardAffectedPeople:       hardAffected,
	}
}

// EvaluateWeekend evaluates a candidate under strict hard constraints. It
// returns nil when any person has a hard overlap; otherwise the evaluation
// is tagged strict_hard with hard impacts absent by construction.
func EvaluateWeekend(in model.InputData, weekend candidates.WeekendCandidate) *WeekendEvaluation {
	evaluation := EvaluateWeekendRelaxed(in, weekend)
	if evaluation.HardAffectedPeopleCount > 0 {
		return nil
	}

	evaluation.SelectionMode = SelectionStrictHard
	evaluation.HardAffectedPeopleCount = 0
	evaluation.HardAffectedPeople = []PersonImpact{}
	return &evaluation
}

// RankWeekends ranks candidate weekends in two phases. Phase one keeps only
// strictly feasible candidates (no hard overlap for anyone) and sorts them
// by most fully-feasible people, then fewest soft-affected people, then
// fewest soft overlap days, then earliest start date. When no candidate is
// strictly feasible it falls back to relaxed evaluations sorted by fewest
// hard-affected people and the same soft tie-breakers, so the caller always
// gets a least-bad answer instead of none. topN <= 0 yields an empty list.
func RankWeekends(in model.InputData, weekends []candidates.WeekendCandidate, topN int) []WeekendEvaluation {
	if topN <= 0 {
		return []WeekendEvaluation{}
	}

	strict := []WeekendEvaluation{}
	for _, weekend := range weekends {
		if evaluation := EvaluateWeekend(in, weekend); evaluation != nil {
			strict = append(strict, *evaluation)
		}
	}

	if len(strict) > 0 {
		sort.Slice(strict, func(i, j int) bool { return lessStrict(strict[i], strict[j]) })
		return truncate(strict, topN)
	}

	relaxed := make([]WeekendEvaluation, 0, len(weekends))
	for _, weekend := range weekends {
		relaxed = append(relaxed, EvaluateWeekendRelaxed(in, weekend))
	}
	sort.Slice(relaxed, func(i, j int) bool { return lessFallback(relaxed[i], relaxed[j]) })
	return truncate(relaxed, topN)
}

// lessStrict orders strict evaluations: more fully-feasible people first,
// then fewer soft-affected people, fewer soft overlap days, earliest start.
func lessStrict(a, b WeekendEvaluation) bool {
	if a.FullyFeasiblePeopleCount != b.FullyFeasiblePeopleCount {
		return a.FullyFeasiblePeopleCount > b.FullyFeasiblePeopleCount
	}
	return lessSoftThenDate(a, b)
}

// lessFallback orders relaxed evaluations: fewer hard-affected people
// first, then the same soft tie-breakers as strict mode.
func lessFallback(a, b WeekendEvaluation) bool {
	if a.HardAffectedPeopleCount != b.HardAffectedPeopleCount {
		return a.HardAffectedPeopleCount < b.HardAffectedPeopleCount
	}
	return lessSoftThenDate(a, b)
}

func lessSoftThenDate(a, b WeekendEvaluation) bool {
	if a.AffectedPeopleCount != b.AffectedPeopleCount {
		return a.AffectedPeopleCount < b.AffectedPeopleCount
	}
	if a.TotalSoftOverlapDays != b.TotalSoftOverlapDays {
		return a.TotalSoftOverlapDays < b.TotalSoftOverlapDays
	}
	return a.Weekend.StartDate.Before(b.Weekend.StartDate)
}

func truncate(evaluations []WeekendEvaluation, topN int) []WeekendEvaluation {
	if len(evaluations) > topN {
		return evaluations[:topN]
	}
	return evaluations
}
