// Package report turns ranked weekend evaluations into the structured
// payload consumed by both the JSON and the plain-text renderings. All
// ranking decisions happen upstream; this package only reshapes them.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/duartecruz/weekend-picker/pkg/core/model"
	"github.com/duartecruz/weekend-picker/pkg/core/ranking"
)

// SearchWindow echoes the input date window in the result payload.
type SearchWindow struct {
	MinDate string `json:"min_date"`
	MaxDate string `json:"max_date"`
}

// WeekendDates holds one candidate's dates in ISO format.
type WeekendDates struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Days      []string `json:"days"`
}

// Score holds the four ranking counters for one option.
type Score struct {
	HardAffectedPeopleCount  int `json:"hard_affected_people_count"`
	FullyFeasiblePeopleCount int `json:"fully_feasible_people_count"`
	AffectedPeopleCount      int `json:"affected_people_count"`
	TotalSoftOverlapDays     int `json:"total_soft_overlap_days"`
}

// HardAffectedPerson details one person's hard-constraint overlap.
type HardAffectedPerson struct {
	Name                   string   `json:"name"`
	OverlappedDates        []string `json:"overlapped_dates"`
	MatchedHardConstraints []string `json:"matched_hard_constraints"`
}

// AffectedPerson details one person's soft-constraint overlap.
type AffectedPerson struct {
	Name                   string   `json:"name"`
	OverlappedDates        []string `json:"overlapped_dates"`
	MatchedSoftConstraints []string `json:"matched_soft_constraints"`
}

// Option is one ranked weekend in the result payload.
type Option struct {
	Rank               int                  `json:"rank"`
	SelectionMode      string               `json:"selection_mode"`
	Weekend            WeekendDates         `json:"weekend"`
	Score              Score                `json:"score"`
	HardAffectedPeople []HardAffectedPerson `json:"hard_affected_people"`
	AffectedPeople     []AffectedPerson     `json:"affected_people"`
}

// ResultPayload is the full structured result handed to consumers. It
// carries everything needed to render a report without re-deriving any
// ranking logic.
type ResultPayload struct {
	RunID            string       `json:"run_id"`
	SearchWindow     SearchWindow `json:"search_window"`
	ParticipantCount int          `json:"participant_count"`
	Options          []Option     `json:"options"`
}

// BuildResultPayload assembles the structured payload for a ranking run.
func BuildResultPayload(in model.InputData, runID string, ranked []ranking.WeekendEvaluation) ResultPayload {
	options := make([]Option, 0, len(ranked))
	for i, evaluation := range ranked {
		options = append(options, Option{
			Rank:          i + 1,
			SelectionMode: string(evaluation.SelectionMode),
			Weekend: WeekendDates{
				StartDate: toISO(evaluation.Weekend.StartDate),
				EndDate:   toISO(evaluation.Weekend.EndDate),
				Days:      toISODates(evaluation.Weekend.Days[:]),
			},
			Score: Score{
				HardAffectedPeopleCount:  evaluation.HardAffectedPeopleCount,
				FullyFeasiblePeopleCount: evaluation.FullyFeasiblePeopleCount,
				AffectedPeopleCount:      evaluation.AffectedPeopleCount,
				TotalSoftOverlapDays:     evaluation.TotalSoftOverlapDays,
			},
			HardAffectedPeople: buildHardAffected(evaluation.HardAffectedPeople),
			AffectedPeople:     buildAffected(evaluation.AffectedPeople),
		})
	}

	return ResultPayload{
		RunID: runID,
		SearchWindow: SearchWindow{
			MinDate: toISO(in.MinDate),
			MaxDate: toISO(in.MaxDate),
		},
		ParticipantCount: len(in.People),
		Options:          options,
	}
}

func buildHardAffected(impacts []ranking.PersonImpact) []HardAffectedPerson {
	people := make([]HardAffectedPerson, 0, len(impacts))
	for _, impact := range impacts {
		people = append(people, HardAffectedPerson{
			Name:                   impact.PersonName,
			OverlappedDates:        toISODates(impact.OverlappedDates),
			MatchedHardConstraints: impact.MatchedConstraints,
		})
	}
	return people
}

func buildAffected(impacts []ranking.PersonImpact) []AffectedPerson {
	people := make([]AffectedPerson, 0, len(impacts))
	for _, impact := range impacts {
		people = append(people, AffectedPerson{
			Name:                   impact.PersonName,
			OverlappedDates:        toISODates(impact.OverlappedDates),
			MatchedSoftConstraints: impact.MatchedConstraints,
		})
	}
	return people
}

// FormatJSON renders the payload as indented JSON.
func FormatJSON(payload ResultPayload) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result payload: %w", err)
	}
	return string(data), nil
}

// FormatText renders the payload as a human-readable report.
func FormatText(payload ResultPayload) string {
	var lines []string
	lines = append(lines, fmt.Sprintf(
		"Search window: %s to %s (%d participants)",
		payload.SearchWindow.MinDate,
		payload.SearchWindow.MaxDate,
		payload.ParticipantCount,
	))
	lines = append(lines, "")

	if len(payload.Options) == 0 {
		lines = append(lines, "No weekend candidates available in the selected date window.")
		return strings.Join(lines, "\n")
	}

	if payload.Options[0].SelectionMode == string(ranking.SelectionFallbackHard) {
		lines = append(lines,
			"Fallback mode enabled: no weekend satisfied all hard constraints. "+
				"Ranking now minimizes people affected by hard constraints first.")
		lines = append(lines, "")
	}

	lines = append(lines, "Top weekend options:")
	for _, option := range payload.Options {
		lines = append(lines, fmt.Sprintf(
			"- #%d %s -> %s: hard_affected_people=%d, fully_feasible=%d, affected_people=%d, soft_overlap_days=%d",
			option.Rank,
			option.Weekend.StartDate,
			option.Weekend.EndDate,
			option.Score.HardAffectedPeopleCount,
			option.Score.FullyFeasiblePeopleCount,
			option.Score.AffectedPeopleCount,
			option.Score.TotalSoftOverlapDays,
		))

		if len(option.HardAffectedPeople) == 0 {
			lines = append(lines, "  hard_affected_people: none")
		} else {
			lines = append(lines, "  hard_affected_people:")
			for _, person := range option.HardAffectedPeople {
				lines = append(lines, fmt.Sprintf(
					"  - %s: dates=[%s] constraints=[%s]",
					person.Name,
					strings.Join(person.OverlappedDates, ", "),
					strings.Join(person.MatchedHardConstraints, ", "),
				))
			}
		}

		if len(option.AffectedPeople) == 0 {
			lines = append(lines, "  affected_people: none")
			continue
		}
		lines = append(lines, "  affected_people:")
		for _, person := range option.AffectedPeople {
			lines = append(lines, fmt.Sprintf(
				"  - %s: dates=[%s] constraints=[%s]",
				person.Name,
				strings.Join(person.OverlappedDates, ", "),
				strings.Join(person.MatchedSoftConstraints, ", "),
			))
		}
	}

	return strings.Join(lines, "\n")
}

func toISO(value time.Time) string {
	return value.Format(model.ISODate)
}

func toISODates(values []time.Time) []string {
	dates := make([]string, 0, len(values))
	for _, value := range values {
		dates = append(dates, toISO(value))
	}
	return dates
}
