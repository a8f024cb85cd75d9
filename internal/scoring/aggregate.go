package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

// FullMarksDivisor normalizes the basic, organizational and leadership sums.
// It is fixed and does not depend on how many competencies a type has.
const FullMarksDivisor = 5.0

// RoundingMode selects where intermediate values are rounded to two decimals
type RoundingMode string

const (
	// RoundPerStep rounds every competency mean, type average and index as it
	// is produced and feeds the rounded value into the next step.
	RoundPerStep RoundingMode = "per_step"
	// RoundEndToEnd keeps the whole chain unrounded and rounds only reported values.
	RoundEndToEnd RoundingMode = "end_to_end"
)

// ParseRoundingMode validates a configured rounding mode. Empty means per_step.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch RoundingMode(s) {
	case "", RoundPerStep:
		return RoundPerStep, nil
	case RoundEndToEnd:
		return RoundEndToEnd, nil
	}
	return "", fmt.Errorf("unknown rounding mode %q", s)
}

// Score is one stored rating as seen by the aggregation
type Score struct {
	RaterID        uint
	Code           RaterCode
	CompetencyID   uint
	CompetencyType models.CompetencyType
	Value          float64
}

// Input is everything Compute needs for one candidate under one item number.
// Competencies must already be filtered to the vacancy's applicable set.
type Input struct {
	SalaryGrade  int
	Competencies []models.Competency
	Scores       []Score
	Mode         RoundingMode
}

// RaterCell is one rater's entry in the display grid of a competency
type RaterCell struct {
	RaterID  uint      `json:"rater_id,omitempty"`
	Code     RaterCode `json:"code"`
	Score    *float64  `json:"score"`
	Eligible bool      `json:"eligible"`
	Display  string    `json:"display"`
}

// CompetencyResult is the eligible-rater mean of one competency
type CompetencyResult struct {
	CompetencyID   uint                  `json:"competency_id"`
	Name           string                `json:"name"`
	Type           models.CompetencyType `json:"type"`
	Mean           float64               `json:"mean"`
	EligibleRaters int                   `json:"eligible_raters"`
	Cells          []RaterCell           `json:"cells"`
}

// TypeResult is the average of one competency type
type TypeResult struct {
	Type         models.CompetencyType `json:"type"`
	Sum          float64               `json:"sum"`
	Divisor      float64               `json:"divisor"`
	Average      float64               `json:"average"`
	Competencies []CompetencyResult    `json:"competencies"`
}

// Result holds both indices and the breakdown they were derived from
type Result struct {
	SalaryGrade        int          `json:"salary_grade"`
	Mode               RoundingMode `json:"rounding_mode"`
	LeadershipIncluded bool         `json:"leadership_included"`
	PsychoSocial       float64      `json:"psycho_social"`
	Potential          float64      `json:"potential"`
	Breakdown          []TypeResult `json:"breakdown"`
}

// Total is the sum of both indices, used for ranking
func (r *Result) Total() float64 {
	return Round2(r.PsychoSocial + r.Potential)
}

// Average returns the reported average for a type and whether the type is part of the result
func (r *Result) Average(t models.CompetencyType) (float64, bool) {
	for _, tr := range r.Breakdown {
		if tr.Type == t {
			return tr.Average, true
		}
	}
	return 0, false
}

type competencyKey struct {
	id  uint
	typ models.CompetencyType
}

// Compute aggregates scores into the Psycho-Social and Potential indices.
//
//	avg(basic|organizational|leadership) = Σ mean(c) / 5
//	avg(minimum)                         = Σ mean(c) / count(minimum)
//	psychoSocial                         = avg(basic) × 2
//	potential                            = (org + lead + min) / 3 × 2   when leadership applies
//	                                       (org + min) / 2 × 2          otherwise
//
// mean(c) only counts raters required for the salary grade; a competency
// without eligible scores contributes 0.
func Compute(in Input) Result {
	mode := in.Mode
	if mode == "" {
		mode = RoundPerStep
	}
	step := func(v float64) float64 {
		if mode == RoundPerStep {
			return Round2(v)
		}
		return v
	}

	byCompetency := make(map[competencyKey][]Score)
	for _, s := range in.Scores {
		k := competencyKey{id: s.CompetencyID, typ: s.CompetencyType}
		byCompetency[k] = append(byCompetency[k], s)
	}

	grouped := GroupByType(in.Competencies)
	leadershipIncluded := LeadershipApplies(in.SalaryGrade, len(grouped[models.CompetencyLeadership]))

	averages := make(map[models.CompetencyType]float64, len(models.CompetencyTypes))
	result := Result{
		SalaryGrade:        in.SalaryGrade,
		Mode:               mode,
		LeadershipIncluded: leadershipIncluded,
	}

	for _, t := range models.CompetencyTypes {
		comps := grouped[t]
		tr := TypeResult{Type: t, Competencies: []CompetencyResult{}}

		for _, c := range comps {
			scores := byCompetency[competencyKey{id: c.ID, typ: c.Type}]
			mean, eligible := meanEligible(in.SalaryGrade, scores)
			mean = step(mean)
			tr.Sum += mean
			tr.Competencies = append(tr.Competencies, CompetencyResult{
				CompetencyID:   c.ID,
				Name:           c.Name,
				Type:           c.Type,
				Mean:           Round2(mean),
				EligibleRaters: eligible,
				Cells:          displayCells(in.SalaryGrade, scores),
			})
		}

		if t == models.CompetencyMinimum {
			tr.Divisor = float64(len(comps))
		} else {
			tr.Divisor = FullMarksDivisor
		}
		var avg float64
		if tr.Divisor > 0 {
			avg = tr.Sum / tr.Divisor
		}
		avg = step(avg)
		averages[t] = avg

		tr.Sum = Round2(tr.Sum)
		tr.Average = Round2(avg)
		if t == models.CompetencyLeadership && !leadershipIncluded {
			continue
		}
		result.Breakdown = append(result.Breakdown, tr)
	}

	psychoSocial := step(averages[models.CompetencyBasic] * 2)

	var potential float64
	if leadershipIncluded {
		potential = (averages[models.CompetencyOrganizational] +
			averages[models.CompetencyLeadership] +
			averages[models.CompetencyMinimum]) / 3 * 2
	} else {
		potential = (averages[models.CompetencyOrganizational] +
			averages[models.CompetencyMinimum]) / 2 * 2
	}
	potential = step(potential)

	result.PsychoSocial = Round2(psychoSocial)
	result.Potential = Round2(potential)
	return result
}

// meanEligible averages the scores of raters on the panel for the grade
func meanEligible(salaryGrade int, scores []Score) (float64, int) {
	var sum float64
	var n int
	for _, s := range scores {
		if !IsRaterRequired(salaryGrade, s.Code) {
			continue
		}
		sum += s.Value
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// displayCells lists every submitted score plus a placeholder for each
// required panel code nobody has rated yet
func displayCells(salaryGrade int, scores []Score) []RaterCell {
	cells := make([]RaterCell, 0, len(scores))
	seen := make(map[RaterCode]bool)
	for _, s := range scores {
		v := s.Value
		seen[s.Code] = true
		cells = append(cells, RaterCell{
			RaterID:  s.RaterID,
			Code:     s.Code,
			Score:    &v,
			Eligible: IsRaterRequired(salaryGrade, s.Code),
			Display:  DisplayCell(salaryGrade, s.Code, &v),
		})
	}
	for _, code := range RequiredCodes(salaryGrade) {
		if seen[code] {
			continue
		}
		cells = append(cells, RaterCell{
			Code:     code,
			Eligible: true,
			Display:  DisplayCell(salaryGrade, code, nil),
		})
	}
	sort.SliceStable(cells, func(i, j int) bool {
		return codeOrder(cells[i].Code) < codeOrder(cells[j].Code)
	})
	return cells
}

func codeOrder(code RaterCode) int {
	for i, known := range Codes {
		if code == known {
			return i
		}
	}
	return len(Codes)
}

// Round2 rounds to two decimal places, half away from zero
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
