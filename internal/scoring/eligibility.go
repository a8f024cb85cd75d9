package scoring

import "strconv"

// Salary grade thresholds
const (
	ReducedPanelMaxGrade = 14
	LeadershipMinGrade   = 18
)

// Display values for a rater cell
const (
	DisplayNotApplicable = "NA"
	DisplayNotYetRated   = "Not yet rated"
)

// IsRaterRequired reports whether a rater with the given code sits on the panel
// for a position of the given salary grade. Positions at or below grade 14 are
// rated by regular members and the end-user only.
func IsRaterRequired(salaryGrade int, code RaterCode) bool {
	if salaryGrade <= ReducedPanelMaxGrade {
		return code == CodeRegMem || code == CodeEndUser
	}
	return code.Known()
}

// RequiredCodes returns the panel codes required for a salary grade
func RequiredCodes(salaryGrade int) []RaterCode {
	var codes []RaterCode
	for _, code := range Codes {
		if IsRaterRequired(salaryGrade, code) {
			codes = append(codes, code)
		}
	}
	return codes
}

// DisplayCell renders one rater's score for display: NA for raters that are not
// on the panel, the score with two decimals, or "Not yet rated".
func DisplayCell(salaryGrade int, code RaterCode, score *float64) string {
	if !IsRaterRequired(salaryGrade, code) {
		return DisplayNotApplicable
	}
	if score == nil {
		return DisplayNotYetRated
	}
	return strconv.FormatFloat(*score, 'f', 2, 64)
}
