package scoring

import "github.com/xhrissun/rhrmpsb-system-sub000/internal/models"

// Applicability describes which vacancies a competency is attached to
type Applicability int

const (
	// Orphaned competencies are neither fixed nor linked to a vacancy and apply to nothing.
	Orphaned Applicability = iota
	Fixed
	Scoped
)

func (a Applicability) String() string {
	switch a {
	case Fixed:
		return "fixed"
	case Scoped:
		return "scoped"
	}
	return "orphaned"
}

// ApplicabilityOf classifies a competency. The fixed flag wins over any vacancy list.
func ApplicabilityOf(c models.Competency) Applicability {
	if c.IsFixed {
		return Fixed
	}
	if len(c.VacancyIDs) > 0 {
		return Scoped
	}
	return Orphaned
}

// AppliesTo reports whether competency c is part of the rubric for vacancyID
func AppliesTo(c models.Competency, vacancyID uint) bool {
	switch ApplicabilityOf(c) {
	case Fixed:
		return true
	case Scoped:
		for _, id := range c.VacancyIDs {
			if id == vacancyID {
				return true
			}
		}
	}
	return false
}

// ApplicableCompetencies filters all to the competencies that apply to vacancyID, keeping order
func ApplicableCompetencies(all []models.Competency, vacancyID uint) []models.Competency {
	applicable := []models.Competency{}
	for _, c := range all {
		if AppliesTo(c, vacancyID) {
			applicable = append(applicable, c)
		}
	}
	return applicable
}

// GroupByType buckets competencies by their type
func GroupByType(competencies []models.Competency) map[models.CompetencyType][]models.Competency {
	grouped := make(map[models.CompetencyType][]models.Competency, len(models.CompetencyTypes))
	for _, c := range competencies {
		grouped[c.Type] = append(grouped[c.Type], c)
	}
	return grouped
}

// LeadershipApplies reports whether leadership competencies take part in the
// Potential index: the grade must be at least 18 and at least one leadership
// competency must be assigned.
func LeadershipApplies(salaryGrade int, leadershipCount int) bool {
	return salaryGrade >= LeadershipMinGrade && leadershipCount > 0
}
