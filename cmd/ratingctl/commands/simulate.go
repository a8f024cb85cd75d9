package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/scoring"
)

// Scenario is an offline score sheet: a vacancy, its competency pool, the
// panel and their scores
type Scenario struct {
	Name         string               `yaml:"name"`
	SalaryGrade  int                  `yaml:"salary_grade" validate:"required,min=1,max=33"`
	VacancyID    uint                 `yaml:"vacancy_id" validate:"required"`
	RoundingMode string               `yaml:"rounding_mode" validate:"omitempty,oneof=per_step end_to_end"`
	Competencies []ScenarioCompetency `yaml:"competencies" validate:"required,min=1,dive"`
	Raters       []ScenarioRater      `yaml:"raters" validate:"dive"`
	Scores       []ScenarioScore      `yaml:"scores" validate:"dive"`
}

// ScenarioCompetency is one competency of the pool
type ScenarioCompetency struct {
	ID        uint   `yaml:"id" validate:"required"`
	Name      string `yaml:"name" validate:"required"`
	Type      string `yaml:"type" validate:"required,oneof=basic organizational leadership minimum"`
	Fixed     bool   `yaml:"fixed"`
	Vacancies []uint `yaml:"vacancies"`
}

// ScenarioRater is one panel member
type ScenarioRater struct {
	ID        uint   `yaml:"id" validate:"required"`
	Name      string `yaml:"name"`
	RaterType string `yaml:"rater_type" validate:"required"`
}

// ScenarioScore is one rater's score for one competency
type ScenarioScore struct {
	Rater      uint    `yaml:"rater" validate:"required"`
	Competency uint    `yaml:"competency" validate:"required"`
	Score      float64 `yaml:"score" validate:"gte=1,lte=5"`
}

// LoadScenario decodes and validates a scenario. Unknown keys are rejected.
func LoadScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// RunScenario resolves the competencies that apply to the scenario's vacancy
// and aggregates the scores exactly as the API does
func RunScenario(s *Scenario, modeOverride string) (scoring.Result, error) {
	modeName := s.RoundingMode
	if modeOverride != "" {
		modeName = modeOverride
	}
	mode, err := scoring.ParseRoundingMode(modeName)
	if err != nil {
		return scoring.Result{}, err
	}

	pool := make([]models.Competency, 0, len(s.Competencies))
	byID := make(map[uint]models.Competency, len(s.Competencies))
	for _, c := range s.Competencies {
		if _, dup := byID[c.ID]; dup {
			return scoring.Result{}, fmt.Errorf("duplicate competency id %d", c.ID)
		}
		comp := models.Competency{
			ID:         c.ID,
			Name:       c.Name,
			Type:       models.CompetencyType(c.Type),
			IsFixed:    c.Fixed,
			VacancyIDs: c.Vacancies,
		}
		pool = append(pool, comp)
		byID[c.ID] = comp
	}

	raters := make(map[uint]scoring.RaterCode, len(s.Raters))
	for _, r := range s.Raters {
		raters[r.ID] = scoring.CodeFor(r.RaterType)
	}

	type key struct{ rater, competency uint }
	seen := make(map[key]bool, len(s.Scores))
	scores := make([]scoring.Score, 0, len(s.Scores))
	for i, sc := range s.Scores {
		code, ok := raters[sc.Rater]
		if !ok {
			return scoring.Result{}, fmt.Errorf("score %d: unknown rater %d", i, sc.Rater)
		}
		comp, ok := byID[sc.Competency]
		if !ok {
			return scoring.Result{}, fmt.Errorf("score %d: unknown competency %d", i, sc.Competency)
		}
		k := key{sc.Rater, sc.Competency}
		if seen[k] {
			return scoring.Result{}, fmt.Errorf("score %d: rater %d already scored competency %d", i, sc.Rater, sc.Competency)
		}
		seen[k] = true
		scores = append(scores, scoring.Score{
			RaterID:        sc.Rater,
			Code:           code,
			CompetencyID:   comp.ID,
			CompetencyType: comp.Type,
			Value:          sc.Score,
		})
	}

	return scoring.Compute(scoring.Input{
		SalaryGrade:  s.SalaryGrade,
		Competencies: scoring.ApplicableCompetencies(pool, s.VacancyID),
		Scores:       scores,
		Mode:         mode,
	}), nil
}

// SimulateCmd creates the simulate command
func SimulateCmd(app *AppContext) *cobra.Command {
	var (
		file   string
		mode   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Compute indices for a YAML score sheet without touching the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open scenario: %w", err)
			}
			defer f.Close()

			scenario, err := LoadScenario(f)
			if err != nil {
				return err
			}
			app.Logger.Debug("Scenario loaded",
				zap.String("name", scenario.Name),
				zap.Int("competencies", len(scenario.Competencies)),
				zap.Int("scores", len(scenario.Scores)),
			)

			result, err := RunScenario(scenario, mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			if scenario.Name != "" {
				fmt.Fprintln(out, scenario.Name)
			}
			renderBreakdown(out, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Scenario YAML file (required)")
	cmd.Flags().StringVar(&mode, "mode", "", "Override the scenario rounding mode (per_step, end_to_end)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of tables")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
