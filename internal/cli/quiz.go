package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/haven-app/haven/internal/constants"
	"github.com/haven-app/haven/internal/quiz"
)

type QuizCmd struct {
	Take    QuizTakeCmd    `cmd:"" help:"Take the wellbeing self-assessment."`
	History QuizHistoryCmd `cmd:"" help:"Show past assessment results."`
}

type QuizTakeCmd struct{}

func (c *QuizTakeCmd) Run(ctx *Context) error {
	answers := make([]int, len(quiz.Questions))

	var groups []*huh.Group
	for i, q := range quiz.Questions {
		options := make([]huh.Option[int], len(q.Options))
		for j, opt := range q.Options {
			options[j] = huh.NewOption(opt, j)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("Question %d of %d", i+1, len(quiz.Questions))).
				Description(q.Text).
				Options(options...).
				Value(&answers[i]),
		))
	}

	if err := huh.NewForm(groups...).Run(); err != nil {
		return fmt.Errorf("assessment form error: %w", err)
	}

	ledger := quiz.NewLedger(ctx.Store)
	result, err := ledger.RecordResult(answers)
	if err != nil {
		return err
	}

	category := quiz.RiskCategory(result.Score, result.MaxScore)
	fmt.Printf("\nScore: %d/%d (%s)\n", result.Score, result.MaxScore, category)
	fmt.Println(quiz.RiskDescription(category))
	fmt.Println("\nThis is not a diagnosis. If you're concerned about how you're feeling, please talk to a professional.")
	return nil
}

type QuizHistoryCmd struct{}

func (c *QuizHistoryCmd) Run(ctx *Context) error {
	ledger := quiz.NewLedger(ctx.Store)
	results, err := ledger.Results()
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No assessments taken yet.")
		return nil
	}

	for _, r := range results {
		category := quiz.RiskCategory(r.Score, r.MaxScore)
		fmt.Printf("%s  %2d/%d  %s\n", r.Date.Format(constants.DateFormat), r.Score, r.MaxScore, category)
	}
	return nil
}
