package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/ui/render"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate sample questions for a difficulty level (no database)",
	Long: `Generate questions for one difficulty level and print them, drawing
columnar questions as aligned rows.

This is a stateless developer tool. Questions that fell back to the
reduced-range generator are flagged. Pass --seed for a reproducible run.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("level", "1", "Difficulty level ID or code")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	previewCmd.Flags().Uint64("seed", 0, "Random seed (0 picks a random run)")
	previewCmd.Flags().Int("columnar", -1, "Percent of columnar questions (-1 keeps the default)")
	previewCmd.Flags().Bool("answers", false, "Show the answer under each question")
}

func resolveLevel(val string) (difficulty.Profile, error) {
	if id, err := strconv.Atoi(val); err == nil {
		return difficulty.Get(id)
	}
	return difficulty.ByCode(val)
}

func runPreview(cmd *cobra.Command, args []string) error {
	levelVal, _ := cmd.Flags().GetString("level")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	columnar, _ := cmd.Flags().GetInt("columnar")
	showAnswers, _ := cmd.Flags().GetBool("answers")

	profile, err := resolveLevel(levelVal)
	if err != nil {
		return err
	}
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	cfg := problemgen.DefaultConfig()
	if columnar >= 0 {
		cfg.ColumnarPercent = min(columnar, 100)
	}
	var rng problemgen.Rand
	if seed != 0 {
		rng = problemgen.NewSeededRand(seed)
	}
	composer := problemgen.New(rng, cfg, nil)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%s (level %d, max %d)", profile.Name, profile.ID, profile.MaxNumber)))
	fmt.Fprintln(out)

	var recent []string
	fallbacks := 0
	for i := 1; i <= count; i++ {
		q, err := composer.Compose(profile, recent)
		if err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
		recent = append(recent, q.Display)
		if !q.Validated {
			fallbacks++
		}

		fmt.Fprintln(out, render.Question(i, q))
		if showAnswers {
			fmt.Fprintln(out, render.Answer(q))
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("%d questions, %d fallback", count, fallbacks)))
	return nil
}
