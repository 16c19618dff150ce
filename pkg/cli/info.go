package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mchmarny/acmg/pkg/data"
	"github.com/mchmarny/acmg/pkg/score"
	"github.com/urfave/cli/v2"
)

var (
	noSaveFlag = &cli.BoolFlag{
		Name:  "no-save",
		Usage: "Do not record the result in history",
	}

	infoCmd = &cli.Command{
		Name:    "info",
		Aliases: []string{"i"},
		Usage:   "Score ACMG evidence codes and classify the variant",
		UsageText: `acmg info PVS1 PS1 PM2_Supporting        # codes as separate args
   acmg info "[PVS1, PS1, PM2_Supporting]"  # or one bracketed string
   acmg info --format json BS1 BP4          # machine readable output`,
		HideHelpCommand: true,
		Action:          cmdInfo,
		Flags: []cli.Flag{
			noSaveFlag,
			formatFlag,
		},
	}
)

func cmdInfo(c *cli.Context) error {
	if err := applyFlags(c); err != nil {
		return err
	}

	input := strings.Join(c.Args().Slice(), " ")
	slog.Debug("scoring evidence", "input", input)

	res, err := score.Evaluate(input)
	if err != nil {
		return fmt.Errorf("failed to evaluate evidence: %w", err)
	}

	if !c.Bool(noSaveFlag.Name) {
		cfg := getConfig(c)
		if _, saveErr := data.SaveEvaluation(cfg.DB, res); saveErr != nil {
			slog.Warn("failed to save evaluation", "error", saveErr)
		}
	}

	if outputFormat == formatText {
		renderResult(os.Stdout, res)
		return nil
	}

	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}

	return nil
}

// renderResult writes the classic report: one line per evidence code,
// then the classification summary.
func renderResult(w io.Writer, res *score.Result) {
	for _, e := range res.Evidence {
		fmt.Fprintf(w, "%-4s:%2d '%s'\n", e.Code, e.Points, e.Description)
	}
	fmt.Fprintln(w, "--------")
	fmt.Fprintf(w, "Classification: %s\n", res.Classification)
	fmt.Fprintf(w, "ACMG Score: %d\n", res.Score)
	fmt.Fprintf(w, "Post Prob Path: %.3f\n", res.Probability)
}
