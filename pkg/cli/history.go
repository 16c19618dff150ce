package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mchmarny/acmg/pkg/data"
	"github.com/urfave/cli/v2"
)

var (
	historyLimitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Limits number of records returned",
	}

	historyClassFlag = &cli.StringFlag{
		Name:  "class",
		Usage: "Filter by classification (e.g. Pathogenic)",
	}

	historyCmd = &cli.Command{
		Name:    "history",
		Aliases: []string{"h"},
		Usage:   "List previously scored variants, most recent first",
		UsageText: `acmg history                        # recent evaluations
   acmg history --class Pathogenic     # pathogenic calls only
   acmg history --limit 5 --format json`,
		HideHelpCommand: true,
		Action:          cmdHistory,
		Flags: []cli.Flag{
			historyLimitFlag,
			historyClassFlag,
			formatFlag,
		},
	}
)

func cmdHistory(c *cli.Context) error {
	if err := applyFlags(c); err != nil {
		return err
	}

	cfg := getConfig(c)

	limit := c.Int(historyLimitFlag.Name)
	if limit <= 0 {
		limit = cfg.Conf.History
	}

	q := &data.EvaluationQuery{
		Classification: c.String(historyClassFlag.Name),
		Limit:          limit,
	}

	slog.Debug("query history", "class", q.Classification, "limit", q.Limit)

	list, err := data.QueryEvaluations(cfg.DB, q)
	if err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}

	if outputFormat == formatText {
		for _, e := range list {
			fmt.Fprintf(os.Stdout, "%s  %-22s %3d  %.3f  %s\n",
				e.CreatedAt, e.Classification, e.Score, e.Probability, e.Evidence)
		}
		return nil
	}

	if err := encode(list); err != nil {
		return fmt.Errorf("error encoding list: %w", err)
	}

	return nil
}
