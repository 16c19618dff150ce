package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mchmarny/acmg/pkg/score"
	"github.com/urfave/cli/v2"
)

var (
	codeCategoryFlag = &cli.StringFlag{
		Name:  "category",
		Usage: "Filter by evidence category [Pathogenic, Benign]",
	}

	codeStrengthFlag = &cli.StringFlag{
		Name:  "strength",
		Usage: "Filter by default strength [StandAlone, VeryStrong, Strong, Moderate, Supporting]",
	}

	codesCmd = &cli.Command{
		Name:    "codes",
		Aliases: []string{"c"},
		Usage:   "List the supported ACMG evidence codes",
		UsageText: `acmg codes                           # all codes
   acmg codes --category Benign         # benign codes only
   acmg codes --strength Strong         # strong codes only`,
		HideHelpCommand: true,
		Action:          cmdCodes,
		Flags: []cli.Flag{
			codeCategoryFlag,
			codeStrengthFlag,
			formatFlag,
		},
	}
)

func cmdCodes(c *cli.Context) error {
	if err := applyFlags(c); err != nil {
		return err
	}

	list, err := filterCodes(c.String(codeCategoryFlag.Name), c.String(codeStrengthFlag.Name))
	if err != nil {
		return err
	}

	if outputFormat == formatText {
		for _, code := range list {
			fmt.Fprintf(os.Stdout, "%-4s %-10s %-10s %2d  %s\n",
				code.Name, code.Category, code.Strength, code.Points(), code.Description)
		}
		return nil
	}

	if err := encode(list); err != nil {
		return fmt.Errorf("error encoding list: %w", err)
	}

	return nil
}

func filterCodes(category, strength string) ([]score.Code, error) {
	if category != "" &&
		!strings.EqualFold(category, string(score.CategoryPathogenic)) &&
		!strings.EqualFold(category, string(score.CategoryBenign)) {
		return nil, fmt.Errorf("invalid category: %s", category)
	}

	if strength != "" && !validStrength(strength) {
		return nil, fmt.Errorf("invalid strength: %s", strength)
	}

	list := make([]score.Code, 0)
	for _, code := range score.Codes() {
		if category != "" && !strings.EqualFold(category, string(code.Category)) {
			continue
		}
		if strength != "" && !strings.EqualFold(strength, string(code.Strength)) {
			continue
		}
		list = append(list, code)
	}
	return list, nil
}

func validStrength(s string) bool {
	for _, v := range score.Strengths() {
		if strings.EqualFold(s, string(v)) {
			return true
		}
	}
	return false
}
