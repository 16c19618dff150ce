package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mchmarny/acmg/pkg/data"
	"github.com/urfave/cli/v2"
)

var resetCmd = &cli.Command{
	Name:            "reset",
	Usage:           "Delete all stored evaluations and start fresh",
	HideHelpCommand: true,
	Action:          cmdReset,
}

func cmdReset(c *cli.Context) error {
	cfg := getConfig(c)

	count, err := data.CountEvaluations(cfg.DB)
	if err != nil {
		return fmt.Errorf("counting evaluations: %w", err)
	}

	if count == 0 {
		fmt.Println("History is already empty.")
		return nil
	}

	fmt.Printf("This will permanently delete %d stored evaluations\n", count)
	fmt.Print("Are you sure? [y/N]: ")

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Println("Aborted.")
		return nil
	}

	n, err := data.Reset(cfg.DB)
	if err != nil {
		return fmt.Errorf("resetting history: %w", err)
	}

	slog.Info("history cleared", "deleted", n)
	fmt.Println("Reset complete.")
	return nil
}
