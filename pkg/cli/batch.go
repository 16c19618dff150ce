package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mchmarny/acmg/pkg/data"
	"github.com/mchmarny/acmg/pkg/score"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const batchConcurrencyDefault = 4

var (
	batchFileFlag = &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Input file with one variant per line (use - for stdin)",
		Required: true,
	}

	batchConcurrencyFlag = &cli.IntFlag{
		Name:  "concurrency",
		Usage: "Number of variants scored concurrently",
		Value: batchConcurrencyDefault,
	}

	batchCmd = &cli.Command{
		Name:    "batch",
		Aliases: []string{"b"},
		Usage:   "Score many variants from a file",
		UsageText: `acmg batch --file variants.tsv           # lines: ID<TAB>EVIDENCE or EVIDENCE
   cat variants.tsv | acmg batch --file -   # read from stdin
   acmg batch -f variants.tsv --format json`,
		HideHelpCommand: true,
		Action:          cmdBatch,
		Flags: []cli.Flag{
			batchFileFlag,
			batchConcurrencyFlag,
			noSaveFlag,
			formatFlag,
		},
	}
)

// BatchItem is the outcome for a single input line.
type BatchItem struct {
	ID     string        `json:"id,omitempty" yaml:"id,omitempty"`
	Line   int           `json:"line" yaml:"line"`
	Input  string        `json:"input" yaml:"input"`
	Result *score.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func cmdBatch(c *cli.Context) error {
	if err := applyFlags(c); err != nil {
		return err
	}

	items, err := readBatchFile(c.String(batchFileFlag.Name))
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no variants found in %s", c.String(batchFileFlag.Name))
	}

	concurrency := c.Int(batchConcurrencyFlag.Name)
	if concurrency < 1 {
		concurrency = batchConcurrencyDefault
	}

	slog.Debug("scoring batch", "variants", len(items), "concurrency", concurrency)

	var g errgroup.Group
	g.SetLimit(concurrency)
	for _, it := range items {
		g.Go(func() error {
			res, evalErr := score.Evaluate(it.Input)
			if evalErr != nil {
				it.Error = evalErr.Error()
				return nil
			}
			it.Result = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	badLines := make([]string, 0)
	for _, it := range items {
		if it.Error != "" {
			badLines = append(badLines, strconv.Itoa(it.Line))
		}
	}

	// a batch with bad lines saves nothing
	if len(badLines) == 0 && !c.Bool(noSaveFlag.Name) {
		cfg := getConfig(c)
		for _, it := range items {
			if _, saveErr := data.SaveEvaluation(cfg.DB, it.Result); saveErr != nil {
				slog.Warn("failed to save evaluation", "line", it.Line, "error", saveErr)
			}
		}
	}

	if outputFormat == formatText {
		renderBatch(os.Stdout, items)
	} else if err := encode(items); err != nil {
		return fmt.Errorf("error encoding results: %w", err)
	}

	if len(badLines) > 0 {
		return fmt.Errorf("%d of %d variants failed (lines %s)",
			len(badLines), len(items), strings.Join(badLines, ", "))
	}

	return nil
}

func readBatchFile(name string) ([]*BatchItem, error) {
	if name == "-" {
		return parseBatch(os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening batch file: %w", err)
	}
	defer f.Close()
	return parseBatch(f)
}

// parseBatch reads one variant per line, either `ID<TAB>EVIDENCE` or just
// `EVIDENCE`. Blank lines and lines starting with # are skipped.
func parseBatch(r io.Reader) ([]*BatchItem, error) {
	items := make([]*BatchItem, 0)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		it := &BatchItem{Line: line, Input: text}
		if id, rest, ok := strings.Cut(text, "\t"); ok {
			it.ID = strings.TrimSpace(id)
			it.Input = strings.TrimSpace(rest)
		}
		items = append(items, it)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading batch input: %w", err)
	}
	return items, nil
}

func renderBatch(w io.Writer, items []*BatchItem) {
	for _, it := range items {
		label := it.ID
		if label == "" {
			label = fmt.Sprintf("line %d", it.Line)
		}
		if it.Error != "" {
			fmt.Fprintf(w, "%s\tERROR\t%s\n", label, it.Error)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%.3f\n",
			label, it.Result.Score, it.Result.Classification, it.Result.Probability)
	}
}
