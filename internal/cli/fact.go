package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"didyouknow/internal/facts"
)

// newFactCmd prints a single fact and exits.
func newFactCmd(a *app) *cobra.Command {
	var (
		copyFact bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "fact",
		Short: "Print one random fact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, err := a.newSource(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return printFactJSON(cmd, source)
			}

			surface := &writerSurface{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
			ctrl := facts.NewController(source, surface, a.capabilities(), a.controllerOptions()...)
			defer ctrl.Close()

			ctrl.DisplayNewFact(cmd.Context(), false)
			if surface.failed {
				return errors.New("failed to fetch a fact")
			}
			if copyFact && !ctrl.CopyCurrentText(cmd.Context()) {
				return errors.New("failed to copy the fact")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyFact, "copy", false, "copy the fact to the clipboard")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the fact and its metadata as JSON")
	cmd.MarkFlagsMutuallyExclusive("copy", "json")
	return cmd
}

func printFactJSON(cmd *cobra.Command, source facts.Source) error {
	fact, err := source.Fetch(cmd.Context())
	if err != nil {
		logger.Error().Err(err).Msg("fetch failed")
		return fmt.Errorf("failed to fetch a fact: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(fact)
}

// writerSurface prints facts to out and status messages to errOut. Calls
// arrive synchronously from a single command, so it needs no locking.
type writerSurface struct {
	out    io.Writer
	errOut io.Writer
	failed bool
}

func (s *writerSurface) ShowFact(text string) {
	if text == facts.ErrorText {
		s.failed = true
		fmt.Fprintln(s.errOut, text)
		return
	}
	fmt.Fprintln(s.out, text)
}

func (s *writerSurface) ShowStatus(msg string) {
	if msg != "" {
		fmt.Fprintln(s.errOut, msg)
	}
}

func (s *writerSurface) SetLoading(bool) {}

func (s *writerSurface) Reveal() {}
