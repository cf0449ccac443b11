package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/words"
)

func newPlayCommand(flags *rootFlags) *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play a round in the terminal.

Type a word and press enter. Commands:
  :new   start a new round
  :quit  exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, lists, err := setup(flags)
			if err != nil {
				return err
			}
			return play(cmd.InOrStdin(), cmd.OutOrStdout(), lists, root)
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "use this root word for the first round")
	return cmd
}

// play runs an interactive loop until :quit or EOF.
func play(in io.Reader, out io.Writer, lists *words.Lists, root string) error {
	sess := game.NewSession(game.NewEngine(lists.Dict), lists.Language)
	start := func() error {
		if root != "" {
			if err := sess.StartWith(root); err != nil {
				return fmt.Errorf("--root %q: %w", root, err)
			}
			root = ""
		} else if err := sess.Start(lists.Roots); err != nil {
			return err
		}
		rd, _ := sess.Snapshot()
		fmt.Fprintf(out, "Root word: %s\n", rd.Root)
		return nil
	}
	if err := start(); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := sc.Text()
		switch strings.TrimSpace(line) {
		case ":quit", ":q":
			return nil
		case ":new":
			if err := start(); err != nil {
				return err
			}
			continue
		}

		rd, res, err := sess.Submit(line)
		if err != nil {
			return err
		}
		switch {
		case res.Ignored:
		case res.Rejection != nil:
			fmt.Fprintf(out, "%s: %s\n", res.Rejection.Title, res.Rejection.Message)
		default:
			fmt.Fprintf(out, "+%d  %s (%d)  score %d\n", res.Points, res.Word, len([]rune(res.Word)), rd.Score)
		}
	}
}
