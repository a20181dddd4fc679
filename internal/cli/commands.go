package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/idilsaglam/sheettracker/internal/store"
	"github.com/idilsaglam/sheettracker/internal/ui"
	"github.com/idilsaglam/sheettracker/internal/view"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		filter string
		search string
		group  bool
		links  bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List questions with progress",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(*cobra.Command, []string) error {
			mode, err := view.ParseMode(filter)
			if err != nil {
				return usageError{msg: err.Error()}
			}
			s, release, err := a.openStore()
			if err != nil {
				return err
			}
			defer release()

			qs := s.Questions()
			lines := headerLines(view.Progress(qs))
			entries := view.Filter(qs, mode, search)
			switch {
			case len(qs) == 0:
				lines = append(lines, ui.C(ui.Current().Muted, "no questions yet"))
			case len(entries) == 0:
				lines = append(lines, ui.C(ui.Current().Muted, "no questions match your filter"))
			case group:
				lines = append(lines, groupLines(entries, links)...)
			default:
				lines = append(lines, flatLines(entries, links)...)
			}
			lines = append(lines, "", ui.C(ui.Current().Muted, "Tip: import with `sheettracker import github <url>`"))
			ui.Panel(lines)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Show all, completed or pending questions")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only questions whose title or category contains this text")
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	cmd.Flags().BoolVar(&links, "links", false, "Print each question's link")
	return cmd
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <index>",
		Aliases: []string{"toggle"},
		Short:   "Toggle completion of the question at a 1-based index",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := parseIndex("done", args[0])
			if err != nil {
				return err
			}
			s, release, err := a.openStore(store.WithCelebrator(ui.Confetti{}))
			if err != nil {
				return err
			}
			defer release()

			if err := s.Toggle(n - 1); err != nil {
				return indexHint(err)
			}
			if s.Questions()[n-1].Completed {
				ui.OK("marked done")
			} else {
				ui.OK("marked pending")
			}
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the question at a 1-based index",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := parseIndex("rm", args[0])
			if err != nil {
				return err
			}
			s, release, err := a.openStore()
			if err != nil {
				return err
			}
			defer release()

			if err := s.Delete(n - 1); err != nil {
				return indexHint(err)
			}
			ui.OK("removed")
			return nil
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every question (asks first)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(*cobra.Command, []string) error {
			var confirmer store.Confirmer = ui.Prompt{In: stdin, Out: ui.Err}
			if yes {
				confirmer = store.ConfirmFunc(func(string) bool { return true })
			}
			s, release, err := a.openStore(store.WithConfirmer(confirmer))
			if err != nil {
				return err
			}
			defer release()

			n := s.Len()
			cleared, err := s.ClearAll()
			if err != nil {
				return err
			}
			if !cleared {
				ui.OK("nothing cleared")
				return nil
			}
			ui.OK(fmt.Sprintf("cleared %d questions", n))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func parseIndex(cmd, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usagef("%s: not a number: %s", cmd, arg)
	}
	return n, nil
}

func indexHint(err error) error {
	if errors.Is(err, store.ErrIndexOutOfRange) {
		ui.Hint("run `sheettracker ls` to see valid indexes")
		return usageError{msg: err.Error()}
	}
	return err
}
