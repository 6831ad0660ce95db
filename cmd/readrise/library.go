package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"readrise/internal/bootstrap"
	librarydto "readrise/internal/modules/library/dto"
)

func newBookCmd(opts *globalOptions) *cobra.Command {
	book := &cobra.Command{Use: "book", Short: "Manage books on your shelves"}

	var authors, genres []string
	var pages int
	var shelf string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a book to a shelf (default want_to_read)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.LibraryCLI.AddBook(cmd.Context(), librarydto.AddBookInput{
					UserID:    app.Config.UserID,
					Title:     args[0],
					Authors:   authors,
					Genres:    genres,
					PageCount: intFlag(cmd, "pages", pages),
					Shelf:     shelf,
				})
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "added %s (%s) to %s\n", out.Title, out.ID, out.Shelf)
				})
			})
		},
	}
	add.Flags().StringSliceVar(&authors, "author", nil, "author (repeatable)")
	add.Flags().StringSliceVar(&genres, "genre", nil, "genre (repeatable)")
	add.Flags().IntVar(&pages, "pages", 0, "page count")
	add.Flags().StringVar(&shelf, "shelf", "", "want_to_read|reading|finished|abandoned")

	var listShelf string
	list := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally on one shelf",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				entries, err := app.LibraryCLI.ListEntries(cmd.Context(), app.Config.UserID, listShelf)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, entries, func(w io.Writer) {
					if len(entries) == 0 {
						printf(w, "no books\n")
						return
					}
					for _, e := range entries {
						printf(w, "%s\t%-12s\t%s\t%s\n", e.ID, e.Shelf, e.Title, strings.Join(e.Authors, ", "))
					}
				})
			})
		},
	}
	list.Flags().StringVar(&listShelf, "shelf", "", "filter by shelf")

	show := &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show a book and its recent progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				entry, err := app.LibraryCLI.GetEntry(cmd.Context(), app.Config.UserID, args[0])
				if err != nil {
					return err
				}
				progress, err := app.LibraryCLI.ListProgress(cmd.Context(), app.Config.UserID, args[0], 5)
				if err != nil {
					return err
				}
				view := struct {
					librarydto.EntryOutput `yaml:",inline"`
					Progress               []librarydto.ProgressOutput `json:"progress" yaml:"progress"`
				}{entry, progress}
				return render(cmd, opts.output, view, func(w io.Writer) {
					printEntry(w, entry)
					for _, p := range progress {
						printf(w, "  %s  page %d  %.0f%%\n", p.LoggedAt.Format("2006-01-02 15:04"), p.Page, p.Percent*100)
					}
				})
			})
		},
	}

	var on string
	move := &cobra.Command{
		Use:   "shelf <entry-id> <shelf>",
		Short: "Move a book to another shelf",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDateFlag("on", on)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.LibraryCLI.MoveShelf(cmd.Context(), app.Config.UserID, args[0], args[1], day)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "%s is now on %s\n", out.Title, out.Shelf)
				})
			})
		},
	}
	move.Flags().StringVar(&on, "on", "", "date of the move, YYYY-MM-DD (default today)")

	remove := &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Remove a book with its sessions, progress and review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				if err := app.LibraryCLI.RemoveEntry(cmd.Context(), app.Config.UserID, args[0]); err != nil {
					return err
				}
				out := struct {
					Removed string `json:"removed" yaml:"removed"`
				}{args[0]}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "removed %s\n", args[0])
				})
			})
		},
	}

	book.AddCommand(add, list, show, move, remove, newReviewCmd(opts))
	return book
}

func newReviewCmd(opts *globalOptions) *cobra.Command {
	var body string
	review := &cobra.Command{
		Use:   "review <entry-id> [rating]",
		Short: "Rate a book from 1 to 5 in half stars, or show its review",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rating float64
			if len(args) == 2 {
				var err error
				if rating, err = strconv.ParseFloat(args[1], 64); err != nil {
					return fmt.Errorf("rating must be a number: %q", args[1])
				}
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				var (
					out librarydto.ReviewOutput
					err error
				)
				if len(args) == 2 {
					out, err = app.LibraryCLI.SetReview(cmd.Context(), app.Config.UserID, args[0], rating, stringFlag(cmd, "body", body))
				} else {
					out, err = app.LibraryCLI.GetReview(cmd.Context(), app.Config.UserID, args[0])
				}
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "rating: %s\n", strconv.FormatFloat(out.Rating, 'f', -1, 64))
					if out.Body != nil {
						printf(w, "%s\n", *out.Body)
					}
				})
			})
		},
	}
	review.Flags().StringVar(&body, "body", "", "review text (at most 5000 characters)")
	return review
}

func newProfileCmd(opts *globalOptions) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Show the reader profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.LibraryCLI.GetProfile(cmd.Context(), app.Config.UserID)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "%s (%s)\n", out.DisplayName, out.UserID)
				})
			})
		},
	}
	name := &cobra.Command{
		Use:   "name <display-name>",
		Short: "Set the name used in weekly summaries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.LibraryCLI.SetDisplayName(cmd.Context(), app.Config.UserID, args[0])
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "display name set to %s\n", out.DisplayName)
				})
			})
		},
	}
	profile.AddCommand(name)
	return profile
}

func printEntry(w io.Writer, e librarydto.EntryOutput) {
	printf(w, "id: %s\ntitle: %s\nshelf: %s\n", e.ID, e.Title, e.Shelf)
	if len(e.Authors) > 0 {
		printf(w, "authors: %s\n", strings.Join(e.Authors, ", "))
	}
	if len(e.Genres) > 0 {
		printf(w, "genres: %s\n", strings.Join(e.Genres, ", "))
	}
	if e.PageCount != nil {
		printf(w, "pages: %d\n", *e.PageCount)
	}
	if e.StartedOn != nil {
		printf(w, "started: %s\n", e.StartedOn)
	}
	if e.FinishedOn != nil {
		printf(w, "finished: %s\n", e.FinishedOn)
	}
	if e.AbandonedOn != nil {
		printf(w, "abandoned: %s\n", e.AbandonedOn)
	}
}

func newProgressCmd(opts *globalOptions) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Log and review page progress"}

	var pageCount int
	var note string
	logCmd := &cobra.Command{
		Use:   "log <entry-id> <page>",
		Short: "Record the page you reached",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var page int
			if _, err := fmt.Sscanf(args[1], "%d", &page); err != nil {
				return fmt.Errorf("page must be a number: %q", args[1])
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.LibraryCLI.LogProgress(cmd.Context(), librarydto.LogProgressInput{
					UserID:    app.Config.UserID,
					EntryID:   args[0],
					Page:      page,
					PageCount: intFlag(cmd, "pages", pageCount),
					Note:      stringFlag(cmd, "note", note),
				})
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "page %d logged (%.0f%%)\n", out.Progress.Page, out.Progress.Percent*100)
					if out.StartedReading {
						printf(w, "moved to reading\n")
					}
				})
			})
		},
	}
	logCmd.Flags().IntVar(&pageCount, "pages", 0, "total pages, if different from the book")
	logCmd.Flags().StringVar(&note, "note", "", "note")

	var limit int
	list := &cobra.Command{
		Use:   "list <entry-id>",
		Short: "List progress entries, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				entries, err := app.LibraryCLI.ListProgress(cmd.Context(), app.Config.UserID, args[0], limit)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, entries, func(w io.Writer) {
					if len(entries) == 0 {
						printf(w, "no progress logged\n")
						return
					}
					for _, p := range entries {
						line := fmt.Sprintf("%s\tpage %d\t%.0f%%", p.LoggedAt.Format("2006-01-02 15:04"), p.Page, p.Percent*100)
						if p.Note != nil {
							line += "\t" + *p.Note
						}
						printf(w, "%s\n", line)
					}
				})
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "maximum entries (default and maximum 50)")

	progress.AddCommand(logCmd, list)
	return progress
}

func newGoalCmd(opts *globalOptions) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Yearly book goal"}

	var year int
	set := &cobra.Command{
		Use:   "set <books>",
		Short: "Set how many books to finish this year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target int
			if _, err := fmt.Sscanf(args[0], "%d", &target); err != nil {
				return fmt.Errorf("target must be a number: %q", args[0])
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.LibraryCLI.SetGoal(cmd.Context(), app.Config.UserID, year, target)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "goal for %d: %d books\n", out.Year, out.Target)
				})
			})
		},
	}
	set.Flags().IntVar(&year, "year", 0, "year (default current)")

	var showYear int
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the goal and progress for a year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.LibraryCLI.GetGoal(cmd.Context(), app.Config.UserID, showYear)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "goal for %d: %d books\n", out.Year, out.Target)
				})
			})
		},
	}
	show.Flags().IntVar(&showYear, "year", 0, "year (default current)")

	goal.AddCommand(set, show)
	return goal
}
