package main

import (
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"

	"readrise/internal/bootstrap"
	sessiondto "readrise/internal/modules/session/dto"
	apperrors "readrise/internal/platform/errors"
)

func newSessionCmd(opts *globalOptions) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Timed reading sessions"}

	var startPage int
	start := &cobra.Command{
		Use:   "start <entry-id>",
		Short: "Start a session; an open session for the same book is closed first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Start(cmd.Context(), app.Config.UserID, args[0], intFlag(cmd, "page", startPage))
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "session started: %s at %s\n", out.Session.ID, out.Session.StartedAt.Format(time.RFC3339))
					if out.AutoClosed > 0 {
						printf(w, "closed %d session(s) left open\n", out.AutoClosed)
					}
				})
			})
		},
	}
	start.Flags().IntVar(&startPage, "page", 0, "page you start on")

	var endPage int
	var note string
	end := &cobra.Command{
		Use:   "end <session-id>",
		Short: "End a running session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.End(cmd.Context(), app.Config.UserID, args[0], intFlag(cmd, "page", endPage), stringFlag(cmd, "note", note))
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printSession(w, out)
				})
			})
		},
	}
	end.Flags().IntVar(&endPage, "page", 0, "page you stopped on")
	end.Flags().StringVar(&note, "note", "", "note")

	var limit int
	list := &cobra.Command{
		Use:   "list <entry-id>",
		Short: "List sessions for a book, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				sessions, err := app.SessionCLI.List(cmd.Context(), app.Config.UserID, args[0], limit)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, sessions, func(w io.Writer) {
					if len(sessions) == 0 {
						printf(w, "no sessions\n")
						return
					}
					for _, s := range sessions {
						printSession(w, s)
					}
				})
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "maximum sessions (default and maximum 50)")

	active := &cobra.Command{
		Use:   "active <entry-id>",
		Short: "Show the running session for a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.GetActive(cmd.Context(), app.Config.UserID, args[0])
				if errors.Is(err, apperrors.ErrNoActiveSession) {
					return render(cmd, opts.output, nil, func(w io.Writer) {
						printf(w, "no active session\n")
					})
				}
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "session %s running since %s\n", out.ID, out.StartedAt.Format(time.RFC3339))
				})
			})
		},
	}

	var timerPage int
	timer := &cobra.Command{
		Use:   "timer <entry-id>",
		Short: "Start a session and keep a live timer open until you end it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.logLevel == "" {
				opts.logLevel = "error"
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				entry, err := app.LibraryCLI.GetEntry(cmd.Context(), app.Config.UserID, args[0])
				if err != nil {
					return err
				}
				out, err := app.SessionCLI.Start(cmd.Context(), app.Config.UserID, entry.ID, intFlag(cmd, "page", timerPage))
				if err != nil {
					return err
				}
				return bootstrap.RunTUI(app, &out.Session, entry.Title)
			})
		},
	}
	timer.Flags().IntVar(&timerPage, "page", 0, "page you start on")

	session.AddCommand(start, end, list, active, timer)
	return session
}

func printSession(w io.Writer, s sessiondto.SessionOutput) {
	printf(w, "%s\t%s", s.ID, s.StartedAt.Format("2006-01-02 15:04"))
	if s.EndedAt == nil {
		printf(w, "\trunning\n")
		return
	}
	if s.DurationSeconds != nil {
		printf(w, "\t%s", formatSeconds(*s.DurationSeconds))
	}
	if s.PagesRead != nil {
		printf(w, "\t%d pages", *s.PagesRead)
	}
	if s.PagesPerHour != nil {
		printf(w, "\t%.1f p/h", *s.PagesPerHour)
	}
	if s.Anomalous {
		printf(w, "\t(negative duration)")
	}
	printf(w, "\n")
}

func formatSeconds(seconds int64) string {
	sign := ""
	if seconds < 0 {
		sign, seconds = "-", -seconds
	}
	return sign + (time.Duration(seconds) * time.Second).String()
}
