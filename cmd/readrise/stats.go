package main

import (
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"readrise/internal/bootstrap"
	statsdto "readrise/internal/modules/stats/dto"
)

func newStreakCmd(opts *globalOptions) *cobra.Command {
	var today string
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Current and longest daily reading streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDateFlag("today", today)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.StatsCLI.Streak(cmd.Context(), app.Config.UserID, day)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printStreak(w, out)
				})
			})
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "evaluate as of this day, YYYY-MM-DD (default today UTC)")
	return cmd
}

func newStatsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Reading totals, pace, genres and books per month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.StatsCLI.Stats(cmd.Context(), app.Config.UserID)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printStats(w, out)
				})
			})
		},
	}
}

func newDashboardCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Stats together with this year's goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.StatsCLI.Dashboard(cmd.Context(), app.Config.UserID)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printStats(w, out.Stats)
					if out.Goal == nil {
						printf(w, "goal: none set\n")
						return
					}
					printf(w, "goal: %d/%d books in %d (%.0f%%)\n", out.Goal.Finished, out.Goal.Target, out.Goal.Year, out.Goal.Percent*100)
				})
			})
		},
	}
}

func printStreak(w io.Writer, s statsdto.StreakOutput) {
	printf(w, "current streak: %d days\nlongest streak: %d days\n", s.CurrentStreak, s.LongestStreak)
	if s.LastActiveDate != nil {
		printf(w, "last read: %s\n", s.LastActiveDate)
	}
}

func printStats(w io.Writer, s statsdto.StatsOutput) {
	printf(w, "books this year: %d\n", s.BooksReadThisYear)
	printf(w, "pages this year: %d\npages all time: %d\n", s.TotalPagesThisYear, s.TotalPagesAllTime)
	printf(w, "hours all time: %d\n", s.TotalHoursAllTime)
	if s.AveragePagesPerHour != nil {
		printf(w, "average pace: %d pages/hour\n", *s.AveragePagesPerHour)
	}
	printStreak(w, s.Streak)
	if len(s.GenreBreakdown) > 0 {
		genres := make([]string, len(s.GenreBreakdown))
		for i, g := range s.GenreBreakdown {
			genres[i] = g.Genre + " (" + itoa(g.Count) + ")"
		}
		printf(w, "top genres: %s\n", strings.Join(genres, ", "))
	}
	months := make([]string, 0, 12)
	for i, n := range s.BooksPerMonth {
		months = append(months, time.Month(i+1).String()[:3]+" "+itoa(n))
	}
	printf(w, "finished per month: %s\n", strings.Join(months, "  "))
}
