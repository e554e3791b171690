package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mmcdole/cinelog/internal/adapter"
	"github.com/mmcdole/cinelog/internal/console"
	"github.com/mmcdole/cinelog/internal/domain"
	"github.com/mmcdole/cinelog/internal/store"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Create a movie database",
		Long: `Create a movie database at path, or add the Movies table to an existing
SQLite file. Existing movies are kept. The path is saved as database.path
unless --no-save is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := rootOpts.session
			st, err := store.Initialize(cmd.Context(), args[0], s.logger)
			if err != nil {
				return err
			}

			if !noSave {
				path, err := filepath.Abs(st.Path())
				if err != nil {
					return err
				}
				s.cfg.Database.Path = path
				if err := adapter.SaveConfigTo(s.configDir, s.cfg); err != nil {
					return err
				}
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Message("Initialized movie database at %s", st.Path())
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the path in config.yaml")
	return cmd
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		sortBy string
		desc   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every movie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := rootOpts.session
			field, err := s.sortField(sortBy)
			if err != nil {
				return err
			}
			svc, err := s.openService(cmd.Context())
			if err != nil {
				return err
			}

			movies := svc.List(field, desc)
			return newFormatter(rootOpts, cmd.OutOrStdout()).Write(movies, func(w io.Writer) error {
				if err := console.WriteMovies(w, movies); err != nil {
					return err
				}
				if len(movies) == 0 {
					return nil
				}
				fmt.Fprintln(w)
				return console.WriteSummary(w, svc.Count(), svc.WatchedCount(), svc.AverageRating())
			})
		},
	}

	cmd.Flags().StringVarP(&sortBy, "sort", "s", "", "sort field (title|year|genre|director|rating|watched)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title> <year> <genre> <director> <rating> <watched>",
		Short: "Add a movie",
		Example: `  cinelog add "Heat" 1995 Crime "Michael Mann" 90 false`,
		Args:    cobra.ExactArgs(len(domain.RecordFields)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rootOpts.session.openService(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.AddFields(cmd.Context(), args); err != nil {
				return err
			}

			m, err := svc.Get(args[0])
			if err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Write(m, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Added %q.\n", m.Title)
				return err
			})
		},
	}
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <title>",
		Aliases: []string{"rm"},
		Short:   "Remove a movie by title",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rootOpts.session.openService(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Message("Removed %q.", args[0])
		},
	}
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <title> <field> <value>",
		Short: "Change one field of a movie",
		Long: `Change one field of the movie with the given title. Field is one of
title, year, genre, director, rating or watched.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, value := args[0], args[2]
			field, err := domain.ParseField(args[1])
			if err != nil {
				return err
			}

			svc, err := rootOpts.session.openService(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.UpdateField(cmd.Context(), title, field, value); err != nil {
				return err
			}

			if field == domain.FieldTitle {
				title = value
			}
			m, err := svc.Get(title)
			if err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Write(m, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Updated %s of %q.\n", strings.ToLower(field.Label()), m.Title)
				return err
			})
		},
	}
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add movies from a comma separated file",
		Long: `Add movies from a text file with one movie per line:

  title,year,genre,director,rating,watched

Lines that do not parse or fail validation are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rootOpts.session.openService(cmd.Context())
			if err != nil {
				return err
			}
			summary, err := svc.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return newFormatter(rootOpts, cmd.OutOrStdout()).Write(summary, func(w io.Writer) error {
				for _, sk := range summary.Skipped {
					fmt.Fprintf(w, "Skipped line %d (%s): %s\n", sk.Line, sk.Text, sk.Reason)
				}
				_, err := fmt.Fprintf(w, "Imported %d of %d lines.\n", summary.Accepted, summary.Lines)
				return err
			})
		},
	}
}

// averageResult is the structured output of the average command
type averageResult struct {
	Average float64 `json:"average" yaml:"average"`
	Count   int     `json:"count" yaml:"count"`
}

// NewAverageCommand creates the average command.
func NewAverageCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "average",
		Short: "Print the average rating of the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rootOpts.session.openService(cmd.Context())
			if err != nil {
				return err
			}

			res := averageResult{Average: svc.AverageRating(), Count: svc.Count()}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Write(res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Average rating: %.1f\n", res.Average)
				return err
			})
		},
	}
}

// searchHit is the structured output of one search result
type searchHit struct {
	Movie     domain.Movie `json:"movie" yaml:"movie"`
	MatchedOn domain.Field `json:"matched_on" yaml:"matched_on"`
	Score     int          `json:"score" yaml:"score"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find movies by title or director",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := rootOpts.session.openService(cmd.Context())
			if err != nil {
				return err
			}

			results := svc.Search(args[0])
			hits := make([]searchHit, len(results))
			movies := make([]domain.Movie, len(results))
			for i, r := range results {
				hits[i] = searchHit{Movie: r.Movie, MatchedOn: r.Field, Score: r.Score}
				movies[i] = r.Movie
			}

			return newFormatter(rootOpts, cmd.OutOrStdout()).Write(hits, func(w io.Writer) error {
				if len(movies) == 0 {
					_, err := fmt.Fprintf(w, "No matches for %q.\n", args[0])
					return err
				}
				return console.WriteMovies(w, movies)
			})
		},
	}
}
