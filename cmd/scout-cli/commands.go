package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scout/internal/dashboard"
	"scout/internal/reel"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's reel order",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		t, err := client.Today(ctx)
		if err != nil {
			return err
		}
		if ok, err := printJSON(cmd.OutOrStdout(), t); ok {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  seed %d  %d reels\n", t.Date, t.Seed, t.Count)
		for _, e := range t.Entries {
			fmt.Fprintf(out, "%4d  %-6s %s\n", e.Position+1, e.Symbol, e.Name)
		}
		return nil
	},
}

var reelCmd = &cobra.Command{
	Use:   "reel <position>",
	Short: "Resolve a reel position to its company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := reel.ParsePosition(args[0])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[0])
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		r, err := client.Reel(ctx, pos)
		if err != nil {
			return err
		}
		if ok, err := printJSON(cmd.OutOrStdout(), r); ok {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reel: %d  %s (%s)  next %s\n", r.Position+1, r.Current.Name, r.Current.Symbol, r.Next.Symbol)
		return nil
	},
}

var positionReset bool

var positionCmd = &cobra.Command{
	Use:   "position [new-position]",
	Short: "Show, set or reset the stored reel position",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if positionReset && len(args) == 1 {
			return fmt.Errorf("--reset takes no position argument")
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		switch {
		case positionReset:
			if err := client.ResetPosition(ctx); err != nil {
				return err
			}
		case len(args) == 1:
			pos, err := reel.ParsePosition(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			if err := client.SetPosition(ctx, pos); err != nil {
				return err
			}
		}
		r, err := client.Position(ctx)
		if err != nil {
			return err
		}
		if ok, err := printJSON(cmd.OutOrStdout(), r); ok {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reel: %d  %s (%s)\n", r.Position+1, r.Current.Name, r.Current.Symbol)
		return nil
	},
}

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the company catalog by symbol or name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		entries, err := client.Search(ctx, args[0], searchLimit)
		if err != nil {
			return err
		}
		if ok, err := printJSON(cmd.OutOrStdout(), entries); ok {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", e.Symbol, e.Name)
		}
		return nil
	},
}

var snapshotWidth int

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <symbol>",
	Short: "Render the dashboard for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		snap, err := client.Snapshot(ctx, args[0])
		if err != nil {
			return err
		}
		if ok, err := printJSON(cmd.OutOrStdout(), snap); ok {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dashboard.Render(snap, snapshotWidth))
		return nil
	},
}

var newsLimit int

var newsCmd = &cobra.Command{
	Use:   "news <symbol>",
	Short: "List recent headlines for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		n, err := client.News(ctx, args[0], newsLimit)
		if err != nil {
			return err
		}
		if ok, err := printJSON(cmd.OutOrStdout(), n); ok {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", n.Company, n.Symbol)
		for _, a := range n.Articles {
			fmt.Fprintf(out, "  %s  %-12s %s\n", a.Time.Format("2006-01-02 15:04"), a.Source, a.Headline)
		}
		return nil
	},
}

var sentimentCmd = &cobra.Command{
	Use:   "sentiment <company name>",
	Short: "Score recent headline sentiment for a company",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		s, err := client.Sentiment(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if ok, err := printJSON(cmd.OutOrStdout(), s); ok {
			return err
		}
		out := cmd.OutOrStdout()
		if s.Score != nil {
			fmt.Fprintf(out, "%s (%s)  %.1f/10\n", s.Company, s.Symbol, *s.Score)
			for _, b := range s.Bullets {
				fmt.Fprintf(out, "  • %s\n", b)
			}
			return nil
		}
		fmt.Fprintf(out, "%s (%s)\n%s\n", s.Company, s.Symbol, s.Sentiment)
		return nil
	},
}

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "List favorite companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		favs, err := client.Favorites(ctx)
		if err != nil {
			return err
		}
		if ok, err := printJSON(cmd.OutOrStdout(), favs); ok {
			return err
		}
		for _, f := range favs {
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %-28s %s\n", f.Symbol, f.Name, f.AddedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <symbol>",
	Short: "Add a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		added, err := client.AddFavorite(ctx, args[0])
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", strings.ToUpper(args[0]))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already a favorite\n", strings.ToUpper(args[0]))
		}
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "rm <symbol>",
	Aliases: []string{"remove"},
	Short:   "Remove a favorite",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		removed, err := client.RemoveFavorite(ctx, args[0])
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", strings.ToUpper(args[0]))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s was not a favorite\n", strings.ToUpper(args[0]))
		}
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the server is up",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := client.Ping(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

func init() {
	positionCmd.Flags().BoolVar(&positionReset, "reset", false, "forget the stored position")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum results")
	snapshotCmd.Flags().IntVarP(&snapshotWidth, "width", "w", 80, "render width")
	newsCmd.Flags().IntVarP(&newsLimit, "limit", "n", 0, "maximum articles (0 for server default)")
	favoritesCmd.AddCommand(favoritesAddCmd, favoritesRemoveCmd)
}
