package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faideww/fishing-journal/internal/content"
	"github.com/faideww/fishing-journal/internal/diary"
	"github.com/faideww/fishing-journal/internal/spot"
)

func spotsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spots [season]",
		Short: "List spots, optionally for one season",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			list := a.catalog.All()
			if len(args) == 1 {
				season, err := spot.ParseSeason(args[0])
				if err != nil {
					return err
				}
				list = a.catalog.BySeason(season)
			}
			for _, sp := range list {
				mark := " "
				if a.saved.IsSaved(sp.Name) {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %s  (%s)\n", mark, sp.Name, sp.Fish)
			}
			return nil
		},
	}
}

func spotCmd(a *app) *cobra.Command {
	var other string
	cmd := &cobra.Command{
		Use:   "spot <name>",
		Short: "Show one spot",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, ok := a.catalog.Find(strings.Join(args, " "))
			if !ok {
				return fmt.Errorf("unknown spot %q", strings.Join(args, " "))
			}
			if other != "" {
				season, err := spot.ParseSeason(other)
				if err != nil {
					return err
				}
				sp = spot.NewPicker(a.catalog, nil).Other(season, sp)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, content.ShareSpot(sp))
			fmt.Fprintf(out, "Fish: %s\n", sp.Fish)
			fmt.Fprintf(out, "Map:  %s\n", spot.MapURL(sp.Coords, sp.Name))
			if a.saved.IsSaved(sp.Name) {
				fmt.Fprintln(out, "Saved")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&other, "other", "", "show a different spot from this season instead")
	return cmd
}

func saveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save or unsave a spot",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			sp, ok := a.catalog.Find(name)
			if !ok {
				return fmt.Errorf("unknown spot %q", name)
			}
			if a.saved.Toggle(sp) {
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", sp.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", sp.Name)
			}
			return nil
		},
	}
}

func savedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List saved spots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			list := a.saved.Saved()
			if len(list) == 0 {
				fmt.Fprintln(out, "no saved spots")
				return nil
			}
			for i, sp := range list {
				fmt.Fprintf(out, "%d. %s — %s\n", i+1, sp.Name, sp.Address)
			}
			return nil
		},
	}
}

func forecastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast <season>",
		Short: "Show the seasonal forecast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := spot.ParseSeason(args[0])
			if err != nil {
				return err
			}
			fc, err := content.ForecastFor(season)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, content.ShareArticle(fc.Article))
			if best, ok := fc.BestSpot(a.catalog); ok {
				fmt.Fprintf(out, "\nBest spot: %s (%s)\n", best.Name, best.Fish)
			}
			return nil
		},
	}
}

func tipsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tips [id]",
		Short: "Fishing tips, or one tip by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				tip, ok := content.TipByID(args[0])
				if !ok {
					return fmt.Errorf("unknown tip %q", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), content.ShareArticle(tip))
				return nil
			}
			for _, t := range content.Tips() {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s\n", t.Title, t.Text)
			}
			return nil
		},
	}
}

func journalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Manage the catch journal",
	}

	var desc, date string
	var lat, lon float64
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Log a catch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := diary.ParseDate(date)
			if err != nil {
				return err
			}
			var coords *spot.Coords
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
				coords = &spot.Coords{Lat: lat, Lon: lon}
			}
			e, err := diary.NewEntry(strings.Join(args, " "), desc, when, coords)
			if err != nil {
				return err
			}
			a.journal.Add(e)
			fmt.Fprintln(cmd.OutOrStdout(), e.ID)
			return nil
		},
	}
	add.Flags().StringVar(&desc, "desc", "", "notes")
	add.Flags().StringVar(&date, "date", "", "dd/mm/yyyy (default today)")
	add.Flags().Float64Var(&lat, "lat", 0, "latitude")
	add.Flags().Float64Var(&lon, "lon", 0, "longitude")
	add.MarkFlagsRequiredTogether("lat", "lon")

	list := &cobra.Command{
		Use:   "list",
		Short: "List catches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			entries := a.journal.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(out, "journal is empty")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s  %s\n", e.ID, e.Date, e.Title)
				if e.Desc != "" {
					fmt.Fprintf(out, "    %s\n", e.Desc)
				}
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a catch ready to share",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok := a.journal.Get(args[0])
			if !ok {
				return fmt.Errorf("no journal entry %q", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, content.ShareEntry(e))
			if e.Coords != nil {
				fmt.Fprintln(out, spot.MapURL(*e.Coords, ""))
			}
			return nil
		},
	}

	rm := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a catch",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.journal.Remove(args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, show, rm)
	return cmd
}
