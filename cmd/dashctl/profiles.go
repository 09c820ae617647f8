package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/snapsense/snapsense-server/internal/domain"
)

func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "List, add, remove and select child profiles",
	}
	cmd.AddCommand(newProfilesListCmd(), newProfilesAddCmd(), newProfilesRemoveCmd(), newProfilesSelectCmd())
	return cmd
}

func newProfilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			selected := a.profiles.SelectedID()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\tID\tNAME\tAGE\tLEVEL\tEXP\tSTREAK")
			for _, p := range a.profiles.Profiles() {
				mark := ""
				if p.ID == selected {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s %s\t%d\t%d\t%d\t%d\n",
					mark, p.ID, p.AvatarEmoji, p.Name, p.Age, p.Level, p.Exp, p.Streak)
			}
			return tw.Flush()
		},
	}
}

func newProfilesAddCmd() *cobra.Command {
	var in domain.NewProfile

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a child profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			in.Name = args[0]
			p, err := a.profiles.Add(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&in.Age, "age", 0, "Age in years, 3 to 8")
	cmd.Flags().StringVar(&in.AvatarColor, "color", "", "Avatar colour")
	cmd.Flags().StringVar(&in.AvatarEmoji, "emoji", "", "Avatar emoji")
	cmd.Flags().StringVar(&in.FavoriteModule, "module", "", "Favourite module")
	_ = cmd.MarkFlagRequired("age")
	return cmd
}

func newProfilesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a profile and its activity",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if !a.profiles.Exists(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "no profile %s\n", args[0])
				return nil
			}
			if err := a.profiles.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}

func newProfilesSelectCmd() *cobra.Command {
	var clearSelection bool

	cmd := &cobra.Command{
		Use:   "select [ID]",
		Short: "Select the active profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearSelection == (len(args) == 1) {
				return errors.New("give a profile id or --clear")
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if clearSelection {
				if err := a.profiles.Select(cmd.Context(), ""); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "selection cleared")
				return nil
			}
			if err := a.profiles.SelectExisting(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "selected %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearSelection, "clear", false, "Clear the selection")
	return cmd
}
