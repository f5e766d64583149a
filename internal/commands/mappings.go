package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/txclean/internal/mappings"
)

func newMappingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage custom name mappings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List custom mappings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				list, err := mappings.Load(a.path(a.cfg.Mappings))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintln(out, "No mappings.")
					return nil
				}
				for i, m := range list {
					fmt.Fprintf(out, "%d. %s -> %s\n", i+1, m.From, m.To)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <from> <to>",
			Short: "Add or replace a mapping",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := a.path(a.cfg.Mappings)
				list, err := mappings.Load(path)
				if err != nil {
					return err
				}
				list, err = mappings.Upsert(list, args[0], args[1])
				if err != nil {
					return err
				}
				if err := mappings.Save(path, list); err != nil {
					return err
				}
				a.logger.Debug("saved mappings", "path", path, "count", len(list))
				fmt.Fprintf(cmd.OutOrStdout(), "Mapped %q to %q\n", args[0], args[1])
				return nil
			},
		},
		newMappingsRemoveCommand(a),
	)
	return cmd
}

func newMappingsRemoveCommand(a *app) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "remove <from> | --index N",
		Short: "Remove a mapping by name or by its number in list",
		RunE: func(cmd *cobra.Command, args []string) error {
			byIndex := cmd.Flags().Changed("index")
			switch {
			case byIndex && len(args) > 0:
				return errors.New("give either a name or --index, not both")
			case !byIndex && len(args) != 1:
				return errors.New("remove needs exactly one name, or --index")
			}

			path := a.path(a.cfg.Mappings)
			list, err := mappings.Load(path)
			if err != nil {
				return err
			}

			var removed string
			if byIndex {
				if index < 1 || index > len(list) {
					return fmt.Errorf("no mapping number %d (have %d)", index, len(list))
				}
				removed = list[index-1].From
				if list, err = mappings.RemoveAt(list, index-1); err != nil {
					return err
				}
			} else {
				var found bool
				if list, found = mappings.Remove(list, args[0]); !found {
					return fmt.Errorf("no mapping for %q", args[0])
				}
				removed = args[0]
			}

			if err := mappings.Save(path, list); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed mapping for %q\n", removed)
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "number of the mapping as shown by list")
	return cmd
}
