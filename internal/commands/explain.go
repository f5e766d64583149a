package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/txclean/internal/cleaner"
	"github.com/cleared-dev/txclean/internal/mappings"
)

func newExplainCommand(a *app) *cobra.Command {
	var asJSON bool
	var listRules bool

	cmd := &cobra.Command{
		Use:   "explain <memo>",
		Short: "Show which rule cleans a memo and what it produces",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listRules {
				for i, r := range cleaner.Rules() {
					fmt.Fprintf(out, "%2d  %s\n", i+1, r.Name)
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New("explain needs a memo, or --rules")
			}

			list, err := mappings.Load(a.path(a.cfg.Mappings))
			if err != nil {
				return err
			}

			ex := cleaner.Explain(strings.Join(args, " "), list)
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(ex)
			}

			fmt.Fprintf(out, "memo:      %s\n", ex.Memo)
			fmt.Fprintf(out, "rule:      %s\n", ex.Rule)
			fmt.Fprintf(out, "candidate: %s\n", ex.Candidate)
			if ex.BuiltIn != "" {
				fmt.Fprintf(out, "built-in:  %s\n", ex.BuiltIn)
			}
			fmt.Fprintf(out, "clean:     %s\n", ex.Clean)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the explanation as JSON")
	cmd.Flags().BoolVar(&listRules, "rules", false, "list the rules in priority order")
	return cmd
}
