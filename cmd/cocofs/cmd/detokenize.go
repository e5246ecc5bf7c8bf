package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chipshift/cocofs/basic"
)

func DefineDetokenizeCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:          "detokenize <program_path>",
		Short:        "Decode a tokenized BASIC program into source text",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res, err := basic.Detokenize(data)
			if err != nil {
				return err
			}
			if res.BadTokenCount > 0 && log != nil {
				log.Warnf("%d token(s) had no table entry", res.BadTokenCount)
			}
			if outPath == "" {
				fmt.Println(res.Text)
				return nil
			}
			return os.WriteFile(outPath, []byte(res.Text), 0o644)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write decoded text to this path instead of stdout")
	return cmd
}
