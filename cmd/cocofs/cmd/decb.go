package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/chipshift/cocofs/decb"
)

func DefineDecbCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decb",
		Short: "Read, write, and format DECB (.DSK/.JVC) disk images",
	}

	cmd.AddCommand(
		defineDecbFormatCommand(),
		defineDecbListCommand(),
		defineDecbFreeCommand(),
		defineDecbExtractCommand(),
		defineDecbInsertCommand(),
		defineDecbDeleteCommand(),
		defineDecbRenameCommand(),
	)
	return cmd
}

func defineDecbFormatCommand() *cobra.Command {
	var tracks, sides int
	var jvc bool

	cmd := &cobra.Command{
		Use:          "format <image_path>",
		Short:        "Create a new blank DECB image",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return decb.FormatFile(args[0], tracks, sides, jvc)
		},
	}
	cmd.Flags().IntVar(&tracks, "tracks", 35, "tracks per side (35, 40, or 80)")
	cmd.Flags().IntVar(&sides, "sides", 1, "sides (1 or 2)")
	cmd.Flags().BoolVar(&jvc, "jvc", false, "write a 5-byte JVC header")
	return cmd
}

func defineDecbListCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "list <image_path>",
		Short:        "List the files on a DECB image",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decb.MountFile(args[0], decb.WithLogger(log))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tMODE\tGRANULE\tSIZE")
			for _, fi := range v.List() {
				mode := "BIN"
				if fi.ASCII {
					mode = "ASCII"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", fi.DisplayName(), fi.Type, mode, fi.FirstGranule, humanize.Comma(int64(fi.SizeBytes)))

				debugDump(fi)
			}
			return w.Flush()
		},
	}
}

func defineDecbFreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "free <image_path>",
		Short:        "Show free/total granule counts",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decb.MountFile(args[0])
			if err != nil {
				return err
			}
			free, total := v.Free()
			fmt.Printf("%s/%s granules free\n", humanize.Comma(int64(free)), humanize.Comma(int64(total)))
			return nil
		},
	}
}

func defineDecbExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "extract <image_path> <name> <out_path>",
		Short:        "Extract a file from a DECB image",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decb.MountFile(args[0])
			if err != nil {
				return err
			}
			data, err := v.Extract(args[1])
			if err != nil {
				return err
			}
			return os.WriteFile(args[2], data, 0o644)
		},
	}
}

func defineDecbInsertCommand() *cobra.Command {
	var fileType int
	var ascii bool

	cmd := &cobra.Command{
		Use:          "insert <image_path> <in_path> <name>",
		Short:        "Insert a file into a DECB image",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decb.MountFile(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			if err := v.Insert(args[2], data, decb.FileType(fileType), ascii); err != nil {
				return err
			}
			return v.Flush(args[0])
		},
	}
	cmd.Flags().IntVar(&fileType, "type", int(decb.FileTypeData), "file type: 0=BASIC 1=DATA 2=ML 3=TEXT")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "mark the file as ASCII")
	return cmd
}

func defineDecbDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "delete <image_path> <name>",
		Short:        "Delete a file from a DECB image",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decb.MountFile(args[0])
			if err != nil {
				return err
			}
			if err := v.Delete(args[1]); err != nil {
				return err
			}
			return v.Flush(args[0])
		},
	}
}

func defineDecbRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "rename <image_path> <old_name> <new_name>",
		Short:        "Rename a file on a DECB image",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decb.MountFile(args[0])
			if err != nil {
				return err
			}
			if err := v.Rename(args[1], args[2]); err != nil {
				return err
			}
			return v.Flush(args[0])
		},
	}
}

// debugDump pretty-prints a parsed structure when --debug is set.
func debugDump(v any) {
	if log == nil {
		return
	}
	log.Debugf("%s", spew.Sdump(v))
}
