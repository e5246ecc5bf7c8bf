package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/chipshift/cocofs/os9"
)

func DefineOs9Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "os9",
		Short: "Read OS-9 RBF disk images (read-only)",
	}

	cmd.AddCommand(
		defineOs9DetectCommand(),
		defineOs9InfoCommand(),
		defineOs9ListCommand(),
		defineOs9ExtractCommand(),
	)
	return cmd
}

func defineOs9DetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "detect <image_path>",
		Short:        "Guess whether an image is OS-9 formatted",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Println(os9.Detect(data))
			return nil
		},
	}
}

func defineOs9InfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "info <image_path>",
		Short:        "Show the disk descriptor",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := os9.MountFile(args[0], os9.WithLogger(log))
			if err != nil {
				return err
			}
			dd := v.DiskInfo()
			fmt.Printf("Disk Name:        %s\n", dd.DiskName)
			fmt.Printf("Total Sectors:    %s\n", humanize.Comma(int64(dd.TotalSectors)))
			fmt.Printf("Tracks:           %d\n", dd.TracksPerSide)
			fmt.Printf("Sectors/Track:    %d\n", dd.SectorsPerTrack)
			fmt.Printf("Sectors/Cluster:  %d\n", dd.SectorsPerCluster)
			fmt.Printf("Cluster Size:     %d bytes\n", dd.ClusterSize())
			fmt.Printf("Allocation Map:   %d bytes\n", dd.AllocMapBytes)
			fmt.Printf("Root Dir LSN:     %d\n", dd.RootDirLSN)
			fmt.Printf("Density/Sides:    %s / %d\n", dd.Density(), dd.Sides())
			fmt.Printf("Created:          %s\n", dd.Created)

			if log != nil {
				log.Debugf("%s", spew.Sdump(dd))
			}
			return nil
		},
	}
}

func defineOs9ListCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "list <image_path>",
		Short:        "List the root directory",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := os9.MountFile(args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tATTR\tFD")
			for _, e := range v.List() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", e.Name, e.Attrs, e.FDLsn)
			}
			return w.Flush()
		},
	}
}

func defineOs9ExtractCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "extract <image_path> <name> <out_path>",
		Short:        "Extract a file from an OS-9 image",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := os9.MountFile(args[0])
			if err != nil {
				return err
			}
			return v.ExtractTo(args[1], args[2])
		},
	}
}
