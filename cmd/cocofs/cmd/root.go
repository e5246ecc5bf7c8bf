// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chipshift/cocofs/internal/logger"
)

const AppName = "cocofs"

// log is shared by every subcommand; debug controls its level.
var log *logger.Logger

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - DECB/OS-9 Color Computer disk image toolkit",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug, _ := cmd.Flags().GetBool("debug")
			level := logger.InfoLevel
			if debug {
				level = logger.DebugLevel
			}
			log = logger.New(os.Stderr, level)
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging and pretty-print parsed structures")

	rootCmd.AddCommand(DefineDecbCommand())
	rootCmd.AddCommand(DefineOs9Command())
	rootCmd.AddCommand(DefineDetokenizeCommand())

	return rootCmd.Execute()
}
