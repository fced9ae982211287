package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
)

// maxLineSize is the longest line decode accepts on standard input.
const maxLineSize = 16 * 1024 * 1024

var decodeCmd = &cobra.Command{
	Use:   "decode [header-text...]",
	Short: "Decodes RFC 2047 encoded header text",
	Long: `Decodes each argument as a header field body and prints the result on its
own line. With no arguments, each line of standard input is decoded instead.`,
	RunE: RunDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func RunDecode(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	decodeOne := func(s string) error {
		d, err := dec.DecodeHeader(s)
		if err != nil {
			logger.Warn("decoded with replacement characters",
				"input", s,
				"error", err)
		}

		_, err = fmt.Fprintln(out, d)
		return err
	}

	if len(args) > 0 {
		for _, arg := range args {
			if err := decodeOne(arg); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(cmd.InOrStdin())
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for sc.Scan() {
		if err := decodeOne(sc.Text()); err != nil {
			return err
		}
	}

	return sc.Err()
}
