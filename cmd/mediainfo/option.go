package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thesyncim/mediainfo"
)

var optionCmd = &cobra.Command{
	Use:   "option NAME [VALUE]",
	Short: "Query or set a libmediainfo option",
	Long: `Calls MediaInfo_Option on a fresh session and prints the answer, for
example "mediainfo option Info_Parameters" or "mediainfo option Info_Codecs".`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runOption,
}

func init() {
	rootCmd.AddCommand(optionCmd)
}

func runOption(cmd *cobra.Command, args []string) error {
	value := ""
	if len(args) == 2 {
		value = args[1]
	}

	sc, err := cfg.sessionConfig()
	if err != nil {
		return err
	}
	mi, err := mediainfo.New(sc)
	if err != nil {
		return err
	}
	defer mi.Close()

	answer, err := mi.Option(args[0], value)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
