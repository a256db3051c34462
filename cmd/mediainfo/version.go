package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thesyncim/mediainfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the libmediainfo version and negotiated encoding",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	sc, err := cfg.sessionConfig()
	if err != nil {
		return err
	}
	mi, err := mediainfo.New(sc)
	if err != nil {
		return err
	}
	defer mi.Close()

	info, err := mi.Version()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, info)
	if v, err := mediainfo.ParseLibraryVersion(info); err == nil {
		fmt.Fprintf(out, "version:  %s\n", v)
	}
	fmt.Fprintf(out, "encoding: %s\n", mi.Mode())
	return nil
}
