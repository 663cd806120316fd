/*
Copyright © 2024 the emfield authors.
This file is part of emfield.

emfield is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

emfield is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with emfield.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command emfield is the CLI for the emfield coverage compute engine.
package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string

	// Config holds the global configuration data, loaded once by RootCmd's
	// PersistentPreRunE.
	Config *ConfigData

	// Log is the CLI's logger, handed down to emfield.Compute.
	Log = logrus.StandardLogger()
)

// RootCmd is the main command.
var RootCmd = &cobra.Command{
	Use:   "emfield",
	Short: "An electromagnetic field-strength coverage compute engine.",
	Long: `emfield computes gridded RF field-strength coverage over a
polygon region from one or more emitting sources, given antenna
patterns, a propagation model and atmospheric conditions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return labelErr(startup(configFile))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		fmt.Println("\n------------------------------------\n" +
			"           emfield done\n" +
			"------------------------------------")
	},
}

func startup(configFile string) error {
	var err error
	Config, err = ReadConfigFile(configFile)
	if err != nil {
		return err
	}
	fmt.Println("\n" +
		"------------------------------------------------\n" +
		"                    emfield\n" +
		"      RF field-strength coverage engine\n" +
		"------------------------------------------------")
	return nil
}

func labelErr(err error) error {
	if err != nil {
		return fmt.Errorf("ERROR: %v", err)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "./emfield.toml", "configuration file location")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("emfield v0.1.0")
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	PersistentPostRun: func(cmd *cobra.Command, args []string) {},
}
