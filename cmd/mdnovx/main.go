// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mdnovx CLI: a converter
// between .novx and .mdnov novel project files. The target format is
// chosen by the source file's extension.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdnovx/internal/converter"
	"github.com/pdiddy/mdnovx/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the mdnovx CLI.
var rootCmd = &cobra.Command{
	Use:   "mdnovx <sourcefile>",
	Short: "Convert between .mdnov and .novx novel projects",
	Long: `mdnovx converts novel project files between the .mdnov Markdown
container format and the .novx XML format. The source file's extension
selects the direction; the converted file is written next to the source
with the sibling extension. An existing target is backed up to
<target>.bak first.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			level = log.InfoLevel
		}
		opts := converter.Options{
			KeepBackup: viper.GetBool("backup"),
			Logger:     logger.NewWithLevel(os.Stderr, level),
		}
		target, err := converter.Run(args[0], opts)
		if err != nil {
			return err
		}
		fmt.Println(target)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mdnovx.yaml or ~/.config/mdnovx/config.yaml)")
	rootCmd.Flags().Bool("backup", true, "keep a .bak copy of an overwritten target")
	rootCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mdnovx")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mdnovx"))
		}
	}

	viper.SetEnvPrefix("MDNOVX")
	viper.AutomaticEnv()

	viper.SetDefault("backup", true)
	viper.SetDefault("log_level", "info")
	_ = viper.BindPFlag("backup", rootCmd.Flags().Lookup("backup"))
	_ = viper.BindPFlag("log_level", rootCmd.Flags().Lookup("log-level"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
