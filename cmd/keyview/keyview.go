package keyview

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dasdy/keyview/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "keyview",
	Short: "Show keyboard layouts and highlight keys as they are pressed",
	Long: `Keyview draws keyboard layouts from CSV tables, QMK-style JSON or ZMK keymap files
and highlights keys as you press them, in a browser or in the terminal.
Events can also come from ZMK serial debug logs or Linux input devices.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.keyview.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
}

func initConfig() {
	if cfgFile != "" {
		slog.Debug("Using config file", "path", cfgFile)
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".keyview" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName(".keyview")
	}

	viper.SetEnvPrefix("keyview")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			slog.Error("Error reading config file", "error", err)
			os.Exit(1)
		}

		slog.Debug("No config file found, using flags only")
	}
}

func setup(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, args); err != nil {
		return err
	}

	return logging.Setup(os.Stderr, logLevel)
}

// set values to the PFlag variables from config, if they are set. Priority is still given to explicitly provided CLI flags.
func bindFlags(cmd *cobra.Command, _ []string) error {
	var bindErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || bindErr != nil {
			return
		}

		// config keys may be written with or without hyphens
		for _, configName := range []string{f.Name, strings.ReplaceAll(f.Name, "-", "")} {
			if !viper.IsSet(configName) {
				continue
			}

			val := viper.Get(configName)

			if err := setFlag(cmd, f, val); err != nil {
				bindErr = fmt.Errorf("could not set flag %s from config: %w", f.Name, err)

				return
			}

			slog.Debug("Flag set from config", "flag", f.Name, "value", val)

			return
		}
	})

	return bindErr
}

func setFlag(cmd *cobra.Command, f *pflag.Flag, val any) error {
	// lists from TOML arrays are set one element at a time
	if items, ok := val.([]any); ok {
		for _, item := range items {
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", item)); err != nil {
				return err
			}
		}

		return nil
	}

	return cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
}
