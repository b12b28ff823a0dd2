package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gochip8 [command]",
	Short: "CHIP-8 emulator using Go",
	Long: "A CHIP-8 emulator that runs raw CHIP-8 binary ROMs at a configurable clock rate,\n" +
		"rendering the 64x32 display in a window and sounding the buzzer while the sound\n" +
		"timer runs. CHIP-8 is the interpreted language of the COSMAC VIP and Telmac 1800.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gochip8.yaml)")
	rootCmd.PersistentFlags().IntP("clock", "c", 700, "CPU clock rate in instructions per second")
	rootCmd.PersistentFlags().IntP("keyhold", "k", 100, "how long a key press stays visible to the program, in milliseconds")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")

	cobra.CheckErr(viper.BindPFlag("clock", rootCmd.PersistentFlags().Lookup("clock")))
	cobra.CheckErr(viper.BindPFlag("keyhold", rootCmd.PersistentFlags().Lookup("keyhold")))
	cobra.CheckErr(viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")))
	cobra.CheckErr(viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".gochip8" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gochip8")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the run logger from the debug/quiet flags.
func newLogger() *log.Logger {
	cfg := log.DefaultConfig()
	if viper.GetBool("debug") {
		cfg.Level = log.DebugLevel
	} else if viper.GetBool("quiet") {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
