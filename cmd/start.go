package cmd

import (
	"fmt"
	"os"

	"gochip8/emu"
	"gochip8/emu/audio"
	"gochip8/emu/screen"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start path/to/rom",
	Short: "load a ROM and start the emulator",
	Args:  cobra.ExactArgs(1),
	RunE:  start,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

// gochip8 start path/to/rom -c 700 -k 100
func start(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadRunConfig(args[0])
	if err != nil {
		return err
	}
	vm, err := newVM(cfg)
	if err != nil {
		return err
	}

	win, err := screen.New("gochip8 - " + cfg.ROMPath)
	if err != nil {
		return fmt.Errorf("opening window: %w", err)
	}
	buzzer, err := audio.New()
	if err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}

	logger.Info("starting emulation",
		log.String("rom", cfg.ROMPath),
		log.String("clock", fmt.Sprintf("%dHz", cfg.ClockHz)),
		log.String("keyhold", cfg.KeyHold.String()))

	runner := &emu.Runner{
		VM:      vm,
		Screen:  win,
		Buzzer:  buzzer,
		Logger:  logger,
		ClockHz: cfg.ClockHz,
	}
	if err := runner.Run(app.Context()); err != nil {
		logger.Error("emulation fault", log.Err(err))
		os.Exit(1)
	}
	return nil
}
