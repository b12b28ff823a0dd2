package cmd

import (
	"fmt"
	"os"
	"time"

	"gochip8/emu/chip8"

	"github.com/spf13/viper"
)

// runConfig is everything that parameterizes one VM run.
type runConfig struct {
	ROMPath string
	ClockHz int
	KeyHold time.Duration
}

// loadRunConfig validates the flag values before any VM is constructed.
func loadRunConfig(romPath string) (runConfig, error) {
	clock := viper.GetInt("clock")
	if clock <= 0 {
		return runConfig{}, fmt.Errorf("CPU clock must be a positive number of Hz, got %d", clock)
	}
	holdMS := viper.GetInt("keyhold")
	if holdMS < 0 {
		return runConfig{}, fmt.Errorf("key hold duration must not be negative, got %dms", holdMS)
	}
	return runConfig{
		ROMPath: romPath,
		ClockHz: clock,
		KeyHold: time.Duration(holdMS) * time.Millisecond,
	}, nil
}

// newVM builds a machine and loads the ROM into it. Load errors surface
// here, before emulation begins.
func newVM(cfg runConfig) (*chip8.VM, error) {
	rom, err := os.ReadFile(cfg.ROMPath)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}
	vm := chip8.New(cfg.KeyHold)
	if err := vm.Load(rom); err != nil {
		return nil, fmt.Errorf("loading %s: %w", cfg.ROMPath, err)
	}
	return vm, nil
}
