package cmd

import (
	"bufio"
	"fmt"
	"os"

	"gochip8/emu/chip8"

	"github.com/spf13/cobra"
)

// traceKeys maps characters typed on stdin to keypad keys, same layout as
// the window key map.
var traceKeys = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

var traceCmd = &cobra.Command{
	Use:   "trace path/to/rom",
	Short: "single-step a ROM from the terminal",
	Long: "Executes one instruction per line read from stdin and prints the disassembled\n" +
		"instruction and the machine state after it. Characters on the line are pressed\n" +
		"on the keypad before the step, using the same layout as the emulator window.\n" +
		"Timers tick once per step instead of at 60 Hz.",
	Args: cobra.ExactArgs(1),
	RunE: trace,
}

func init() {
	rootCmd.AddCommand(traceCmd)
}

func trace(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(args[0])
	if err != nil {
		return err
	}
	vm, err := newVM(cfg)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		for _, c := range scanner.Text() {
			if key, ok := traceKeys[c]; ok {
				vm.Keypad.Press(key)
			}
		}

		op, err := vm.Opcode()
		if err != nil {
			return err
		}
		fmt.Printf("0x%03X  %-22s", vm.PC(), chip8.Disassemble(op))
		if err := vm.Step(); err != nil {
			fmt.Println()
			return err
		}
		fmt.Println(vm.DumpState())
		vm.TickTimers()
	}
	return scanner.Err()
}
