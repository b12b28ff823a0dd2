package main

import (
	"gochip8/cmd"

	"github.com/faiface/pixel/pixelgl"
)

func main() {
	// pixelgl needs the OS main thread; the CLI runs inside it.
	pixelgl.Run(cmd.Execute)
}
