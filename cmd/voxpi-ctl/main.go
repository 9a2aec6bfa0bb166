package main

import (
	"fmt"
	"os"

	cli "github.com/spf13/pflag"

	"voxpi/internal/ipc"
)

func main() {
	socket := cli.StringP("socket", "s", ipc.DefaultSocketPath, "Daemon control socket")
	cli.Parse()

	err := ipc.SendCommand(*socket, ipc.CmdPress)
	if err != nil {
		fmt.Println("voxpi-daemon not running:", err)
		os.Exit(1)
	}
}
