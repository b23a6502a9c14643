package main

import (
	"flag"
	"os"

	"github.com/pterm/pterm"

	"github.com/orkadesh/blackjacksrv/client"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:9001", "server address")
	flag.Parse()

	pterm.DefaultHeader.Println("Blackjack")

	c, err := client.Dial(*addr)
	if err != nil {
		pterm.Error.Printfln("Cannot reach server at %s: %v", *addr, err)
		os.Exit(1)
	}
	if err := c.Run(); err != nil {
		pterm.Error.Printfln("Session ended with error: %v", err)
		os.Exit(1)
	}
}
