package main

import (
	"yfscrape/cmd/yfscrape/commands"
	"yfscrape/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
