package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/buildsys/server/internal/input"
)

// console turns stdin lines into input events. The prompt is only drawn
// when stdin is a terminal, so piped scripts produce clean output.
type console struct {
	in          io.Reader
	out         io.Writer
	events      chan<- input.Event
	log         *zap.Logger
	interactive bool
}

func newConsole(in *os.File, out io.Writer, events chan<- input.Event, log *zap.Logger) *console {
	return &console{
		in:          in,
		out:         out,
		events:      events,
		log:         log,
		interactive: term.IsTerminal(int(in.Fd())),
	}
}

// readLoop runs on its own goroutine until stdin closes, then asks the tick
// loop to quit. Events reach the tick goroutine only through the channel.
func (c *console) readLoop() {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			c.prompt()
			continue
		}
		evt, err := input.ParseEvent(line)
		if err != nil {
			fmt.Fprintf(c.out, "  \033[31m✗\033[0m %v\n", err)
			c.prompt()
			continue
		}
		c.events <- evt
	}
	if err := scanner.Err(); err != nil {
		c.log.Warn("console read error", zap.Error(err))
	}
	c.events <- input.Event{Action: input.ActionQuit}
}

// showHUD prints fresh on-screen messages. Called from the tick goroutine.
func (c *console) showHUD(lines []string) {
	for _, l := range lines {
		fmt.Fprintf(c.out, "\r  \033[35m»\033[0m %s\n", l)
	}
	c.prompt()
}

func (c *console) prompt() {
	if c.interactive {
		fmt.Fprint(c.out, "build> ")
	}
}
