package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/linecu/linecu-go/pkg/rdbi"
)

var (
	green = color.New(color.FgGreen).SprintfFunc()
	red   = color.New(color.FgRed).SprintfFunc()
)

// busPrinter stands in for the LIN transmit path and prints each
// response it is asked to send.
type busPrinter struct {
	mu sync.Mutex
	w  io.Writer

	positive int
	negative int
}

func (p *busPrinter) SendPositiveResponse() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.positive++
	fmt.Fprintln(p.w, green("[LIN] TX positive response"))
}

func (p *busPrinter) SendNegativeResponse(code rdbi.NRC) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.negative++
	fmt.Fprintln(p.w, red("[LIN] TX negative response 0x%02X (%s)", uint8(code), code))
}

func (p *busPrinter) counts() (positive, negative int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positive, p.negative
}
