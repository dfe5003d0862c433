package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/floatwin/internal/mcp"
	"github.com/1broseidon/floatwin/internal/registry"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: floatwin mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'floatwin mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/floatwin/config.yaml)")
	withHotkeys := fs.Bool("hotkeys", false, "Grab the configured hotkeys globally on the X display")
	launcher := fs.String("launcher", "auto", "Picker for the palette hotkey: auto, rofi, fuzzel, wofi or dmenu")
	display := fs.String("display", "", "X display for --hotkeys (default: $DISPLAY)")

	if isHelpArg(args) {
		fmt.Fprintln(os.Stdout, "Usage: floatwin mcp serve [--config PATH] [--hotkeys] [--launcher NAME] [--display DPY]")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Start the MCP server on stdio. Each process hosts one in-memory set of")
		fmt.Fprintln(os.Stdout, "windows that MCP clients drive with the window tools.")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "With --hotkeys the shortcut table is also grabbed on the X root window;")
		fmt.Fprintln(os.Stdout, "the palette chord opens the actions in rofi (or another launcher).")
		fmt.Fprintln(os.Stdout, "")
		fmt.Fprintln(os.Stdout, "Example:")
		fmt.Fprintln(os.Stdout, "  claude mcp add floatwin -- floatwin mcp serve")
		return 0
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// stdout carries the protocol.
	logger, closer, err := newLogger(res.Config, os.Stderr)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closer.Close()

	reg := registry.New(res.Config, registry.WithLogger(logger))
	server := mcp.NewServer(reg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if *withHotkeys {
		stop, err := startGlobalHotkeys(reg, hotkeyOptions{
			ConfigPath: *path,
			Launcher:   *launcher,
			Display:    *display,
		}, logger)
		if err != nil {
			log.Fatalf("Failed to set up global hotkeys: %v", err)
		}
		defer stop()
	}

	if err := server.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return 0
}
