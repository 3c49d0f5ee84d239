package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/gomenu/internal/agent"
	"github.com/example/gomenu/internal/ax"
	"github.com/example/gomenu/internal/config"
	"github.com/example/gomenu/internal/dispatch"
	"github.com/example/gomenu/internal/launcher"
	"github.com/example/gomenu/internal/logging"
	"github.com/example/gomenu/internal/menu"
)

func main() {
	log.SetFlags(0)

	args, debug, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}
	if debug {
		logging.EnableDebug()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("settings: %v", err)
	}

	command := "agent"
	if len(args) > 0 {
		command = normalizeCommand(args[0])
		args = args[1:]
	}

	// The main OS thread belongs to the dispatcher for the whole run;
	// commands execute on a worker goroutine.
	code := 0
	dispatch.Run(func() {
		code = runCommand(cfg, command, args)
	})
	os.Exit(code)
}

// parseGlobalFlags pulls the flags that apply to every command out of the
// argument list, leaving command names and command flags in place.
func parseGlobalFlags(args []string) ([]string, bool, error) {
	filtered := make([]string, 0, len(args))
	debug := false
	for _, raw := range args {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || (trimmed[0] != '-' && trimmed[0] != '/') {
			filtered = append(filtered, raw)
			continue
		}
		normalized := strings.ToLower(strings.TrimLeft(trimmed, "-/"))
		switch {
		case normalized == "debug":
			debug = true
		case strings.HasPrefix(normalized, "debug="):
			parsed, err := strconv.ParseBool(strings.TrimPrefix(normalized, "debug="))
			if err != nil {
				return nil, false, fmt.Errorf("invalid value in %q", raw)
			}
			debug = parsed
		default:
			filtered = append(filtered, raw)
		}
	}
	return filtered, debug, nil
}

func normalizeCommand(arg string) string {
	trimmed := strings.TrimLeft(arg, "-/")
	return strings.ToLower(trimmed)
}

func runCommand(cfg config.Config, command string, args []string) int {
	switch command {
	case "agent":
		agent.New(cfg).Run()
		return 0
	case "list":
		return runList(cfg, args)
	case "search":
		return runSearch(cfg, args)
	case "run":
		return runPerform(cfg, args)
	case "trust":
		return runTrust(args)
	case "help":
		printUsage()
		return 0
	default:
		log.Printf("unknown command: %s", command)
		printUsage()
		return 2
	}
}

// loadItems walks the target application's menu bar once. The returned
// done func releases the snapshot.
func loadItems(cfg config.Config, pid int, wait time.Duration) ([]*menu.Item, ax.AppInfo, func(), error) {
	if !ax.Trusted() {
		return nil, ax.AppInfo{}, nil, errors.New(`accessibility permission missing; run "gomenu trust"`)
	}

	system := ax.NewSystem()
	app, err := target(system, pid)
	if err != nil {
		return nil, ax.AppInfo{}, nil, err
	}

	ctx := context.Background()
	if wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}

	cache := menu.NewCache(system, dispatch.Call, cfg.IncludeAppleMenu)
	items := cache.ItemsFor(ctx, app)
	return items, app, cache.Close, nil
}

// target resolves which application to inspect: an explicit pid or the
// frontmost one.
func target(system *ax.System, pid int) (ax.AppInfo, error) {
	if pid > 0 {
		return system.AppFor(int32(pid))
	}
	return system.Frontmost()
}

func runList(cfg config.Config, args []string) int {
	fs := newFlagSet("list")
	pid := fs.Int("pid", 0, "inspect this process id instead of the frontmost application")
	wait := fs.Duration("wait", cfg.WalkTimeout(), "give up on the menu walk after this long (0 waits forever)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	items, app, done, err := loadItems(cfg, *pid, *wait)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer done()

	if len(items) == 0 {
		fmt.Printf("%s exposes no enabled menu items\n", app.Name)
		return 0
	}
	fmt.Printf("%d menu items of %s (pid %d)\n", len(items), app.Name, app.PID)
	for _, item := range items {
		fmt.Println(itemLine(item.Subtext(), item.Shortcut()))
	}
	return 0
}

func runSearch(cfg config.Config, args []string) int {
	fs := newFlagSet("search")
	pid := fs.Int("pid", 0, "inspect this process id instead of the frontmost application")
	wait := fs.Duration("wait", cfg.WalkTimeout(), "give up on the menu walk after this long (0 waits forever)")
	fuzzyMode := fs.Bool("fuzzy", cfg.Fuzzy, "fuzzy matching instead of substring matching")
	max := fs.Int("max", cfg.MaxResults, "maximum results to print (0 prints all)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		log.Printf("search needs query text")
		return 2
	}

	items, app, done, err := loadItems(cfg, *pid, *wait)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer done()

	ranked := launcher.Rank(items, query, *fuzzyMode, *max)
	if len(ranked) == 0 {
		fmt.Printf("no menu item of %s matches %q\n", app.Name, query)
		return 1
	}
	for _, r := range ranked {
		fmt.Printf("%5.2f  %s\n", r.Score, itemLine(r.Item.Subtext(), r.Item.Shortcut()))
	}
	return 0
}

func runPerform(cfg config.Config, args []string) int {
	fs := newFlagSet("run")
	pid := fs.Int("pid", 0, "target this process id instead of the frontmost application")
	wait := fs.Duration("wait", cfg.WalkTimeout(), "give up on the menu walk after this long (0 waits forever)")
	fuzzyMode := fs.Bool("fuzzy", cfg.Fuzzy, "fuzzy matching instead of substring matching")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		log.Printf("run needs query text")
		return 2
	}

	items, app, done, err := loadItems(cfg, *pid, *wait)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer done()

	ranked := launcher.Rank(items, query, *fuzzyMode, 1)
	if len(ranked) == 0 {
		fmt.Printf("no menu item of %s matches %q\n", app.Name, query)
		return 1
	}

	item := ranked[0].Item
	ctx := context.Background()
	if *wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *wait)
		defer cancel()
	}
	if err := item.Perform(ctx, dispatch.Call); err != nil {
		log.Printf("%s: %v", item.ID(), err)
		return 1
	}
	fmt.Printf("Performed %s\n", item.Subtext())
	return 0
}

func runTrust(args []string) int {
	fs := newFlagSet("trust")
	prompt := fs.Bool("prompt", true, "ask the system to show the permission dialog when untrusted")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if ax.Trusted() {
		fmt.Println("Accessibility permission granted")
		return 0
	}
	if *prompt && ax.RequestTrust() {
		fmt.Println("Accessibility permission granted")
		return 0
	}
	fmt.Println("Accessibility permission missing; grant it under Privacy & Security > Accessibility")
	return 1
}

func itemLine(breadcrumb, shortcut string) string {
	if shortcut == "" {
		return breadcrumb
	}
	return breadcrumb + "\t" + shortcut
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	return fs
}

func printUsage() {
	fmt.Println(`Usage: gomenu [command] [flags] [query]

Commands:
  agent    run the resident tray agent (default)
  list     print the target application's menu items
  search   rank menu items against query text
  run      perform the best match for query text
  trust    report the accessibility permission state

Global flags:
  -debug        verbose logging

Command flags:
  -pid N        target a process id instead of the frontmost application
  -wait D       give up on the menu walk after duration D (0 waits forever)
  -fuzzy        fuzzy matching (search, run)
  -max N        result cap (search)`)
}
