// Command client talks to a readsync server from the command line.
//
// Usage:
//
//	client [flags] register
//	client [flags] auth
//	client [flags] push <document> <percentage> <progress>
//	client [flags] pull <document>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/atinyakov/readsync/internal/client"
)

var (
	version   string
	buildDate string
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	user := flag.String("u", os.Getenv("READSYNC_USER"), "username")
	key := flag.String("k", os.Getenv("READSYNC_KEY"), "password")
	device := flag.String("device", "readsync-cli", "device name reported with progress")
	deviceID := flag.String("device-id", "", "device id reported with progress (random if empty)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("version %s, built %s\n", version, buildDate)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	c := client.New(*addr, *user, *key, client.WithDevice(*device, *deviceID))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, c, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, args []string) error {
	switch args[0] {
	case "register":
		if err := c.Register(ctx); err != nil {
			return err
		}
		fmt.Println("Registration successful")
	case "auth":
		if err := c.Authorize(ctx); err != nil {
			return err
		}
		fmt.Println("Authorized")
	case "push":
		if len(args) != 4 {
			usage()
		}
		pct, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid percentage %q: %w", args[2], err)
		}
		ts, err := c.PushProgress(ctx, args[1], pct, args[3])
		if err != nil {
			return err
		}
		fmt.Printf("Saved at %s\n", time.Unix(ts, 0).Format(time.RFC3339))
	case "pull":
		if len(args) != 2 {
			usage()
		}
		state, err := c.PullProgress(ctx, args[1])
		if err != nil {
			return err
		}
		if state == nil {
			fmt.Println("No progress stored")
			return nil
		}
		out, _ := json.MarshalIndent(state, "", "  ")
		fmt.Println(string(out))
	default:
		usage()
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: client [flags] register | auth | push <document> <percentage> <progress> | pull <document>")
	flag.PrintDefaults()
	os.Exit(2)
}
