package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hostcfg/podnet/internal/commands"
	"github.com/hostcfg/podnet/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "/etc/podnet.conf", "Path to configuration file")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Podman Network Host Integration Manager\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  create                  Create the host-side integration for a container network\n")
		fmt.Fprintf(os.Stderr, "  status                  Show integration completeness for a network\n")
		fmt.Fprintf(os.Stderr, "  repair                  Re-create the missing pieces of an integration\n")
		fmt.Fprintf(os.Stderr, "  remove                  Tear an integration down\n")
		fmt.Fprintf(os.Stderr, "  zones                   List firewall zones managed by podnet\n")
		fmt.Fprintf(os.Stderr, "  check                   Probe a network gateway for DNS responsiveness\n")
		fmt.Fprintf(os.Stderr, "  serve                   Run the HTTP API server\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateCreateCommand(),
		commands.CreateStatusCommand(),
		commands.CreateRepairCommand(),
		commands.CreateRemoveCommand(),
		commands.CreateZonesCommand(),
		commands.CreateCheckCommand(),
		commands.CreateServeCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
