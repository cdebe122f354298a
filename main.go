// Package main provides the entry point for SSHFS Manager.
// SSHFS Manager keeps a list of remote SSH locations and mounts them on the
// local filesystem with sshfs, from a terminal UI or from the command line.
//
// Usage:
//
//	sshfs-manager [options]
//
// Environment:
//
//	The application requires sshfs (or the configured mount_tool) to be
//	installed on the system.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/sshfs-manager/cli"
	"github.com/yllada/sshfs-manager/common"
	"github.com/yllada/sshfs-manager/config"
	"github.com/yllada/sshfs-manager/mount"
	"github.com/yllada/sshfs-manager/notify"
	"github.com/yllada/sshfs-manager/profile"
	"github.com/yllada/sshfs-manager/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")
	configPath  = flag.String("config", "", "Path of the settings file")
	connsPath   = flag.String("file", "", "Path of the connections file")

	// CLI flags
	listProfiles  = flag.Bool("list", false, "List all connections")
	addHost       = flag.String("add", "", "Add a connection to HOST")
	editRef       = flag.String("edit", "", "Edit a connection")
	deleteRef     = flag.String("delete", "", "Delete a connection")
	mountRef      = flag.String("mount", "", "Mount a connection")
	hostFlag      = flag.String("host", "", "New host for --edit")
	userFlag      = flag.String("user", "", "User for --add/--edit")
	remoteDirFlag = flag.String("remote-dir", "", "Remote directory for --add/--edit")
	assumeYes     = flag.Bool("yes", false, "Do not ask for confirmation")
)

func main() {
	flag.Usage = cli.PrintHelp
	flag.Parse()

	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("%s v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	cliMode := *listProfiles || *addHost != "" || *editRef != "" || *deleteRef != "" || *mountRef != ""

	cfg, cfgErr := loadConfig()

	logLevel := common.ParseLogLevel(cfg.LogLevel)
	if *verbose {
		logLevel = common.LevelDebug
	}

	// The terminal UI owns the screen, so it only logs to file. The CLI
	// keeps stdout for its own output unless --verbose is given.
	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		Quiet:       !cliMode || !*verbose,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	if cfgErr != nil {
		common.LogWarn("Using default settings: %v", cfgErr)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", cfgErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	common.LogInfo("Starting %s v%s", common.AppName, appVersion)

	mounter, err := newMounter(cfg)
	if err != nil {
		fatal(err)
	}
	if !mounter.Available() {
		common.LogWarn("Mount tool %q not found in PATH", cfg.MountTool)
	}

	store, loadErr := openStore(cfg)
	notifier := notify.NewDesktop(cfg.ShowNotifications)

	if cliMode {
		// Saving over a file that failed to parse would drop its contents.
		if loadErr != nil {
			fatal(loadErr)
		}
		if err := runCLI(ctx, cli.New(store, mounter, notifier)); err != nil {
			fatal(err)
		}
		return
	}

	if err := ui.Run(ctx, store, mounter, notifier, loadErr); err != nil {
		if errors.Is(err, context.Canceled) {
			common.LogInfo("Interrupted, shutting down")
			return
		}
		fatal(err)
	}
}

// loadConfig reads the settings file. On failure it returns the defaults
// together with the error so the caller can warn and keep going.
func loadConfig() (*config.Config, error) {
	path := *configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.DefaultConfig(), err
		}
	}

	cfg, err := config.Load(path)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return cfg, err
}

func newMounter(cfg *config.Config) (*mount.Mounter, error) {
	root, err := cfg.ResolvedMountRoot()
	if err != nil {
		return nil, common.WrapError(err, "resolving mount root")
	}
	return mount.New(cfg.MountTool, root), nil
}

// openStore loads the connections file. A parse error is returned next to
// a usable empty store.
func openStore(cfg *config.Config) (*profile.Store, error) {
	path := *connsPath
	if path == "" {
		var err error
		if path, err = cfg.ResolvedConnectionsFile(); err != nil {
			common.LogWarn("Cannot resolve %q, using %s: %v", cfg.ConnectionsFile, common.ConnectionsFileName, err)
			path = common.ConnectionsFileName
		}
	}

	store, err := profile.Open(path)
	if err != nil {
		common.LogError("Failed to load connections: %v", err)
	} else {
		common.LogInfo("Loaded %d connections from %s", store.Len(), path)
	}
	return store, err
}

// runCLI dispatches the command-line operation selected by flags.
func runCLI(ctx context.Context, app *cli.CLI) error {
	switch {
	case *listProfiles:
		return app.ListProfiles()
	case *addHost != "":
		return app.Add(*addHost, *userFlag, *remoteDirFlag)
	case *editRef != "":
		return app.Edit(*editRef, editOptions())
	case *deleteRef != "":
		return app.Delete(*deleteRef, *assumeYes)
	case *mountRef != "":
		return app.Mount(ctx, *mountRef)
	}
	return nil
}

// editOptions returns only the fields given on the command line, so
// omitted flags keep the current values.
func editOptions() cli.EditOptions {
	var opts cli.EditOptions
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			opts.Host = hostFlag
		case "user":
			opts.User = userFlag
		case "remote-dir":
			opts.RemoteDir = remoteDirFlag
		}
	})
	return opts
}

// fatal reports err and exits. Deferred calls don't run, so the log is
// closed here.
func fatal(err error) {
	common.LogError("%v", err)
	common.CloseLogger()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
