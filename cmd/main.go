package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/caffeine-storm/isoroom/base"
	"github.com/caffeine-storm/isoroom/game"
	"github.com/caffeine-storm/isoroom/house"
	"github.com/caffeine-storm/isoroom/logging"
	"github.com/caffeine-storm/isoroom/registry"
)

type options struct {
	datadir string
	room    string
	from    string
	to      string
	click   string
	json    string
	logFile string
	watch   bool
	verbose bool
}

func parseOptions(argv []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet(argv[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.datadir, "data", "data", "data directory holding furniture/ and rooms/")
	fs.StringVar(&opts.room, "room", "", "room file, or the name of a room in <data>/rooms")
	fs.StringVar(&opts.from, "from", "", "where the walk starts, as x,y (default: the door)")
	fs.StringVar(&opts.to, "to", "", "where the walk ends, as x,y")
	fs.StringVar(&opts.click, "click", "", "walk to the floor under this screen point, as x,y")
	fs.StringVar(&opts.json, "json", "", "also write the report as json to this file")
	fs.StringVar(&opts.logFile, "log", "", "log to this file")
	fs.BoolVar(&opts.watch, "watch", false, "keep running and report again whenever furniture changes")
	fs.BoolVar(&opts.verbose, "v", false, "log to stderr")
	if err := fs.Parse(argv[1:]); err != nil {
		return nil, err
	}
	if opts.room == "" {
		return nil, errors.New("-room is required")
	}
	if opts.to != "" && opts.click != "" {
		return nil, errors.New("-to and -click can't be used together")
	}
	return opts, nil
}

func ensureDirectory(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

func openLogFile(logFileName string) (*os.File, error) {
	err := ensureDirectory(logFileName)
	if err != nil {
		return nil, fmt.Errorf("couldn't create dir for %q: %w", logFileName, err)
	}

	f, err := os.Create(logFileName)
	if err != nil {
		return nil, fmt.Errorf("couldn't os.Create %q: %w", logFileName, err)
	}
	return f, nil
}

// Logs go nowhere unless asked for; the report owns stdout.
func initializeLogging(opts *options, stderr io.Writer) (func(), error) {
	switch {
	case opts.logFile != "":
		f, err := openLogFile(opts.logFile)
		if err != nil {
			return nil, err
		}
		reset := logging.Redirect(f)
		return func() {
			reset()
			f.Close()
		}, nil
	case opts.verbose:
		reset := logging.Redirect(stderr)
		relevel := logging.SetLogLevel(slog.LevelDebug)
		return func() {
			relevel()
			reset()
		}, nil
	}
	return logging.Redirect(io.Discard), nil
}

func onPanic(recoveredValue interface{}, stderr io.Writer) {
	stack := debug.Stack()
	logging.Error("PANIC", "val", recoveredValue, "stack", stack)
	fmt.Fprintf(stderr, "PANIC: %v\n", recoveredValue)
	fmt.Fprintf(stderr, "PANIC: %s\n", string(stack))
}

func parsePair(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	return x, y, nil
}

func parseCell(s string) (house.RoomPosition, error) {
	x, y, err := parsePair(s)
	if err != nil {
		return house.RoomPosition{}, err
	}
	if x != float64(int(x)) || y != float64(int(y)) {
		return house.RoomPosition{}, fmt.Errorf("%q: cells are whole numbers", s)
	}
	return house.RoomPosition{X: int(x), Y: int(y)}, nil
}

func roomPath(name string) string {
	if strings.ContainsRune(name, filepath.Separator) || filepath.Ext(name) != "" {
		return name
	}
	return filepath.Join(registry.RoomsDir(), name+".yaml")
}

func loadRoom(opts *options) (*house.Room, error) {
	if err := base.SetDatadir(opts.datadir); err != nil {
		return nil, err
	}
	if err := registry.LoadAllRegistries(); err != nil {
		return nil, fmt.Errorf("loading registries: %w", err)
	}
	rf, err := house.LoadRoomFile(roomPath(opts.room))
	if err != nil {
		return nil, err
	}
	return rf.Build(house.Catalog{})
}

// Works out the walk asked for on the command line, if any.
func planWalk(ctx context.Context, opts *options, room *house.Room) ([]game.Waypoint, error) {
	if opts.to == "" && opts.click == "" {
		return nil, nil
	}

	var origin house.RoomPosition
	if opts.from != "" {
		var err error
		if origin, err = parseCell(opts.from); err != nil {
			return nil, fmt.Errorf("-from: %w", err)
		}
	} else {
		door, ok := room.DoorPosition()
		if !ok {
			return nil, errors.New("room has no door; use -from")
		}
		origin = door
	}

	planner := game.NewRoomPathPlanner(room)
	if opts.click != "" {
		x, y, err := parsePair(opts.click)
		if err != nil {
			return nil, fmt.Errorf("-click: %w", err)
		}
		return planner.WalkToClick(ctx, room, origin, x, y)
	}
	target, err := parseCell(opts.to)
	if err != nil {
		return nil, fmt.Errorf("-to: %w", err)
	}
	return planner.FindPath(ctx, origin, target)
}

func report(ctx context.Context, opts *options, room *house.Room, stdout io.Writer) error {
	snap, err := room.Recompute(ctx)
	if err != nil {
		return err
	}
	walk, err := planWalk(ctx, opts, room)
	if err != nil {
		return err
	}
	rep, err := MakeReport(room, snap, walk)
	if err != nil {
		return err
	}
	rep.WriteText(stdout)
	if opts.json != "" {
		if err := base.SaveJson(opts.json, rep); err != nil {
			return fmt.Errorf("writing %q: %w", opts.json, err)
		}
	}
	return nil
}

// Runs the tool and returns its exit code.
func Run(argv []string, stdout, stderr io.Writer) (code int) {
	opts, err := parseOptions(argv, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		return 2
	}

	cleanup, err := initializeLogging(opts, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer cleanup()

	defer func() {
		if r := recover(); r != nil {
			onPanic(r, stderr)
			code = 3
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	room, err := loadRoom(opts)
	if err != nil {
		logging.Error("couldn't load room", "room", opts.room, "err", err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := report(ctx, opts, room, stdout); err != nil {
		logging.Error("report failed", "room", room.Name, "err", err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	if !opts.watch {
		return 0
	}

	err = registry.WatchFurniture(ctx, func(err error) {
		if err != nil {
			logging.Warn("furniture reload failed", "err", err)
			return
		}
		fmt.Fprintln(stdout)
		if err := report(ctx, opts, room, stdout); err != nil {
			logging.Warn("report failed", "room", room.Name, "err", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func Main(argv []string) {
	os.Exit(Run(argv, os.Stdout, os.Stderr))
}
