package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"filmscape/local-app/src/pkg/config"
	"filmscape/local-app/src/pkg/ui"
)

var (
	logsFilter string
	logsFollow bool
	logsRate   time.Duration

	logsCmd = &cobra.Command{
		Use:   "logs [log directory]",
		Short: "Print the JSON log files in a compact, colored form",
		Long: `Prints every entry of the *.log files in the log directory (the configured
log folder by default). With --follow new entries are printed as they are
written; truncated files are read again from the start.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLogs,
	}
)

func init() {
	logsCmd.Flags().StringVarP(&logsFilter, "filter", "f", "", "only show entries containing this text (case-insensitive)")
	logsCmd.Flags().BoolVar(&logsFollow, "follow", false, "keep watching for new entries")
	logsCmd.Flags().DurationVarP(&logsRate, "rate", "r", time.Second, "polling interval with --follow")
}

func runLogs(cmd *cobra.Command, args []string) error {
	dir, err := logsDir(args)
	if err != nil {
		return err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("log directory '%s' does not exist", dir)
	}

	tail := &logTail{
		dir:       dir,
		filter:    strings.ToLower(logsFilter),
		ui:        ui.NewUI(cmd.OutOrStdout(), !noColor),
		positions: make(map[string]int64),
	}
	if err := tail.poll(); err != nil {
		return err
	}
	if !logsFollow {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(logsRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := tail.poll(); err != nil {
				return err
			}
		}
	}
}

func logsDir(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if configPath != "" {
		config.ConfigPathSet(configPath)
	}
	if err := config.ConfigLoad(); err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	return config.ConfigGet().LogFolder, nil
}

// logTail prints log entries appended since the previous poll
type logTail struct {
	dir       string
	filter    string
	ui        *ui.UI
	positions map[string]int64
}

func (t *logTail) poll() error {
	files, err := filepath.Glob(filepath.Join(t.dir, "*.log"))
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}
	for _, path := range files {
		if err := t.readFile(path); err != nil {
			t.ui.Error(err.Error())
		}
	}
	return nil
}

func (t *logTail) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", filepath.Base(path), err)
	}
	if stat.Size() < t.positions[path] {
		t.ui.Warning(filepath.Base(path) + " has been truncated, starting from beginning")
		t.positions[path] = 0
	}
	if _, err := file.Seek(t.positions[path], io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek in %s: %w", filepath.Base(path), err)
	}

	reader := bufio.NewReader(file)
	pos := t.positions[path]
	for {
		line, err := reader.ReadString('\n')
		// A line without its newline is still being written
		if err != nil {
			break
		}
		pos += int64(len(line))

		entry, perr := ui.ParseLogEntry(strings.TrimSpace(line))
		if perr != nil {
			t.ui.Error(perr.Error())
			continue
		}
		formatted := t.ui.LogEntryFormat(entry)
		if t.filter == "" || strings.Contains(strings.ToLower(formatted), t.filter) {
			t.ui.Println(formatted)
		}
	}
	t.positions[path] = pos
	return nil
}
