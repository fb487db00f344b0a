// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mdaemon "github.com/multigit-io/multigit/internal/daemon"
	"github.com/multigit-io/multigit/internal/logging"
	"github.com/multigit-io/multigit/internal/merrors"
	"github.com/multigit-io/multigit/pkg/orchestrator"
)

var (
	daemonInterval string
	daemonLines    int
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run or control the background sync daemon",
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the daemon in the foreground, syncing every interval",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Signal a running daemon to shut down",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStop,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the daemon is running",
	Args:  cobra.NoArgs,
	RunE:  runDaemonStatus,
}

var daemonLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the tail of the daemon's redacted log file",
	Args:  cobra.NoArgs,
	RunE:  runDaemonLogs,
}

func init() {
	daemonStartCmd.Flags().StringVar(&daemonInterval, "interval", "15m", "sync interval (accepts s/m/h suffixes)")
	daemonLogsCmd.Flags().IntVar(&daemonLines, "lines", 50, "number of trailing lines to print")
	daemonCmd.AddCommand(daemonStartCmd, daemonStopCmd, daemonStatusCmd, daemonLogsCmd)
	rootCmd.AddCommand(daemonCmd)
}

func runDaemonStart(c *cobra.Command, args []string) error {
	interval, err := time.ParseDuration(daemonInterval)
	if err != nil {
		return merrors.Wrap(merrors.Config, "cmd.daemon_start", err)
	}

	pidPath, err := pidFilePath()
	if err != nil {
		return err
	}
	logPath, err := daemonLogFilePath()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return merrors.Wrap(merrors.Internal, "cmd.daemon_start", err)
	}
	defer logFile.Close()

	logger, err := logging.New(logging.Config{Verbose: verboseFlag, JSON: true, Output: logFile})
	if err != nil {
		return merrors.Wrap(merrors.Internal, "cmd.daemon_start", err)
	}

	var (
		appMu sync.Mutex
		a     *app
	)
	loadApp := func() {
		loaded, loadErr := newApp(false)
		if loadErr != nil {
			logger.Error("config reload failed", logging.Redacted("error", loadErr.Error()))
			return
		}
		appMu.Lock()
		a = loaded
		appMu.Unlock()
	}
	loadApp()
	appMu.Lock()
	loaded := a
	appMu.Unlock()
	if loaded == nil {
		return merrors.New(merrors.Config, "cmd.daemon_start", "could not load configuration")
	}

	runSync := func(ctx context.Context) error {
		appMu.Lock()
		current := a
		appMu.Unlock()

		branch, err := resolveBranch(current, "")
		if err != nil {
			return err
		}
		remotes, err := selectRemotes(current, nil)
		if err != nil {
			return err
		}
		s := orchestrator.NewSyncer(current.repoRoot, current.secrets)
		agg, report, err := s.Sync(ctx, branch, remotes, current.cfg.Sync, current.cfg.Settings.MaxParallel, false, false)
		if err != nil {
			return err
		}
		logger.Info("sync tick complete",
			logging.Redacted("succeeded", fmt.Sprint(agg.Succeeded)),
			logging.Redacted("failed", fmt.Sprint(agg.Failed)),
			logging.Redacted("allClear", fmt.Sprint(report.AllClear())),
		)
		return nil
	}

	var configPath string
	if loaded.repoRoot != "" {
		configPath = repoConfigPathFor(loaded.repoRoot)
	}

	d := &mdaemon.Daemon{
		PIDFilePath:  pidPath,
		ConfigPath:   configPath,
		Interval:     interval,
		Sync:         runSync,
		OnConfigLoad: loadApp,
		Logger:       logger,
	}
	return d.Run(context.Background())
}

func runDaemonStop(c *cobra.Command, args []string) error {
	pidPath, err := pidFilePath()
	if err != nil {
		return err
	}
	pid, alive := mdaemon.ReadPID(pidPath)
	if !alive {
		fmt.Fprintln(c.OutOrStdout(), "daemon is not running")
		return nil
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return merrors.Wrap(merrors.Internal, "cmd.daemon_stop", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return merrors.Wrap(merrors.Internal, "cmd.daemon_stop", err)
	}
	fmt.Fprintln(c.OutOrStdout(), "sent SIGTERM to pid", pid)
	return nil
}

func runDaemonStatus(c *cobra.Command, args []string) error {
	pidPath, err := pidFilePath()
	if err != nil {
		return err
	}
	pid, alive := mdaemon.ReadPID(pidPath)
	if !alive {
		fmt.Fprintln(c.OutOrStdout(), "stopped")
		return nil
	}
	fmt.Fprintln(c.OutOrStdout(), "running, pid", pid)
	return nil
}

func runDaemonLogs(c *cobra.Command, args []string) error {
	logPath, err := daemonLogFilePath()
	if err != nil {
		return err
	}
	f, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(c.OutOrStdout(), "no daemon log yet")
			return nil
		}
		return merrors.Wrap(merrors.Internal, "cmd.daemon_logs", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > daemonLines {
			lines = lines[1:]
		}
	}
	fmt.Fprintln(c.OutOrStdout(), strings.Join(lines, "\n"))
	return nil
}
