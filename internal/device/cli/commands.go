package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/synchub/internal/crdt"
	"github.com/iudanet/synchub/internal/device"
	"github.com/iudanet/synchub/internal/device/data"
	"github.com/iudanet/synchub/internal/device/iocli"
	"github.com/iudanet/synchub/internal/device/storage/boltdb"
	"github.com/iudanet/synchub/internal/device/sync"
	"github.com/iudanet/synchub/internal/models"
)

// Options глобальные флаги CLI устройства
type Options struct {
	HubAddress string
	DBPath     string
	DeviceID   int64
	Heartbeat  time.Duration
	ClockSync  time.Duration
	Verbose    bool
}

func (o *Options) validate() error {
	if o.DeviceID < 0 {
		return fmt.Errorf("--device must be set to a non-negative device id")
	}
	if o.DBPath == "" {
		return fmt.Errorf("--db must not be empty")
	}
	return nil
}

func (o *Options) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// session открытая реплика и, для сетевых команд, соединение с хабом
type session struct {
	store  *boltdb.Storage
	client *device.Client
	cli    *Cli
}

func (s *session) Close() error {
	if s.client != nil {
		_ = s.client.Close()
	}
	return s.store.Close()
}

// open открывает реплику; connect дополнительно подключается к хабу
func (o *Options) open(ctx context.Context, out io.Writer, connect bool) (*session, error) {
	logger := o.logger()
	id := models.DeviceID(o.DeviceID)

	store, err := boltdb.New(ctx, o.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	clock := crdt.NewClock()
	if err := sync.RestoreClock(ctx, clock, store, store); err != nil {
		_ = store.Close()
		return nil, err
	}

	s := &session{store: store}
	var syncService sync.Service
	if connect {
		s.client, err = device.Dial(ctx, o.HubAddress, id, device.Options{HeartbeatInterval: o.Heartbeat}, logger)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		syncService = sync.NewService(s.client, store, store, clock, id, logger)
	}

	s.cli = New(iocli.NewWriter(out), data.NewService(store, clock, id), syncService)
	return s, nil
}

// NewRootCommand собирает дерево команд CLI устройства
func NewRootCommand(version string) *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:           "synchub-device",
		Short:         "Local key-value replica synchronized through a synchub hub",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.HubAddress, "hub", "localhost:9527", "hub address")
	flags.Int64Var(&opts.DeviceID, "device", -1, "device id (>= 0)")
	flags.StringVar(&opts.DBPath, "db", "synchub-device.db", "path to local replica")
	flags.DurationVar(&opts.Heartbeat, "heartbeat", device.DefaultHeartbeatInterval, "heartbeat interval")
	flags.DurationVar(&opts.ClockSync, "clock-sync", time.Minute, "clock correction interval in watch mode (0 disables)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newPutCommand(opts),
		newDeleteCommand(opts),
		newGetCommand(opts),
		newListCommand(opts),
		newSyncCommand(opts),
		newWatchCommand(opts),
		newTimeCommand(opts),
	)
	return root
}

// withSession открывает сессию на время выполнения команды
func withSession(opts *Options, connect bool, run func(ctx context.Context, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := opts.open(ctx, cmd.OutOrStdout(), connect)
		if err != nil {
			return err
		}
		defer func() {
			_ = s.Close()
		}()
		return run(ctx, s, args)
	}
}

func newPutCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "put KEY VALUE",
		Short: "Write a value to the local replica",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(opts, false, func(ctx context.Context, s *session, args []string) error {
			return s.cli.runPut(ctx, args[0], args[1])
		}),
	}
}

func newDeleteCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a key (writes a tombstone)",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, false, func(ctx context.Context, s *session, args []string) error {
			return s.cli.runDelete(ctx, args[0])
		}),
	}
}

func newGetCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Show a key from the local replica",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, false, func(ctx context.Context, s *session, args []string) error {
			return s.cli.runGet(ctx, args[0])
		}),
	}
}

func newListCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active keys of the local replica",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, false, func(ctx context.Context, s *session, _ []string) error {
			return s.cli.runList(ctx)
		}),
	}
}

func newSyncCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push local changes and pull changes of other devices",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, true, func(ctx context.Context, s *session, _ []string) error {
			// Неудачная коррекция часов не мешает синхронизации
			if err := s.cli.runTime(ctx); err != nil {
				s.cli.io.Printf("Warning: %v\n", err)
			}
			return s.cli.runSync(ctx)
		}),
	}
}

func newTimeCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "time",
		Short: "Correct the device clock against the hub",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, true, func(ctx context.Context, s *session, _ []string) error {
			return s.cli.runTime(ctx)
		}),
	}
}

func newWatchCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stay connected and synchronize on every change notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			return withSession(opts, true, func(ctx context.Context, s *session, _ []string) error {
				if err := s.cli.runTime(ctx); err != nil {
					s.cli.io.Printf("Warning: %v\n", err)
				}
				if err := s.cli.runWatch(ctx, s.client.Notifications(), s.client.Done(), opts.ClockSync); err != nil {
					return err
				}

				select {
				case <-s.client.Done():
					if ctx.Err() == nil {
						return fmt.Errorf("connection to hub lost: %w", s.client.Err())
					}
				default:
				}
				return nil
			})(cmd, args)
		},
	}
}

// Execute запускает CLI и возвращает код выхода
func Execute(ctx context.Context, version string) int {
	root := NewRootCommand(version)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
