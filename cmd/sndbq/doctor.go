package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"pkt.systems/pslog"

	"pkt.systems/sndbq/console"
	"pkt.systems/sndbq/internal/appconfig"
	"pkt.systems/sndbq/internal/store"
	"pkt.systems/sndbq/internal/version"
)

func newDoctorCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, database access and terminal support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			configPath := cfgPath
			if strings.TrimSpace(configPath) == "" {
				path, err := appconfig.DefaultConfigPath()
				if err != nil {
					return err
				}
				configPath = path
			}
			logger.Info("doctor start", "config", configPath)

			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			logger.Info("doctor config ok", "driver", cfg.Database.Driver, "theme", cfg.Console.Theme)

			db, err := store.Open(cmd.Context(), storeConfig(cfg))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			if err := db.Ping(cmd.Context()); err != nil {
				return err
			}
			logger.Info("doctor database ok", "driver", db.Driver(), "server", cfg.Database.Server, "database", cfg.Database.Database)

			return writeDoctorReport(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	return cmd
}

func writeDoctorReport(w io.Writer, cfg appconfig.Config) error {
	info := version.Read()
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	lines := []string{
		fmt.Sprintf("version     %s %s (%s)", info.Module, info.Version, info.GoVersion),
		fmt.Sprintf("database    %s ok", cfg.Database.Driver),
		fmt.Sprintf("terminal    interactive=%t", interactive),
		fmt.Sprintf("clipboard   supported=%t", console.ClipboardSupported()),
		fmt.Sprintf("log file    %s", cfg.Logging.File),
		fmt.Sprintf("remote log  enabled=%t level=%s", cfg.Logging.Remote, cfg.Logging.RemoteLevel),
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
