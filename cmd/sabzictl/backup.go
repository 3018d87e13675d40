package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/sabzi/internal/backup"
	"github.com/dukerupert/sabzi/internal/config"
	"github.com/dukerupert/sabzi/internal/database"
	"github.com/dukerupert/sabzi/internal/store"
)

func newExportCmd(cfg *config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an encrypted backup of the shopping list",
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase, err := backupPassphrase(cmd, cfg)
			if err != nil {
				return err
			}
			itemStore, closeDB, err := openStore(cfg.DBPath)
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := runExport(itemStore, passphrase, out, time.Now())
			if err != nil {
				return err
			}
			slog.Info("backup written", "path", out, "items", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "sabzi.backup", "output file")
	cmd.Flags().String("passphrase", "", "backup passphrase (default $SABZI_BACKUP_PASSPHRASE)")
	return cmd
}

func newRestoreCmd(cfg *config.Config) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace the shopping list with the contents of a backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase, err := backupPassphrase(cmd, cfg)
			if err != nil {
				return err
			}
			itemStore, closeDB, err := openStore(cfg.DBPath)
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := runRestore(itemStore, passphrase, in)
			if err != nil {
				return err
			}
			slog.Info("backup restored", "path", in, "items", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "backup file to restore")
	cmd.MarkFlagRequired("in")
	cmd.Flags().String("passphrase", "", "backup passphrase (default $SABZI_BACKUP_PASSPHRASE)")
	return cmd
}

func backupPassphrase(cmd *cobra.Command, cfg *config.Config) (string, error) {
	passphrase, _ := cmd.Flags().GetString("passphrase")
	if passphrase == "" {
		passphrase = cfg.BackupPassphrase
	}
	if passphrase == "" {
		return "", backup.ErrEmptyPassphrase
	}
	return passphrase, nil
}

func openStore(dbPath string) (*store.ItemStore, func(), error) {
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return store.NewItemStore(db), func() { db.Close() }, nil
}

func runExport(itemStore *store.ItemStore, passphrase, path string, now time.Time) (int, error) {
	items, err := itemStore.List()
	if err != nil {
		return 0, err
	}
	data, err := backup.Export(items, passphrase, now)
	if err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return 0, fmt.Errorf("write backup: %w", err)
	}
	return len(items), nil
}

func runRestore(itemStore *store.ItemStore, passphrase, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read backup: %w", err)
	}
	items, err := backup.Restore(data, passphrase)
	if err != nil {
		return 0, fmt.Errorf("restore: %w", err)
	}
	if err := itemStore.ReplaceAll(items); err != nil {
		return 0, err
	}
	return len(items), nil
}
