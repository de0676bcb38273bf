package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osse101/ScrapTracker_Go/internal/auth"
	"github.com/osse101/ScrapTracker_Go/internal/backup"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

func newMigrateCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and seed empty option groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), cmd, e)
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Store is up to date (%s)\n", s.cfg.DBDriver)
			return nil
		},
	}
}

func newExportCmd(e env) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of every entry and option",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			if format != formatJSON && format != formatCSV {
				return fmt.Errorf("unsupported format %q (want %s or %s)", format, formatJSON, formatCSV)
			}

			s, err := openSession(cmd.Context(), cmd, e)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			if format == formatCSV {
				return s.svcs.Backups.ExportCSV(cmd.Context(), w)
			}
			return s.svcs.Backups.ExportJSON(cmd.Context(), w)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "backup format: json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace every entry and option with a JSON backup",
		Long:  "Replace every entry and option with a JSON backup. Use - to read standard input.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			s, err := openSession(cmd.Context(), cmd, e)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.svcs.Backups.ImportJSON(cmd.Context(), r)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries, %d lines and %d shifts\n", res.Items, res.Lines, res.Shifts)
			return nil
		},
	}
}

func newUploadCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "upload",
		Short: "Upload a JSON backup to the configured S3 bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), cmd, e)
			if err != nil {
				return err
			}
			defer s.Close()

			if s.svcs.Uploader == nil {
				return backup.ErrS3NotConfigured
			}

			key, err := s.svcs.Uploader.Upload(cmd.Context(), s.svcs.Backups)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Backup uploaded as %s\n", key)
			return nil
		},
	}
}

func newHashPasswordCmd(e env) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for APP_PASSWORD_HASH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.ErrOrStderr()

			fmt.Fprint(w, "Enter password: ")
			pw, err := e.readPassword(e.stdinFd)
			fmt.Fprintln(w)
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			fmt.Fprint(w, "Confirm password: ")
			confirm, err := e.readPassword(e.stdinFd)
			fmt.Fprintln(w)
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			if len(pw) == 0 {
				return errors.New("password must not be empty")
			}
			if string(pw) != string(confirm) {
				return errors.New("passwords do not match")
			}

			hash, err := auth.HashPassword(string(pw))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
