package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Escribe una copia de seguridad JSON de todos los datos",
	Example: `  seed backup
  seed backup -o respaldo.json`,
	RunE: runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringP("output", "o", "", "Archivo de salida (por defecto respaldo_YYYYMMDD_HHMMSS.json; - para stdout)")
}

func runBackup(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := openApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	now := time.Now()
	doc, err := a.settings.Backup(ctx, now)
	if err != nil {
		return err
	}
	if output == "" {
		output = "respaldo_" + now.Format("20060102_150405") + ".json"
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("crear %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("escribir respaldo: %w", err)
	}
	log.Info().Str("output", output).Int("slots", len(doc.Slots)).Msg("respaldo escrito")
	return nil
}
