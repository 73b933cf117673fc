// seed carga datos en el almacén PostgreSQL configurado: datos de demostración,
// importación de clientes/productos desde CSV y copia de seguridad en JSON.
//
// Uso: go run ./cmd/seed [demo|import|backup] --help
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturacion-api/pkg/config"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carga y respaldo de datos de la API de facturación",
	Long: `seed trabaja directamente sobre el almacén configurado (STORAGE_DRIVER=postgres).

Lee las mismas variables de entorno que la API; si existe un archivo .env en el
directorio actual se carga antes.`,
	SilenceUsage: true,
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "advertencia: .env: %v\n", err)
	}
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})
	return cfg, log, nil
}
