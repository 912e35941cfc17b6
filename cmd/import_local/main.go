// import_local carga en el almacenamiento un archivo exportado desde la versión del
// planificador que guardaba los datos en el navegador.
//
// Uso: go run ./cmd/import_local --file export.json --user-email novia@example.com
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/wedding-api/internal/application/dto"
	"github.com/jhoicas/wedding-api/internal/application/usecase"
	"github.com/jhoicas/wedding-api/internal/infrastructure/storage"
	"github.com/jhoicas/wedding-api/pkg/config"
	"github.com/jhoicas/wedding-api/pkg/logger"
)

var (
	filePath  string
	userEmail string
	driver    string
)

var rootCmd = &cobra.Command{
	Use:   "import_local",
	Short: "Importa un export del navegador (weddingTodos, weddingCategories, weddingSettings)",
	Long: `Lee el JSON exportado del almacenamiento local del navegador y lo agrega a la cuenta
del usuario indicado. Los IDs locales se reasignan y las categorías se emparejan por nombre.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "archivo JSON exportado")
	rootCmd.Flags().StringVarP(&userEmail, "user-email", "u", "", "email del usuario destino (debe existir)")
	rootCmd.Flags().StringVar(&driver, "driver", "", "sobrescribe STORAGE_DRIVER (postgres, mongo)")
	_ = rootCmd.MarkFlagRequired("file")
	_ = rootCmd.MarkFlagRequired("user-email")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if driver != "" {
		cfg.Storage.Driver = strings.ToLower(driver)
	}
	if cfg.Storage.Driver == config.StorageMemory {
		return fmt.Errorf("el driver memory no persiste la importación")
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Output: os.Stderr})

	export, err := readExport(filePath)
	if err != nil {
		return err
	}

	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = repos.Close(closeCtx)
	}()

	user, err := repos.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(userEmail)))
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no existe un usuario con email %s", userEmail)
	}

	categoryUC := usecase.NewCategoryUseCase(repos.Categories, repos.Tx, log)
	settingsUC := usecase.NewSettingsUseCase(repos.Settings)
	importUC := usecase.NewLocalImportUseCase(categoryUC, settingsUC, repos.Tx, log)

	res, err := importUC.Import(ctx, user.ID, *export)
	if err != nil {
		return fmt.Errorf("importar: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func readExport(path string) (*dto.LocalExport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	var export dto.LocalExport
	if err := json.Unmarshal(raw, &export); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", path, err)
	}
	return &export, nil
}
