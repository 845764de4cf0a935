// Package cli implements the matrixview command-line front end over the
// device-local note repository.
package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/mmynk/matrixview/internal/auth"
	"github.com/mmynk/matrixview/internal/config"
	"github.com/mmynk/matrixview/internal/models"
	"github.com/mmynk/matrixview/internal/repository"
	"github.com/mmynk/matrixview/internal/share"
	"github.com/mmynk/matrixview/internal/storage/sqlite"
	"github.com/mmynk/matrixview/pkg/logging"
)

// App holds what the commands need. A nil Repo is opened from configuration
// before the first command runs.
type App struct {
	Repo      *repository.Repository
	Formatter *share.Formatter
	Tokens    *auth.TokenManager
	Now       func() time.Time
	Copy      func(text string) error

	envFile string
	dbPath  string
	key     string
	close   func() error
}

// NewApp creates an App that loads its configuration from envFile.
func NewApp(envFile string) *App {
	return &App{
		Now:     time.Now,
		Copy:    clipboard.WriteAll,
		envFile: envFile,
	}
}

// NewRootCommand builds the matrixview command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "matrixview",
		Short:         "Quick calculation notes over item/amount tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open()
		},
	}

	root.PersistentFlags().StringVar(&app.dbPath, "db", "", "database file (overrides DB_PATH)")
	root.PersistentFlags().StringVar(&app.key, "key", "", "storage key (overrides STORAGE_KEY)")

	root.AddCommand(
		newNewCommand(app),
		newCalcCommand(app),
		newListCommand(app),
		newShareCommand(app),
		newDeleteCommand(app),
		newTokenCommand(app),
	)
	return root
}

// Run executes the command line args and closes whatever the command
// opened, whether or not it failed.
func Run(app *App, args []string) (err error) {
	defer func() {
		err = errors.Join(err, app.Close())
	}()

	root := NewRootCommand(app)
	root.SetArgs(args)
	return root.Execute()
}

// Close releases the store opened from configuration, if any.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	closeFn := a.close
	a.close = nil
	return closeFn()
}

func (a *App) open() error {
	if a.Repo != nil {
		return nil
	}

	cfg, err := config.Load(a.envFile, &config.Config{DBPath: a.dbPath, StorageKey: a.key})
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	a.Repo = repository.New(store, repository.WithKey(cfg.StorageKey))
	a.Formatter = share.NewFormatter(cfg.Currency, loc)
	if cfg.AuthEnabled() {
		a.Tokens = auth.NewTokenManager(cfg.AuthSecret, cfg.TokenTTL)
	}
	a.close = store.Close
	return nil
}

// tableFlags are the flags shared by commands that take a table.
type tableFlags struct {
	rows   []string
	calc   string
	value  float64
	people int
}

func (f *tableFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.rows, "row", "r", nil, "table row as item=amount (repeatable)")
	cmd.Flags().StringVarP(&f.calc, "calc", "c", string(models.CalculationSum), "calculation: sum, subtract, percentage, average, count")
	cmd.Flags().Float64Var(&f.value, "value", 0, "baseline for the subtract calculation")
	cmd.Flags().IntVarP(&f.people, "people", "p", 0, "split the total between this many people")
}

func (f *tableFlags) calculation(cmd *cobra.Command) (models.CalculationConfig, error) {
	t := models.CalculationType(strings.ToLower(f.calc))
	if !t.Valid() {
		return models.CalculationConfig{}, fmt.Errorf("unknown calculation %q", f.calc)
	}
	if t.NeedsValue() && cmd.Flags().Changed("value") {
		return models.Subtract(f.value), nil
	}
	return models.CalculationConfig{Type: t}, nil
}

func (f *tableFlags) tableRows() []models.TableRow {
	rows := make([]models.TableRow, 0, len(f.rows))
	for _, raw := range f.rows {
		rows = append(rows, ParseRow(raw))
	}
	return rows
}

// ParseRow splits "item=amount" at the last '='. Text without '=' is an item
// with no amount.
func ParseRow(raw string) models.TableRow {
	i := strings.LastIndex(raw, "=")
	if i < 0 {
		return models.TableRow{Item: strings.TrimSpace(raw)}
	}
	return models.TableRow{
		Item:   strings.TrimSpace(raw[:i]),
		Amount: strings.TrimSpace(raw[i+1:]),
	}
}
