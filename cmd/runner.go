package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/phono/internal/models"
	"github.com/desertthunder/phono/internal/repositories"
	"github.com/desertthunder/phono/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when a TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, scanCommand, serveCommand, userCommand, exportCommand, browseCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves the active configuration, preferring the --config flag's
// file when it exists on disk.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		return r.config
	}

	if _, err := os.Stat(path); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "path", path, "error", err)
		return r.config
	}

	return config
}

// openDatabase opens and configures the catalog database.
func (r *Runner) openDatabase(config *shared.Config) (*sql.DB, error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	return db, nil
}

// catalogStores bundles the repositories most commands need.
type catalogStores struct {
	tracks    *repositories.TrackRepository
	playlists *repositories.PlaylistRepository
	users     *repositories.UserRepository
}

func newCatalogStores(db *sql.DB) catalogStores {
	return catalogStores{
		tracks:    repositories.NewTrackRepository(db),
		playlists: repositories.NewPlaylistRepository(db),
		users:     repositories.NewUserRepository(db),
	}
}

// ListTracks implements ui.Catalog.
func (c catalogStores) ListTracks(keywords []string) ([]models.Track, error) {
	return c.tracks.ListByKeywords(keywords)
}

// ListPlaylists implements ui.Catalog.
func (c catalogStores) ListPlaylists(userID int64) ([]models.Playlist, error) {
	return c.playlists.ListByUser(userID)
}

// ListPlaylistTracks implements ui.Catalog.
func (c catalogStores) ListPlaylistTracks(playlistID int64) ([]models.Track, error) {
	return c.tracks.ListByPlaylist(playlistID)
}

// CountPlaylistTracks implements ui.Catalog.
func (c catalogStores) CountPlaylistTracks(playlistID int64) (int, error) {
	return c.playlists.CountTracks(playlistID)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
