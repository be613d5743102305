// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes the configuration file and database schema.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize config file, database and run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// scanCommand imports MP3 files from the library directory.
func scanCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "scan",
		Usage: "Scan the music directory and import new MP3 files",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Music directory to scan (overrides config)",
			},
		},
		Action: r.Scan,
	}
}

// serveCommand runs the web service.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Scan the library once, then serve the streaming web interface",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "skip-scan",
				Usage: "Skip the startup library scan",
			},
		},
		Action: r.Serve,
	}
}

// userCommand manages accounts.
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage user accounts",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a user account",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Username for the new account",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password for the new account",
						Required: true,
					},
				},
				Action: r.UserAdd,
			},
		},
	}
}

// exportCommand writes a playlist to a file format.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a playlist to CSV, Markdown or plain text",
		Flags: []cli.Flag{
			configFlag(),
			&cli.Int64Flag{
				Name:     "id",
				Usage:    "Playlist ID to export",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: csv, markdown or text",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path (base filename or directory depending on format)",
			},
		},
		Action: r.Export,
	}
}

// browseCommand launches the terminal catalog browser.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse the catalog in an interactive terminal UI",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "Username whose playlists to browse",
				Required: true,
			},
		},
		Action: r.Browse,
	}
}
