// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/playdeck/internal/formatter"
	"github.com/urfave/cli/v3"
)

// playlistsCommand handles playlist operations
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlaylistsList,
			},
			{
				Name:  "show",
				Usage: "Assemble and render a playlist's card sequence",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (txt, markdown, csv, json); omit to render for the terminal",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the export to a file instead of stdout",
					},
					&cli.StringFlag{
						Name:  "style",
						Usage: "Glamour style for terminal rendering (dark, light, notty)",
					},
					&cli.IntFlag{
						Name:  "width",
						Usage: "Card width for terminal rendering",
						Value: 72,
					},
				},
				Action: r.PlaylistsShow,
			},
			{
				Name:  "create",
				Usage: "Create a playlist from video IDs, in order",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "video",
						Usage:    "Video ID to include (repeatable)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistsCreate,
			},
			{
				Name:      "export",
				Usage:     "Export the sequences of many playlists to files",
				ArgsUsage: "[playlist IDs...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (txt, markdown, csv, json)",
						Value:   string(formatter.FormatText),
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Output directory (default: playdeck_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers (max 8)",
						Value: 4,
					},
				},
				Action: r.PlaylistsExport,
			},
		},
	}
}

// videosCommand handles video operations
func videosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "videos",
		Aliases: []string{"vid"},
		Usage:   "Video operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List videos available for playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.VideosList,
			},
			{
				Name:  "open",
				Usage: "Open a video in the system browser",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.VideosOpen,
			},
		},
	}
}

// cardsCommand handles card registry inspection
func cardsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cards",
		Usage: "Card kind operations",
		Commands: []*cli.Command{
			{
				Name:  "kinds",
				Usage: "List the card kinds that can be rendered",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CardsKinds,
			},
		},
	}
}

// apiCommand handles direct (authenticated) CMS calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct authenticated calls to the CMS API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the CMS, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// setupCommand handles configuration setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Create the config file from the built-in template",
				Action: r.SetupConfig,
			},
			{
				Name:  "token",
				Usage: "Store the API token from a request copied from the CMS admin panel",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.SetupToken,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing and assembling playlists",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "style",
				Usage: "Glamour style for card descriptions (dark, light, notty)",
				Value: "dark",
			},
		},
		Action: r.TUI,
	}
}

// serveCommand starts the local preview server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve playlists and assembled sequences as JSON on a local port",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from config [server])",
			},
		},
		Action: r.Serve,
	}
}
