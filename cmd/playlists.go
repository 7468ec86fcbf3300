package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/playdeck/internal/formatter"
	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/shared"
	"github.com/desertthunder/playdeck/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistsList lists every playlist with its renderable and skipped component counts.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.service == nil {
		return fmt.Errorf("%w: CMS service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("listing playlists", "service", r.service.Name())

	playlists, err := r.service.GetPlaylists(ctx)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists found\n")
	}
	return r.writePlain("%s\n", formatter.PlaylistsTable(playlists, r.engine.Dispatcher()))
}

// PlaylistsShow assembles one playlist and renders it for the terminal or exports it in a format.
func (r *Runner) PlaylistsShow(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	formatName := cmd.String("format")
	output := cmd.String("output")

	if id == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	p, seq, err := r.engine.Sequence(ctx, nil, id)
	if err != nil {
		return err
	}
	if seq.Skipped > 0 {
		r.logger.Warn("some components could not be rendered", "playlist", id, "skipped", seq.Skipped)
	}

	if formatName == "" && output == "" {
		renderer := formatter.NewRenderer(int(cmd.Int("width")), cmd.String("style"))
		r.writePlainHeader(p.Title())
		return r.writePlain("%s\n", renderer.RenderSequence(seq))
	}

	format := formatter.FormatText
	if formatName != "" {
		if format, err = formatter.ParseFormat(formatName); err != nil {
			return err
		}
	}

	export := formatter.NewExport(*p, seq)
	if output == "" {
		data, err := formatter.Render(export, format)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	path, err := formatter.WriteExport(export, format, output)
	if err != nil {
		return err
	}
	r.logger.Info("sequence exported", "playlist", id, "format", format, "path", path)
	return r.writePlain("✓ Exported %d cards to %s\n", len(seq.Items), path)
}

// PlaylistsCreate creates a playlist from the given video IDs.
func (r *Runner) PlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	useJSON := cmd.Bool("json")

	var ids []models.ID
	for _, v := range cmd.StringSlice("video") {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, models.ID(id))
			}
		}
	}

	created, err := r.engine.Create(ctx, nil, tasks.PublishRequest{Name: name, VideoIDs: ids})
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(created, false)
	}
	return r.writePlain("✓ Content published successfully! %q (id %s, %d videos)\n", created.Title, created.ID, created.Components)
}

// PlaylistsExport exports the sequences of the given playlists, or all playlists, to a directory.
func (r *Runner) PlaylistsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	opts := tasks.ExportOpts{
		Format:     format,
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
	}

	progress := make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.ExportAll(ctx, progress, cmd.Args().Slice(), opts)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("Exported %d/%d playlists to %s", result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory)
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}
	if result.FailedExports > 0 {
		return fmt.Errorf("%w: %d playlists failed to export", shared.ErrAPIRequest, result.FailedExports)
	}
	return nil
}
