package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/playdeck/internal/formatter"
	"github.com/desertthunder/playdeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// VideosList lists the videos available for new playlists.
func (r *Runner) VideosList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.service == nil {
		return fmt.Errorf("%w: CMS service not initialized", shared.ErrServiceUnavailable)
	}

	videos, err := r.service.GetVideos(ctx)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(videos, pretty)
	}
	if len(videos) == 0 {
		return r.writePlain("No videos found\n")
	}
	return r.writePlain("%s\n", formatter.VideosTable(videos))
}

// VideosOpen opens a video's media URL in the system browser.
func (r *Runner) VideosOpen(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: video id is required", shared.ErrMissingArgument)
	}
	if r.service == nil {
		return fmt.Errorf("%w: CMS service not initialized", shared.ErrServiceUnavailable)
	}

	videos, err := r.service.GetVideos(ctx)
	if err != nil {
		return err
	}

	for _, v := range videos {
		if v.ID.String() != id {
			continue
		}
		if v.VideoURL == "" {
			return fmt.Errorf("%w: video %s has no media URL", shared.ErrInvalidInput, id)
		}
		r.writePlain("→ Opening %s\n", v.VideoURL)
		if err := shared.OpenBrowser(v.VideoURL); err != nil {
			r.logger.Warn("failed to open browser automatically", "error", err)
			r.writePlain("Please open this URL in your browser:\n%s\n", v.VideoURL)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", shared.ErrVideoNotFound, id)
}

// CardsKinds lists the registered card kinds with their fields and aliases.
func (r *Runner) CardsKinds(ctx context.Context, cmd *cli.Command) error {
	registry := r.engine.Dispatcher().Registry()

	if cmd.Bool("json") {
		type kind struct {
			Kind    string   `json:"kind"`
			Aliases []string `json:"aliases,omitempty"`
			Spec    any      `json:"spec"`
		}
		aliases := map[string][]string{}
		for alias, k := range registry.Aliases() {
			aliases[k] = append(aliases[k], alias)
		}

		var kinds []kind
		for _, k := range registry.Kinds() {
			spec, _ := registry.Lookup(k)
			kinds = append(kinds, kind{Kind: k, Aliases: aliases[k], Spec: spec})
		}
		return r.writeJSON(kinds, true)
	}

	return r.writePlain("%s\n", formatter.KindsTable(registry))
}
