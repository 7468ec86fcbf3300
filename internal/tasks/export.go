package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/playdeck/internal/formatter"
	"github.com/desertthunder/playdeck/internal/shared"
)

// ExportOpts contains configuration for bulk sequence exports.
type ExportOpts struct {
	Format     formatter.Format // Export format (default: txt)
	OutputDir  string           // Base output directory (default: playdeck_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 4, max: 8)
}

// PlaylistExportResult is the outcome of exporting one playlist.
type PlaylistExportResult struct {
	PlaylistID   string `json:"playlist_id"`
	PlaylistName string `json:"playlist_name"`
	Cards        int    `json:"cards"`
	Skipped      int    `json:"skipped"`
	File         string `json:"file,omitempty"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// ExportResult summarises a bulk export and is written as the manifest.
type ExportResult struct {
	TotalPlaylists    int                    `json:"total_playlists"`
	SuccessfulExports int                    `json:"successful_exports"`
	FailedExports     int                    `json:"failed_exports"`
	Format            formatter.Format       `json:"format"`
	OutputDirectory   string                 `json:"output_directory"`
	ManifestPath      string                 `json:"-"`
	Results           []PlaylistExportResult `json:"results"`
}

// ExportAll fetches, assembles and writes the sequence of every playlist in ids using a worker pool.
//
// An empty ids exports every playlist the service lists. Failures are recorded per playlist and do
// not stop the export; a manifest summarising the run is written to the output directory.
func (e *Engine) ExportAll(ctx context.Context, prog chan<- ProgressUpdate, ids []string, opts ExportOpts) (*ExportResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatText
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("playdeck_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}

	if len(ids) == 0 {
		playlists, err := e.svc.GetPlaylists(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range playlists {
			ids = append(ids, p.ID.String())
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		TotalPlaylists:  len(ids),
		Format:          opts.Format,
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(ids)),
	}

	jobs := make(chan string)
	results := make(chan PlaylistExportResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, id := range ids {
			e.sendProgress(prog, exportingPlaylistUpdate(i+1, len(ids), id))
			select {
			case jobs <- id:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.PlaylistName, res.File))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(ids), res.PlaylistName, fmt.Errorf("%s", res.Error)))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker exports playlists from the jobs channel until it is closed.
func (e *Engine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan string,
	results chan<- PlaylistExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for id := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- e.exportOne(ctx, id, opts)
	}
}

func (e *Engine) exportOne(ctx context.Context, id string, opts ExportOpts) PlaylistExportResult {
	res := PlaylistExportResult{
		PlaylistID:   id,
		PlaylistName: fmt.Sprintf("Unknown (%s)", id),
	}

	p, seq, err := e.Sequence(ctx, nil, id)
	if err != nil {
		res.Error = fmt.Sprintf("failed to fetch playlist: %v", err)
		return res
	}
	res.PlaylistName = p.Title()
	res.Cards = len(seq.Items)
	res.Skipped = seq.Skipped

	export := formatter.NewExport(*p, seq)
	path := filepath.Join(opts.OutputDir, formatter.DefaultFilename(export, opts.Format))
	file, err := formatter.WriteExport(export, opts.Format, path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.File = file
	res.Success = true
	return res
}
