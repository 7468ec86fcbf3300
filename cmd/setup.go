package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/playdeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the built-in config template to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = "config.toml"
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Config written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set [cms] base_url to your CMS\n")
	r.writePlain("2. Run 'playdeck setup token --curl \"...\"' or export %s\n", shared.EnvToken)
	return nil
}

// SetupToken extracts the bearer token (and CMS base URL) from a copied cURL command and saves it to the config file.
func (r *Runner) SetupToken(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	r.logger.Info("parsing cURL command for the CMS token")

	var req *shared.CurlRequest
	var err error

	if curlFile != "" {
		req, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		req, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	token, err := req.BearerToken()
	if err != nil {
		return err
	}

	return r.saveToken(token, req.BaseURL())
}

// saveToken stores token (and baseURL when known) in the runner's config and writes it to the config file.
func (r *Runner) saveToken(token, baseURL string) error {
	if r.config == nil {
		return fmt.Errorf("%w: config is nil", shared.ErrMissingConfig)
	}

	r.config.CMS.Token = token
	if baseURL != "" {
		r.config.CMS.BaseURL = baseURL
	}

	if r.configPath == "" {
		r.logger.Warn("no config path set, token kept in memory only")
		r.build()
		return nil
	}

	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Info("config file not found, creating it", "path", r.configPath)
	}
	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.build()
	r.logger.Info("token saved", "path", r.configPath, "base_url", r.config.CMS.BaseURL)
	r.writePlain("✓ CMS token saved to %s\n", r.configPath)
	return nil
}
