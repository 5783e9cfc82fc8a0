package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ssc/internal/project"
	"ssc/internal/sema"
)

// checkSettings is the effective configuration of one check run: explicitly
// set flags win over ssc.toml, which wins over flag defaults.
type checkSettings struct {
	target         string
	isDir          bool
	manifest       *project.Manifest
	maxDiagnostics int
	policy         sema.Policy
	jobs           int
}

func resolveCheckSettings(cmd *cobra.Command, target string) (checkSettings, error) {
	info, err := os.Stat(target)
	if err != nil {
		return checkSettings{}, fmt.Errorf("failed to stat %s: %w", target, err)
	}
	s := checkSettings{target: target, isDir: info.IsDir()}

	startDir := target
	if !s.isDir {
		startDir = filepath.Dir(target)
	}
	manifest, _, err := project.LoadProjectManifest(startDir)
	if err != nil {
		return checkSettings{}, err
	}
	s.manifest = manifest

	rootFlags := cmd.Root().PersistentFlags()
	if s.maxDiagnostics, err = rootFlags.GetInt("max-diagnostics"); err != nil {
		return checkSettings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !rootFlags.Changed("max-diagnostics") && manifest.IsDefined("check", "max_diagnostics") {
		s.maxDiagnostics = manifest.Config.Check.MaxDiagnostics
	}

	if s.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return checkSettings{}, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !cmd.Flags().Changed("jobs") && manifest.IsDefined("check", "jobs") {
		s.jobs = manifest.Config.Check.Jobs
	}

	policyStr, err := cmd.Flags().GetString("duplicate-decls")
	if err != nil {
		return checkSettings{}, fmt.Errorf("failed to get duplicate-decls flag: %w", err)
	}
	if !cmd.Flags().Changed("duplicate-decls") && manifest.IsDefined("check", "duplicate_declarations") {
		s.policy = manifest.Policy()
	} else {
		dup, err := sema.ParseDuplicatePolicy(policyStr)
		if err != nil {
			return checkSettings{}, fmt.Errorf("invalid --duplicate-decls: %w", err)
		}
		s.policy = sema.Policy{DuplicateDecls: dup}
	}
	return s, nil
}

// exclude adapts the manifest's exclude patterns, which are relative to the
// manifest root, to paths relative to the checked directory.
func (s checkSettings) exclude() func(rel string) bool {
	if s.manifest == nil || len(s.manifest.Config.Check.Exclude) == 0 {
		return nil
	}
	base, err := filepath.Abs(s.target)
	if err != nil {
		return nil
	}
	return func(rel string) bool {
		fromRoot, err := filepath.Rel(s.manifest.Root, filepath.Join(base, rel))
		if err != nil {
			return false
		}
		return s.manifest.Excluded(fromRoot)
	}
}
