package config

import (
	"fmt"
	"regexp"

	"pii-metamodel/internal/diagnostic"
	"pii-metamodel/internal/match"
	"pii-metamodel/internal/metamodel"
	"pii-metamodel/internal/output"
)

var tagKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// Validate checks a configuration before any package is loaded.
func Validate(cfg *Config) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if cfg == nil {
		res.AddError(diagnostic.CodeConfigNil, "config is nil", "", "")
		return res
	}

	if len(cfg.Packages) == 0 {
		res.AddError(diagnostic.CodeNoPackages, "no packages to scan", "", "packages")
	}

	seen := map[string]struct{}{}

	for i, pkg := range cfg.Packages {
		field := fmt.Sprintf("packages[%d]", i)
		if pkg == "" {
			res.AddError(diagnostic.CodeEmptyPackage, "empty package pattern", "", field)
			continue
		}

		if _, ok := seen[pkg]; ok {
			res.AddWarning(diagnostic.CodeDuplicatePackage, fmt.Sprintf("duplicate package pattern %q", pkg), "", field)
			continue
		}

		seen[pkg] = struct{}{}
	}

	for i, entry := range cfg.Ignore {
		if err := metamodel.ValidateIgnoreEntry(entry); err != nil {
			res.AddError(diagnostic.CodeInvalidIgnoreEntry, err.Error(), "", fmt.Sprintf("ignore[%d]", i))
		}
	}

	for i, name := range cfg.Containers {
		if _, ok := metamodel.ParseTypeID(name); !ok {
			res.AddError(diagnostic.CodeInvalidContainer,
				fmt.Sprintf("container %q is not a qualified type name (want pkg/path.Name)", name),
				"", fmt.Sprintf("containers[%d]", i))
		}
	}

	if cfg.Output == "" {
		res.AddError(diagnostic.CodeNoOutput, "no output file", "", "output")
	}

	if _, err := cfg.OutputFormat(); err != nil {
		known := make([]string, 0, len(output.Formats))
		for _, f := range output.Formats {
			known = append(known, string(f))
		}

		res.AddErrorWithSuggestions(diagnostic.CodeInvalidFormat, err.Error(), "", "format",
			match.Suggest(string(cfg.Format), known, match.DefaultSuggestionScore))
	}

	if !tagKeyPattern.MatchString(cfg.TagKey) {
		res.AddError(diagnostic.CodeInvalidTagKey, fmt.Sprintf("invalid tag key %q", cfg.TagKey), "", "tagKey")
	}

	return res
}
