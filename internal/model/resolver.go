package model

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Request describes a single artifact resolution. All fields except
// ModelPath are optional.
type Request struct {
	// Name is the logical model name used for exact-match lookup.
	Name string

	// ModelPath is a model file or a directory to search.
	ModelPath string

	// WeightsPath is an explicit weights file or a directory to search.
	// Empty means "derive from the model file location".
	WeightsPath string

	// Format pins resolution to a single declared format. Empty means
	// autodetect in priority order. Ignored when ModelPath is a file.
	Format Format

	// ParamsPath is the Paddle params companion, supplied by its own
	// configuration field rather than derived by glob.
	ParamsPath string
}

// Result holds the resolved artifact paths.
type Result struct {
	ModelFile   string
	WeightsFile string // empty for self-contained formats
	Format      Format
	Precompiled bool
}

// companionResolver derives the companion weights file for a format.
type companionResolver func(r *Resolver, req Request, modelFile string, rule FormatRule) (string, error)

// Resolver locates model artifacts on the file system. It is stateless
// between calls and safe for concurrent use.
type Resolver struct {
	widenToParent bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithParentFallback controls whether a directory search that finds no
// candidate widens to the directory's parent. The original search did
// this implicitly; it is kept on by default for compatibility.
func WithParentFallback(enabled bool) ResolverOption {
	return func(r *Resolver) {
		r.widenToParent = enabled
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		widenToParent: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve locates exactly one primary model file and, when the format
// separates structure from weights, exactly one companion file.
// Every failure is a misconfiguration; nothing here is retryable.
func (r *Resolver) Resolve(req Request) (Result, error) {
	info, err := os.Stat(req.ModelPath)
	if err != nil {
		return Result{}, &NotFoundError{Path: req.ModelPath, Detail: "model path does not exist"}
	}

	var (
		modelFile string
		rule      FormatRule
	)
	if info.IsDir() {
		modelFile, rule, err = r.searchDirectory(req)
	} else {
		modelFile, rule, err = resolveFile(req.ModelPath)
	}
	if err != nil {
		return Result{}, err
	}

	slog.Info("Found model", "path", modelFile, "format", rule.Format)

	result := Result{
		ModelFile:   modelFile,
		Format:      rule.Format,
		Precompiled: rule.Precompiled,
	}

	if rule.SelfContained() {
		return result, nil
	}

	resolveCompanion := rule.companion
	if resolveCompanion == nil {
		resolveCompanion = (*Resolver).deriveWeights
	}

	weightsFile, err := resolveCompanion(r, req, modelFile, rule)
	if err != nil {
		return Result{}, err
	}

	slog.Info("Found weights", "path", weightsFile)
	result.WeightsFile = weightsFile

	return result, nil
}

// resolveFile handles the file branch: the extension alone decides the
// format and any declared format is ignored.
func resolveFile(path string) (string, FormatRule, error) {
	rule, ok := ruleForModelSuffix(filepath.Ext(path))
	if !ok {
		return "", FormatRule{}, &UnsupportedFormatError{Path: path, Accepted: AcceptedModelSuffixes()}
	}

	return path, rule, nil
}

// searchDirectory tries each candidate format in priority order and
// stops at the first format with at least one candidate file.
func (r *Resolver) searchDirectory(req Request) (string, FormatRule, error) {
	formats := searchOrder
	if req.Format != "" {
		rule, ok := RuleFor(req.Format)
		if !ok {
			return "", FormatRule{}, &UnsupportedFormatError{Path: string(req.Format), Accepted: knownFormatTags()}
		}
		formats = []Format{rule.Format}
	}

	for _, format := range formats {
		rule := formatRules[format]

		matches, pattern, err := r.findCandidates(req.ModelPath, req.Name, rule.ModelSuffix)
		if err != nil {
			return "", FormatRule{}, err
		}
		if len(matches) == 0 {
			continue
		}
		if len(matches) > 1 {
			return "", FormatRule{}, &AmbiguousMatchError{Pattern: pattern, Matches: matches}
		}

		return matches[0], rule, nil
	}

	return "", FormatRule{}, &NotFoundError{Path: req.ModelPath, Detail: "no suitable model found in"}
}

// findCandidates searches one format's primary files within dir.
// Precedence: exact {name}{suffix}, then *{suffix} in dir, then
// *{suffix} in the parent when widening is enabled.
func (r *Resolver) findCandidates(dir, name, suffix string) ([]string, string, error) {
	if name != "" {
		exact := filepath.Join(dir, name+suffix)
		if info, err := os.Stat(exact); err == nil && !info.IsDir() {
			return []string{exact}, exact, nil
		}
	}

	pattern := filepath.Join(dir, "*"+suffix)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, "", fmt.Errorf("failed to glob %s: %w", pattern, err)
	}
	if len(matches) > 0 {
		return matches, pattern, nil
	}

	if r.widenToParent {
		parent := filepath.Dir(dir)
		pattern = filepath.Join(parent, "*"+suffix)
		matches, err = filepath.Glob(pattern)
		if err != nil {
			return nil, "", fmt.Errorf("failed to glob %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			return matches, pattern, nil
		}
	}

	return nil, "", nil
}

// deriveWeights resolves the companion weights file for pair formats.
// An explicit weights file is validated against the format's accepted
// suffix; otherwise a same-stem companion is preferred and a glob over
// the weights directory is the fallback.
func (r *Resolver) deriveWeights(req Request, modelFile string, rule FormatRule) (string, error) {
	weightsDir := filepath.Dir(modelFile)
	if req.WeightsPath != "" {
		info, err := os.Stat(req.WeightsPath)
		switch {
		case err == nil && !info.IsDir():
			if filepath.Ext(req.WeightsPath) != rule.WeightsSuffix {
				return "", &UnsupportedFormatError{Path: req.WeightsPath, Accepted: []string{rule.WeightsSuffix}}
			}
			return req.WeightsPath, nil
		case err == nil:
			weightsDir = req.WeightsPath
		default:
			return "", &NotFoundError{Path: req.WeightsPath, Detail: "weights path does not exist"}
		}
	}

	stem := strings.TrimSuffix(filepath.Base(modelFile), filepath.Ext(modelFile))
	exact := filepath.Join(weightsDir, stem+rule.WeightsSuffix)
	if info, err := os.Stat(exact); err == nil && !info.IsDir() {
		return exact, nil
	}

	pattern := filepath.Join(weightsDir, "*"+rule.WeightsSuffix)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("failed to glob %s: %w", pattern, err)
	}

	switch len(matches) {
	case 0:
		return "", &ConfigurationError{Reason: fmt.Sprintf("suitable weights not detected for %s in %s", modelFile, weightsDir)}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousMatchError{Pattern: pattern, Matches: matches}
	}
}

// paramsFromRequest is the Paddle companion hook: the params file comes
// from its own configuration field instead of a glob.
func paramsFromRequest(_ *Resolver, req Request, modelFile string, rule FormatRule) (string, error) {
	if req.ParamsPath == "" {
		return "", &ConfigurationError{Reason: fmt.Sprintf("params file is required for %s but not configured", modelFile)}
	}

	info, err := os.Stat(req.ParamsPath)
	if err != nil || info.IsDir() {
		return "", &NotFoundError{Path: req.ParamsPath, Detail: "params file does not exist"}
	}

	if filepath.Ext(req.ParamsPath) != rule.WeightsSuffix {
		return "", &UnsupportedFormatError{Path: req.ParamsPath, Accepted: []string{rule.WeightsSuffix}}
	}

	return req.ParamsPath, nil
}

// knownFormatTags lists the valid declared-format tags in priority order.
func knownFormatTags() []string {
	tags := make([]string, 0, len(searchOrder))
	for _, format := range searchOrder {
		tags = append(tags, string(format))
	}

	return tags
}
