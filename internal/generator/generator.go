// Package generator renders plist templates into the output directory.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/makeconfig/internal/serials"
	"github.com/hay-kot/makeconfig/internal/validate"
	"github.com/hay-kot/makeconfig/pkgs/printer"
	"github.com/rs/zerolog/log"
)

// TemplateExt is the suffix of files picked up from the input directory.
const TemplateExt = ".plist"

// Result is the outcome of rendering a single template.
type Result struct {
	Template string
	Output   string
	Bytes    int
	Valid    bool
	Err      error
}

type Generator struct {
	inputDir  string
	outputDir string
	serials   serials.Serials
	validator validate.Validator
	printer   *printer.Printer
}

func New(inputDir, outputDir string, s serials.Serials, v validate.Validator, p *printer.Printer) *Generator {
	return &Generator{
		inputDir:  inputDir,
		outputDir: outputDir,
		serials:   s,
		validator: v,
		printer:   p,
	}
}

// Templates returns the template files in the input directory in listing
// order. Subdirectories and hidden files are skipped.
func (g *Generator) Templates() ([]string, error) {
	entries, err := os.ReadDir(g.inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates in %s: %w", g.inputDir, err)
	}

	var templates []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, TemplateExt) {
			continue
		}

		path := filepath.Join(g.inputDir, name)

		// entry.IsDir does not follow symlinks
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			log.Debug().Str("path", path).Msg("skipping non-file template entry")
			continue
		}

		templates = append(templates, path)
	}

	return templates, nil
}

// Generate renders every template in order. A template that fails to render or
// validate does not stop the run; its result records the failure.
func (g *Generator) Generate(ctx context.Context) ([]Result, error) {
	templates, err := g.Templates()
	if err != nil {
		return nil, err
	}

	if len(templates) == 0 {
		log.Debug().Str("dir", g.inputDir).Msg("no templates found")
		return nil, nil
	}

	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = filepath.Base(t)
	}
	g.printer.Processing(names)

	results := make([]Result, 0, len(templates))
	for _, tmpl := range templates {
		results = append(results, g.render(ctx, tmpl))
	}

	return results, nil
}

func (g *Generator) render(ctx context.Context, tmpl string) Result {
	res := Result{
		Template: tmpl,
		Output:   filepath.Join(g.outputDir, filepath.Base(tmpl)),
	}

	content, err := os.ReadFile(tmpl)
	if err != nil {
		res.Err = &FileError{File: tmpl, Op: "read template", Err: err}
		log.Error().Err(err).Str("template", tmpl).Msg("failed to read template")
		return res
	}

	out := Substitute(string(content), g.serials)

	// closed before the validator sees it
	if err := os.WriteFile(res.Output, []byte(out), 0o644); err != nil {
		res.Err = &FileError{File: res.Output, Op: "write output", Err: err}
		log.Error().Err(err).Str("output", res.Output).Msg("failed to write output file")
		return res
	}
	res.Bytes = len(out)

	res.Valid = g.validator.Validate(ctx, res.Output)

	log.Debug().
		Str("template", tmpl).
		Str("output", res.Output).
		Int("bytes", res.Bytes).
		Bool("valid", res.Valid).
		Msg("rendered template")

	if res.Valid {
		g.printer.FileOK(res.Output, res.Bytes)
	}

	return res
}

// AllValid reports whether every result validated. An empty run is valid.
func AllValid(results []Result) bool {
	ok := true
	for _, r := range results {
		ok = ok && r.Valid
	}
	return ok
}
