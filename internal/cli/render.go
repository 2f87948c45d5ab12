package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/textblock/pkg/document"
	"github.com/matzehuels/textblock/pkg/errors"
	"github.com/matzehuels/textblock/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path; empty writes to stdout
	format  string // output format: text, json, dot, svg
	noCache bool   // bypass the render cache entirely
	refresh bool   // re-render and overwrite the cached result
}

// renderCommand creates the render command for composing layout documents.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a TOML or JSON layout document",
		Long: `Render composes the layout document in FILE and writes the result.

The document syntax follows the file extension (.toml or .json). Formats:
  text   the composed block (default)
  json   the composed block as {"width", "height", "lines"}
  dot    the composition tree as Graphviz DOT
  svg    the composition tree as SVG`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = c.Config.Format
			}
			if err := errors.ValidateFormat(opts.format, pipeline.Formats...); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text (default), json, dot, svg")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and re-render")

	return cmd
}

// runRender reads input, renders it through the pipeline and writes the
// output to opts.output or the CLI's output writer.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	syntax, src, err := readSource(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if opts.output != "" {
		spin = newSpinner(ctx, os.Stderr, "Rendering "+filepath.Base(input))
		spin.Start()
	}

	prog := newProgress(c.Logger)
	res, err := runner.Render(ctx, pipeline.Request{
		Source:  src,
		Syntax:  syntax,
		Format:  opts.format,
		Refresh: opts.refresh,
	})
	spin.Stop()
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := c.out.Write(res.Output)
		return err
	}

	if err := os.WriteFile(opts.output, res.Output, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}
	prog.done("Rendered " + filepath.Base(input))
	printFile(opts.output)
	printStats(res)
	if opts.format != pipeline.FormatText {
		printNextStep("Preview the layout", appName+" view "+input)
	}
	return nil
}

// readSource reads a layout document and determines its syntax from the
// file extension.
func readSource(path string) (syntax string, src []byte, err error) {
	if err := errors.ValidatePath(path); err != nil {
		return "", nil, err
	}
	if syntax, err = document.SyntaxOf(path); err != nil {
		return "", nil, err
	}
	src, err = os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
	}
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	if len(strings.TrimSpace(string(src))) == 0 {
		return "", nil, errors.New(errors.ErrCodeInvalidInput, "empty document: %s", path)
	}
	return syntax, src, nil
}
