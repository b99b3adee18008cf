package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/deslibris/accessonix/cli/internal/config"
	"github.com/deslibris/accessonix/cli/internal/form"
	"github.com/deslibris/accessonix/cli/internal/logging"
	"github.com/deslibris/accessonix/cli/internal/submit"
)

// ErrSubmissionFailed is returned after the failure was already reported on
// stderr, so callers should not print it again.
var ErrSubmissionFailed = errors.New("submission failed")

// submitFlags binds a command-line flag to a form field.
var submitFlags = []struct {
	flag  string
	field string
	usage string
}{
	{"epub", form.FieldEPUBFile, "path to the EPUB file"},
	{"onix", form.FieldONIXFile, "path to the ONIX XML file"},
	{"isbn", form.FieldISBN, "13-digit EPUB ISBN"},
	{"sender", form.FieldSenderName, "sender name (enhanced)"},
	{"contact", form.FieldContactName, "contact name (enhanced)"},
	{"email", form.FieldEmail, "contact email (enhanced)"},
	{"composition", form.FieldProductComposition, "product composition code (enhanced)"},
	{"product-form", form.FieldProductForm, "product form code, EA to ED (enhanced)"},
	{"language", form.FieldLanguageCode, "ISO 639-2/B language code (enhanced)"},
	{"price-cad", form.FieldPriceCAD, "price in CAD (enhanced)"},
	{"price-gbp", form.FieldPriceGBP, "price in GBP (enhanced)"},
	{"price-usd", form.FieldPriceUSD, "price in USD (enhanced)"},
}

type submitOptions struct {
	values    map[string]*string
	role      string
	normalize bool
	outDir    string
}

// buildState fills a form the way the interactive UI would.
func (o submitOptions) buildState() *form.State {
	state := form.NewState(form.ParseRole(o.role))
	for _, f := range submitFlags {
		raw := *o.values[f.flag]
		if o.normalize {
			raw = form.Format(f.field, raw)
		}
		state.Set(f.field, raw)
	}
	return state
}

// runSubmit sends one submission and prints the saved path.
func runSubmit(opts submitOptions, out, errOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: errOut})
	if err != nil {
		return err
	}

	dir := cfg.DownloadDir
	if opts.outDir != "" {
		dir = opts.outDir
	}
	controller := submit.New(cfg.NewClient(), submit.DirSaver{Dir: dir},
		submit.WithLogger(logger),
		submit.WithNotifier(submit.WriterNotifier{W: errOut}),
	)

	outcome := controller.Submit(opts.buildState())
	if !outcome.OK() {
		return ErrSubmissionFailed
	}
	fmt.Fprintln(out, outcome.SavedPath)
	return nil
}

// SubmitCmd returns the `accessonix submit` command.
func SubmitCmd() *cobra.Command {
	opts := submitOptions{values: make(map[string]*string, len(submitFlags))}
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send an EPUB and ONIX record for processing and save the result",
		Example: "  accessonix submit --epub book.epub --onix record.xml --isbn 9781234567897\n" +
			"  accessonix submit --role enhanced --epub book.epub --onix record.xml --isbn 9781234567897 \\\n" +
			"    --sender desLibris --contact 'Jo Smith' --email jo@example.ca \\\n" +
			"    --composition 00 --product-form EA --language eng --price-cad 12.99",
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runSubmit(opts, c.OutOrStdout(), c.ErrOrStderr())
		},
	}
	flags := cmd.Flags()
	for _, f := range submitFlags {
		opts.values[f.flag] = flags.String(f.flag, "", f.usage)
	}
	flags.StringVar(&opts.role, "role", string(form.RoleBasic), "basic or enhanced")
	flags.BoolVar(&opts.normalize, "normalize", false, "clean ISBN and price values as the form would while typing")
	flags.StringVarP(&opts.outDir, "out", "o", "", "directory for the generated file (default from config)")
	return cmd
}
