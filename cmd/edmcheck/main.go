package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/reoring/goedm"
	"github.com/reoring/goedm/csdl"
	"github.com/reoring/goedm/i18n"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "validate":
		os.Exit(validateCmd(os.Args[2:]))
	case "resolve":
		os.Exit(resolveCmd(os.Args[2:]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "edmcheck CLI\n\nUsage:\n  edmcheck validate -f schema.json[,more.yaml] [-version 4.01] [-lang ja] [-warnings] [-fail-fast] [-dup warn] [-strict] [-v]\n  edmcheck resolve -f schema.json -type 'Collection(NS.T)' [-read] [-version 4.0] [-v]\n\nNotes:\n  - validate exits 1 when the model has errors.\n  - resolve exits 1 when the name does not resolve.")
}

// loadFlags are shared by every subcommand.
type loadFlags struct {
	files   string
	version string
	dup     string
	strict  bool
	verbose bool
}

func (lf *loadFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&lf.files, "f", "", "comma-separated schema files (.json, .yaml, .yml)")
	fs.StringVar(&lf.version, "version", "", "protocol version (4.0 or 4.01); defaults to the document version")
	fs.StringVar(&lf.dup, "dup", "warn", "duplicate JSON keys: ignore, warn or error")
	fs.BoolVar(&lf.strict, "strict", false, "reject unknown fields")
	fs.BoolVar(&lf.verbose, "v", false, "enable verbose logs")
}

func (lf *loadFlags) logf(format string, a ...any) {
	if lf.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", a...)
	}
}

func (lf *loadFlags) build() *goedm.Model {
	files := splitCSV(lf.files)
	if len(files) == 0 {
		fatalf("no schema files given (-f)")
	}
	var bopt goedm.BuildOpt
	if lf.version != "" {
		v, err := goedm.ParseVersion(lf.version)
		if err != nil {
			fatalf("%v", err)
		}
		bopt.Version = v
	}
	lopt := csdl.LoadOpt{Strict: lf.strict}
	switch lf.dup {
	case "ignore":
		lopt.Duplicates = csdl.DuplicateIgnore
	case "warn":
		lopt.Duplicates = csdl.DuplicateWarn
	case "error":
		lopt.Duplicates = csdl.DuplicateError
	default:
		fatalf("unknown -dup value %q", lf.dup)
	}

	b := goedm.NewBuilder(goedm.NewCoreModel(), bopt)
	for _, f := range files {
		doc, err := csdl.Load(f, lopt)
		if err != nil {
			fatalf("load %s: %v", f, err)
		}
		lf.logf("loaded %s: version=%q schemas=%d warnings=%d", f, doc.Version, len(doc.Schemas), len(doc.Warnings))
		if err := b.AddDocument(doc); err != nil {
			fatalf("build %s: %v", f, err)
		}
	}
	m, err := b.Build()
	if err != nil {
		fatalf("build: %v", err)
	}
	lf.logf("model: version=%s namespaces=%s elements=%d", m.Version(), strings.Join(m.Namespaces(), ","), len(m.SchemaElements()))
	return m
}

func validateCmd(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var lf loadFlags
	var lang string
	var warnings, failFast bool
	lf.register(fs)
	fs.StringVar(&lang, "lang", "en", "message language (en or ja)")
	fs.BoolVar(&warnings, "warnings", false, "report warnings as well as errors")
	fs.BoolVar(&failFast, "fail-fast", false, "stop at the first error")
	_ = fs.Parse(args)
	if lf.files == "" {
		fs.Usage()
		return 2
	}
	i18n.SetLanguage(lang)

	m := lf.build()
	errs := goedm.Validate(m, goedm.ValidateOpt{FailFast: failFast, IncludeWarnings: warnings})
	for _, e := range errs {
		fmt.Println(e.String())
	}
	lf.logf("validate: %d entries, codes=%s", len(errs), strings.Join(errs.Codes(), ","))
	if errs.HasErrors() {
		return 1
	}
	return 0
}

func resolveCmd(args []string) int {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	var lf loadFlags
	var typeName string
	var read bool
	lf.register(fs)
	fs.StringVar(&typeName, "type", "", "type name to resolve, e.g. NS.T or Collection(NS.T)")
	fs.BoolVar(&read, "read", false, "resolve at the model version instead of the newest one")
	_ = fs.Parse(args)
	if lf.files == "" || typeName == "" {
		fs.Usage()
		return 2
	}

	m := lf.build()
	var t goedm.Type
	var kind goedm.TypeKind
	if read {
		var err error
		t, kind, err = goedm.ResolveTypeNameForRead(m, nil, typeName, nil, m.Version())
		if err != nil {
			fatalf("resolve: %v", err)
		}
	} else {
		t, kind = goedm.ResolveTypeNameForWrite(m, typeName)
	}
	lf.logf("resolve: name=%s read=%t version=%s", typeName, read, m.Version())
	if t == nil {
		fmt.Printf("unresolved\t%s\n", kind)
		return 1
	}
	fmt.Printf("%s\t%s\n", goedm.TypeName(t), kind)
	return 0
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
