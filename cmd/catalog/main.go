// Command catalog loads a seed catalog and prints the relationship report
// for every author and magazine. It can also issue write tokens for the API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	hauth "magazine-catalog/internal/handler/http/auth"
	"magazine-catalog/internal/infra/adapter/persistence/memory"
	"magazine-catalog/internal/infra/seed"
	"magazine-catalog/internal/observability/logging"
	"magazine-catalog/internal/usecase/catalog"
	envcfg "magazine-catalog/pkg/config"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "catalog:", err)
		os.Exit(1)
	}
}

// AuthorReport lists what an author has written for.
type AuthorReport struct {
	Name       string   `json:"name"`
	Articles   int      `json:"articles"`
	Magazines  []string `json:"magazines"`
	TopicAreas []string `json:"topic_areas"`
}

// MagazineReport lists who writes for a magazine.
type MagazineReport struct {
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	Contributors        []string `json:"contributors"`
	ArticleTitles       []string `json:"article_titles"`
	ContributingAuthors []string `json:"contributing_authors"`
}

// Report is the full catalog report.
type Report struct {
	Authors   []AuthorReport   `json:"authors"`
	Magazines []MagazineReport `json:"magazines"`
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	seedFile := fs.String("seed", envcfg.GetEnvString("SEED_FILE", "examples/catalog.yaml"), "seed catalog YAML file")
	format := fs.String("format", "text", "output format: text or json")
	issueToken := fs.Bool("issue-token", false, "print a signed API token instead of the report (secret from JWT_SECRET)")
	subject := fs.String("subject", "cli", "token subject")
	role := fs.String("role", hauth.RoleWriter, "token role: admin, writer or viewer")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *issueToken {
		secret := envcfg.GetEnvString("JWT_SECRET", "")
		if secret == "" {
			return errors.New("JWT_SECRET is not set")
		}
		token, err := hauth.IssueToken(secret, *subject, *role, *ttl)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, token)
		return err
	}

	if *format != "text" && *format != "json" {
		return fmt.Errorf("unknown format %q", *format)
	}

	logger := logging.New(logging.Options{Format: "text", Level: "warn", Output: stderr})
	svc := catalog.NewService(memory.NewAuthorRepo(), memory.NewMagazineRepo(), memory.NewArticleRepo(), logger)

	doc, err := seed.Load(*seedFile)
	if err != nil {
		return err
	}
	if _, err := seed.Apply(ctx, svc, doc); err != nil {
		return err
	}

	report, err := buildReport(ctx, svc)
	if err != nil {
		return err
	}

	if *format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return writeText(stdout, report)
}

func buildReport(ctx context.Context, svc *catalog.Service) (*Report, error) {
	authors, err := svc.ListAuthors(ctx)
	if err != nil {
		return nil, err
	}
	magazines, err := svc.ListMagazines(ctx, "")
	if err != nil {
		return nil, err
	}

	report := &Report{
		Authors:   make([]AuthorReport, 0, len(authors)),
		Magazines: make([]MagazineReport, 0, len(magazines)),
	}
	for _, a := range authors {
		report.Authors = append(report.Authors, AuthorReport{
			Name:       a.Name(),
			Articles:   len(a.Articles()),
			Magazines:  names(a.Magazines()),
			TopicAreas: a.TopicAreas(),
		})
	}
	for _, m := range magazines {
		report.Magazines = append(report.Magazines, MagazineReport{
			Name:                m.Name(),
			Category:            m.Category(),
			Contributors:        names(m.Contributors()),
			ArticleTitles:       m.ArticleTitles(),
			ContributingAuthors: names(m.ContributingAuthors()),
		})
	}
	return report, nil
}

type named interface{ Name() string }

func names[T named](items []T) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name()
	}
	return out
}

func writeText(w io.Writer, r *Report) error {
	var b strings.Builder
	b.WriteString("Authors\n")
	for _, a := range r.Authors {
		fmt.Fprintf(&b, "  %s (%d articles)\n", a.Name, a.Articles)
		fmt.Fprintf(&b, "    magazines:   %s\n", joinOrNone(a.Magazines))
		fmt.Fprintf(&b, "    topic areas: %s\n", joinOrNone(a.TopicAreas))
	}
	b.WriteString("Magazines\n")
	for _, m := range r.Magazines {
		fmt.Fprintf(&b, "  %s [%s]\n", m.Name, m.Category)
		fmt.Fprintf(&b, "    contributors:         %s\n", joinOrNone(m.Contributors))
		fmt.Fprintf(&b, "    article titles:       %s\n", joinOrNone(m.ArticleTitles))
		fmt.Fprintf(&b, "    contributing authors: %s\n", joinOrNone(m.ContributingAuthors))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
