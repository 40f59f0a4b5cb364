// Package main prints translation coverage of the web locale catalogs.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/louisbranch/retina.care/internal/platform/config"
	"github.com/louisbranch/retina.care/internal/platform/i18n/catalog"
)

type localeStatus struct {
	Locale     string
	BaseKeys   int
	Translated int
	Completion float64
	Namespaces []namespaceStatus
	Missing    []string
}

type namespaceStatus struct {
	Namespace  string
	BaseKeys   int
	Translated int
}

func main() {
	var out string
	var failUnder float64
	flag.StringVar(&out, "out", "", "markdown output path; stdout when empty")
	flag.Float64Var(&failUnder, "fail-under", 0, "exit non-zero when a locale is below this completion percent")
	flag.Parse()

	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		config.Exitf("load i18n catalogs: %v", err)
	}
	statuses := buildReport(bundle)

	w := io.Writer(os.Stdout)
	if out != "" {
		file, err := os.Create(out)
		if err != nil {
			config.Exitf("create %s: %v", out, err)
		}
		defer file.Close()
		w = file
	}
	if err := writeMarkdown(w, statuses); err != nil {
		config.Exitf("write report: %v", err)
	}
	if below := belowThreshold(statuses, failUnder); len(below) > 0 {
		config.Exitf("locales below %.1f%%: %s", failUnder, strings.Join(below, ", "))
	}
}

func buildReport(bundle *catalog.Bundle) []localeStatus {
	base := bundle.LocaleMessages(catalog.BaseLocale)
	namespaces := namespacesOf(base)

	statuses := make([]localeStatus, 0, len(bundle.Locales()))
	for _, locale := range bundle.Locales() {
		missing := bundle.Missing(locale)
		status := localeStatus{
			Locale:     locale,
			BaseKeys:   len(base),
			Translated: len(base) - len(missing),
			Missing:    missing,
		}
		status.Completion = percent(status.Translated, status.BaseKeys)
		for _, namespace := range namespaces {
			baseNS := bundle.NamespaceMessages(catalog.BaseLocale, namespace)
			localeNS := bundle.NamespaceMessages(locale, namespace)
			translated := 0
			for key := range baseNS {
				if _, ok := localeNS[key]; ok {
					translated++
				}
			}
			status.Namespaces = append(status.Namespaces, namespaceStatus{
				Namespace:  namespace,
				BaseKeys:   len(baseNS),
				Translated: translated,
			})
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func namespacesOf(messages map[string]string) []string {
	seen := map[string]struct{}{}
	for key := range messages {
		namespace, _, _ := strings.Cut(key, ".")
		seen[namespace] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for namespace := range seen {
		out = append(out, namespace)
	}
	sort.Strings(out)
	return out
}

func writeMarkdown(w io.Writer, statuses []localeStatus) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Translation status\n\nBase locale: `%s`.\n\n", catalog.BaseLocale)
	b.WriteString("| Locale | Namespace | Base keys | Translated |\n")
	b.WriteString("| --- | --- | ---: | ---: |\n")
	for _, status := range statuses {
		for _, ns := range status.Namespaces {
			fmt.Fprintf(&b, "| `%s` | `%s` | %d | %d |\n", status.Locale, ns.Namespace, ns.BaseKeys, ns.Translated)
		}
		fmt.Fprintf(&b, "| `%s` | total | %d | %d (%.1f%%) |\n", status.Locale, status.BaseKeys, status.Translated, status.Completion)
	}
	for _, status := range statuses {
		if len(status.Missing) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## Missing in `%s`\n\n", status.Locale)
		for _, key := range status.Missing {
			fmt.Fprintf(&b, "- `%s`\n", key)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func belowThreshold(statuses []localeStatus, threshold float64) []string {
	var out []string
	for _, status := range statuses {
		if status.Completion < threshold {
			out = append(out, status.Locale)
		}
	}
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
