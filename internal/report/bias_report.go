package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ovbias/internal/errors"
	"ovbias/internal/experiment"
	"ovbias/internal/profiling"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// BiasReport summarizes one experiment for humans.
type BiasReport struct {
	result    *experiment.Result
	estimates estimates
	summaries []variableSummary
}

// estimates are the coefficients the report prints, read once up front.
type estimates struct {
	fullX, fullV, naiveX, leakageX float64
}

type variableSummary struct {
	name    string
	summary profiling.Summary
}

// NewBiasReport builds a report from a completed experiment.
func NewBiasReport(result *experiment.Result) (*BiasReport, error) {
	if result == nil || result.Full == nil || result.Data == nil || result.Comparison == nil {
		return nil, errors.InvalidInput("report requires a complete experiment result")
	}

	r := &BiasReport{result: result}
	var ok [4]bool
	r.estimates.fullX, ok[0] = result.Full.Coefficient(0)
	r.estimates.fullV, ok[1] = result.Full.Coefficient(1)
	r.estimates.naiveX, ok[2] = result.Comparison.Naive.Coefficient(0)
	r.estimates.leakageX, ok[3] = result.Comparison.Leakage.Coefficient(0)
	if ok != [4]bool{true, true, true, true} {
		return nil, errors.InvalidInput("report requires coefficients for x and v from every regression")
	}

	if result.Data.Len() == 0 {
		return r, nil
	}

	for _, v := range []struct {
		name string
		data []float64
	}{
		{"x", result.Data.X},
		{"v", result.Data.V},
		{"y", result.Data.Y},
	} {
		s, err := profiling.Summarize(v.data)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to summarize %s", v.name)
		}
		r.summaries = append(r.summaries, variableSummary{name: v.name, summary: s})
	}
	return r, nil
}

// Markdown renders the report as a markdown document.
func (r *BiasReport) Markdown() string {
	res := r.result
	p := res.Params
	cmp := res.Comparison

	var b strings.Builder
	fmt.Fprintf(&b, "# Omitted-variable bias report\n\n")
	fmt.Fprintf(&b, "Run `%s` (params `%s`), n = %d, intercept = %t.\n\n", res.RunID, p.Fingerprint().Short(), p.N, p.Intercept)

	b.WriteString("## Parameters\n\n")
	b.WriteString("| beta | alpha_y | alpha_x | sigma_a | sigma_ex | sigma_ey |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %g | %g | %g | %g | %g | %g |\n\n", p.Beta, p.AlphaY, p.AlphaX, p.SigmaA, p.SigmaEx, p.SigmaEY)

	b.WriteString("## Regressions\n\n")
	b.WriteString("| model | regressor | true | estimate |\n")
	b.WriteString("|---|---|---|---|\n")
	est := r.estimates
	fmt.Fprintf(&b, "| y ~ x + v | x | %g | %.6f |\n", p.Beta, est.fullX)
	fmt.Fprintf(&b, "| y ~ x + v | v | %g | %.6f |\n", p.AlphaY, est.fullV)
	fmt.Fprintf(&b, "| y ~ x | x | %g | %.6f |\n", p.Beta, est.naiveX)
	fmt.Fprintf(&b, "| alpha_y*v + e_y ~ x | x | %.6f | %.6f |\n\n", cmp.AnalyticBias, est.leakageX)

	b.WriteString("## Bias\n\n")
	fmt.Fprintf(&b, "- simulated (naive x coefficient - beta): %.6f\n", cmp.SimulatedBias)
	fmt.Fprintf(&b, "- analytic: %.6f\n", cmp.AnalyticBias)
	fmt.Fprintf(&b, "- difference: %.6f\n\n", cmp.SimulatedBias-cmp.AnalyticBias)

	if len(r.summaries) > 0 {
		b.WriteString("## Samples\n\n")
		b.WriteString("| variable | mean | std dev | min | median | max | skewness | kurtosis |\n")
		b.WriteString("|---|---|---|---|---|---|---|---|\n")
		for _, s := range r.summaries {
			sm := s.summary
			fmt.Fprintf(&b, "| %s | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
				s.name, sm.Mean, sm.StdDev, sm.Min, sm.Median, sm.Max, sm.Skewness, sm.Kurtosis)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the markdown report to a standalone HTML page.
func (r *BiasReport) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Omitted-variable bias report",
	})
	return markdown.ToHTML([]byte(r.Markdown()), p, renderer)
}

// WriteFile writes HTML for .html/.htm paths and markdown otherwise.
func (r *BiasReport) WriteFile(path string) error {
	var content []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		content = r.HTML()
	default:
		content = []byte(r.Markdown())
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create report directory %s", dir)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write report %s", path)
	}
	return nil
}
