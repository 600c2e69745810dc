package chart

import (
	"fmt"
	"strings"
)

// Theme is a named visual preset applied to the whole chart.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeLight   Theme = "light"
	ThemeDark    Theme = "dark"
	ThemeGGPlot  Theme = "ggplot-like"
	ThemeSeaborn Theme = "seaborn-like"
	ThemeMinimal Theme = "minimal"
	ThemeNone    Theme = "none"
)

var themes = []Theme{ThemeDefault, ThemeLight, ThemeDark, ThemeGGPlot, ThemeSeaborn, ThemeMinimal, ThemeNone}

var templates = map[Theme]string{
	ThemeDefault: "plotly",
	ThemeLight:   "plotly_white",
	ThemeDark:    "plotly_dark",
	ThemeGGPlot:  "ggplot2",
	ThemeSeaborn: "seaborn",
	ThemeMinimal: "simple_white",
	ThemeNone:    "none",
}

func Themes() []Theme { return append([]Theme(nil), themes...) }

// Template is the plotting library's name for the theme.
func (t Theme) Template() string { return templates[t] }

// ParseTheme accepts a theme name or its template name. Empty is ThemeDefault.
func ParseTheme(s string) (Theme, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ThemeDefault, nil
	}
	for _, t := range themes {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Template()) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: theme %q", ErrInvalidOption, s)
}

// Marginal is a small distribution plot attached to an axis.
type Marginal string

const (
	MarginalRug       Marginal = "rug"
	MarginalBox       Marginal = "box"
	MarginalViolin    Marginal = "violin"
	MarginalHistogram Marginal = "histogram"
)

var (
	scatterMarginals   = []string{string(MarginalBox), string(MarginalViolin)}
	histogramMarginals = []string{string(MarginalRug), string(MarginalBox), string(MarginalViolin)}
	heatmapMarginals   = []string{string(MarginalRug), string(MarginalBox), string(MarginalViolin), string(MarginalHistogram)}

	trendlines     = []string{"ols"}
	barModes       = []string{"group", "relative", "overlay"}
	orientations   = []string{"h", "v"}
	labelPositions = []string{"top left", "top right", "bottom left", "bottom right"}
)

// plasmaR is the reversed Plasma sequential scale used by the polar charts.
var plasmaR = []string{
	"#f0f921", "#fdca26", "#fb9f3a", "#ed7953", "#d8576b",
	"#bd3786", "#9c179e", "#7201a8", "#46039f", "#0d0887",
}

// oneOf returns v if it is empty or in allowed.
func oneOf(role Role, v string, allowed []string) (string, error) {
	if v == "" {
		return "", nil
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q, want one of %s", ErrInvalidOption, role, v, strings.Join(allowed, ", "))
}

func marginal(role Role, v string, allowed []string) (Marginal, error) {
	m, err := oneOf(role, v, allowed)
	return Marginal(m), err
}
