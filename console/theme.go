package console

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"pkt.systems/sndbq/schema"
)

type rgb struct {
	r int
	g int
	b int
}

func (c rgb) color() lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b))
}

type tuiTheme struct {
	Name      schema.ThemeName
	BannerFG  rgb
	BorderFG  rgb
	HeaderFG  rgb
	ActiveFG  rgb
	DeletedFG rgb
	UpdatedFG rgb
	OKFG      rgb
	ErrorFG   rgb
	HintFG    rgb
	PromptFG  rgb
}

var tuiThemes = map[schema.ThemeName]tuiTheme{
	"classic": {
		Name:      "classic",
		BannerFG:  rgb{r: 97, g: 175, b: 239},
		BorderFG:  rgb{r: 128, g: 128, b: 128},
		HeaderFG:  rgb{r: 255, g: 255, b: 255},
		ActiveFG:  rgb{r: 97, g: 175, b: 239},
		DeletedFG: rgb{r: 224, g: 108, b: 117},
		UpdatedFG: rgb{r: 152, g: 195, b: 121},
		OKFG:      rgb{r: 152, g: 195, b: 121},
		ErrorFG:   rgb{r: 224, g: 108, b: 117},
		HintFG:    rgb{r: 92, g: 99, b: 112},
		PromptFG:  rgb{r: 255, g: 255, b: 255},
	},
	"gruvbox": {
		Name:      "gruvbox",
		BannerFG:  rgb{r: 131, g: 165, b: 152},
		BorderFG:  rgb{r: 146, g: 131, b: 116},
		HeaderFG:  rgb{r: 250, g: 189, b: 47},
		ActiveFG:  rgb{r: 131, g: 165, b: 152},
		DeletedFG: rgb{r: 251, g: 73, b: 52},
		UpdatedFG: rgb{r: 184, g: 187, b: 38},
		OKFG:      rgb{r: 184, g: 187, b: 38},
		ErrorFG:   rgb{r: 251, g: 73, b: 52},
		HintFG:    rgb{r: 124, g: 111, b: 100},
		PromptFG:  rgb{r: 235, g: 219, b: 178},
	},
	"tokyo-midnight": {
		Name:      "tokyo-midnight",
		BannerFG:  rgb{r: 122, g: 162, b: 247},
		BorderFG:  rgb{r: 59, g: 66, b: 97},
		HeaderFG:  rgb{r: 192, g: 202, b: 245},
		ActiveFG:  rgb{r: 125, g: 207, b: 255},
		DeletedFG: rgb{r: 247, g: 118, b: 142},
		UpdatedFG: rgb{r: 158, g: 206, b: 106},
		OKFG:      rgb{r: 158, g: 206, b: 106},
		ErrorFG:   rgb{r: 247, g: 118, b: 142},
		HintFG:    rgb{r: 86, g: 95, b: 137},
		PromptFG:  rgb{r: 255, g: 255, b: 255},
	},
}

func themeForName(name schema.ThemeName) tuiTheme {
	if name == "" {
		name = schema.DefaultTheme
	}
	if theme, ok := tuiThemes[name]; ok {
		return theme
	}
	return tuiThemes[schema.DefaultTheme]
}

// styles are the lipgloss styles derived from a theme.
type styles struct {
	banner lipgloss.Style
	panel  lipgloss.Style
	border lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	status map[schema.StatusKind]lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	hint   lipgloss.Style
	label  lipgloss.Style
}

func newStyles(theme tuiTheme) styles {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return styles{
		banner: lipgloss.NewStyle().Foreground(theme.BannerFG.color()).Bold(true),
		panel: lipgloss.NewStyle().
			Foreground(theme.BannerFG.color()).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderFG.color()).
			Padding(0, 1),
		border: lipgloss.NewStyle().Foreground(theme.BorderFG.color()),
		header: cell.Foreground(theme.HeaderFG.color()).Bold(true),
		cell:   cell,
		status: map[schema.StatusKind]lipgloss.Style{
			schema.StatusActive:  cell.Foreground(theme.ActiveFG.color()),
			schema.StatusDeleted: cell.Foreground(theme.DeletedFG.color()),
			schema.StatusUpdated: cell.Foreground(theme.UpdatedFG.color()),
		},
		ok:    lipgloss.NewStyle().Foreground(theme.OKFG.color()),
		err:   lipgloss.NewStyle().Foreground(theme.ErrorFG.color()),
		hint:  lipgloss.NewStyle().Foreground(theme.HintFG.color()).Faint(true),
		label: lipgloss.NewStyle().Foreground(theme.PromptFG.color()).Bold(true),
	}
}
