package render

// Theme is a named color palette for the SVG renderer. Colors are any
// valid SVG paint value.
type Theme struct {
	Name       string
	Canvas     string
	NodeFill   string
	NodeStroke string
	NodeText   string
	EdgeStroke string
	LabelFill  string // background pill behind edge labels
	LabelText  string
}

var themes = map[string]Theme{
	"light": {
		Name:       "light",
		Canvas:     "#ffffff",
		NodeFill:   "#f8fafc",
		NodeStroke: "#334155",
		NodeText:   "#0f172a",
		EdgeStroke: "#64748b",
		LabelFill:  "#ffffff",
		LabelText:  "#334155",
	},
	"dark": {
		Name:       "dark",
		Canvas:     "#0f172a",
		NodeFill:   "#1e293b",
		NodeStroke: "#94a3b8",
		NodeText:   "#e2e8f0",
		EdgeStroke: "#94a3b8",
		LabelFill:  "#1e293b",
		LabelText:  "#cbd5e1",
	},
	"mono": {
		Name:       "mono",
		Canvas:     "#ffffff",
		NodeFill:   "#ffffff",
		NodeStroke: "#000000",
		NodeText:   "#000000",
		EdgeStroke: "#000000",
		LabelFill:  "#ffffff",
		LabelText:  "#000000",
	},
}

// ThemeByName returns the named theme, falling back to light for unknown
// names so a stale theme name in a share link never breaks rendering.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["light"]
}

// ThemeNames lists the known themes in a fixed order.
func ThemeNames() []string {
	return []string{"light", "dark", "mono"}
}
