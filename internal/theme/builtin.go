package theme

// DefaultName is the theme used when none is configured.
const DefaultName = "Nightfox"

var builtinOrder = []string{"Nightfox", "Kanagawa", "Slate"}

func builtins() map[string]Theme {
	return map[string]Theme{
		"Nightfox": nightfoxTheme(),
		"Kanagawa": kanagawaTheme(),
		"Slate":    slateTheme(),
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1
		Border:        "#39506d", // bg4

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan

		Levels: map[string]string{
			"TRACE":    "#71839b", // fg3
			"DEBUG":    "#63cdcf", // cyan
			"INFO":     "#cdcecf", // fg1
			"PROGRESS": "#719cd6", // blue
			"WARNING":  "#dbc074", // yellow
			"ERROR":    "#c94f6d", // red
			"FATAL":    "#d16983", // red bright
			"COMMENT":  "#81b29a", // green
			"THINKING": "#86abdc", // blue bright
			"DATA":     "#8ebaa4", // green bright
			"AUDIT":    "#d67ad2", // pink
			"SYSTEM":   "#9d79d6", // magenta
		},
		States: map[string]string{
			"ADDED":    "#1e3a2f",
			"MODIFIED": "#3a3220",
			"DELETED":  "#2a1d24",
		},
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		SurfaceAlt: "#2A2A37", // sumiInk4

		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite
		Border:        "#54546D", // sumiInk6

		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#7E9CD8", // crystalBlue
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
		Info:    "#7FB4CA", // springBlue

		Levels: map[string]string{
			"TRACE":    "#727169", // fujiGray
			"DEBUG":    "#7FB4CA", // springBlue
			"INFO":     "#DCD7BA", // fujiWhite
			"PROGRESS": "#7E9CD8", // crystalBlue
			"WARNING":  "#E6C384", // carpYellow
			"ERROR":    "#E46876", // waveRed
			"FATAL":    "#FF5D62", // peachRed
			"COMMENT":  "#98BB6C", // springGreen
			"THINKING": "#7FB4CA", // springBlue
			"DATA":     "#7AA89F", // waveAqua2
			"AUDIT":    "#D27E99", // sakuraPink
			"SYSTEM":   "#957FB8", // oniViolet
		},
		States: map[string]string{
			"ADDED":    "#2B3328", // winterGreen
			"MODIFIED": "#49443C", // winterYellow
			"DELETED":  "#43242B", // winterRed
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50
		Border:        "#334155", // slate-700

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		Levels: map[string]string{
			"TRACE":    "#64748b", // slate-500
			"DEBUG":    "#06b6d4", // cyan-500
			"INFO":     "#f1f5f9", // slate-100
			"PROGRESS": "#38bdf8", // sky-400
			"WARNING":  "#f59e0b", // amber-500
			"ERROR":    "#ef4444", // red-500
			"FATAL":    "#dc2626", // red-600
			"COMMENT":  "#22c55e", // green-500
			"THINKING": "#38bdf8", // sky-400
			"DATA":     "#86efac", // green-300
			"AUDIT":    "#fda4af", // rose-300
			"SYSTEM":   "#a78bfa", // violet-400
		},
		States: map[string]string{
			"ADDED":    "#052e16", // green-950
			"MODIFIED": "#451a03", // amber-950
			"DELETED":  "#450a0a", // red-950
		},
	}
}
