package theme

// Names is the closed set of palette keys vitals understands; entries in a
// theme file with any other name are ignored. Mirrors
// original_source/src/btop_theme.h's Default_theme table.
var Names = []string{
	"main_bg", "main_fg", "title", "hi_fg",
	"selected_bg", "selected_fg", "inactive_fg", "graph_text", "meter_bg",
	"proc_misc", "cpu_box", "mem_box", "net_box", "proc_box", "div_line",
	"temp_start", "temp_mid", "temp_end",
	"cpu_start", "cpu_mid", "cpu_end",
	"free_start", "free_mid", "free_end",
	"cached_start", "cached_mid", "cached_end",
	"available_start", "available_mid", "available_end",
	"used_start", "used_mid", "used_end",
	"download_start", "download_mid", "download_end",
	"upload_start", "upload_mid", "upload_end",
	"process_start", "process_mid", "process_end",
}

// DefaultHex is the built-in palette's hex/greyscale values, used when a
// theme file is absent or omits a key.
var DefaultHex = map[string]string{
	"main_bg": "#00", "main_fg": "#cc", "title": "#ee", "hi_fg": "#969696",
	"selected_bg": "#7e2626", "selected_fg": "#ee", "inactive_fg": "#40",
	"graph_text": "#60", "meter_bg": "#40", "proc_misc": "#0de756",
	"cpu_box": "#3d7b46", "mem_box": "#8a882e", "net_box": "#423ba5",
	"proc_box": "#923535", "div_line": "#30",
	"temp_start": "#4897d4", "temp_mid": "#5474e8", "temp_end": "#ff40b6",
	"cpu_start": "#50f095", "cpu_mid": "#f2e266", "cpu_end": "#fa1e1e",
	"free_start": "#223014", "free_mid": "#b5e685", "free_end": "#dcff85",
	"cached_start": "#0b1a29", "cached_mid": "#74e6fc", "cached_end": "#26c5ff",
	"available_start": "#292107", "available_mid": "#ffd77a", "available_end": "#ffb814",
	"used_start": "#3b1f1c", "used_mid": "#d9626d", "used_end": "#ff4769",
	"download_start": "#231a63", "download_mid": "#4f43a3", "download_end": "#b0a9de",
	"upload_start": "#510554", "upload_mid": "#7d4180", "upload_end": "#dcafde",
	"process_start": "#80d0a3", "process_mid": "#dcd179", "process_end": "#d45454",
}

// Palette holds resolved colors and gradients for a running session.
type Palette struct {
	Colors    map[string]RGB
	Gradients map[string][101]RGB
	Truecolor bool
}

// Build resolves a theme file's overrides (source, possibly nil/empty) over
// DefaultHex, honoring themeBackground (false forces main_bg to the terminal
// default, per the "theme_background=false" scenario).
func Build(source map[string]string, themeBackground, truecolor bool) (*Palette, error) {
	p := &Palette{Colors: make(map[string]RGB, len(Names)), Truecolor: truecolor}

	for _, name := range Names {
		raw, ok := source[name]
		if !ok {
			raw = DefaultHex[name]
		}
		c, err := ParseValue(raw)
		if err != nil {
			// Malformed entries fall back to the default palette value
			// (configuration error, logged by the caller; never fatal).
			c, _ = ParseValue(DefaultHex[name])
		}
		p.Colors[name] = c
	}

	if !themeBackground {
		p.Colors["main_bg"] = Default
	}

	p.Gradients = buildGradients(p.Colors)
	return p, nil
}

// Escape returns the CSI escape sequence for a named color. bg selects a
// background sequence (depth "48") instead of foreground ("38").
func (p *Palette) Escape(name string, bg bool) string {
	c, ok := p.Colors[name]
	if !ok {
		c = Default
	}
	return EscapeSeq(c, !bg, p.Truecolor)
}
