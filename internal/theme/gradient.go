package theme

import "strings"

// buildGradients generates a 101-entry RGB array for every "<name>_start"
// key that also has a "_end" defined, optionally passing through "_mid".
// Grounded on original_source/src/btop_theme.h's generateGradients: two
// linear passes (start->mid, mid->end) of 50+51 steps when mid is present,
// else one pass of 100 steps start->end.
func buildGradients(colors map[string]RGB) map[string][101]RGB {
	out := make(map[string][101]RGB)
	for name, start := range colors {
		if !strings.HasSuffix(name, "_start") {
			continue
		}
		base := strings.TrimSuffix(name, "_start")
		end, hasEnd := colors[base+"_end"]
		if !hasEnd {
			continue
		}
		mid, hasMid := colors[base+"_mid"]

		var grad [101]RGB
		if hasMid {
			for i := 0; i <= 50; i++ {
				grad[i] = lerp(start, mid, i, 50)
			}
			for i := 50; i <= 100; i++ {
				grad[i] = lerp(mid, end, i-50, 50)
			}
		} else {
			for i := 0; i <= 100; i++ {
				grad[i] = lerp(start, end, i, 100)
			}
		}
		out[base] = grad
	}
	return out
}

func lerp(a, b RGB, step, rng int) RGB {
	if rng == 0 {
		return a
	}
	return RGB{
		R: a.R + step*(b.R-a.R)/rng,
		G: a.G + step*(b.G-a.G)/rng,
		B: a.B + step*(b.B-a.B)/rng,
	}
}

// At returns the gradient color for a clamped [0,100] percent, falling back
// to the flat "_start" color when no gradient was defined for name.
func (p *Palette) At(name string, percent int) RGB {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if g, ok := p.Gradients[name]; ok {
		return g[percent]
	}
	if c, ok := p.Colors[name+"_start"]; ok {
		return c
	}
	return p.Colors[name]
}
