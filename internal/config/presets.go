package config

import "sort"

// Presets capture per-platform differences. The handheld target has little
// memory to spare for history, the emulator has plenty.
var Presets = map[string]*Config{
	"emulator": {
		Life: LifeConfig{
			Topology: "toroidal", Prepopulate: true, Density: 0.25, Rule: DefaultRule,
			StepPeriodMs: 200, RewindDepth: 1024,
		},
		LoopDelayMs: 10, Theme: "retro", DataDir: DefaultDataDir,
	},
	"handheld": {
		Life: LifeConfig{
			Topology: "toroidal", Prepopulate: true, Density: 0.25, Rule: DefaultRule,
			StepPeriodMs: 250, RewindDepth: 32, Rows: 20, Cols: 30,
		},
		LoopDelayMs: 10, Theme: "mono", DataDir: DefaultDataDir,
	},
	"demo": {
		Life: LifeConfig{
			Topology: "bounded", Pattern: "gosper-gun", Rule: DefaultRule,
			StepPeriodMs: 100, RewindDepth: 256, Seed: 1,
		},
		LoopDelayMs: 10, Theme: "neon", DataDir: DefaultDataDir,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
