package importer

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/CollageCut/internal/model"
)

// tomlLayout is the document shape of a TOML layout file:
//
//	[canvas]
//	width = 1200
//	height = 800
//
//	[[cell]]
//	label = "Hero"
//	x = 0
//	y = 0
//	width = 600
//	height = 800
//	color = "#ff5722"
//	image = "hero.jpg"
//
// The canvas table is optional; without it the cells' bounding box is used.
type tomlLayout struct {
	Canvas struct {
		Width  float64 `toml:"width"`
		Height float64 `toml:"height"`
	} `toml:"canvas"`
	Cells []tomlCell `toml:"cell"`
}

type tomlCell struct {
	Label  string  `toml:"label"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Color  string  `toml:"color"`
	Image  string  `toml:"image"`
}

// ImportTOML imports a layout from a TOML file of [[cell]] tables.
func ImportTOML(path string) ImportResult {
	result := ImportResult{}

	var doc tomlLayout
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read TOML file: %v", err))
		return result
	}
	return importTOML(doc, md, result)
}

// ImportTOMLString imports a layout from TOML text.
func ImportTOMLString(data string) ImportResult {
	result := ImportResult{}

	var doc tomlLayout
	md, err := toml.Decode(data, &doc)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read TOML: %v", err))
		return result
	}
	return importTOML(doc, md, result)
}

func importTOML(doc tomlLayout, md toml.MetaData, result ImportResult) ImportResult {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored unknown keys: %s", strings.Join(keys, ", ")))
	}

	for i, tc := range doc.Cells {
		rowLabel := fmt.Sprintf("Cell %d", i+1)
		if tc.Width <= 0 || tc.Height <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Width and height must be positive", rowLabel))
			continue
		}
		if tc.X < 0 || tc.Y < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: x and y must not be negative", rowLabel))
			continue
		}

		payload := model.Payload{Color: model.Palette[len(result.Cells)%len(model.Palette)], Image: tc.Image}
		if tc.Color != "" {
			if c, err := model.ParseColor(tc.Color); err == nil {
				payload.Color = c
			} else {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s: Unknown color '%s', using palette colour", rowLabel, tc.Color))
			}
		}

		cell := model.NewCell(payload, model.Rect{X: tc.X, Y: tc.Y, Width: tc.Width, Height: tc.Height})
		cell.Label = tc.Label
		result.Cells = append(result.Cells, cell)
	}

	return finish(result, model.Rect{Width: doc.Canvas.Width, Height: doc.Canvas.Height})
}
