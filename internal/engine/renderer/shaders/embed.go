// Package shaders embeds the GLSL programs used by the renderer.
package shaders

import "embed"

// Planet is the name of the lit, textured body program.
const Planet = "planet"

// FS holds planet.vert and planet.frag.
//
//go:embed *.vert *.frag
var FS embed.FS
