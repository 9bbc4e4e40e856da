// Package tetromino holds the playfield model: the seven shapes, pieces,
// the locked-cell map and the grid derived from it.
package tetromino

import (
	"image/color"
	"math/rand/v2"
)

const (
	Columns = 10
	Rows    = 20

	// FrameSize is the width and height of a rotation frame.
	FrameSize = 5
)

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	ShapeS Shape = iota
	ShapeZ
	ShapeI
	ShapeO
	ShapeJ
	ShapeL
	ShapeT

	shapeCount
)

// Shapes lists every shape in table order.
var Shapes = [...]Shape{ShapeS, ShapeZ, ShapeI, ShapeO, ShapeJ, ShapeL, ShapeT}

// Frame is one rotation of a shape. '0' marks a filled cell.
type Frame [FrameSize]string

var frames = [shapeCount][]Frame{
	ShapeS: {
		{
			".....",
			".....",
			"..00.",
			".00..",
			".....",
		},
		{
			".....",
			"..0..",
			"..00.",
			"...0.",
			".....",
		},
	},
	ShapeZ: {
		{
			".....",
			".....",
			".00..",
			"..00.",
			".....",
		},
		{
			".....",
			"..0..",
			".00..",
			".0...",
			".....",
		},
	},
	ShapeI: {
		{
			".....",
			"..0..",
			"..0..",
			"..0..",
			"..0..",
		},
		{
			".....",
			"0000.",
			".....",
			".....",
			".....",
		},
	},
	ShapeO: {
		{
			".....",
			".....",
			".00..",
			".00..",
			".....",
		},
	},
	ShapeJ: {
		{
			".....",
			".0...",
			".000.",
			".....",
			".....",
		},
		{
			".....",
			"..00.",
			"..0..",
			"..0..",
			".....",
		},
	},
	ShapeL: {
		{
			".....",
			"...0.",
			".000.",
			".....",
			".....",
		},
		{
			".....",
			"..0..",
			"..0..",
			"..00.",
			".....",
		},
	},
	ShapeT: {
		{
			".....",
			"..0..",
			".000.",
			".....",
			".....",
		},
		{
			".....",
			"..0..",
			"..00.",
			"..0..",
			".....",
		},
	},
}

var colors = [shapeCount]color.RGBA{
	ShapeS: {R: 0, G: 255, B: 0, A: 255},
	ShapeZ: {R: 255, G: 0, B: 0, A: 255},
	ShapeI: {R: 0, G: 255, B: 255, A: 255},
	ShapeO: {R: 255, G: 255, B: 0, A: 255},
	ShapeJ: {R: 255, G: 165, B: 0, A: 255},
	ShapeL: {R: 0, G: 0, B: 255, A: 255},
	ShapeT: {R: 128, G: 0, B: 128, A: 255},
}

var names = [shapeCount]string{"S", "Z", "I", "O", "J", "L", "T"}

// Background is the color of an empty cell.
var Background = color.RGBA{A: 255}

// Frames returns the rotation frames of the shape.
func (s Shape) Frames() []Frame {
	return frames[s]
}

// Color returns the shape's block color.
func (s Shape) Color() color.RGBA {
	return colors[s]
}

func (s Shape) String() string {
	if s >= shapeCount {
		return "?"
	}
	return names[s]
}

// Valid reports whether s names one of the seven shapes.
func (s Shape) Valid() bool {
	return s < shapeCount
}

// RandomShape picks a shape uniformly.
func RandomShape(rng *rand.Rand) Shape {
	return Shapes[rng.IntN(len(Shapes))]
}
