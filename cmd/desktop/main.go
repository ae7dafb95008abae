package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gobf/pkg/bf"
	"gobf/pkg/grid"
	"gobf/pkg/utils"
)

const (
	gridCols     = 32
	gridRows     = 24
	cellSize     = 16 // pixels per tape cell
	cellsPerPage = gridCols * gridRows
	statusHeight = 24
)

// Game browses the final tape of a finished run as a grid of cells,
// colored by value and annotated in hex. Arrow keys page through the tape.
type Game struct {
	tape    []byte
	page    int
	cellImg *ebiten.Image // reused per-cell canvas
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		if g.page < grid.MaxPage(cellsPerPage, len(g.tape)) {
			g.page++
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		if g.page > 0 {
			g.page--
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.cellImg == nil {
		g.cellImg = ebiten.NewImage(cellSize-1, cellSize-1)
	}

	start, end := grid.PageBounds(g.page, cellsPerPage, len(g.tape))
	for i := start; i < end; i++ {
		v := g.tape[i]
		x, y := grid.GetGridCoords(i-start, gridCols)

		g.cellImg.Fill(color.RGBA{R: v, G: 0x20, B: 0xff - v, A: 0xff})
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x*cellSize), float64(y*cellSize))
		screen.DrawImage(g.cellImg, op)

		if v != 0 {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%02x", v), x*cellSize+1, y*cellSize)
		}
	}

	status := fmt.Sprintf("cells %d-%d of %d  (arrow keys to page)", start, end, len(g.tape))
	ebitenutil.DebugPrintAt(screen, status, 2, gridRows*cellSize+4)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gridCols * cellSize, gridRows*cellSize + statusHeight
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <program.bf>", os.Args[0])
	}

	source, fullPath, err := utils.ReadProgram(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	eng, err := bf.New(source)
	if err != nil {
		log.Fatalf("Compilation of %s failed: %v", fullPath, err)
	}

	// The program runs to completion first, with its I/O on the console;
	// the window then shows the tape it left behind.
	tape, err := eng.RunTape()
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(gridCols*cellSize, gridRows*cellSize+statusHeight)
	ebiten.SetWindowTitle("gobf tape viewer")

	if err := ebiten.RunGame(&Game{tape: tape}); err != nil {
		log.Fatal(err)
	}
}
