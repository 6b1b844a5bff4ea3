// Package rankcard dibuja la tarjeta PNG del comando /rank.
package rankcard

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/fogleman/gg"
)

const (
	cardW = 600
	cardH = 200

	avatarCX  = 100
	avatarCY  = 100
	avatarRad = 60

	barX = 190
	barW = 370
	barH = 22
)

// AxisProgress es el estado de un eje (texto o voz) ya calculado por el caller.
type AxisProgress struct {
	Level int
	In    int
	Need  int
	Ratio float64 // [0,1]
}

type Card struct {
	DisplayName string
	Avatar      []byte // PNG/JPEG crudo; nil usa el disco de fallback
	Text        AxisProgress
	Voice       AxisProgress
}

// Render produce el PNG de la tarjeta.
func Render(c Card) ([]byte, error) {
	dc := gg.NewContext(cardW, cardH)

	// fondo
	dc.SetRGB255(35, 39, 42)
	dc.DrawRoundedRectangle(0, 0, cardW, cardH, 16)
	dc.Fill()

	drawAvatar(dc, c)

	dc.SetRGB255(255, 255, 255)
	dc.DrawString(c.DisplayName, barX, 48)

	drawBar(dc, "💬", c.Text, 80)
	drawBar(dc, "🎧", c.Voice, 140)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode tarjeta: %w", err)
	}
	return buf.Bytes(), nil
}

func drawAvatar(dc *gg.Context, c Card) {
	if img := decodeAvatar(c.Avatar); img != nil {
		w := img.Bounds().Dx()
		h := img.Bounds().Dy()
		if w > 0 && h > 0 {
			dc.Push()
			dc.DrawCircle(avatarCX, avatarCY, avatarRad)
			dc.Clip()
			dc.Translate(avatarCX-avatarRad, avatarCY-avatarRad)
			dc.Scale(2*avatarRad/float64(w), 2*avatarRad/float64(h))
			dc.DrawImage(img, 0, 0)
			dc.Pop()
			return
		}
	}

	// disco con la inicial si no hay avatar usable
	dc.SetRGB255(88, 101, 242)
	dc.DrawCircle(avatarCX, avatarCY, avatarRad)
	dc.Fill()
	initial := "?"
	if name := strings.TrimSpace(c.DisplayName); name != "" {
		initial = strings.ToUpper(string([]rune(name)[0]))
	}
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(initial, avatarCX, avatarCY, 0.5, 0.5)
}

func decodeAvatar(data []byte) image.Image {
	if len(data) == 0 {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

func drawBar(dc *gg.Context, icon string, p AxisProgress, y float64) {
	ratio := p.Ratio
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	dc.SetRGB255(255, 255, 255)
	dc.DrawString(fmt.Sprintf("%s  Nivel %d", icon, p.Level), barX, y-6)

	// pista
	dc.SetRGB255(60, 65, 70)
	dc.DrawRoundedRectangle(barX, y, barW, barH, barH/2)
	dc.Fill()

	// relleno
	if fill := barW * ratio; fill > barH {
		dc.SetRGB255(88, 101, 242)
		dc.DrawRoundedRectangle(barX, y, fill, barH, barH/2)
		dc.Fill()
	}

	dc.SetRGB255(200, 200, 200)
	dc.DrawStringAnchored(fmt.Sprintf("%d / %d XP", p.In, p.Need), barX+barW, y-6, 1, 0)
}
