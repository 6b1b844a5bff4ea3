package rankcard

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderProducesPNG(t *testing.T) {
	data, err := Render(Card{
		DisplayName: "tester",
		Text:        AxisProgress{Level: 3, In: 120, Need: 400, Ratio: 0.3},
		Voice:       AxisProgress{Level: 1, In: 10, Need: 200, Ratio: 0.05},
	})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, cardW, img.Bounds().Dx())
	require.Equal(t, cardH, img.Bounds().Dy())
}

func TestRenderToleratesBadAvatarAndRatio(t *testing.T) {
	data, err := Render(Card{
		DisplayName: "",
		Avatar:      []byte("no es una imagen"),
		Text:        AxisProgress{Level: 0, In: 0, Need: 1, Ratio: -2},
		Voice:       AxisProgress{Level: 9999, In: 1, Need: 1, Ratio: 7},
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
