package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPointsForLevel(t *testing.T) {
	require.Equal(t, 0, PointsForLevel(0))
	require.Equal(t, 0, PointsForLevel(-3))

	// floor de (level/0.55)^(1/0.55)*100
	for _, lvl := range []int{1, 2, 5, 10, 50} {
		want := int(math.Pow(float64(lvl)/0.55, 1/0.55) * 100)
		require.Equal(t, want, PointsForLevel(lvl), "level %d", lvl)
	}

	// la curva es estrictamente creciente
	for lvl := 1; lvl <= 200; lvl++ {
		require.Greater(t, PointsForLevel(lvl), PointsForLevel(lvl-1), "level %d", lvl)
	}
}

func TestLevelForPointsRoundTrip(t *testing.T) {
	require.Equal(t, 0, LevelForPoints(0))
	require.Equal(t, 0, LevelForPoints(-10))

	for lvl := 1; lvl <= 200; lvl++ {
		at := PointsForLevel(lvl)
		// justo en el umbral ya se tiene el nivel
		require.Equal(t, lvl, LevelForPoints(at), "at threshold of %d", lvl)
		// un punto menos todavía no
		require.Equal(t, lvl-1, LevelForPoints(at-1), "below threshold of %d", lvl)
	}
}

func TestLevelForPointsCapped(t *testing.T) {
	require.Equal(t, maxLevel, LevelForPoints(math.MaxInt64))
}

func TestProgressInLevel(t *testing.T) {
	// nivel 0: todo el total es progreso hacia el nivel 1
	in, need := ProgressInLevel(120, 0)
	require.Equal(t, 120, in)
	require.Equal(t, PointsForLevel(1), need)

	// dentro de un nivel intermedio
	pts := PointsForLevel(3) + 50
	in, need = ProgressInLevel(pts, 3)
	require.Equal(t, 50, in)
	require.Equal(t, PointsForLevel(4)-PointsForLevel(3), need)

	// puntos por debajo del nivel declarado no dan progreso negativo
	in, _ = ProgressInLevel(0, 5)
	require.Equal(t, 0, in)

	// el denominador nunca es 0
	_, need = ProgressInLevel(0, -1)
	require.GreaterOrEqual(t, need, 1)
}

func TestProgressRatioClamped(t *testing.T) {
	require.Equal(t, 0.0, ProgressRatio(0, 0))
	require.Equal(t, 1.0, ProgressRatio(math.MaxInt32, 1))

	r := ProgressRatio(PointsForLevel(2)+1, 2)
	require.Greater(t, r, 0.0)
	require.Less(t, r, 1.0)
}
