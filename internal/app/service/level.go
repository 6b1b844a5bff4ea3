package service

import "math"

// Fórmula estilo ProBot: XP(level) = (level / 0.55) ^ (1 / 0.55) * 100,
// con floor al convertir. Texto y voz usan la misma curva por separado.

// maxLevel acota la búsqueda de LevelForPoints ante totales absurdos.
const maxLevel = 10000

func PointsForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	return int(math.Pow(float64(level)/0.55, 1/0.55) * 100)
}

// LevelForPoints: el mayor L con PointsForLevel(L) <= points.
func LevelForPoints(points int) int {
	if points <= 0 {
		return 0
	}
	level := 0
	for level < maxLevel {
		if PointsForLevel(level+1) > points {
			return level
		}
		level++
	}
	return level
}

// ProgressInLevel devuelve (XP dentro del nivel, XP que pide el nivel siguiente).
// El denominador nunca es 0.
func ProgressInLevel(points, level int) (int, int) {
	cur := PointsForLevel(level)
	next := PointsForLevel(level + 1)

	in := points - cur
	if in < 0 {
		in = 0
	}
	need := next - cur
	if need < 1 {
		need = 1
	}
	return in, need
}

// ProgressRatio: fracción [0,1] para barras de progreso.
func ProgressRatio(points, level int) float64 {
	in, need := ProgressInLevel(points, level)
	ratio := float64(in) / float64(need)
	return math.Min(1.0, math.Max(0.0, ratio))
}
