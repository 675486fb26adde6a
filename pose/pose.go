// Package pose содержит чистую математику поз и кватернионов для формирования
// значений robtarget. Пакет не имеет зависимостей от протокольного слоя.
package pose

import "math"

// Quaternion представляет ориентацию в виде единичного кватерниона (q1..q4 в
// терминологии RAPID, т.е. w, x, y, z).
type Quaternion struct {
	W float64 `json:"q1"`
	X float64 `json:"q2"`
	Y float64 `json:"q3"`
	Z float64 `json:"q4"`
}

// DefaultOrientation — ориентация "инструмент вниз", подставляемая вместо
// нулевой ориентации-заглушки [0,0,0,0].
func DefaultOrientation() Quaternion {
	return Quaternion{W: 0, X: 1, Y: 0, Z: 0}
}

// DefaultConfiguration — стандартная конфигурация осей [-1,0,0,0],
// назначаемая при каждой записи robtarget.
func DefaultConfiguration() [4]float64 {
	return [4]float64{-1, 0, 0, 0}
}

// ExternalAxisUndefined — значение-заглушка 9E9 для неиспользуемых внешних осей.
const ExternalAxisUndefined = 9e9

// DefaultExternalAxes возвращает шесть незадействованных внешних осей.
func DefaultExternalAxes() [6]float64 {
	return [6]float64{
		ExternalAxisUndefined, ExternalAxisUndefined, ExternalAxisUndefined,
		ExternalAxisUndefined, ExternalAxisUndefined, ExternalAxisUndefined,
	}
}

// IsZero сообщает, является ли кватернион нулевой заглушкой [0,0,0,0],
// т.е. у переменной ещё не задана ориентация.
func (q Quaternion) IsZero() bool {
	return q.W == 0 && q.X == 0 && q.Y == 0 && q.Z == 0
}

// Norm возвращает евклидову норму кватерниона.
func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Values возвращает компоненты в порядке сериализации RAPID (q1,q2,q3,q4).
func (q Quaternion) Values() [4]float64 {
	return [4]float64{q.W, q.X, q.Y, q.Z}
}

// ZDegreesToQuaternion переводит поворот вокруг оси Z (в градусах) в
// кватернион. Крен фиксирован на pi, тангаж на 0: это семейство ориентаций
// "инструмент направлен вниз", принятое для данного применения, а не
// универсальное преобразование Эйлер->кватернион.
func ZDegreesToQuaternion(rotationZDegrees float64) Quaternion {
	roll := math.Pi
	pitch := 0.0
	yaw := rotationZDegrees * math.Pi / 180

	cr := math.Cos(roll / 2)
	sr := math.Sin(roll / 2)
	cp := math.Cos(pitch / 2)
	sp := math.Sin(pitch / 2)
	cy := math.Cos(yaw / 2)
	sy := math.Sin(yaw / 2)

	return Quaternion{
		W: cr*cp*cy + sr*sp*sy,
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}
}
