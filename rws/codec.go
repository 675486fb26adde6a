package rws

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwtcode/rwsAdapter/models"
	"github.com/iwtcode/rwsAdapter/pose"
)

// Кодек текстовых литералов RAPID. Сериализация собирает вложенные списки
// в квадратных скобках без пробелов; десериализация разбирает ответ
// контроллера обратно во вложенную структуру чисел.

// ZoneFine — символическое имя зоны точной остановки.
const ZoneFine = "fine"

// zoneMagnitudes — допустимые табличные величины zonedata помимо "fine".
var zoneMagnitudes = []float64{0, 1, 5, 10, 20, 30, 40, 50, 60, 80, 100, 150, 200}

// formatFloat возвращает минимальную десятичную запись числа.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'G', -1, 64)
}

// zoneFloat воспроизводит запись произведений таблицы zonedata: целые
// результаты умножения записываются с дробной частью (15.0, 8.0).
func zoneFloat(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return formatFloat(f)
}

// EncodeArray сериализует плоский числовой массив: [v0,v1,...].
func EncodeArray(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// EncodeRobTarget сериализует robtarget в форму
// [[tx,ty,tz],[q1,q2,q3,q4],[cf1,cf4,cf6,cfx],[e1..e6]].
func EncodeRobTarget(rt models.RobTarget) string {
	rot := rt.Rot.Values()
	return "[" +
		EncodeArray([]float64{rt.Trans.X, rt.Trans.Y, rt.Trans.Z}) + "," +
		EncodeArray(rot[:]) + "," +
		EncodeArray(rt.Conf[:]) + "," +
		EncodeArray(rt.ExtAx[:]) + "]"
}

// EncodeJointTarget сериализует цель по осям: [[j1..jn],[9E+09 x6]].
func EncodeJointTarget(joints []float64) string {
	ext := pose.DefaultExternalAxes()
	return "[" + EncodeArray(joints) + "," + EncodeArray(ext[:]) + "]"
}

// EncodeSpeedData сериализует speeddata с фиксированными ограничениями
// скоростей ориентации и внешних осей: [v,500,5000,1000].
func EncodeSpeedData(v float64) string {
	return fmt.Sprintf("[%s,500,5000,1000]", formatFloat(v))
}

// EncodeZoneData сериализует zonedata по таблице RobotWare. Вход — либо
// ZoneFine, либо строка одной из табличных величин; всё прочее отклоняется
// до отправки запроса.
func EncodeZoneData(zonedata string) (string, error) {
	if zonedata == ZoneFine {
		return "[TRUE,0,0,0,0,0,0]", nil
	}

	z, err := strconv.ParseFloat(zonedata, 64)
	if err != nil {
		return "", &Error{Kind: KindInvalidInput, Op: "zonedata", Detail: fmt.Sprintf("unknown zonedata %q", zonedata)}
	}
	allowed := false
	for _, m := range zoneMagnitudes {
		if z == m {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", &Error{Kind: KindInvalidInput, Op: "zonedata", Detail: fmt.Sprintf("zonedata %v is not a tabulated magnitude", z)}
	}

	zs := formatFloat(z)
	switch z {
	case 0:
		return fmt.Sprintf("[FALSE,%s,%s,%s,%s,%s,%s]",
			formatFloat(z+0.3), formatFloat(z+0.3), formatFloat(z+0.3),
			formatFloat(z+0.03), formatFloat(z+0.3), formatFloat(z+0.03)), nil
	case 1:
		return fmt.Sprintf("[FALSE,%s,%s,%s,%s,%s,%s]",
			zs, zs, zs, zoneFloat(z*0.1), zs, zoneFloat(z*0.1)), nil
	case 5:
		return fmt.Sprintf("[FALSE,%s,%s,%s,%s,%s,%s]",
			zs, zoneFloat(z*1.6), zoneFloat(z*1.6), zoneFloat(z*0.16), zoneFloat(z*1.6), zoneFloat(z*0.16)), nil
	default:
		return fmt.Sprintf("[FALSE,%s,%s,%s,%s,%s,%s]",
			zs, zoneFloat(z*1.5), zoneFloat(z*1.5), zoneFloat(z*0.15), zoneFloat(z*1.5), zoneFloat(z*0.15)), nil
	}
}

// listValue — элемент разобранного литерала: float64, bool или []listValue.
type listValue any

// parseList разбирает литерал вида [[...],[...]] во вложенные списки.
// Контроллер отдает не JSON, а скобочные числовые литералы RAPID, поэтому
// используется собственный разбор.
func parseList(op, text string) ([]listValue, error) {
	p := &listParser{op: op, s: text}
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.i != len(p.s) {
		return nil, p.fail("trailing data after literal")
	}
	list, ok := v.([]listValue)
	if !ok {
		return nil, p.fail("literal is not a list")
	}
	return list, nil
}

type listParser struct {
	op string
	s  string
	i  int
}

func (p *listParser) fail(detail string) error {
	return &Error{Kind: KindParse, Op: p.op, Detail: fmt.Sprintf("%s at offset %d in %q", detail, p.i, p.s)}
}

func (p *listParser) skipSpace() {
	for p.i < len(p.s) && (p.s[p.i] == ' ' || p.s[p.i] == '\t' || p.s[p.i] == '\n') {
		p.i++
	}
}

func (p *listParser) value() (listValue, error) {
	if p.i >= len(p.s) {
		return nil, p.fail("unexpected end of literal")
	}
	switch {
	case p.s[p.i] == '[':
		return p.list()
	case strings.HasPrefix(p.s[p.i:], "TRUE"):
		p.i += len("TRUE")
		return true, nil
	case strings.HasPrefix(p.s[p.i:], "FALSE"):
		p.i += len("FALSE")
		return false, nil
	default:
		return p.number()
	}
}

func (p *listParser) list() (listValue, error) {
	p.i++ // '['
	var out []listValue
	p.skipSpace()
	if p.i < len(p.s) && p.s[p.i] == ']' {
		p.i++
		return out, nil
	}
	for {
		p.skipSpace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		p.skipSpace()
		if p.i >= len(p.s) {
			return nil, p.fail("unterminated list")
		}
		switch p.s[p.i] {
		case ',':
			p.i++
		case ']':
			p.i++
			return out, nil
		default:
			return nil, p.fail("expected ',' or ']'")
		}
	}
}

func (p *listParser) number() (listValue, error) {
	start := p.i
	for p.i < len(p.s) && !strings.ContainsRune(",]", rune(p.s[p.i])) {
		p.i++
	}
	text := strings.TrimSpace(p.s[start:p.i])
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &Error{Kind: KindParse, Op: p.op, Detail: fmt.Sprintf("token %q is not numeric", text)}
	}
	return f, nil
}

// floatSlice приводит элемент литерала к числовому списку.
func floatSlice(op string, v listValue) ([]float64, error) {
	list, ok := v.([]listValue)
	if !ok {
		return nil, &Error{Kind: KindParse, Op: op, Detail: "expected nested list"}
	}
	out := make([]float64, len(list))
	for i, e := range list {
		f, ok := e.(float64)
		if !ok {
			return nil, &Error{Kind: KindParse, Op: op, Detail: "expected numeric element"}
		}
		out[i] = f
	}
	return out, nil
}

// DecodeRobTarget разбирает текстовое значение переменной robtarget.
// Обязательны первые два списка (положение и ориентация); конфигурация и
// внешние оси при отсутствии заполняются стандартными значениями.
func DecodeRobTarget(text string) (models.RobTarget, error) {
	const op = "decode robtarget"
	var rt models.RobTarget

	list, err := parseList(op, text)
	if err != nil {
		return rt, err
	}
	if len(list) < 2 {
		return rt, &Error{Kind: KindParse, Op: op, Detail: "robtarget literal has fewer than 2 fields"}
	}

	trans, err := floatSlice(op, list[0])
	if err != nil {
		return rt, err
	}
	if len(trans) != 3 {
		return rt, &Error{Kind: KindParse, Op: op, Detail: "translation is not a triple"}
	}
	rot, err := floatSlice(op, list[1])
	if err != nil {
		return rt, err
	}
	if len(rot) != 4 {
		return rt, &Error{Kind: KindParse, Op: op, Detail: "orientation is not a quadruple"}
	}

	rt.Trans.X, rt.Trans.Y, rt.Trans.Z = trans[0], trans[1], trans[2]
	rt.Rot = pose.Quaternion{W: rot[0], X: rot[1], Y: rot[2], Z: rot[3]}
	rt.Conf = pose.DefaultConfiguration()
	rt.ExtAx = pose.DefaultExternalAxes()

	if len(list) > 2 {
		conf, err := floatSlice(op, list[2])
		if err == nil && len(conf) == 4 {
			copy(rt.Conf[:], conf)
		}
	}
	if len(list) > 3 {
		ext, err := floatSlice(op, list[3])
		if err == nil && len(ext) == 6 {
			copy(rt.ExtAx[:], ext)
		}
	}

	return rt, nil
}
