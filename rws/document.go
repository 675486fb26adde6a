package rws

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
)

// Ответы RWS приходят XHTML-документами, где данные лежат в элементах
// <span class="..."> внутри html/body/div/ul/li. Извлечение ведётся по имени
// класса, а не по позиции: перестановка полей в ответе контроллера даёт
// ошибку разбора, а не молча искажённый результат.

type stateSpan struct {
	Class string `xml:"class,attr"`
	Text  string `xml:",chardata"`
}

type stateItem struct {
	Class string      `xml:"class,attr"`
	Spans []stateSpan `xml:"span"`
}

type stateDocument struct {
	XMLName xml.Name    `xml:"html"`
	Items   []stateItem `xml:"body>div>ul>li"`
}

// parseStateDocument разбирает XHTML-конверт ответа. Пустой или чужеродный
// документ отклоняется как ошибка разбора.
func parseStateDocument(op string, body []byte) (*stateDocument, error) {
	var doc stateDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, &Error{Kind: KindParse, Op: op, Err: err}
	}
	if len(doc.Items) == 0 {
		return nil, &Error{Kind: KindParse, Op: op, Detail: "no state items in response"}
	}
	return &doc, nil
}

// span возвращает текст первого span с данным классом.
func (d *stateDocument) span(class string) (string, bool) {
	for _, item := range d.Items {
		for _, s := range item.Spans {
			if s.Class == class {
				return s.Text, true
			}
		}
	}
	return "", false
}

// requireSpan — как span, но отсутствие поля является ошибкой разбора.
func (d *stateDocument) requireSpan(op, class string) (string, error) {
	v, ok := d.span(class)
	if !ok {
		return "", &Error{Kind: KindParse, Op: op, Detail: fmt.Sprintf("field %q missing in response", class)}
	}
	return v, nil
}

// requireFloats извлекает именованные числовые поля в заданном порядке.
func (d *stateDocument) requireFloats(op string, classes ...string) ([]float64, error) {
	out := make([]float64, 0, len(classes))
	for _, class := range classes {
		text, err := d.requireSpan(op, class)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &Error{Kind: KindParse, Op: op, Detail: fmt.Sprintf("field %q is not numeric: %q", class, text)}
		}
		out = append(out, f)
	}
	return out, nil
}

// Ответы подсистемы движения с параметром json=1 приходят в конверте
// _embedded/_state, где все значения закодированы строками.

type embeddedDocument struct {
	Embedded struct {
		State []map[string]string `json:"_state"`
	} `json:"_embedded"`
}

// parseEmbeddedState возвращает первую запись конверта _embedded._state.
func parseEmbeddedState(op string, body []byte) (map[string]string, error) {
	var doc embeddedDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &Error{Kind: KindParse, Op: op, Err: err}
	}
	if len(doc.Embedded.State) == 0 {
		return nil, &Error{Kind: KindParse, Op: op, Detail: "empty _embedded._state in response"}
	}
	return doc.Embedded.State[0], nil
}

// embeddedFloats извлекает именованные числовые поля из записи конверта.
func embeddedFloats(op string, state map[string]string, keys ...string) ([]float64, error) {
	out := make([]float64, 0, len(keys))
	for _, key := range keys {
		text, ok := state[key]
		if !ok {
			return nil, &Error{Kind: KindParse, Op: op, Detail: fmt.Sprintf("field %q missing in response", key)}
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &Error{Kind: KindParse, Op: op, Detail: fmt.Sprintf("field %q is not numeric: %q", key, text)}
		}
		out = append(out, f)
	}
	return out, nil
}
