// Package flatten turns a nested JSON document into an ordered list of
// (path, value) rows for tabular display, and formats leaf values for the
// cost-estimation UI.
package flatten

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Row is a single leaf of a flattened JSON document.
type Row struct {
	Path  string
	Value interface{}
}

// Flatten walks raw and returns one row per leaf, in document order.
// Nulls produce no rows. Empty arrays and objects count as one leaf each,
// with "[]" / "{}" marker values. Object keys keep the order they appear in
// the document, which is why this works on the raw bytes instead of a
// map[string]interface{}.
func Flatten(raw json.RawMessage) ([]Row, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var rows []Row
	if err := walk(dec, "", &rows); err != nil {
		return nil, errors.Wrap(err, "flatten")
	}
	return rows, nil
}

func walk(dec *json.Decoder, path string, rows *[]Row) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			if !dec.More() {
				*rows = append(*rows, Row{Path: path, Value: "{}"})
			}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return err
				}
				key, ok := keyTok.(string)
				if !ok {
					return fmt.Errorf("object key is %T, want string", keyTok)
				}
				child := key
				if path != "" {
					child = path + "." + key
				}
				if err := walk(dec, child, rows); err != nil {
					return err
				}
			}
			_, err = dec.Token() // closing '}'
			return err
		case '[':
			if !dec.More() {
				*rows = append(*rows, Row{Path: path, Value: "[]"})
			}
			for i := 0; dec.More(); i++ {
				child := fmt.Sprintf("%s[%d]", path, i)
				if err := walk(dec, child, rows); err != nil {
					return err
				}
			}
			_, err = dec.Token() // closing ']'
			return err
		}
		return fmt.Errorf("unexpected delimiter %q", t)
	case nil:
		// JSON null: contributes nothing.
		return nil
	default:
		*rows = append(*rows, Row{Path: path, Value: tok})
		return nil
	}
}

// Keys that denote money amounts. man_hours_* fields match "rate"-like
// patterns in some responses but are durations, never currency.
var currencyKeyRe = regexp.MustCompile(`(?i)cost|rate|profit|overheads|packing|outsourcing`)

// FormatValue renders a leaf value for display. Numbers under cost-like keys
// become rupee amounts with Indian digit grouping; other numbers keep the
// grouping without the symbol. Strings pass through untouched; anything else
// falls back to its JSON encoding.
func FormatValue(key string, v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}

	if f, ok := toFloat(v); ok && !math.IsInf(f, 0) && !math.IsNaN(f) {
		if currencyKeyRe.MatchString(key) && !strings.Contains(strings.ToLower(key), "man_hours") {
			return "₹" + groupIndian(formatAmount(f))
		}
		return groupIndian(strconv.FormatFloat(f, 'f', -1, 64))
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// formatAmount renders money with two decimals, or none when the amount is
// whole (₹500, not ₹500.00).
func formatAmount(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// groupIndian inserts Indian-locale thousands separators into the integer
// part of a decimal string: the last three digits form a group, every two
// digits before that form another (12,34,567.89).
func groupIndian(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	head := intPart[:len(intPart)-3]
	tail := intPart[len(intPart)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)

	return sign + strings.Join(groups, ",") + frac
}

// Label humanizes a flattened path for display: underscores become spaces
// and each word is title-cased, keeping the dots and indexes of the path.
func Label(path string) string {
	segs := strings.Split(path, ".")
	for i, seg := range segs {
		words := strings.Split(strings.ReplaceAll(seg, "_", " "), " ")
		for j, w := range words {
			if w == "" {
				continue
			}
			words[j] = strings.ToUpper(w[:1]) + w[1:]
		}
		segs[i] = strings.Join(words, " ")
	}
	return strings.Join(segs, " › ")
}
