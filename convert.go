// seehuhn.de/go/xmpmeta - Extensible Metadata Platform in Go
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package xmpmeta

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ConvertFromBool returns the XMP representation of a boolean value.
func ConvertFromBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ConvertFromInt returns the XMP representation of an integer value.
func ConvertFromInt(i int) string {
	return strconv.Itoa(i)
}

// ConvertFromInt64 returns the XMP representation of an integer value.
func ConvertFromInt64(i int64) string {
	return strconv.FormatInt(i, 10)
}

// ConvertFromFloat returns the XMP representation of a real value.
func ConvertFromFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ConvertFromDate returns the ISO 8601 representation of a date.
func ConvertFromDate(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ConvertToBool parses a boolean value.  Besides the canonical forms
// "True" and "False", the values "t", "f", "1", "0", "yes", "no", "on" and
// "off" are accepted in any case.
func ConvertToBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "yes", "on":
		return true, nil
	case "false", "f", "0", "no", "off":
		return false, nil
	}
	return false, newError(BadValue, "ConvertToBool", "invalid boolean %q", s)
}

// ConvertToInt parses an integer value.  Hexadecimal values are accepted
// with a "0x" prefix.
func ConvertToInt(s string) (int, error) {
	x, err := ConvertToInt64(s)
	if err != nil {
		return 0, withOp("ConvertToInt", err)
	}
	if x < math.MinInt || x > math.MaxInt {
		return 0, newError(BadValue, "ConvertToInt", "integer %q out of range", s)
	}
	return int(x), nil
}

// ConvertToInt64 parses an integer value.  Hexadecimal values are accepted
// with a "0x" prefix.
func ConvertToInt64(s string) (int64, error) {
	const op = "ConvertToInt64"
	str := strings.TrimSpace(s)
	neg := false
	if rest, found := strings.CutPrefix(str, "-"); found {
		neg, str = true, rest
	} else {
		str = strings.TrimPrefix(str, "+")
	}
	base := 10
	if rest, found := strings.CutPrefix(strings.ToLower(str), "0x"); found {
		base, str = 16, rest
	}
	u, err := strconv.ParseUint(str, base, 64)
	if err != nil {
		return 0, &Error{Code: BadValue, Op: op, Msg: "invalid integer " + strconv.Quote(s), Err: err}
	}
	if neg {
		if u > 1<<63 {
			return 0, newError(BadValue, op, "integer %q out of range", s)
		}
		return -int64(u), nil
	}
	if u > math.MaxInt64 {
		return 0, newError(BadValue, op, "integer %q out of range", s)
	}
	return int64(u), nil
}

// ConvertToFloat parses a real value.
func ConvertToFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &Error{Code: BadValue, Op: "ConvertToFloat", Msg: "invalid number " + strconv.Quote(s), Err: err}
	}
	return f, nil
}

// dateLayouts lists the ISO 8601 subsets which are used by XMP, from the
// most to the least precise.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ConvertToDate parses an ISO 8601 date, as used by XMP.  The forms
// YYYY, YYYY-MM, YYYY-MM-DD, YYYY-MM-DDThh:mmTZD, YYYY-MM-DDThh:mm:ssTZD
// and YYYY-MM-DDThh:mm:ss.sTZD are accepted.  Times without a time zone are
// interpreted as UTC.
func ConvertToDate(s string) (time.Time, error) {
	str := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, str)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, newError(BadValue, "ConvertToDate", "invalid date %q", s)
}

// GetPropertyBool returns the value of a boolean property.
func (t *Tree) GetPropertyBool(ns, path string) (bool, error) {
	val, err := t.getSimple("GetPropertyBool", ns, path)
	if err != nil {
		return false, err
	}
	b, err := ConvertToBool(val)
	return b, withOp("GetPropertyBool", err)
}

// GetPropertyInt returns the value of an integer property.
func (t *Tree) GetPropertyInt(ns, path string) (int, error) {
	val, err := t.getSimple("GetPropertyInt", ns, path)
	if err != nil {
		return 0, err
	}
	i, err := ConvertToInt(val)
	return i, withOp("GetPropertyInt", err)
}

// GetPropertyInt64 returns the value of an integer property.
func (t *Tree) GetPropertyInt64(ns, path string) (int64, error) {
	val, err := t.getSimple("GetPropertyInt64", ns, path)
	if err != nil {
		return 0, err
	}
	i, err := ConvertToInt64(val)
	return i, withOp("GetPropertyInt64", err)
}

// GetPropertyFloat returns the value of a real property.
func (t *Tree) GetPropertyFloat(ns, path string) (float64, error) {
	val, err := t.getSimple("GetPropertyFloat", ns, path)
	if err != nil {
		return 0, err
	}
	f, err := ConvertToFloat(val)
	return f, withOp("GetPropertyFloat", err)
}

// GetPropertyDate returns the value of a date property.
func (t *Tree) GetPropertyDate(ns, path string) (time.Time, error) {
	val, err := t.getSimple("GetPropertyDate", ns, path)
	if err != nil {
		return time.Time{}, err
	}
	d, err := ConvertToDate(val)
	return d, withOp("GetPropertyDate", err)
}

// SetPropertyBool sets a boolean property.
func (t *Tree) SetPropertyBool(ns, path string, b bool, flags PropertyFlags) error {
	return withOp("SetPropertyBool", t.SetProperty(ns, path, ConvertFromBool(b), flags))
}

// SetPropertyInt sets an integer property.
func (t *Tree) SetPropertyInt(ns, path string, i int, flags PropertyFlags) error {
	return withOp("SetPropertyInt", t.SetProperty(ns, path, ConvertFromInt(i), flags))
}

// SetPropertyInt64 sets an integer property.
func (t *Tree) SetPropertyInt64(ns, path string, i int64, flags PropertyFlags) error {
	return withOp("SetPropertyInt64", t.SetProperty(ns, path, ConvertFromInt64(i), flags))
}

// SetPropertyFloat sets a real property.
func (t *Tree) SetPropertyFloat(ns, path string, f float64, flags PropertyFlags) error {
	return withOp("SetPropertyFloat", t.SetProperty(ns, path, ConvertFromFloat(f), flags))
}

// SetPropertyDate sets a date property.
func (t *Tree) SetPropertyDate(ns, path string, d time.Time, flags PropertyFlags) error {
	return withOp("SetPropertyDate", t.SetProperty(ns, path, ConvertFromDate(d), flags))
}

func (t *Tree) getSimple(op, ns, path string) (string, error) {
	val, flags, err := t.GetProperty(ns, path)
	if err != nil {
		return "", withOp(op, err)
	}
	if !flags.IsSimple() {
		return "", newError(BadValue, op, "%s is not a simple property", path)
	}
	return val, nil
}
