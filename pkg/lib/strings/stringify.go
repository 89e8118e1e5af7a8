/*
Copyright 2022 Cortex Labs, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package strings

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

func Float64(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

// Round formats val with at most decimalPlaces decimals, padding with zeros up to padToDecimalPlaces
func Round(val float64, decimalPlaces int, padToDecimalPlaces int) string {
	rounded := strconv.FormatFloat(val, 'f', decimalPlaces, 64)
	if strings.Contains(rounded, ".") {
		rounded = strings.TrimRight(strings.TrimRight(rounded, "0"), ".")
	}
	if padToDecimalPlaces <= 0 {
		return rounded
	}

	decimals := 0
	if i := strings.Index(rounded, "."); i >= 0 {
		decimals = len(rounded) - i - 1
	} else {
		rounded += "."
	}
	if decimals < padToDecimalPlaces {
		rounded += strings.Repeat("0", padToDecimalPlaces-decimals)
	}
	return rounded
}

func stringify(val interface{}, quote string) string {
	if val == nil {
		return "<null>"
	}

	if stringer, ok := val.(fmt.Stringer); ok {
		return quote + stringer.String() + quote
	}

	value := reflect.ValueOf(val)
	switch value.Kind() {
	case reflect.Ptr, reflect.Interface:
		if value.IsNil() {
			return "<null>"
		}
		return stringify(value.Elem().Interface(), quote)
	case reflect.String:
		return quote + value.String() + quote
	case reflect.Float32, reflect.Float64:
		return Float64(value.Float())
	case reflect.Slice, reflect.Array:
		if value.Kind() == reflect.Slice && value.IsNil() {
			return "<null>"
		}
		strs := make([]string, value.Len())
		for i := range strs {
			strs[i] = stringify(value.Index(i).Interface(), quote)
		}
		return "[" + strings.Join(strs, ", ") + "]"
	case reflect.Map:
		if value.IsNil() {
			return "<null>"
		}
		strs := make([]string, 0, value.Len())
		for _, key := range value.MapKeys() {
			strs = append(strs, stringify(key.Interface(), quote)+": "+stringify(value.MapIndex(key).Interface(), quote))
		}
		sort.Strings(strs)
		return "{" + strings.Join(strs, ", ") + "}"
	}
	return fmt.Sprint(val)
}

// UserStr quotes strings, so values stand out inside error messages
func UserStr(val interface{}) string {
	return stringify(val, `"`)
}

func ObjFlatNoQuotes(val interface{}) string {
	return stringify(val, "")
}

// UserStrs applies UserStr to every element of a slice (or to a single value)
func UserStrs(val interface{}) []string {
	if val == nil {
		return nil
	}

	value := reflect.ValueOf(val)
	if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
		return []string{UserStr(val)}
	}

	out := make([]string, value.Len())
	for i := range out {
		out[i] = UserStr(value.Index(i).Interface())
	}
	return out
}
