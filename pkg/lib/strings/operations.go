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
	"strings"
)

func EnsureSuffix(str string, suffix string) string {
	if strings.HasSuffix(str, suffix) {
		return str
	}
	return str + suffix
}

func TrimTrailingWhitespace(str string) string {
	return strings.TrimRight(str, " \t")
}

// MaskString keeps the last numPlain characters
func MaskString(str string, numPlain int) string {
	if numPlain >= len(str) {
		return str
	}
	return strings.Repeat("*", len(str)-numPlain) + str[len(str)-numPlain:]
}

func StrsOr(strs []string) string {
	return StrsSentence(strs, "or")
}

func StrsAnd(strs []string) string {
	return StrsSentence(strs, "and")
}

func UserStrsOr(vals interface{}) string {
	return StrsOr(UserStrs(vals))
}

func UserStrsAnd(vals interface{}) string {
	return StrsAnd(UserStrs(vals))
}

func StrsSentence(strs []string, lastJoinWord string) string {
	switch len(strs) {
	case 0:
		return ""
	case 1:
		return strs[0]
	case 2:
		return strings.Join(strs, " "+lastJoinWord+" ")
	default:
		lastIndex := len(strs) - 1
		return strings.Join(strs[:lastIndex], ", ") + ", " + lastJoinWord + " " + strs[lastIndex]
	}
}

func PluralS(str string, count int) string {
	return PluralCustom(str, str+"s", count)
}

func PluralCustom(singular string, plural string, count int) string {
	if count == 1 {
		return singular
	}
	return plural
}
