// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package util provides shared string helpers.
package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase upper-cases the first letter of each word in s.
func TitleCase(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}

// Humanize turns an identifier such as "my-inventory_api" or
// "Contoso.Inventory" into space-separated title-cased words.
func Humanize(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(name)
	return TitleCase(strings.Join(strings.Fields(name), " "))
}
