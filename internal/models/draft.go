// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "unicode/utf8"

// MaxTextLength is the longest fact text accepted, counted in characters.
const MaxTextLength = 200

// Draft holds the in-progress submission form values.
type Draft struct {
	Text     string `json:"text" validate:"required,max=200"`
	Source   string `json:"source" validate:"required,httpurl"`
	Category string `json:"category" validate:"required,category"`
}

// Remaining returns how many characters may still be typed before the
// text reaches MaxTextLength. It goes negative once the limit is passed.
func (d Draft) Remaining() int {
	return MaxTextLength - utf8.RuneCountInString(d.Text)
}

// Validate checks the draft and returns a *ValidationError for the first
// offending field (text, then source, then category), or nil.
func (d Draft) Validate() error {
	return validateDraft(d)
}
